package evmrpc

import "testing"

func TestInitABIsIsIdempotentAndPanicFree(t *testing.T) {
	initABIs()
	initABIs()

	if _, ok := erc20ABI.Methods["balanceOf"]; !ok {
		t.Fatal("expected erc20ABI to expose balanceOf")
	}
	if _, ok := erc721ABI.Methods["ownerOf"]; !ok {
		t.Fatal("expected erc721ABI to expose ownerOf")
	}
	if _, ok := erc1155ABI.Methods["balanceOfBatch"]; !ok {
		t.Fatal("expected erc1155ABI to expose balanceOfBatch")
	}
}
