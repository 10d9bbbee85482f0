package evmrpc

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackSingleBigInt(t *testing.T) {
	initABIs()

	want := big.NewInt(123456)
	packedReturn, err := erc20ABI.Methods["balanceOf"].Outputs.Pack(want)
	require.NoError(t, err)

	var got *big.Int
	require.NoError(t, unpackSingle(erc20ABI, "balanceOf", packedReturn, &got))
	assert.Equal(t, 0, want.Cmp(got))
}

func TestUnpackSingleUint8(t *testing.T) {
	initABIs()

	packedReturn, err := erc20ABI.Methods["decimals"].Outputs.Pack(uint8(18))
	require.NoError(t, err)

	var got uint8
	require.NoError(t, unpackSingle(erc20ABI, "decimals", packedReturn, &got))
	assert.Equal(t, uint8(18), got)
}

func TestUnpackSingleAddress(t *testing.T) {
	initABIs()

	want := common.HexToAddress("0xdeadbeef00000000000000000000000000000000")
	packedReturn, err := erc721ABI.Methods["ownerOf"].Outputs.Pack(want)
	require.NoError(t, err)

	var got common.Address
	require.NoError(t, unpackSingle(erc721ABI, "ownerOf", packedReturn, &got))
	assert.Equal(t, want, got)
}

func TestUnpackSingleBigIntSlice(t *testing.T) {
	initABIs()

	want := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}
	packedReturn, err := erc1155ABI.Methods["balanceOfBatch"].Outputs.Pack(want)
	require.NoError(t, err)

	var got []*big.Int
	require.NoError(t, unpackSingle(erc1155ABI, "balanceOfBatch", packedReturn, &got))
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, 0, want[i].Cmp(got[i]))
	}
}

func TestUnpackSingleWrongDestinationType(t *testing.T) {
	initABIs()

	packedReturn, err := erc20ABI.Methods["decimals"].Outputs.Pack(uint8(18))
	require.NoError(t, err)

	var got *big.Int
	err = unpackSingle(erc20ABI, "decimals", packedReturn, &got)
	require.Error(t, err)
}
