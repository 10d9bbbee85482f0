package evmrpc

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Minimal embedded ABI fragments for the three token standards the
// requirement layer queries. Loaded once per process via sync.Once.
const (
	erc20ABIJSON = `[
		{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"},
		{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"}
	]`

	erc721ABIJSON = `[
		{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
		{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"type":"function"}
	]`

	erc1155ABIJSON = `[
		{"constant":true,"inputs":[{"name":"account","type":"address"},{"name":"id","type":"uint256"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
		{"constant":true,"inputs":[{"name":"accounts","type":"address[]"},{"name":"ids","type":"uint256[]"}],"name":"balanceOfBatch","outputs":[{"name":"","type":"uint256[]"}],"type":"function"}
	]`
)

var (
	erc20ABI, erc721ABI, erc1155ABI abi.ABI
	abiOnce                         sync.Once
)

// initABIs parses the three embedded ABI fragments exactly once; a parse
// failure here is a start-up bug, not a runtime condition, so it panics.
func initABIs() {
	abiOnce.Do(func() {
		var err error
		if erc20ABI, err = abi.JSON(strings.NewReader(erc20ABIJSON)); err != nil {
			panic("evmrpc: failed to parse embedded ERC-20 ABI: " + err.Error())
		}
		if erc721ABI, err = abi.JSON(strings.NewReader(erc721ABIJSON)); err != nil {
			panic("evmrpc: failed to parse embedded ERC-721 ABI: " + err.Error())
		}
		if erc1155ABI, err = abi.JSON(strings.NewReader(erc1155ABIJSON)); err != nil {
			panic("evmrpc: failed to parse embedded ERC-1155 ABI: " + err.Error())
		}
	})
}
