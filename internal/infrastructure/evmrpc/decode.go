package evmrpc

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// unpackSingle unpacks method's sole return value from raw ABI-encoded
// output into the pointer out points to. Supports the handful of return
// types the embedded token ABIs use.
func unpackSingle(contractABI abi.ABI, method string, raw []byte, out interface{}) error {
	values, err := contractABI.Unpack(method, raw)
	if err != nil {
		return fmt.Errorf("unpacking %s: %w", method, err)
	}
	if len(values) != 1 {
		return fmt.Errorf("unpacking %s: expected 1 return value, got %d", method, len(values))
	}

	switch dst := out.(type) {
	case **big.Int:
		v, ok := values[0].(*big.Int)
		if !ok {
			return fmt.Errorf("unpacking %s: expected *big.Int, got %T", method, values[0])
		}
		*dst = v
	case *uint8:
		v, ok := values[0].(uint8)
		if !ok {
			return fmt.Errorf("unpacking %s: expected uint8, got %T", method, values[0])
		}
		*dst = v
	case *common.Address:
		v, ok := values[0].(common.Address)
		if !ok {
			return fmt.Errorf("unpacking %s: expected address, got %T", method, values[0])
		}
		*dst = v
	case *[]*big.Int:
		v, ok := values[0].([]*big.Int)
		if !ok {
			return fmt.Errorf("unpacking %s: expected []*big.Int, got %T", method, values[0])
		}
		*dst = v
	default:
		return fmt.Errorf("unpacking %s: unsupported destination type %T", method, out)
	}
	return nil
}
