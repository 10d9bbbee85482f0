package utils

import (
	"fmt"
	"math"
	"math/big"
)

// RawToFloat scales a raw on-chain integer amount down by 10^decimals into
// an IEEE-754 double, the representation every amount-bearing requirement
// reports to callers. Precision loss beyond 2^53 is accepted.
func RawToFloat(amount *big.Int, decimals uint8) (float64, error) {
	if amount == nil {
		return 0, fmt.Errorf("amount is nil")
	}

	amountFloat := new(big.Float).SetInt(amount)
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	if divisor.Sign() == 0 {
		return 0, fmt.Errorf("divisor is zero for decimals=%d", decimals)
	}

	value := new(big.Float).Quo(amountFloat, divisor)
	f, _ := value.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("scaled value is Inf or NaN: raw=%s decimals=%d", amount.String(), decimals)
	}
	return f, nil
}
