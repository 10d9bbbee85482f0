package entity

import (
	"fmt"
	"math/big"
	"strings"
)

// U256 is a 256-bit unsigned integer transported on the wire as a decimal
// string — the only lossless encoding for a value this size to a JSON
// client — and handled internally as a *big.Int.
type U256 big.Int

// UnmarshalJSON accepts either a quoted decimal string (the documented wire
// form) or a bare JSON number, so a token id round-trips without precision
// loss through *big.Int.UnmarshalJSON's string-only restriction.
func (u *U256) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}

	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("invalid U256 value %q", s)
	}
	*u = U256(*i)
	return nil
}

// MarshalJSON always emits the decimal-string form.
func (u U256) MarshalJSON() ([]byte, error) {
	i := big.Int(u)
	return []byte(`"` + i.String() + `"`), nil
}

// BigInt returns u as a *big.Int, or nil if u is nil.
func (u *U256) BigInt() *big.Int {
	if u == nil {
		return nil
	}
	i := big.Int(*u)
	return &i
}

// NewU256FromInt64 builds a U256 from a small constant, for requirement
// construction and tests that don't need arbitrary-precision literals.
func NewU256FromInt64(v int64) *U256 {
	u := U256(*big.NewInt(v))
	return &u
}
