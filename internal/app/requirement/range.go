package requirement

import "rolegate/internal/domain/entity"

// CheckIfInRange is the single source of truth for amount-threshold checks,
// used by every amount-bearing requirement kind with equalMax = false.
//
//   - limits == nil: amount > 0.
//   - else min = limits.MinAmount (default 0); minOk = amount >= min when
//     min > 0, else amount > 0.
//   - if limits.MaxAmount is set: maxOk = amount <= max when equalMax, else
//     amount < max; result = minOk && maxOk. Otherwise result = minOk.
func CheckIfInRange(amount float64, limits *entity.AmountLimits, equalMax bool) bool {
	if limits == nil {
		return amount > 0
	}

	min := 0.0
	if limits.MinAmount != nil {
		min = *limits.MinAmount
	}

	var minOk bool
	if min > 0 {
		minOk = amount >= min
	} else {
		minOk = amount > 0
	}

	if limits.MaxAmount == nil {
		return minOk
	}

	max := *limits.MaxAmount
	var maxOk bool
	if equalMax {
		maxOk = amount <= max
	} else {
		maxOk = amount < max
	}

	return minOk && maxOk
}
