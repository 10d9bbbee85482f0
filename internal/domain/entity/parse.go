package entity

import "strconv"

// parseFloat is the single place RequirementData's string amount bounds are
// parsed, so the silent-failure behaviour documented on ParseLimits has one
// call site.
func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
