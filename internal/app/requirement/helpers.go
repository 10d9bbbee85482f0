package requirement

import "rolegate/internal/domain/entity"

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

// missingUserAddress builds the one ReqUserAccess a requirement emits for a
// user with zero addresses.
func missingUserAddress(reqID, userID uint64) entity.ReqUserAccess {
	msg := errMissingUserAddress(userID).Error()
	return entity.ReqUserAccess{
		RequirementID: reqID,
		UserID:        userID,
		Error:         &msg,
	}
}
