package requirement

import (
	"context"

	"rolegate/internal/domain/entity"
)

// Free passes unconditionally for every user address. No construction
// fields are required.
type Free struct {
	reqID uint64
}

func newFree(req entity.Requirement) (*Free, error) {
	return &Free{reqID: req.ID}, nil
}

func (f *Free) Check(_ context.Context, users []entity.User) []entity.ReqUserAccess {
	var out []entity.ReqUserAccess
	for _, u := range users {
		for range u.Addresses {
			out = append(out, entity.ReqUserAccess{
				RequirementID: f.reqID,
				UserID:        u.ID,
				Access:        boolPtr(true),
				Amount:        floatPtr(1.0),
			})
		}
	}
	return out
}
