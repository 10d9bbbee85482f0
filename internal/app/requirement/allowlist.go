package requirement

import (
	"context"
	"strings"

	"rolegate/internal/domain/entity"
)

// Allowlist passes an address iff its lowercase form is in the
// requirement's declared address set. Requires Data.Addresses.
type Allowlist struct {
	reqID uint64
	set   map[string]struct{}
}

func newAllowlist(req entity.Requirement) (*Allowlist, error) {
	if req.Data == nil || len(req.Data.Addresses) == 0 {
		return nil, errMissingField("data.addresses")
	}

	set := make(map[string]struct{}, len(req.Data.Addresses))
	for _, a := range req.Data.Addresses {
		set[strings.ToLower(a)] = struct{}{}
	}
	return &Allowlist{reqID: req.ID, set: set}, nil
}

func (a *Allowlist) Check(_ context.Context, users []entity.User) []entity.ReqUserAccess {
	var out []entity.ReqUserAccess
	for _, u := range users {
		for _, addr := range u.Addresses {
			_, ok := a.set[strings.ToLower(addr)]
			out = append(out, entity.ReqUserAccess{
				RequirementID: a.reqID,
				UserID:        u.ID,
				Access:        boolPtr(ok),
				Amount:        floatPtr(boolToFloat(ok)),
			})
		}
	}
	return out
}

func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
