package requirement

import (
	"context"

	"rolegate/internal/app/port"
	"rolegate/internal/domain/entity"
)

// queryFunc issues one provider batch call across every address in the
// request and returns one AddressResult per address, in the same order.
type queryFunc func(ctx context.Context, addresses []string) []port.AddressResult

// evalFunc turns a raw scaled amount into this requirement kind's
// (access, amount) pair, e.g. a threshold check or an identity mapping.
type evalFunc func(amount float64) (access bool, amount float64)

// checkAddressBatches is the shared fan-out/fan-in shape every chain-backed
// requirement kind uses: flatten every user's addresses into one batch
// query (so the provider can amortise shared work, e.g. a single
// balanceOfBatch call), then re-attach each address-level result to its
// owning user in input order. A user with zero addresses gets the defined
// MissingUserAddress failure instead of being silently dropped.
func checkAddressBatches(ctx context.Context, reqID uint64, users []entity.User, query queryFunc, eval evalFunc) []entity.ReqUserAccess {
	var allAddrs []string
	for _, u := range users {
		allAddrs = append(allAddrs, u.Addresses...)
	}

	var results []port.AddressResult
	if len(allAddrs) > 0 {
		results = query(ctx, allAddrs)
	}

	out := make([]entity.ReqUserAccess, 0, len(results)+len(users))
	idx := 0
	for _, u := range users {
		if len(u.Addresses) == 0 {
			out = append(out, missingUserAddress(reqID, u.ID))
			continue
		}
		for range u.Addresses {
			r := results[idx]
			idx++
			out = append(out, toReqUserAccess(reqID, u.ID, r, eval))
		}
	}
	return out
}

func toReqUserAccess(reqID, userID uint64, r port.AddressResult, eval evalFunc) entity.ReqUserAccess {
	if r.Err != nil {
		msg := r.Err.Error()
		return entity.ReqUserAccess{
			RequirementID: reqID,
			UserID:        userID,
			Error:         &msg,
		}
	}
	access, amount := eval(r.Amount)
	return entity.ReqUserAccess{
		RequirementID: reqID,
		UserID:        userID,
		Access:        boolPtr(access),
		Amount:        floatPtr(amount),
	}
}
