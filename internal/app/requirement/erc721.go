package requirement

import (
	"context"
	"math/big"

	"rolegate/internal/app/port"
	"rolegate/internal/domain/entity"
)

// Erc721 checks non-fungible holdings. With Data.ID set, the predicate is
// "owns this specific token" (amount is 0.0 or 1.0); without it, the
// predicate is "collection count is in range".
type Erc721 struct {
	reqID    uint64
	token    string
	id       *big.Int
	provider port.BalanceQuerier
	limits   entity.AmountLimits
}

func newErc721(req entity.Requirement, registry port.Registry) (*Erc721, error) {
	if req.Chain == nil {
		return nil, errMissingField("chain")
	}
	if req.Address == nil || *req.Address == "" {
		return nil, errMissingTokenAddress(req.ID)
	}
	provider, ok := registry.Provider(*req.Chain)
	if !ok {
		return nil, errNoSuchChain(string(*req.Chain))
	}

	var id *big.Int
	if req.Data != nil && req.Data.ID != nil {
		id = req.Data.ID.BigInt()
	}

	return &Erc721{
		reqID:    req.ID,
		token:    *req.Address,
		id:       id,
		provider: provider,
		limits:   req.Data.ParseLimits(),
	}, nil
}

func (e *Erc721) Check(ctx context.Context, users []entity.User) []entity.ReqUserAccess {
	return checkAddressBatches(ctx, e.reqID, users, func(ctx context.Context, addrs []string) []port.AddressResult {
		return e.provider.NonFungibleBalance(ctx, e.token, e.id, addrs)
	}, func(amount float64) (bool, float64) {
		if e.id != nil {
			return amount > 0, amount
		}
		return CheckIfInRange(amount, &e.limits, false), amount
	})
}
