package requirement

import (
	"context"

	"rolegate/internal/app/port"
	"rolegate/internal/domain/entity"
)

// Erc20 checks a user's fungible-token balance against an amount range.
// Requires Chain and Address.
type Erc20 struct {
	reqID    uint64
	token    string
	provider port.BalanceQuerier
	limits   entity.AmountLimits
}

func newErc20(req entity.Requirement, registry port.Registry) (*Erc20, error) {
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
	return &Erc20{
		reqID:    req.ID,
		token:    *req.Address,
		provider: provider,
		limits:   req.Data.ParseLimits(),
	}, nil
}

func (e *Erc20) Check(ctx context.Context, users []entity.User) []entity.ReqUserAccess {
	return checkAddressBatches(ctx, e.reqID, users, func(ctx context.Context, addrs []string) []port.AddressResult {
		return e.provider.FungibleBalance(ctx, e.token, addrs)
	}, func(amount float64) (bool, float64) {
		return CheckIfInRange(amount, &e.limits, false), amount
	})
}
