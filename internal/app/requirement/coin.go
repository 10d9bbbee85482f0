package requirement

import (
	"context"

	"rolegate/internal/app/port"
	"rolegate/internal/domain/entity"
)

// Coin checks a user's native-currency balance against an amount range.
// Requires Chain to be supported by the registry.
type Coin struct {
	reqID    uint64
	provider port.BalanceQuerier
	limits   entity.AmountLimits
}

func newCoin(req entity.Requirement, registry port.Registry) (*Coin, error) {
	if req.Chain == nil {
		return nil, errMissingField("chain")
	}
	provider, ok := registry.Provider(*req.Chain)
	if !ok {
		return nil, errNoSuchChain(string(*req.Chain))
	}
	return &Coin{
		reqID:    req.ID,
		provider: provider,
		limits:   req.Data.ParseLimits(),
	}, nil
}

func (c *Coin) Check(ctx context.Context, users []entity.User) []entity.ReqUserAccess {
	return checkAddressBatches(ctx, c.reqID, users, func(ctx context.Context, addrs []string) []port.AddressResult {
		return c.provider.NativeBalance(ctx, addrs)
	}, func(amount float64) (bool, float64) {
		return CheckIfInRange(amount, &c.limits, false), amount
	})
}
