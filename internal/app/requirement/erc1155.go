package requirement

import (
	"context"
	"math/big"

	"rolegate/internal/app/port"
	"rolegate/internal/domain/entity"
)

// Erc1155 checks semi-fungible holdings. With Data.ID set, the provider
// issues a single batched balanceOfBatch call across every address; without
// it, the provider consults the indexer per address. Unlike Erc721, both
// forms apply the amount range (CheckIfInRange), so a min/max amount also
// applies when a specific token id is given.
type Erc1155 struct {
	reqID    uint64
	token    string
	id       *big.Int
	provider port.BalanceQuerier
	limits   entity.AmountLimits
}

func newErc1155(req entity.Requirement, registry port.Registry) (*Erc1155, error) {
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

	return &Erc1155{
		reqID:    req.ID,
		token:    *req.Address,
		id:       id,
		provider: provider,
		limits:   req.Data.ParseLimits(),
	}, nil
}

func (e *Erc1155) Check(ctx context.Context, users []entity.User) []entity.ReqUserAccess {
	return checkAddressBatches(ctx, e.reqID, users, func(ctx context.Context, addrs []string) []port.AddressResult {
		return e.provider.SemiFungibleBalance(ctx, e.token, e.id, addrs)
	}, func(amount float64) (bool, float64) {
		return CheckIfInRange(amount, &e.limits, false), amount
	})
}
