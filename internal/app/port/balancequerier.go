package port

import (
	"context"
	"math/big"
)

// AddressResult pairs one user address with the fallible outcome of a
// balance lookup, preserving input order regardless of completion order.
type AddressResult struct {
	Address string
	Amount  float64
	Err     error
}

// BalanceQuerier is the capability a chain provider exposes: four batch
// operations, each returning one result per input address in the same
// order as the input, never aborting the batch on a single address's
// failure.
type BalanceQuerier interface {
	// NativeBalance returns the chain's native-currency balance for every
	// address, scaled to a float (18 decimals, fixed).
	NativeBalance(ctx context.Context, addresses []string) []AddressResult

	// FungibleBalance returns an ERC-20-like balance for every address,
	// scaled by the token contract's on-chain decimals.
	FungibleBalance(ctx context.Context, token string, addresses []string) []AddressResult

	// NonFungibleBalance returns, per address: if tokenID is non-nil, 1.0
	// when ownerOf(tokenID) == address else 0.0; if tokenID is nil, the
	// address's balanceOf count.
	NonFungibleBalance(ctx context.Context, token string, tokenID *big.Int, addresses []string) []AddressResult

	// SemiFungibleBalance returns, per address: if tokenID is non-nil, the
	// result of a single batched balanceOfBatch call across all addresses;
	// if tokenID is nil, the indexer-summed total held amount of that
	// contract for the address.
	SemiFungibleBalance(ctx context.Context, token string, tokenID *big.Int, addresses []string) []AddressResult
}
