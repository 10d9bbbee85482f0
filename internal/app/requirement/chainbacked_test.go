package requirement

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rolegate/internal/app/port"
	"rolegate/internal/domain/entity"
)

// fakeProvider is an in-memory port.BalanceQuerier stand-in, grounded on
// the evmrpc.Provider's method shapes but returning canned per-address
// amounts/errors instead of dialing a real chain.
type fakeProvider struct {
	amounts map[string]float64
	errs    map[string]error
}

func (f *fakeProvider) results(addresses []string) []port.AddressResult {
	out := make([]port.AddressResult, len(addresses))
	for i, addr := range addresses {
		if err, ok := f.errs[addr]; ok {
			out[i] = port.AddressResult{Address: addr, Err: err}
			continue
		}
		out[i] = port.AddressResult{Address: addr, Amount: f.amounts[addr]}
	}
	return out
}

func (f *fakeProvider) NativeBalance(_ context.Context, addresses []string) []port.AddressResult {
	return f.results(addresses)
}
func (f *fakeProvider) FungibleBalance(_ context.Context, _ string, addresses []string) []port.AddressResult {
	return f.results(addresses)
}
func (f *fakeProvider) NonFungibleBalance(_ context.Context, _ string, _ *big.Int, addresses []string) []port.AddressResult {
	return f.results(addresses)
}
func (f *fakeProvider) SemiFungibleBalance(_ context.Context, _ string, _ *big.Int, addresses []string) []port.AddressResult {
	return f.results(addresses)
}

type fakeRegistry struct {
	providers map[entity.Chain]port.BalanceQuerier
}

func (r *fakeRegistry) Provider(chain entity.Chain) (port.BalanceQuerier, bool) {
	p, ok := r.providers[chain]
	return p, ok
}

func TestCoinConstructionRequiresChain(t *testing.T) {
	reg := &fakeRegistry{providers: map[entity.Chain]port.BalanceQuerier{}}
	_, err := newCoin(entity.Requirement{ID: 1}, reg)
	require.Error(t, err)
	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "MissingField", ce.Kind)
}

func TestCoinConstructionNoSuchChain(t *testing.T) {
	reg := &fakeRegistry{providers: map[entity.Chain]port.BalanceQuerier{}}
	chain := entity.ChainEthereum
	_, err := newCoin(entity.Requirement{ID: 1, Chain: &chain}, reg)
	require.Error(t, err)
	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "NoSuchChain", ce.Kind)
}

func TestCoinCheckAppliesThreshold(t *testing.T) {
	chain := entity.ChainEthereum
	provider := &fakeProvider{amounts: map[string]float64{"0xabc": 5, "0xdef": 0}}
	reg := &fakeRegistry{providers: map[entity.Chain]port.BalanceQuerier{chain: provider}}

	checker, err := newCoin(entity.Requirement{ID: 1, Chain: &chain}, reg)
	require.NoError(t, err)

	users := []entity.User{{ID: 1, Addresses: []string{"0xabc", "0xdef"}}}
	rows := checker.Check(context.Background(), users)
	require.Len(t, rows, 2)
	assert.True(t, *rows[0].Access)
	assert.False(t, *rows[1].Access)
}

func TestErc20ConstructionRequiresAddress(t *testing.T) {
	chain := entity.ChainEthereum
	reg := &fakeRegistry{providers: map[entity.Chain]port.BalanceQuerier{chain: &fakeProvider{}}}
	_, err := newErc20(entity.Requirement{ID: 1, Chain: &chain}, reg)
	require.Error(t, err)
	var ce *ConstructionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "MissingTokenAddress", ce.Kind)
}

func TestErc721WithTokenIDIsIdentityCheck(t *testing.T) {
	chain := entity.ChainEthereum
	token := "0xNFT"
	provider := &fakeProvider{amounts: map[string]float64{"0xowner": 1, "0xother": 0}}
	reg := &fakeRegistry{providers: map[entity.Chain]port.BalanceQuerier{chain: provider}}

	checker, err := newErc721(entity.Requirement{
		ID:      1,
		Chain:   &chain,
		Address: &token,
		Data:    &entity.RequirementData{ID: entity.NewU256FromInt64(7)},
	}, reg)
	require.NoError(t, err)

	users := []entity.User{{ID: 1, Addresses: []string{"0xowner", "0xother"}}}
	rows := checker.Check(context.Background(), users)
	require.Len(t, rows, 2)
	assert.True(t, *rows[0].Access)
	assert.False(t, *rows[1].Access)
}

func TestMissingUserAddressRow(t *testing.T) {
	chain := entity.ChainEthereum
	reg := &fakeRegistry{providers: map[entity.Chain]port.BalanceQuerier{chain: &fakeProvider{}}}
	checker, err := newCoin(entity.Requirement{ID: 9, Chain: &chain}, reg)
	require.NoError(t, err)

	users := []entity.User{{ID: 5, Addresses: nil}}
	rows := checker.Check(context.Background(), users)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Access)
	require.NotNil(t, rows[0].Error)
}

func TestErc20CheckPropagatesProviderError(t *testing.T) {
	chain := entity.ChainEthereum
	token := "0xTOKEN"
	provider := &fakeProvider{errs: map[string]error{"0xabc": assertErr("rpc down")}}
	reg := &fakeRegistry{providers: map[entity.Chain]port.BalanceQuerier{chain: provider}}

	checker, err := newErc20(entity.Requirement{ID: 1, Chain: &chain, Address: &token}, reg)
	require.NoError(t, err)

	rows := checker.Check(context.Background(), []entity.User{{ID: 1, Addresses: []string{"0xabc"}}})
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Access)
	require.NotNil(t, rows[0].Error)
}

type simpleErr string

func (e simpleErr) Error() string { return string(e) }

func assertErr(msg string) error { return simpleErr(msg) }
