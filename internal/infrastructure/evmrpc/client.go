// Package evmrpc implements the EVM JSON-RPC BalanceQuerier: the provider
// that talks directly to a chain's RPC endpoint and decodes contract ABIs.
package evmrpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"rolegate/internal/app/port"
	"rolegate/internal/domain/entity"
	"rolegate/internal/infrastructure/indexer"
	"rolegate/internal/infrastructure/metrics"
	"rolegate/internal/pkg/utils"
)

const nativeDecimals = 18

// decimalsCacheTTL caches a fungible token's immutable on-chain `decimals`
// across calls within a process lifetime, since the value never changes
// for a standard-conformant token.
const decimalsCacheTTL = 10 * time.Minute

// Provider is the EVM JSON-RPC BalanceQuerier for one chain. Constructed
// once at start-up from (chain, RPC URL); construction failure is fatal.
type Provider struct {
	chain    entity.Chain
	client   *ethclient.Client
	rpc      *rpc.Client
	indexer  *indexer.Client
	decimals *gocache.Cache
	limiter  *rate.Limiter
}

// NewProvider dials rpcURL and returns a ready-to-use Provider. The caller
// is expected to treat a non-nil error as fatal start-up misconfiguration.
func NewProvider(ctx context.Context, chain entity.Chain, rpcURL string, idx *indexer.Client, callsPerSecond int) (*Provider, error) {
	initABIs()

	rawClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("evmrpc: dialing %s RPC: %w", chain, err)
	}

	if callsPerSecond <= 0 {
		callsPerSecond = 20
	}

	return &Provider{
		chain:    chain,
		client:   ethclient.NewClient(rawClient),
		rpc:      rawClient,
		indexer:  idx,
		decimals: gocache.New(decimalsCacheTTL, decimalsCacheTTL*2),
		limiter:  rate.NewLimiter(rate.Limit(callsPerSecond), callsPerSecond),
	}, nil
}

var _ port.BalanceQuerier = (*Provider)(nil)

// NativeBalance issues one eth_getBalance per address, batched into a
// single JSON-RPC round trip via rpc.BatchElem.
func (p *Provider) NativeBalance(ctx context.Context, addresses []string) []port.AddressResult {
	elems := make([]rpc.BatchElem, len(addresses))
	results := make([]hexutil.Big, len(addresses))
	for i, addr := range addresses {
		elems[i] = rpc.BatchElem{
			Method: "eth_getBalance",
			Args:   []interface{}{common.HexToAddress(addr), "latest"},
			Result: &results[i],
		}
	}

	out := make([]port.AddressResult, len(addresses))
	if err := p.batchCall(ctx, elems); err != nil {
		for i, addr := range addresses {
			out[i] = port.AddressResult{Address: addr, Err: err}
		}
		p.recordCall("native_balance", out)
		return out
	}

	for i, addr := range addresses {
		if elems[i].Error != nil {
			out[i] = port.AddressResult{Address: addr, Err: elems[i].Error}
			continue
		}
		amount, err := utils.RawToFloat((*big.Int)(&results[i]), nativeDecimals)
		out[i] = port.AddressResult{Address: addr, Amount: amount, Err: err}
	}
	p.recordCall("native_balance", out)
	return out
}

// FungibleBalance reads the token's decimals once (cached) and shares that
// value across a batched per-address balanceOf call.
func (p *Provider) FungibleBalance(ctx context.Context, token string, addresses []string) []port.AddressResult {
	decimals, err := p.tokenDecimals(ctx, token)
	if err != nil {
		out := allErrors(addresses, err)
		p.recordCall("fungible_balance", out)
		return out
	}

	elems := make([]rpc.BatchElem, len(addresses))
	raws := make([]hexutil.Bytes, len(addresses))
	for i, addr := range addresses {
		data, packErr := erc20ABI.Pack("balanceOf", common.HexToAddress(addr))
		if packErr != nil {
			elems[i] = rpc.BatchElem{Error: packErr}
			continue
		}
		elems[i] = rpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{callMsg(token, data), "latest"},
			Result: &raws[i],
		}
	}

	out := make([]port.AddressResult, len(addresses))
	if err := p.batchCall(ctx, elems); err != nil {
		out = allErrors(addresses, err)
		p.recordCall("fungible_balance", out)
		return out
	}

	for i, addr := range addresses {
		if elems[i].Error != nil {
			out[i] = port.AddressResult{Address: addr, Err: elems[i].Error}
			continue
		}
		var balance *big.Int
		if unpackErr := unpackSingle(erc20ABI, "balanceOf", raws[i], &balance); unpackErr != nil {
			out[i] = port.AddressResult{Address: addr, Err: unpackErr}
			continue
		}
		amount, scaleErr := utils.RawToFloat(balance, decimals)
		out[i] = port.AddressResult{Address: addr, Amount: amount, Err: scaleErr}
	}
	p.recordCall("fungible_balance", out)
	return out
}

// NonFungibleBalance: with tokenID, each result is ownerOf(tokenID)==addr
// as 0.0/1.0 (an ownerOf failure, e.g. a burned or nonexistent token,
// degrades to 0 rather than an error); without tokenID, each result is
// balanceOf(addr).
func (p *Provider) NonFungibleBalance(ctx context.Context, token string, tokenID *big.Int, addresses []string) []port.AddressResult {
	if tokenID == nil {
		return p.erc721BalanceOf(ctx, token, addresses)
	}

	owner, err := p.ownerOf(ctx, token, tokenID)
	out := make([]port.AddressResult, len(addresses))
	for i, addr := range addresses {
		if err != nil {
			// ownerOf failed outright (bad RPC, bad contract): degrade to 0,
			// not an error.
			out[i] = port.AddressResult{Address: addr, Amount: 0}
			continue
		}
		amount := 0.0
		if common.HexToAddress(addr) == owner {
			amount = 1.0
		}
		out[i] = port.AddressResult{Address: addr, Amount: amount}
	}
	p.recordCall("nonfungible_balance", out)
	return out
}

func (p *Provider) erc721BalanceOf(ctx context.Context, token string, addresses []string) []port.AddressResult {
	elems := make([]rpc.BatchElem, len(addresses))
	raws := make([]hexutil.Bytes, len(addresses))
	for i, addr := range addresses {
		data, err := erc721ABI.Pack("balanceOf", common.HexToAddress(addr))
		if err != nil {
			elems[i] = rpc.BatchElem{Error: err}
			continue
		}
		elems[i] = rpc.BatchElem{Method: "eth_call", Args: []interface{}{callMsg(token, data), "latest"}, Result: &raws[i]}
	}

	out := make([]port.AddressResult, len(addresses))
	if err := p.batchCall(ctx, elems); err != nil {
		out = allErrors(addresses, err)
		p.recordCall("nonfungible_balance", out)
		return out
	}
	for i, addr := range addresses {
		if elems[i].Error != nil {
			out[i] = port.AddressResult{Address: addr, Err: elems[i].Error}
			continue
		}
		var balance *big.Int
		if err := unpackSingle(erc721ABI, "balanceOf", raws[i], &balance); err != nil {
			out[i] = port.AddressResult{Address: addr, Err: err}
			continue
		}
		out[i] = port.AddressResult{Address: addr, Amount: float64(balance.Int64())}
	}
	p.recordCall("nonfungible_balance", out)
	return out
}

func (p *Provider) ownerOf(ctx context.Context, token string, tokenID *big.Int) (common.Address, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return common.Address{}, err
	}
	data, err := erc721ABI.Pack("ownerOf", tokenID)
	if err != nil {
		return common.Address{}, err
	}
	raw, err := p.client.CallContract(ctx, ethereum.CallMsg{To: addrPtr(token), Data: data}, nil)
	if err != nil {
		return common.Address{}, err
	}
	var owner common.Address
	if err := unpackSingle(erc721ABI, "ownerOf", raw, &owner); err != nil {
		return common.Address{}, err
	}
	return owner, nil
}

// SemiFungibleBalance: with tokenID, a single balanceOfBatch call across
// every address; without it, the indexer's per-address summed total.
func (p *Provider) SemiFungibleBalance(ctx context.Context, token string, tokenID *big.Int, addresses []string) []port.AddressResult {
	if tokenID == nil {
		return p.erc1155IndexerFallback(ctx, token, addresses)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		out := allErrors(addresses, err)
		p.recordCall("semifungible_balance", out)
		return out
	}

	accounts := make([]common.Address, len(addresses))
	ids := make([]*big.Int, len(addresses))
	for i, addr := range addresses {
		accounts[i] = common.HexToAddress(addr)
		ids[i] = tokenID
	}

	data, err := erc1155ABI.Pack("balanceOfBatch", accounts, ids)
	if err != nil {
		out := allErrors(addresses, err)
		p.recordCall("semifungible_balance", out)
		return out
	}

	raw, err := p.client.CallContract(ctx, ethereum.CallMsg{To: addrPtr(token), Data: data}, nil)
	if err != nil {
		out := allErrors(addresses, err)
		p.recordCall("semifungible_balance", out)
		return out
	}

	var balances []*big.Int
	if err := unpackSingle(erc1155ABI, "balanceOfBatch", raw, &balances); err != nil {
		out := allErrors(addresses, err)
		p.recordCall("semifungible_balance", out)
		return out
	}

	out := make([]port.AddressResult, len(addresses))
	for i, addr := range addresses {
		out[i] = port.AddressResult{Address: addr, Amount: float64(balances[i].Int64())}
	}
	p.recordCall("semifungible_balance", out)
	return out
}

func (p *Provider) erc1155IndexerFallback(ctx context.Context, token string, addresses []string) []port.AddressResult {
	out := make([]port.AddressResult, len(addresses))
	g, gctx := errgroup.WithContext(ctx)
	for i, addr := range addresses {
		i, addr := i, addr
		g.Go(func() error {
			total, err := p.indexer.GetTotalSemiFungibleForAddress(gctx, p.chain, token, addr)
			if err != nil {
				out[i] = port.AddressResult{Address: addr, Err: err}
				return nil
			}
			amount, scaleErr := utils.RawToFloat(total, 0)
			out[i] = port.AddressResult{Address: addr, Amount: amount, Err: scaleErr}
			return nil
		})
	}
	_ = g.Wait()
	p.recordCall("semifungible_balance_indexer", out)
	return out
}

func (p *Provider) tokenDecimals(ctx context.Context, token string) (uint8, error) {
	if cached, ok := p.decimals.Get(token); ok {
		return cached.(uint8), nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	data, err := erc20ABI.Pack("decimals")
	if err != nil {
		return 0, err
	}
	raw, err := p.client.CallContract(ctx, ethereum.CallMsg{To: addrPtr(token), Data: data}, nil)
	if err != nil {
		return 0, fmt.Errorf("evmrpc: reading decimals for %s: %w", token, err)
	}
	var decimals uint8
	if err := unpackSingle(erc20ABI, "decimals", raw, &decimals); err != nil {
		return 0, err
	}

	p.decimals.Set(token, decimals, decimalsCacheTTL)
	return decimals, nil
}

func (p *Provider) batchCall(ctx context.Context, elems []rpc.BatchElem) error {
	if err := p.limiter.WaitN(ctx, len(elems)); err != nil {
		return err
	}
	return p.rpc.BatchCallContext(ctx, elems)
}

func callMsg(token string, data []byte) map[string]interface{} {
	to := common.HexToAddress(token)
	return map[string]interface{}{
		"to":   to,
		"data": hexutil.Bytes(data),
	}
}

func addrPtr(addr string) *common.Address {
	a := common.HexToAddress(addr)
	return &a
}

func allErrors(addresses []string, err error) []port.AddressResult {
	out := make([]port.AddressResult, len(addresses))
	for i, addr := range addresses {
		out[i] = port.AddressResult{Address: addr, Err: err}
	}
	return out
}

// recordCall tallies one ProviderCallsTotal observation for a batch of
// per-address results, labelled by the worst outcome present, so one
// Provider method call counts once regardless of how many addresses (or,
// for the indexer fallback, per-address indexer requests) it covered.
func (p *Provider) recordCall(operation string, results []port.AddressResult) {
	result := "ok"
	for _, r := range results {
		if r.Err != nil {
			result = "error"
			break
		}
	}
	metrics.ProviderCallsTotal.WithLabelValues(string(p.chain), operation, result).Inc()
}
