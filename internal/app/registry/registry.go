// Package registry builds the immutable chain->provider map the evaluator
// is injected with, constructed once at start-up from per-chain
// <CHAIN>_RPC environment variables, via explicit dependency injection
// rather than a process-wide singleton.
package registry

import (
	"context"
	"fmt"
	"os"

	"rolegate/internal/app/port"
	"rolegate/internal/domain/entity"
	"rolegate/internal/infrastructure/evmrpc"
	"rolegate/internal/infrastructure/indexer"
)

// Registry is an immutable, concurrency-safe chain->provider map.
type Registry struct {
	providers map[entity.Chain]port.BalanceQuerier
}

var _ port.Registry = (*Registry)(nil)

// Provider implements port.Registry.
func (r *Registry) Provider(chain entity.Chain) (port.BalanceQuerier, bool) {
	p, ok := r.providers[chain]
	return p, ok
}

// Options configures New.
type Options struct {
	// Chains is the set of chains to register a provider for. Every chain
	// listed MUST have a corresponding <CHAIN>_RPC environment variable;
	// absence is fatal.
	Chains []entity.Chain
	// IndexerBaseURL overrides the default Balancy endpoint; empty uses
	// the production default.
	IndexerBaseURL string
	// RPCCallsPerSecond bounds each provider's outbound RPC rate.
	RPCCallsPerSecond int
}

// New builds a Registry, dialing one EVM provider per chain in opts.Chains.
// A missing <CHAIN>_RPC environment variable or a dial failure is returned
// as an error; callers are expected to treat it as fatal start-up
// misconfiguration.
func New(ctx context.Context, opts Options) (*Registry, error) {
	idx := indexer.NewClient(opts.IndexerBaseURL, 0)

	providers := make(map[entity.Chain]port.BalanceQuerier, len(opts.Chains))
	for _, chain := range opts.Chains {
		if !chain.Valid() {
			return nil, fmt.Errorf("registry: unsupported chain tag: %s", chain)
		}

		rpcURL := os.Getenv(chain.EnvVar())
		if rpcURL == "" {
			return nil, fmt.Errorf("registry: environment variable %s not set", chain.EnvVar())
		}

		provider, err := evmrpc.NewProvider(ctx, chain, rpcURL, idx, opts.RPCCallsPerSecond)
		if err != nil {
			return nil, fmt.Errorf("registry: constructing provider for %s: %w", chain, err)
		}
		providers[chain] = provider
	}

	return &Registry{providers: providers}, nil
}
