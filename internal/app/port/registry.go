package port

import "rolegate/internal/domain/entity"

// Registry maps a chain tag to the BalanceQuerier registered for it. An
// implementation is built once at start-up and is immutable thereafter, so
// it may be read concurrently without locking. Injected explicitly into
// the evaluator rather than held behind a process-wide singleton.
type Registry interface {
	// Provider returns the BalanceQuerier registered for chain, and whether
	// one is registered at all.
	Provider(chain entity.Chain) (BalanceQuerier, bool)
}
