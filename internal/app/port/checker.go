package port

import (
	"context"

	"rolegate/internal/domain/entity"
)

// Checker is the runtime object that realises a requirement's predicate
// against a provider. One ReqUserAccess is emitted per (user, address)
// pair it is asked to evaluate.
type Checker interface {
	Check(ctx context.Context, users []entity.User) []entity.ReqUserAccess
}
