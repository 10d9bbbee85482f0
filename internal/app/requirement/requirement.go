// Package requirement implements the six closed requirement kinds the
// gating core supports, each a fallible transformation from a declarative
// entity.Requirement into a port.Checker.
package requirement

import (
	"fmt"

	"rolegate/internal/app/port"
	"rolegate/internal/domain/entity"
)

// New builds the Checker for req's kind, resolving any chain dependency
// against registry. Returns a *ConstructionError for a missing field or an
// unregistered chain, or a plain error for an unknown requirement type;
// never a panic.
func New(req entity.Requirement, registry port.Registry) (port.Checker, error) {
	switch req.Type {
	case entity.RequirementFree:
		return newFree(req)
	case entity.RequirementAllowlist:
		return newAllowlist(req)
	case entity.RequirementCoin:
		return newCoin(req, registry)
	case entity.RequirementErc20:
		return newErc20(req, registry)
	case entity.RequirementErc721:
		return newErc721(req, registry)
	case entity.RequirementErc1155:
		return newErc1155(req, registry)
	default:
		return nil, fmt.Errorf("unknown requirement type: %s", req.Type)
	}
}
