package evaluator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"rolegate/internal/app/port"
	"rolegate/internal/app/requirement"
	"rolegate/internal/domain/entity"
	"rolegate/internal/infrastructure/metrics"
)

// maxMissingTerminals bounds the combinatorial search evaluator.go performs
// when a user has errored requirements inside the logic tree (2^n
// assignments); a role with this many failing requirements has bigger
// problems than this cap.
const maxMissingTerminals = 20

type requirementOutcome struct {
	index        int
	requirement  entity.Requirement
	rows         []entity.ReqUserAccess
	constructErr error
}

// CheckAccess fans out every requirement concurrently, joins per-user
// verdicts single-threadedly, parses logic into a boolean expression tree
// over 0-based requirement indices, and evaluates it per user with
// three-valued semantics.
func CheckAccess(ctx context.Context, users []entity.User, requirements []entity.Requirement, logic string, sendDetails bool, registry port.Registry) entity.CheckAccessResult {
	logicExpr, parseErr := ParseLogic(logic)

	outcomes := dispatchRequirements(ctx, requirements, users, registry)

	var topErrors []entity.RequirementError
	rowsByReq := make([][]entity.ReqUserAccess, len(requirements))
	for _, o := range outcomes {
		rowsByReq[o.index] = o.rows
		if o.constructErr != nil {
			topErrors = append(topErrors, entity.RequirementError{
				RequirementID: o.requirement.ID,
				Msg:           o.constructErr.Error(),
			})
		}
	}

	accesses := make([]entity.Access, 0, len(users))
	for _, u := range users {
		accesses = append(accesses, buildUserAccess(u, requirements, rowsByReq, logicExpr, parseErr, sendDetails))
	}

	outcome := "ok"
	if parseErr != nil {
		outcome = "parse_error"
	}
	metrics.ChecksTotal.WithLabelValues(outcome).Inc()

	return entity.CheckAccessResult{Accesses: accesses, Errors: topErrors}
}

// dispatchRequirements constructs and runs every requirement's checker
// concurrently, one child task per requirement. Each task returns its
// contribution on the errgroup's join rather than writing into a shared,
// lock-guarded accumulator.
func dispatchRequirements(ctx context.Context, requirements []entity.Requirement, users []entity.User, registry port.Registry) []requirementOutcome {
	outcomes := make([]requirementOutcome, len(requirements))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range requirements {
		i, req := i, req
		g.Go(func() error {
			outcomes[i] = runRequirement(gctx, i, req, users, registry)
			return nil
		})
	}
	_ = g.Wait() // runRequirement never returns an error; failures are recorded in the outcome.

	return outcomes
}

func runRequirement(ctx context.Context, index int, req entity.Requirement, users []entity.User, registry port.Registry) requirementOutcome {
	checker, err := requirement.New(req, registry)
	if err != nil {
		rows := make([]entity.ReqUserAccess, 0, len(users))
		msg := err.Error()
		for _, u := range users {
			rows = append(rows, entity.ReqUserAccess{
				RequirementID: req.ID,
				UserID:        u.ID,
				Error:         &msg,
			})
		}
		return requirementOutcome{index: index, requirement: req, rows: rows, constructErr: err}
	}

	rows := checker.Check(ctx, users)
	return requirementOutcome{index: index, requirement: req, rows: rows}
}

// userRequirementRows collects, for one user, every row a requirement's
// check produced for them (one per address, or the single
// MissingUserAddress/construction-error row).
func userRequirementRows(userID uint64, rows []entity.ReqUserAccess) []entity.ReqUserAccess {
	var out []entity.ReqUserAccess
	for _, r := range rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

func buildUserAccess(u entity.User, requirements []entity.Requirement, rowsByReq [][]entity.ReqUserAccess, logicExpr *LogicExpr, parseErr error, sendDetails bool) entity.Access {
	warnings := []entity.RequirementError{}
	errs := []entity.RequirementError{}

	knownTerminals := make(map[int]bool)
	erroredIdx := make(map[int]bool)
	var detailed []entity.DetailedAccess

	for i, req := range requirements {
		rows := userRequirementRows(u.ID, rowsByReq[i])

		anyKnown := false
		orAccess := false
		var sumAmount float64

		for _, r := range rows {
			if r.Warning != nil {
				warnings = append(warnings, entity.RequirementError{RequirementID: req.ID, Msg: *r.Warning})
			}
			if r.Error != nil {
				errs = append(errs, entity.RequirementError{RequirementID: req.ID, Msg: *r.Error})
			}
			if r.Access != nil {
				anyKnown = true
				if *r.Access {
					orAccess = true
				}
			}
			if r.Amount != nil {
				sumAmount += *r.Amount
			}
		}

		if anyKnown {
			knownTerminals[i] = orAccess
		} else {
			erroredIdx[i] = true
		}

		if sendDetails {
			detailed = append(detailed, entity.DetailedAccess{
				RequirementID: req.ID,
				Access:        boolPtr(orAccess),
				Amount:        floatPtr(sumAmount),
			})
		}
	}

	access := evaluateAccess(logicExpr, parseErr, knownTerminals, erroredIdx)

	result := entity.Access{
		ID:       u.ID,
		Access:   access,
		Warnings: warnings,
		Errors:   errs,
	}
	if sendDetails {
		result.Detailed = detailed
	}
	return result
}

func evaluateAccess(logicExpr *LogicExpr, parseErr error, knownTerminals map[int]bool, erroredIdx map[int]bool) *bool {
	if parseErr != nil {
		return nil
	}

	// Any requirement that errored for this user blocks the clean path,
	// whether or not the logic expression references it: an error elsewhere
	// means the overall verdict is not yet determined, not a definite deny.
	if len(erroredIdx) == 0 {
		v, err := logicExpr.Eval(knownTerminals)
		if err != nil {
			return nil
		}
		return boolPtr(v)
	}

	// Of the errored requirements, only the ones the expression actually
	// references can change its outcome; search over their assignments to
	// see whether the tree is true regardless of how they resolve.
	var missing []int
	for _, leaf := range logicExpr.Leaves() {
		if erroredIdx[leaf] {
			missing = append(missing, leaf)
		}
	}

	if len(missing) > maxMissingTerminals {
		return nil
	}

	allTrue := true
	combos := 1 << len(missing)
	for c := 0; c < combos; c++ {
		trial := make(map[int]bool, len(knownTerminals)+len(missing))
		for k, v := range knownTerminals {
			trial[k] = v
		}
		for bit, leaf := range missing {
			trial[leaf] = c&(1<<bit) != 0
		}
		v, err := logicExpr.Eval(trial)
		if err != nil || !v {
			allTrue = false
			break
		}
	}

	if allTrue {
		return boolPtr(true)
	}
	return nil
}

func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
