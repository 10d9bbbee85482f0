// Package evaluator implements check_access: the fan-out/fan-in pipeline
// that combines per-requirement verdicts through a user-supplied boolean
// expression with three-valued semantics.
package evaluator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

var (
	wordRe = regexp.MustCompile(`\b(AND|OR|NOT)\b`)
	leafRe = regexp.MustCompile(`\b\d+\b`)
)

// LogicExpr is a parsed boolean expression tree whose leaves are 0-based
// requirement indices. The grammar accepts at minimum AND, OR, NOT (also
// their symbolic forms &&, ||, !) and parenthesised subexpressions with
// numeric leaves, delegated to govaluate.
type LogicExpr struct {
	expr    *govaluate.EvaluableExpression
	leafVar map[int]string // requirement index -> govaluate variable name
}

// ParseLogic compiles logic into a LogicExpr. A parse failure is not a
// top-level error: callers treat it as "every user's access is unknown
// for this role".
func ParseLogic(logic string) (*LogicExpr, error) {
	normalised := wordRe.ReplaceAllStringFunc(logic, func(tok string) string {
		switch strings.ToUpper(tok) {
		case "AND":
			return "&&"
		case "OR":
			return "||"
		case "NOT":
			return "!"
		default:
			return tok
		}
	})

	leafVar := make(map[int]string)
	rewritten := leafRe.ReplaceAllStringFunc(normalised, func(tok string) string {
		idx, err := strconv.Atoi(tok)
		if err != nil {
			return tok
		}
		name, ok := leafVar[idx]
		if !ok {
			name = fmt.Sprintf("r%d", idx)
			leafVar[idx] = name
		}
		return name
	})

	expr, err := govaluate.NewEvaluableExpression(rewritten)
	if err != nil {
		return nil, fmt.Errorf("parsing logic expression %q: %w", logic, err)
	}

	return &LogicExpr{expr: expr, leafVar: leafVar}, nil
}

// Leaves returns the set of 0-based requirement indices this expression
// references.
func (l *LogicExpr) Leaves() []int {
	out := make([]int, 0, len(l.leafVar))
	for idx := range l.leafVar {
		out = append(out, idx)
	}
	return out
}

// Eval evaluates the tree given a complete terminal assignment for every
// leaf the expression references. Every leaf in Leaves() must have an
// entry in terminals.
func (l *LogicExpr) Eval(terminals map[int]bool) (bool, error) {
	params := make(map[string]interface{}, len(l.leafVar))
	for idx, name := range l.leafVar {
		v, ok := terminals[idx]
		if !ok {
			return false, fmt.Errorf("missing terminal for requirement index %d", idx)
		}
		params[name] = v
	}

	result, err := l.expr.Evaluate(params)
	if err != nil {
		return false, fmt.Errorf("evaluating logic expression: %w", err)
	}

	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("logic expression did not evaluate to a boolean, got %T", result)
	}
	return b, nil
}
