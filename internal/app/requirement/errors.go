package requirement

import "fmt"

// ConstructionError is the closed set of failures that can occur while
// building a Checker from a declarative entity.Requirement. These are
// non-recoverable for the requirement: the evaluator surfaces one
// top-level RequirementError and degrades every user's verdict to unknown.
type ConstructionError struct {
	Kind string
	Msg  string
}

func (e *ConstructionError) Error() string { return e.Msg }

func errMissingField(name string) error {
	return &ConstructionError{Kind: "MissingField", Msg: fmt.Sprintf("missing field: %s", name)}
}

func errNoSuchChain(chain string) error {
	return &ConstructionError{Kind: "NoSuchChain", Msg: fmt.Sprintf("no such chain: %s", chain)}
}

func errMissingTokenAddress(reqID uint64) error {
	return &ConstructionError{Kind: "MissingTokenAddress", Msg: fmt.Sprintf("missing token address for requirement %d", reqID)}
}

// errMissingUserAddress is raised at check-time, not construction-time. It
// is a plain error rather than a *ConstructionError; only its message
// reaches the user's result row.
func errMissingUserAddress(userID uint64) error {
	return fmt.Errorf("missing user address for user %d", userID)
}
