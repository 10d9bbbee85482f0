package entity

// ReqUserAccess is the uniform result shape every requirement checker
// produces: one verdict per (requirement, user address) pair. Access == nil
// means the verdict is unknown because of an error during the check;
// Amount's meaning is kind-dependent (token count, native balance, 1.0 for
// an unconditional pass, etc).
type ReqUserAccess struct {
	RequirementID uint64   `json:"requirementId"`
	UserID        uint64   `json:"userId"`
	Access        *bool    `json:"access,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	Warning       *string  `json:"warning,omitempty"`
	Error         *string  `json:"error,omitempty"`
}

// DetailedAccess reports one requirement's aggregated verdict for a single
// user: Access is OR across the user's addresses, Amount is their sum.
type DetailedAccess struct {
	RequirementID uint64   `json:"requirementId"`
	Access        *bool    `json:"access,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
}

// RequirementError attaches a message to a requirement, either as a
// top-level construction failure or as a per-user warning/error.
type RequirementError struct {
	RequirementID uint64 `json:"requirementId"`
	Msg           string `json:"msg"`
}

// Access is one user's aggregated result for a role.
type Access struct {
	ID       uint64             `json:"id"`
	Access   *bool              `json:"access,omitempty"`
	Warnings []RequirementError `json:"warnings,omitempty"`
	Errors   []RequirementError `json:"errors"`
	Detailed []DetailedAccess   `json:"detailed,omitempty"`
}

// CheckAccessResult is the evaluator's top-level output for a single role.
type CheckAccessResult struct {
	Accesses []Access           `json:"accesses"`
	Errors   []RequirementError `json:"errors,omitempty"`
}

// CheckRolesOfMembersRequest is the HTTP request body for
// POST /checkRolesOfMembers.
type CheckRolesOfMembersRequest struct {
	Users       []User `json:"users"`
	Roles       []Role `json:"roles"`
	SendDetails *bool  `json:"sendDetails,omitempty"`
}

// CheckRolesOfMembersResult is one element of the HTTP response array, one
// per role.
type CheckRolesOfMembersResult struct {
	RoleID uint64             `json:"roleId"`
	Users  []Access           `json:"users"`
	Errors []RequirementError `json:"errors,omitempty"`
}
