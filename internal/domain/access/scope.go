package access

import "github.com/google/uuid"

type scopeKind int

const (
	scopeNothing scopeKind = iota
	scopeAll
	scopeBranch
)

// Scope is the set of branches whose records a caller may see.
// The zero value sees nothing.
type Scope struct {
	kind     scopeKind
	branchID uuid.UUID
}

// Unrestricted sees every branch
func Unrestricted() Scope {
	return Scope{kind: scopeAll}
}

// Branch sees only records of branchID
func Branch(branchID uuid.UUID) Scope {
	return Scope{kind: scopeBranch, branchID: branchID}
}

// Nothing sees no records
func Nothing() Scope {
	return Scope{kind: scopeNothing}
}

// IsUnrestricted reports whether the scope spans all branches
func (s Scope) IsUnrestricted() bool {
	return s.kind == scopeAll
}

// IsEmpty reports whether the scope sees nothing
func (s Scope) IsEmpty() bool {
	return s.kind == scopeNothing
}

// BranchID returns the single visible branch, if the scope is branch-limited
func (s Scope) BranchID() (uuid.UUID, bool) {
	return s.branchID, s.kind == scopeBranch
}

// Allows reports whether a record of branchID is visible
func (s Scope) Allows(branchID uuid.UUID) bool {
	switch s.kind {
	case scopeAll:
		return true
	case scopeBranch:
		return s.branchID == branchID
	default:
		return false
	}
}

// AllowsAny reports whether a record attributed to any of branchIDs is visible
func (s Scope) AllowsAny(branchIDs ...uuid.UUID) bool {
	for _, id := range branchIDs {
		if s.Allows(id) {
			return true
		}
	}
	return false
}

// String is used in logs
func (s Scope) String() string {
	switch s.kind {
	case scopeAll:
		return "all"
	case scopeBranch:
		return "branch:" + s.branchID.String()
	default:
		return "none"
	}
}
