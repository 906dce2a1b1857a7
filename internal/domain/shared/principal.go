package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the coarse-grained role of a user
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// ParseRole converts a string into a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", NewValidationError("INVALID_ROLE", fmt.Sprintf("Unknown role %q", s))
	}
	return r, nil
}

// Principal is the authenticated caller of a core operation. It is supplied
// by the transport layer and never re-derived inside the core.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     Role
	BranchID *uuid.UUID
}

// IsAdmin reports whether the principal has unrestricted access
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// InBranch reports whether the principal belongs to branchID
func (p Principal) InBranch(branchID uuid.UUID) bool {
	return p.BranchID != nil && *p.BranchID == branchID
}

// UserRef returns the principal's user ID as a nullable reference
func (p Principal) UserRef() *uuid.UUID {
	if p.UserID == uuid.Nil {
		return nil
	}
	id := p.UserID
	return &id
}
