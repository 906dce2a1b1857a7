// Package access is the single source of truth for who may see and act on
// what. Role gates answer "may this role use the resource at all"; branch
// scopes answer "which records of the resource are visible".
//
// Usage:
//
//	scope, err := policy.Authorize(principal, access.ResourceWarehouse)
//	if err != nil {
//		return err // PermissionDenied
//	}
//	repo.FindAll(ctx, scope, filter)
package access

import (
	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// Resource names a class of records subject to access control
type Resource string

const (
	ResourceBranch    Resource = "branch"
	ResourceWarehouse Resource = "warehouse"
	ResourceSeller    Resource = "seller"
	ResourceVendor    Resource = "vendor"
	ResourceCustomer  Resource = "customer"
	ResourceProduct   Resource = "product"
	ResourceStock     Resource = "stock"
	ResourceTransfer  Resource = "transfer"
	ResourceInvoice   Resource = "invoice"
	ResourceUser      Resource = "user"
)

// BranchAttribution describes how a resource reaches its branch
type BranchAttribution int

const (
	// BranchAgnostic resources are visible to every authenticated role
	BranchAgnostic BranchAttribution = iota
	// BranchIsSelf means the record is itself a branch
	BranchIsSelf
	// BranchDirect means the record carries a branch_id column
	BranchDirect
	// BranchViaWarehouse means the record carries a warehouse_id column
	BranchViaWarehouse
	// BranchViaEitherWarehouse means the record has source and destination warehouses
	BranchViaEitherWarehouse
)

type rule struct {
	roles       []shared.Role
	attribution BranchAttribution
}

var (
	staffRoles = []shared.Role{shared.RoleAdmin, shared.RoleManager}
	allRoles   = []shared.Role{shared.RoleAdmin, shared.RoleManager, shared.RoleEmployee}
)

var rules = map[Resource]rule{
	ResourceBranch:    {roles: staffRoles, attribution: BranchIsSelf},
	ResourceWarehouse: {roles: staffRoles, attribution: BranchDirect},
	ResourceSeller:    {roles: staffRoles, attribution: BranchDirect},
	ResourceVendor:    {roles: staffRoles, attribution: BranchAgnostic},
	ResourceProduct:   {roles: staffRoles, attribution: BranchAgnostic},
	ResourceUser:      {roles: staffRoles, attribution: BranchDirect},
	ResourceCustomer:  {roles: allRoles, attribution: BranchAgnostic},
	ResourceStock:     {roles: allRoles, attribution: BranchViaWarehouse},
	ResourceTransfer:  {roles: allRoles, attribution: BranchViaEitherWarehouse},
	ResourceInvoice:   {roles: allRoles, attribution: BranchDirect},
}

// AttributionOf returns how resource is attributed to a branch
func AttributionOf(resource Resource) BranchAttribution {
	return rules[resource].attribution
}

// Policy evaluates role gates and branch scopes
type Policy struct{}

// NewPolicy creates the access policy
func NewPolicy() *Policy {
	return &Policy{}
}

// CanUse reports whether the principal's role may use resource at all
func (p *Policy) CanUse(principal shared.Principal, resource Resource) bool {
	r, ok := rules[resource]
	if !ok {
		return false
	}
	for _, role := range r.roles {
		if principal.Role == role {
			return true
		}
	}
	return false
}

// Scope returns the branch scope of principal over resource, ignoring role gates
func (p *Policy) Scope(principal shared.Principal, resource Resource) Scope {
	if principal.IsAdmin() || AttributionOf(resource) == BranchAgnostic {
		return Unrestricted()
	}
	if principal.BranchID == nil {
		return Nothing()
	}
	return Branch(*principal.BranchID)
}

// Authorize checks the role gate and returns the branch scope for resource.
// A denied role yields PermissionDenied.
func (p *Policy) Authorize(principal shared.Principal, resource Resource) (Scope, error) {
	if !p.CanUse(principal, resource) {
		return Nothing(), shared.NewDomainError(shared.KindPermissionDenied, "PERMISSION_DENIED",
			"Role "+string(principal.Role)+" may not access "+string(resource))
	}
	return p.Scope(principal, resource), nil
}

// RequireAdmin allows only administrators
func (p *Policy) RequireAdmin(principal shared.Principal) error {
	if !principal.IsAdmin() {
		return shared.ErrPermissionDenied
	}
	return nil
}

// CanAssignRole reports whether principal may create or edit a user with
// role in branchID. Managers may only manage non-admin users of their own branch.
func (p *Policy) CanAssignRole(principal shared.Principal, role shared.Role, branchID *uuid.UUID) bool {
	switch principal.Role {
	case shared.RoleAdmin:
		return true
	case shared.RoleManager:
		return role != shared.RoleAdmin && branchID != nil && principal.InBranch(*branchID)
	default:
		return false
	}
}
