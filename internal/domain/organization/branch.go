package organization

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// Branch is the root scoping entity: it owns warehouses and sellers, and
// transitively stock, transfers and invoices.
type Branch struct {
	shared.AuditedAggregateRoot
	shared.SoftDelete
	Name string
}

// NewBranch creates a new branch
func NewBranch(name string, createdBy uuid.UUID) (*Branch, error) {
	name = strings.TrimSpace(name)
	if err := shared.ValidateName("Branch name", name, 255); err != nil {
		return nil, err
	}
	return &Branch{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
	}, nil
}

// Rename changes the branch name
func (b *Branch) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := shared.ValidateName("Branch name", name, 255); err != nil {
		return err
	}
	b.Name = name
	b.Revise()
	return nil
}
