package organization

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// Seller is a salesperson attached to a branch
type Seller struct {
	shared.AuditedAggregateRoot
	shared.SoftDelete
	Name     string
	BranchID uuid.UUID

	BranchName string
}

// NewSeller creates a seller in branchID
func NewSeller(branchID uuid.UUID, name string, createdBy uuid.UUID) (*Seller, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if err := shared.ValidateName("Seller name", name, 255); err != nil {
		return nil, err
	}
	return &Seller{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
		BranchID:             branchID,
	}, nil
}

// Update changes name and branch
func (s *Seller) Update(name string, branchID uuid.UUID) error {
	name = strings.TrimSpace(name)
	if err := shared.ValidateName("Seller name", name, 255); err != nil {
		return err
	}
	if branchID == uuid.Nil {
		return shared.NewValidationError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	s.Name = name
	s.BranchID = branchID
	s.Revise()
	return nil
}
