package organization

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Warehouse is a stock-holding location that belongs to exactly one branch
// and carries a cash balance.
type Warehouse struct {
	shared.AuditedAggregateRoot
	shared.SoftDelete
	Code     string
	BranchID uuid.UUID
	Cash     decimal.Decimal

	// BranchName is populated on reads for display
	BranchName string
}

// NewWarehouse creates a warehouse in branchID
func NewWarehouse(branchID uuid.UUID, code string, cash decimal.Decimal, createdBy uuid.UUID) (*Warehouse, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	code = strings.TrimSpace(code)
	if err := shared.ValidateName("Warehouse code", code, 255); err != nil {
		return nil, err
	}
	if err := shared.ValidateAmount("Cash", cash, true); err != nil {
		return nil, err
	}
	return &Warehouse{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Code:                 code,
		BranchID:             branchID,
		Cash:                 cash,
	}, nil
}

// Update changes code and cash balance
func (w *Warehouse) Update(code string, cash decimal.Decimal) error {
	code = strings.TrimSpace(code)
	if err := shared.ValidateName("Warehouse code", code, 255); err != nil {
		return err
	}
	if err := shared.ValidateAmount("Cash", cash, true); err != nil {
		return err
	}
	w.Code = code
	w.Cash = cash
	w.Revise()
	return nil
}

// MoveToBranch reassigns the warehouse
func (w *Warehouse) MoveToBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewValidationError("INVALID_BRANCH", "Branch ID cannot be empty")
	}
	w.BranchID = branchID
	w.Revise()
	return nil
}
