package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// TransferStatus is the lifecycle state of a transfer
type TransferStatus string

const (
	TransferPending  TransferStatus = "Pending"
	TransferApproved TransferStatus = "Approved"
	TransferRejected TransferStatus = "Rejected"
)

// IsValid reports whether s is a known status
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferPending, TransferApproved, TransferRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func (s TransferStatus) IsTerminal() bool {
	return s == TransferApproved || s == TransferRejected
}

// Transfer is a request to move a named quantity between two warehouses.
// Transfers are never deleted; the only mutation is resolving a pending one.
type Transfer struct {
	shared.BaseEntity
	ItemName        string
	FromWarehouseID uuid.UUID
	ToWarehouseID   uuid.UUID
	Quantity        int64
	Status          TransferStatus
	ActionBy        *uuid.UUID
	ActionDate      time.Time
	CreatedBy       *uuid.UUID

	// Read-side projections
	FromWarehouseCode string
	ToWarehouseCode   string
	FromBranchID      uuid.UUID
	ToBranchID        uuid.UUID
}

// NewTransfer creates a pending transfer. Identical warehouses are rejected
// before the quantity is looked at.
func NewTransfer(itemName string, from, to uuid.UUID, quantity int64, actor uuid.UUID, now time.Time) (*Transfer, error) {
	if from == to {
		return nil, shared.ErrSameWarehouse
	}
	if from == uuid.Nil || to == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Both warehouses are required")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Transfer quantity must be positive")
	}
	itemName = strings.TrimSpace(itemName)
	if err := shared.ValidateName("Item name", itemName, 255); err != nil {
		return nil, err
	}

	t := &Transfer{
		BaseEntity:      shared.NewBaseEntity(),
		ItemName:        itemName,
		FromWarehouseID: from,
		ToWarehouseID:   to,
		Quantity:        quantity,
		Status:          TransferPending,
		ActionDate:      now,
	}
	if actor != uuid.Nil {
		t.ActionBy = &actor
		t.CreatedBy = &actor
	}
	return t, nil
}

// Approve resolves a pending transfer as approved
func (t *Transfer) Approve(actor uuid.UUID, now time.Time) error {
	return t.resolve(TransferApproved, actor, now)
}

// Reject resolves a pending transfer as rejected
func (t *Transfer) Reject(actor uuid.UUID, now time.Time) error {
	return t.resolve(TransferRejected, actor, now)
}

func (t *Transfer) resolve(status TransferStatus, actor uuid.UUID, now time.Time) error {
	if t.Status != TransferPending {
		return shared.ErrTransferResolved
	}
	t.Status = status
	t.ActionBy = &actor
	t.ActionDate = now
	t.UpdatedAt = now
	return nil
}

// InvolvesWarehouse reports whether id is the source or destination
func (t *Transfer) InvolvesWarehouse(id uuid.UUID) bool {
	return t.FromWarehouseID == id || t.ToWarehouseID == id
}
