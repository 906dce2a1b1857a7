package inventory

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Stock is the quantity of one product held at one warehouse, for one metal.
// Quantity never goes negative.
type Stock struct {
	shared.AuditedAggregateRoot
	shared.SoftDelete
	WarehouseID uuid.UUID
	ProductID   uuid.UUID
	Metal       catalog.Metal
	Quantity    int64

	// Read-side projections, populated by repositories
	WarehouseCode string
	BranchID      uuid.UUID
	ProductName   string
	ProductWeight decimal.Decimal
}

// NewStock creates a stock row. The initial quantity must not be negative.
func NewStock(warehouseID, productID uuid.UUID, metal catalog.Metal, quantity int64, createdBy uuid.UUID) (*Stock, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !metal.IsValid() {
		return nil, shared.NewValidationError("INVALID_METAL", "Unknown metal")
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	return &Stock{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		WarehouseID:          warehouseID,
		ProductID:            productID,
		Metal:                metal,
		Quantity:             quantity,
	}, nil
}

// SetQuantity overwrites the counter
func (s *Stock) SetQuantity(quantity int64) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	s.Quantity = quantity
	s.Revise()
	return nil
}

// Adjust applies a signed delta. On failure the quantity is unchanged.
func (s *Stock) Adjust(delta int64) error {
	next, err := ApplyDelta(s.Quantity, delta)
	if err != nil {
		return err
	}
	s.Quantity = next
	s.Revise()
	return nil
}

// ApplyDelta returns current+delta, or an insufficient-stock error when the
// result would be negative.
func ApplyDelta(current, delta int64) (int64, error) {
	if delta > 0 && current > math.MaxInt64-delta {
		return 0, shared.NewValidationError("QUANTITY_OVERFLOW", "Quantity overflow")
	}
	next := current + delta
	if next < 0 {
		return 0, InsufficientStockError(current, delta)
	}
	return next, nil
}

// InsufficientStockError builds the error returned when an adjustment would
// drive a counter below zero
func InsufficientStockError(current, delta int64) error {
	return shared.NewDomainError(shared.KindValidation, shared.ErrInsufficientStock.Code,
		fmt.Sprintf("insufficient stock: available %d, requested change %d", current, delta))
}

// ValidateQuantity rejects negative counters
func ValidateQuantity(quantity int64) error {
	if quantity < 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	return nil
}

// WarehouseSummary aggregates the active stock rows of one warehouse.
// TotalWeight sums each product's nominal weight once per stock row; it is
// not quantity times weight.
type WarehouseSummary struct {
	WarehouseID   uuid.UUID
	WarehouseCode string
	BranchName    string
	ProductCount  int64
	TotalQuantity int64
	TotalWeight   decimal.Decimal
}
