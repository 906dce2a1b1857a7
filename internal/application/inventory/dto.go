package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Stock DTOs
// =============================================================================

// StockRequest creates or upserts the stock row of a (warehouse, product, metal) triple
type StockRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	Metal       string    `json:"metal" binding:"required,oneof=gold silver"`
	Quantity    int64     `json:"quantity" binding:"min=0"`
}

// SetQuantityRequest overwrites the counter of a stock row
type SetQuantityRequest struct {
	Quantity int64 `json:"quantity" binding:"min=0"`
}

// AdjustStockRequest adds a signed delta to the counter
type AdjustStockRequest struct {
	Adjustment int64 `json:"adjustment"`
}

// StockListFilter narrows stock listings
type StockListFilter struct {
	WarehouseID *uuid.UUID `form:"-"`
	ProductID   *uuid.UUID `form:"-"`
	Metal       string     `form:"metal" binding:"omitempty,oneof=gold silver"`
}

// StockResponse represents a stock row in API responses
type StockResponse struct {
	ID            uuid.UUID       `json:"id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	WarehouseCode string          `json:"warehouse_code,omitempty"`
	BranchID      uuid.UUID       `json:"branch_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name,omitempty"`
	ProductWeight decimal.Decimal `json:"product_weight"`
	Metal         string          `json:"metal"`
	Quantity      int64           `json:"quantity"`
	CreatedBy     *uuid.UUID      `json:"created_by,omitempty"`
	Version       int             `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}

// ToStockResponse converts a domain Stock to StockResponse
func ToStockResponse(s *inventory.Stock) StockResponse {
	return StockResponse{
		ID:            s.ID,
		WarehouseID:   s.WarehouseID,
		WarehouseCode: s.WarehouseCode,
		BranchID:      s.BranchID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		ProductWeight: s.ProductWeight,
		Metal:         string(s.Metal),
		Quantity:      s.Quantity,
		CreatedBy:     s.CreatedBy,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		DeletedAt:     s.DeletedAt,
	}
}

// StockSummaryResponse is one warehouse line of the stock summary
type StockSummaryResponse struct {
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	WarehouseCode string          `json:"warehouse_code"`
	BranchName    string          `json:"branch_name"`
	TotalProducts int64           `json:"total_products"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalWeight   decimal.Decimal `json:"total_weight"`
}

// =============================================================================
// Transfer DTOs
// =============================================================================

// CreateTransferRequest opens a transfer between two warehouses
type CreateTransferRequest struct {
	ItemName        string    `json:"item_name" binding:"required,min=1,max=255"`
	FromWarehouseID uuid.UUID `json:"from_warehouse_id" binding:"required"`
	ToWarehouseID   uuid.UUID `json:"to_warehouse_id" binding:"required"`
	Quantity        int64     `json:"quantity"`
}

// TransferListFilter narrows transfer listings
type TransferListFilter struct {
	Status      string     `form:"status" binding:"omitempty,oneof=Pending Approved Rejected"`
	WarehouseID *uuid.UUID `form:"-"`
}

// TransferResponse represents a transfer in API responses
type TransferResponse struct {
	ID                uuid.UUID  `json:"id"`
	ItemName          string     `json:"item_name"`
	FromWarehouseID   uuid.UUID  `json:"from_warehouse_id"`
	FromWarehouseCode string     `json:"from_warehouse_code,omitempty"`
	ToWarehouseID     uuid.UUID  `json:"to_warehouse_id"`
	ToWarehouseCode   string     `json:"to_warehouse_code,omitempty"`
	Quantity          int64      `json:"quantity"`
	Status            string     `json:"status"`
	ActionBy          *uuid.UUID `json:"action_by,omitempty"`
	ActionDate        time.Time  `json:"action_date"`
	CreatedBy         *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ToTransferResponse converts a domain Transfer to TransferResponse
func ToTransferResponse(t *inventory.Transfer) TransferResponse {
	return TransferResponse{
		ID:                t.ID,
		ItemName:          t.ItemName,
		FromWarehouseID:   t.FromWarehouseID,
		FromWarehouseCode: t.FromWarehouseCode,
		ToWarehouseID:     t.ToWarehouseID,
		ToWarehouseCode:   t.ToWarehouseCode,
		Quantity:          t.Quantity,
		Status:            string(t.Status),
		ActionBy:          t.ActionBy,
		ActionDate:        t.ActionDate,
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
