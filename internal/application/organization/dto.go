package organization

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/organization"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Branch DTOs
// =============================================================================

// BranchRequest creates or renames a branch
type BranchRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	Version   int        `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ToBranchResponse converts a domain Branch to BranchResponse
func ToBranchResponse(b *organization.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedBy: b.CreatedBy,
		Version:   b.Version,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		DeletedAt: b.DeletedAt,
	}
}

// =============================================================================
// Warehouse DTOs
// =============================================================================

// WarehouseRequest creates or replaces a warehouse
type WarehouseRequest struct {
	Code     string          `json:"code" binding:"required,min=1,max=255"`
	BranchID uuid.UUID       `json:"branch_id" binding:"required"`
	Cash     decimal.Decimal `json:"cash"`
}

// WarehouseListFilter narrows warehouse listings
type WarehouseListFilter struct {
	BranchID *uuid.UUID `form:"-"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID         uuid.UUID       `json:"id"`
	Code       string          `json:"code"`
	BranchID   uuid.UUID       `json:"branch_id"`
	BranchName string          `json:"branch_name,omitempty"`
	Cash       decimal.Decimal `json:"cash"`
	CreatedBy  *uuid.UUID      `json:"created_by,omitempty"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  *time.Time      `json:"deleted_at,omitempty"`
}

// ToWarehouseResponse converts a domain Warehouse to WarehouseResponse
func ToWarehouseResponse(w *organization.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:         w.ID,
		Code:       w.Code,
		BranchID:   w.BranchID,
		BranchName: w.BranchName,
		Cash:       w.Cash,
		CreatedBy:  w.CreatedBy,
		Version:    w.Version,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
		DeletedAt:  w.DeletedAt,
	}
}

// =============================================================================
// Seller DTOs
// =============================================================================

// SellerRequest creates or replaces a seller
type SellerRequest struct {
	Name     string    `json:"name" binding:"required,min=1,max=255"`
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
}

// SellerListFilter narrows seller listings
type SellerListFilter struct {
	BranchID *uuid.UUID `form:"-"`
}

// SellerResponse represents a seller in API responses
type SellerResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	BranchID   uuid.UUID  `json:"branch_id"`
	BranchName string     `json:"branch_name,omitempty"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// ToSellerResponse converts a domain Seller to SellerResponse
func ToSellerResponse(s *organization.Seller) SellerResponse {
	return SellerResponse{
		ID:         s.ID,
		Name:       s.Name,
		BranchID:   s.BranchID,
		BranchName: s.BranchName,
		CreatedBy:  s.CreatedBy,
		Version:    s.Version,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		DeletedAt:  s.DeletedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
