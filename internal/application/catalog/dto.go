package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductRequest creates or replaces a product. Metal is ignored on update.
type ProductRequest struct {
	Metal             string          `json:"metal" binding:"omitempty,oneof=gold silver"`
	VendorID          uuid.UUID       `json:"vendor_id" binding:"required"`
	Name              string          `json:"name" binding:"required,min=1,max=255"`
	Weight            decimal.Decimal `json:"weight"`
	Carat             decimal.Decimal `json:"carat"`
	StampEndUser      decimal.Decimal `json:"stamp_enduser"`
	Cashback          decimal.Decimal `json:"cashback"`
	CashbackUnpacking decimal.Decimal `json:"cashback_unpacking"`
}

func (r ProductRequest) spec() catalog.ProductSpec {
	return catalog.ProductSpec{
		Name:              r.Name,
		Weight:            r.Weight,
		Carat:             r.Carat,
		StampEndUser:      r.StampEndUser,
		Cashback:          r.Cashback,
		CashbackUnpacking: r.CashbackUnpacking,
	}
}

// ProductListFilter narrows product listings
type ProductListFilter struct {
	Metal    string     `form:"metal" binding:"omitempty,oneof=gold silver"`
	VendorID *uuid.UUID `form:"-"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	Metal             string          `json:"metal"`
	VendorID          uuid.UUID       `json:"vendor_id"`
	VendorName        string          `json:"vendor_name,omitempty"`
	Name              string          `json:"name"`
	Weight            decimal.Decimal `json:"weight"`
	Carat             decimal.Decimal `json:"carat"`
	StampEndUser      decimal.Decimal `json:"stamp_enduser"`
	Cashback          decimal.Decimal `json:"cashback"`
	CashbackUnpacking decimal.Decimal `json:"cashback_unpacking"`
	CreatedBy         *uuid.UUID      `json:"created_by,omitempty"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		Metal:             string(p.Metal),
		VendorID:          p.VendorID,
		VendorName:        p.VendorName,
		Name:              p.Name,
		Weight:            p.Weight,
		Carat:             p.Carat,
		StampEndUser:      p.StampEndUser,
		Cashback:          p.Cashback,
		CashbackUnpacking: p.CashbackUnpacking,
		CreatedBy:         p.CreatedBy,
		Version:           p.Version,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		DeletedAt:         p.DeletedAt,
	}
}
