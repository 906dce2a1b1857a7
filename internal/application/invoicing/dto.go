package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/invoicing"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Invoice DTOs
// =============================================================================

// InvoiceItemRequest is one line of an invoice
type InvoiceItemRequest struct {
	Name         string          `json:"item_name" binding:"required,max=255"`
	Weight       decimal.Decimal `json:"item_weight"`
	Carat        decimal.Decimal `json:"item_carat"`
	StampEndUser decimal.Decimal `json:"item_stamp_enduser"`
	Quantity     int64           `json:"item_quantity"`
	Price        decimal.Decimal `json:"item_price"`
	TotalPrice   decimal.Decimal `json:"item_total_price"`
	VendorName   string          `json:"vendor_name" binding:"max=255"`
}

// CreateInvoiceRequest is the header and items of a new invoice
type CreateInvoiceRequest struct {
	Metal           string               `json:"metal" binding:"required,oneof=gold silver"`
	WarehouseID     uuid.UUID            `json:"warehouse_id" binding:"required"`
	SellerID        uuid.UUID            `json:"seller_id" binding:"required"`
	BranchID        uuid.UUID            `json:"branch_id" binding:"required"`
	CustomerID      uuid.UUID            `json:"customer_id" binding:"required"`
	GoldPrice21     *decimal.Decimal     `json:"gold_price_21"`
	GoldPrice24     *decimal.Decimal     `json:"gold_price_24"`
	SilverPrice     *decimal.Decimal     `json:"silver_price"`
	TransactionType string               `json:"transaction_type" binding:"omitempty,oneof=Cash Visa"`
	InvoiceType     string               `json:"invoice_type" binding:"required"`
	Items           []InvoiceItemRequest `json:"items" binding:"dive"`
}

func (r CreateInvoiceRequest) header() invoicing.Header {
	return invoicing.Header{
		WarehouseID: r.WarehouseID,
		SellerID:    r.SellerID,
		BranchID:    r.BranchID,
		CustomerID:  r.CustomerID,
		Prices: invoicing.MetalPrices{
			GoldPrice21: r.GoldPrice21,
			GoldPrice24: r.GoldPrice24,
			SilverPrice: r.SilverPrice,
		},
		TransactionType: invoicing.TransactionType(r.TransactionType),
		InvoiceType:     invoicing.InvoiceType(r.InvoiceType),
	}
}

func (r CreateInvoiceRequest) items() []invoicing.ItemInput {
	out := make([]invoicing.ItemInput, len(r.Items))
	for i, it := range r.Items {
		out[i] = invoicing.ItemInput{
			Name:         it.Name,
			Weight:       it.Weight,
			Carat:        it.Carat,
			StampEndUser: it.StampEndUser,
			Quantity:     it.Quantity,
			Price:        it.Price,
			TotalPrice:   it.TotalPrice,
			VendorName:   it.VendorName,
		}
	}
	return out
}

// InvoiceListFilter narrows invoice listings
type InvoiceListFilter struct {
	Metal           string     `form:"metal" binding:"omitempty,oneof=gold silver"`
	InvoiceType     string     `form:"invoice_type"`
	TransactionType string     `form:"transaction_type" binding:"omitempty,oneof=Cash Visa"`
	BranchID        *uuid.UUID `form:"-"`
	SellerID        *uuid.UUID `form:"-"`
	WarehouseID     *uuid.UUID `form:"-"`
	From            *time.Time `form:"from" time_format:"2006-01-02"`
	To              *time.Time `form:"to" time_format:"2006-01-02"`
}

// InvoiceItemResponse represents an invoice line in API responses
type InvoiceItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	Position     int             `json:"position"`
	Name         string          `json:"item_name"`
	Weight       decimal.Decimal `json:"item_weight"`
	Carat        decimal.Decimal `json:"item_carat"`
	StampEndUser decimal.Decimal `json:"item_stamp_enduser"`
	Quantity     int64           `json:"item_quantity"`
	Price        decimal.Decimal `json:"item_price"`
	TotalPrice   decimal.Decimal `json:"item_total_price"`
	VendorName   string          `json:"vendor_name"`
}

// InvoiceResponse represents an invoice in API responses. Items are only
// present when the invoice was loaded individually.
type InvoiceResponse struct {
	ID              uuid.UUID             `json:"id"`
	Metal           string                `json:"metal"`
	WarehouseID     uuid.UUID             `json:"warehouse_id"`
	WarehouseCode   string                `json:"warehouse_code,omitempty"`
	SellerID        uuid.UUID             `json:"seller_id"`
	SellerName      string                `json:"seller_name,omitempty"`
	BranchID        uuid.UUID             `json:"branch_id"`
	BranchName      string                `json:"branch_name,omitempty"`
	CustomerID      uuid.UUID             `json:"customer_id"`
	CustomerName    string                `json:"customer_name,omitempty"`
	CustomerPhone   string                `json:"customer_phone,omitempty"`
	GoldPrice21     *decimal.Decimal      `json:"gold_price_21,omitempty"`
	GoldPrice24     *decimal.Decimal      `json:"gold_price_24,omitempty"`
	SilverPrice     *decimal.Decimal      `json:"silver_price,omitempty"`
	TransactionType string                `json:"transaction_type"`
	InvoiceType     string                `json:"invoice_type"`
	TotalPrice      decimal.Decimal       `json:"total_price"`
	Items           []InvoiceItemResponse `json:"items,omitempty"`
	CreatedBy       *uuid.UUID            `json:"created_by,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToInvoiceItemResponse converts a domain Item
func ToInvoiceItemResponse(it invoicing.Item) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:           it.ID,
		Position:     it.Position,
		Name:         it.Name,
		Weight:       it.Weight,
		Carat:        it.Carat,
		StampEndUser: it.StampEndUser,
		Quantity:     it.Quantity,
		Price:        it.Price,
		TotalPrice:   it.TotalPrice,
		VendorName:   it.VendorName,
	}
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *invoicing.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:              inv.ID,
		Metal:           string(inv.Metal),
		WarehouseID:     inv.WarehouseID,
		WarehouseCode:   inv.WarehouseCode,
		SellerID:        inv.SellerID,
		SellerName:      inv.SellerName,
		BranchID:        inv.BranchID,
		BranchName:      inv.BranchName,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		CustomerPhone:   inv.CustomerPhone,
		GoldPrice21:     inv.Prices.GoldPrice21,
		GoldPrice24:     inv.Prices.GoldPrice24,
		SilverPrice:     inv.Prices.SilverPrice,
		TransactionType: string(inv.TransactionType),
		InvoiceType:     string(inv.InvoiceType),
		TotalPrice:      inv.TotalPrice,
		CreatedBy:       inv.CreatedBy,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
	if len(inv.Items) > 0 {
		resp.Items = make([]InvoiceItemResponse, len(inv.Items))
		for i, it := range inv.Items {
			resp.Items[i] = ToInvoiceItemResponse(it)
		}
	}
	return resp
}

// =============================================================================
// Report DTOs
// =============================================================================

// SummaryQuery bounds the invoice summary
type SummaryQuery struct {
	Metal string     `form:"metal" binding:"omitempty,oneof=gold silver"`
	Start *time.Time `form:"start_date" time_format:"2006-01-02"`
	End   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// SummaryResponse is one (invoice type, payment method) group
type SummaryResponse struct {
	InvoiceType     string          `json:"invoice_type"`
	TransactionType string          `json:"transaction_type"`
	Count           int64           `json:"count"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// DailySalesResponse is the sales total of one day
type DailySalesResponse struct {
	Date        string          `json:"date"`
	GoldSales   decimal.Decimal `json:"gold_sales"`
	SilverSales decimal.Decimal `json:"silver_sales"`
	TotalSales  decimal.Decimal `json:"total_sales"`
}
