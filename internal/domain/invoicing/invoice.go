package invoicing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionType is how an invoice was paid
type TransactionType string

const (
	TransactionCash TransactionType = "Cash"
	TransactionVisa TransactionType = "Visa"
)

// IsValid reports whether t is a known payment method
func (t TransactionType) IsValid() bool {
	return t == TransactionCash || t == TransactionVisa
}

// InvoiceType distinguishes sales from returns
type InvoiceType string

const (
	InvoiceSale            InvoiceType = "Sale"
	InvoiceReturnPacking   InvoiceType = "Return Packing"
	InvoiceReturnUnpacking InvoiceType = "Return Unpacking"
)

// IsValid reports whether t is a known invoice type
func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceSale, InvoiceReturnPacking, InvoiceReturnUnpacking:
		return true
	}
	return false
}

// MetalPrices are the reference prices in effect at sale time. Gold invoices
// carry the 21k and 24k prices, silver invoices the silver price.
type MetalPrices struct {
	GoldPrice21 *decimal.Decimal
	GoldPrice24 *decimal.Decimal
	SilverPrice *decimal.Decimal
}

func (p MetalPrices) validate(metal catalog.Metal) error {
	check := func(field string, d *decimal.Decimal) error {
		if d == nil {
			return shared.NewValidationError("MISSING_METAL_PRICE", field+" is required for "+string(metal)+" invoices")
		}
		return shared.ValidateAmount(field, *d, false)
	}
	switch metal {
	case catalog.MetalGold:
		if err := check("Gold price 21", p.GoldPrice21); err != nil {
			return err
		}
		return check("Gold price 24", p.GoldPrice24)
	case catalog.MetalSilver:
		return check("Silver price", p.SilverPrice)
	default:
		return shared.NewValidationError("INVALID_METAL", "Unknown metal")
	}
}

// forMetal drops prices that do not belong to metal
func (p MetalPrices) forMetal(metal catalog.Metal) MetalPrices {
	if metal == catalog.MetalGold {
		return MetalPrices{GoldPrice21: p.GoldPrice21, GoldPrice24: p.GoldPrice24}
	}
	return MetalPrices{SilverPrice: p.SilverPrice}
}

// Header holds the caller-supplied invoice fields
type Header struct {
	WarehouseID     uuid.UUID
	SellerID        uuid.UUID
	BranchID        uuid.UUID
	CustomerID      uuid.UUID
	Prices          MetalPrices
	TransactionType TransactionType
	InvoiceType     InvoiceType
}

// Invoice is a permanent sale or return record. It is never deleted and its
// total always equals the sum of its item totals.
type Invoice struct {
	shared.AuditedAggregateRoot
	Metal           catalog.Metal
	WarehouseID     uuid.UUID
	SellerID        uuid.UUID
	BranchID        uuid.UUID
	CustomerID      uuid.UUID
	Prices          MetalPrices
	TransactionType TransactionType
	InvoiceType     InvoiceType
	TotalPrice      decimal.Decimal
	Items           []Item

	// Read-side projections
	WarehouseCode string
	SellerName    string
	BranchName    string
	CustomerName  string
	CustomerPhone string
}

// NewInvoice validates the header and items and assembles an invoice whose
// total is the exact sum of the item totals. Nothing is persisted.
func NewInvoice(metal catalog.Metal, h Header, items []ItemInput, createdBy uuid.UUID) (*Invoice, error) {
	if !metal.IsValid() {
		return nil, shared.NewValidationError("INVALID_METAL", "Unknown metal")
	}
	if h.TransactionType == "" {
		h.TransactionType = TransactionCash
	}
	if !h.TransactionType.IsValid() {
		return nil, shared.NewValidationError("INVALID_TRANSACTION_TYPE", "Transaction type must be Cash or Visa")
	}
	if !h.InvoiceType.IsValid() {
		return nil, shared.NewValidationError("INVALID_INVOICE_TYPE", "Invoice type must be Sale, Return Packing or Return Unpacking")
	}
	for field, id := range map[string]uuid.UUID{
		"warehouse": h.WarehouseID, "seller": h.SellerID, "branch": h.BranchID, "customer": h.CustomerID,
	} {
		if id == uuid.Nil {
			return nil, shared.NewValidationError("INVALID_"+strings.ToUpper(field), "A "+field+" is required")
		}
	}
	if err := h.Prices.validate(metal); err != nil {
		return nil, err
	}

	inv := &Invoice{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Metal:                metal,
		WarehouseID:          h.WarehouseID,
		SellerID:             h.SellerID,
		BranchID:             h.BranchID,
		CustomerID:           h.CustomerID,
		Prices:               h.Prices.forMetal(metal),
		TransactionType:      h.TransactionType,
		InvoiceType:          h.InvoiceType,
		Items:                make([]Item, 0, len(items)),
	}
	for i, in := range items {
		item, err := newItem(inv.ID, i, in)
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, *item)
	}
	inv.TotalPrice = ComputeTotal(inv.Items)
	if err := shared.ValidateAmount("Total price", inv.TotalPrice, false); err != nil {
		return nil, err
	}
	return inv, nil
}

// ComputeTotal sums item totals exactly. An empty list totals zero.
func ComputeTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}
