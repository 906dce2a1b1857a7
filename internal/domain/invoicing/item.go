package invoicing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemInput is one caller-supplied invoice line
type ItemInput struct {
	Name         string
	Weight       decimal.Decimal
	Carat        decimal.Decimal
	StampEndUser decimal.Decimal
	Quantity     int64
	Price        decimal.Decimal
	TotalPrice   decimal.Decimal
	VendorName   string
}

// Item is an invoice line. VendorName is a snapshot taken at sale time and
// does not follow later vendor edits. TotalPrice is taken as given.
type Item struct {
	ID           uuid.UUID
	InvoiceID    uuid.UUID
	Position     int
	Name         string
	Weight       decimal.Decimal
	Carat        decimal.Decimal
	StampEndUser decimal.Decimal
	Quantity     int64
	Price        decimal.Decimal
	TotalPrice   decimal.Decimal
	VendorName   string
}

func newItem(invoiceID uuid.UUID, position int, in ItemInput) (*Item, error) {
	name := strings.TrimSpace(in.Name)
	if err := shared.ValidateName("Item name", name, 255); err != nil {
		return nil, itemError(position, err)
	}
	if in.Quantity <= 0 {
		return nil, itemError(position, shared.NewValidationError("INVALID_QUANTITY", "Item quantity must be positive"))
	}
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"Item weight", in.Weight},
		{"Item carat", in.Carat},
		{"Item stamp", in.StampEndUser},
		{"Item price", in.Price},
		{"Item total price", in.TotalPrice},
	}
	for _, a := range amounts {
		if err := shared.ValidateAmount(a.field, a.value, false); err != nil {
			return nil, itemError(position, err)
		}
	}
	return &Item{
		ID:           uuid.New(),
		InvoiceID:    invoiceID,
		Position:     position,
		Name:         name,
		Weight:       in.Weight,
		Carat:        in.Carat,
		StampEndUser: in.StampEndUser,
		Quantity:     in.Quantity,
		Price:        in.Price,
		TotalPrice:   in.TotalPrice,
		VendorName:   strings.TrimSpace(in.VendorName),
	}, nil
}

func itemError(position int, err error) error {
	de, ok := err.(*shared.DomainError)
	if !ok {
		return err
	}
	return shared.NewDomainError(de.Kind, de.Code, fmt.Sprintf("item %d: %s", position+1, de.Message))
}
