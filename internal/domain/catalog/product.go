package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductSpec holds the editable attributes of a product
type ProductSpec struct {
	Name              string
	Weight            decimal.Decimal
	Carat             decimal.Decimal
	StampEndUser      decimal.Decimal
	Cashback          decimal.Decimal
	CashbackUnpacking decimal.Decimal
}

func (s ProductSpec) validate() error {
	if err := shared.ValidateName("Product name", strings.TrimSpace(s.Name), 255); err != nil {
		return err
	}
	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"Weight", s.Weight},
		{"Carat", s.Carat},
		{"Stamp end-user", s.StampEndUser},
		{"Cashback", s.Cashback},
		{"Cashback unpacking", s.CashbackUnpacking},
	}
	for _, a := range amounts {
		if err := shared.ValidateAmount(a.field, a.value, false); err != nil {
			return err
		}
	}
	return nil
}

// Product is a gold or silver catalog item supplied by a vendor
type Product struct {
	shared.AuditedAggregateRoot
	shared.SoftDelete
	ProductSpec
	Metal    Metal
	VendorID uuid.UUID

	VendorName string
}

// NewProduct creates a product of metal supplied by vendorID
func NewProduct(metal Metal, vendorID uuid.UUID, spec ProductSpec, createdBy uuid.UUID) (*Product, error) {
	if !metal.IsValid() {
		return nil, shared.NewValidationError("INVALID_METAL", "Unknown metal")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	spec.Name = strings.TrimSpace(spec.Name)
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &Product{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		ProductSpec:          spec,
		Metal:                metal,
		VendorID:             vendorID,
	}, nil
}

// Update replaces the editable attributes and vendor. The metal is fixed
// because stock rows reference the product together with its metal.
func (p *Product) Update(vendorID uuid.UUID, spec ProductSpec) error {
	if vendorID == uuid.Nil {
		return shared.NewValidationError("INVALID_VENDOR", "Vendor ID cannot be empty")
	}
	spec.Name = strings.TrimSpace(spec.Name)
	if err := spec.validate(); err != nil {
		return err
	}
	p.ProductSpec = spec
	p.VendorID = vendorID
	p.Revise()
	return nil
}
