package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// Vendor supplies products to the catalog
type Vendor struct {
	shared.AuditedAggregateRoot
	shared.SoftDelete
	Name string
}

// NewVendor creates a vendor
func NewVendor(name string, createdBy uuid.UUID) (*Vendor, error) {
	name = strings.TrimSpace(name)
	if err := shared.ValidateName("Vendor name", name, 255); err != nil {
		return nil, err
	}
	return &Vendor{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
	}, nil
}

// Rename changes the vendor name
func (v *Vendor) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := shared.ValidateName("Vendor name", name, 255); err != nil {
		return err
	}
	v.Name = name
	v.Revise()
	return nil
}
