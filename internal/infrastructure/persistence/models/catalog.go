package models

import (
	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for Product. Gold and silver share
// the table; Metal is the discriminator.
type ProductModel struct {
	AuditedModel
	SoftDeleteModel
	Metal             catalog.Metal   `gorm:"type:varchar(10);not null;index"`
	VendorID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(255);not null"`
	Weight            decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	Carat             decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	StampEndUser      decimal.Decimal `gorm:"column:stamp_enduser;type:numeric(10,2);not null;default:0"`
	Cashback          decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`
	CashbackUnpacking decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`

	Vendor *VendorModel `gorm:"foreignKey:VendorID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		AuditedAggregateRoot: m.ToAudited(),
		SoftDelete:           m.ToSoftDelete(),
		ProductSpec: catalog.ProductSpec{
			Name:              m.Name,
			Weight:            m.Weight,
			Carat:             m.Carat,
			StampEndUser:      m.StampEndUser,
			Cashback:          m.Cashback,
			CashbackUnpacking: m.CashbackUnpacking,
		},
		Metal:    m.Metal,
		VendorID: m.VendorID,
	}
	if m.Vendor != nil {
		p.VendorName = m.Vendor.Name
	}
	return p
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAudited(p.AuditedAggregateRoot)
	m.FromSoftDelete(p.SoftDelete)
	m.Metal = p.Metal
	m.VendorID = p.VendorID
	m.Name = p.Name
	m.Weight = p.Weight
	m.Carat = p.Carat
	m.StampEndUser = p.StampEndUser
	m.Cashback = p.Cashback
	m.CashbackUnpacking = p.CashbackUnpacking
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
