package models

import (
	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/organization"
	"github.com/shopspring/decimal"
)

// BranchModel is the persistence model for Branch
type BranchModel struct {
	AuditedModel
	SoftDeleteModel
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch
func (m *BranchModel) ToDomain() *organization.Branch {
	return &organization.Branch{
		AuditedAggregateRoot: m.ToAudited(),
		SoftDelete:           m.ToSoftDelete(),
		Name:                 m.Name,
	}
}

// FromDomain populates the persistence model from a domain Branch
func (m *BranchModel) FromDomain(b *organization.Branch) {
	m.FromDomainAudited(b.AuditedAggregateRoot)
	m.FromSoftDelete(b.SoftDelete)
	m.Name = b.Name
}

// BranchModelFromDomain creates a persistence model from a domain Branch
func BranchModelFromDomain(b *organization.Branch) *BranchModel {
	m := &BranchModel{}
	m.FromDomain(b)
	return m
}

// WarehouseModel is the persistence model for Warehouse
type WarehouseModel struct {
	AuditedModel
	SoftDeleteModel
	Code     string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_warehouses_code"`
	BranchID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cash     decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`

	Branch *BranchModel `gorm:"foreignKey:BranchID"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse
func (m *WarehouseModel) ToDomain() *organization.Warehouse {
	w := &organization.Warehouse{
		AuditedAggregateRoot: m.ToAudited(),
		SoftDelete:           m.ToSoftDelete(),
		Code:                 m.Code,
		BranchID:             m.BranchID,
		Cash:                 m.Cash,
	}
	if m.Branch != nil {
		w.BranchName = m.Branch.Name
	}
	return w
}

// FromDomain populates the persistence model from a domain Warehouse
func (m *WarehouseModel) FromDomain(w *organization.Warehouse) {
	m.FromDomainAudited(w.AuditedAggregateRoot)
	m.FromSoftDelete(w.SoftDelete)
	m.Code = w.Code
	m.BranchID = w.BranchID
	m.Cash = w.Cash
}

// WarehouseModelFromDomain creates a persistence model from a domain Warehouse
func WarehouseModelFromDomain(w *organization.Warehouse) *WarehouseModel {
	m := &WarehouseModel{}
	m.FromDomain(w)
	return m
}

// SellerModel is the persistence model for Seller
type SellerModel struct {
	AuditedModel
	SoftDeleteModel
	Name     string    `gorm:"type:varchar(255);not null"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`

	Branch *BranchModel `gorm:"foreignKey:BranchID"`
}

// TableName returns the table name for GORM
func (SellerModel) TableName() string {
	return "sellers"
}

// ToDomain converts the persistence model to a domain Seller
func (m *SellerModel) ToDomain() *organization.Seller {
	s := &organization.Seller{
		AuditedAggregateRoot: m.ToAudited(),
		SoftDelete:           m.ToSoftDelete(),
		Name:                 m.Name,
		BranchID:             m.BranchID,
	}
	if m.Branch != nil {
		s.BranchName = m.Branch.Name
	}
	return s
}

// FromDomain populates the persistence model from a domain Seller
func (m *SellerModel) FromDomain(s *organization.Seller) {
	m.FromDomainAudited(s.AuditedAggregateRoot)
	m.FromSoftDelete(s.SoftDelete)
	m.Name = s.Name
	m.BranchID = s.BranchID
}

// SellerModelFromDomain creates a persistence model from a domain Seller
func SellerModelFromDomain(s *organization.Seller) *SellerModel {
	m := &SellerModel{}
	m.FromDomain(s)
	return m
}
