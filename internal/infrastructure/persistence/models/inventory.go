package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/inventory"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// StockModel is the persistence model for a warehouse stock row
type StockModel struct {
	AuditedModel
	SoftDeleteModel
	WarehouseID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_pair,priority:1"`
	ProductID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_pair,priority:2"`
	Metal       catalog.Metal `gorm:"type:varchar(10);not null;uniqueIndex:idx_warehouse_stock_pair,priority:3"`
	Quantity    int64         `gorm:"type:bigint;not null;default:0"`

	Warehouse *WarehouseModel `gorm:"foreignKey:WarehouseID"`
	Product   *ProductModel   `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (StockModel) TableName() string {
	return "warehouse_stock"
}

// ToDomain converts the persistence model to a domain Stock
func (m *StockModel) ToDomain() *inventory.Stock {
	s := &inventory.Stock{
		AuditedAggregateRoot: m.ToAudited(),
		SoftDelete:           m.ToSoftDelete(),
		WarehouseID:          m.WarehouseID,
		ProductID:            m.ProductID,
		Metal:                m.Metal,
		Quantity:             m.Quantity,
	}
	if m.Warehouse != nil {
		s.WarehouseCode = m.Warehouse.Code
		s.BranchID = m.Warehouse.BranchID
	}
	if m.Product != nil {
		s.ProductName = m.Product.Name
		s.ProductWeight = m.Product.Weight
	}
	return s
}

// FromDomain populates the persistence model from a domain Stock
func (m *StockModel) FromDomain(s *inventory.Stock) {
	m.FromDomainAudited(s.AuditedAggregateRoot)
	m.FromSoftDelete(s.SoftDelete)
	m.WarehouseID = s.WarehouseID
	m.ProductID = s.ProductID
	m.Metal = s.Metal
	m.Quantity = s.Quantity
}

// StockModelFromDomain creates a persistence model from a domain Stock
func StockModelFromDomain(s *inventory.Stock) *StockModel {
	m := &StockModel{}
	m.FromDomain(s)
	return m
}

// TransferModel is the persistence model for a warehouse transfer
type TransferModel struct {
	BaseModel
	ItemName        string                   `gorm:"type:varchar(255);not null"`
	FromWarehouseID uuid.UUID                `gorm:"type:uuid;not null;index"`
	ToWarehouseID   uuid.UUID                `gorm:"type:uuid;not null;index"`
	Quantity        int64                    `gorm:"type:bigint;not null"`
	Status          inventory.TransferStatus `gorm:"type:varchar(20);not null;default:'Pending';index"`
	ActionBy        *uuid.UUID               `gorm:"type:uuid"`
	ActionDate      time.Time                `gorm:"not null"`
	CreatedBy       *uuid.UUID               `gorm:"type:uuid;index"`

	FromWarehouse *WarehouseModel `gorm:"foreignKey:FromWarehouseID"`
	ToWarehouse   *WarehouseModel `gorm:"foreignKey:ToWarehouseID"`
}

// TableName returns the table name for GORM
func (TransferModel) TableName() string {
	return "warehouse_transfers"
}

// ToDomain converts the persistence model to a domain Transfer
func (m *TransferModel) ToDomain() *inventory.Transfer {
	t := &inventory.Transfer{
		BaseEntity:      shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ItemName:        m.ItemName,
		FromWarehouseID: m.FromWarehouseID,
		ToWarehouseID:   m.ToWarehouseID,
		Quantity:        m.Quantity,
		Status:          m.Status,
		ActionBy:        m.ActionBy,
		ActionDate:      m.ActionDate,
		CreatedBy:       m.CreatedBy,
	}
	if m.FromWarehouse != nil {
		t.FromWarehouseCode = m.FromWarehouse.Code
		t.FromBranchID = m.FromWarehouse.BranchID
	}
	if m.ToWarehouse != nil {
		t.ToWarehouseCode = m.ToWarehouse.Code
		t.ToBranchID = m.ToWarehouse.BranchID
	}
	return t
}

// FromDomain populates the persistence model from a domain Transfer
func (m *TransferModel) FromDomain(t *inventory.Transfer) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.ItemName = t.ItemName
	m.FromWarehouseID = t.FromWarehouseID
	m.ToWarehouseID = t.ToWarehouseID
	m.Quantity = t.Quantity
	m.Status = t.Status
	m.ActionBy = t.ActionBy
	m.ActionDate = t.ActionDate
	m.CreatedBy = t.CreatedBy
}

// TransferModelFromDomain creates a persistence model from a domain Transfer
func TransferModelFromDomain(t *inventory.Transfer) *TransferModel {
	m := &TransferModel{}
	m.FromDomain(t)
	return m
}
