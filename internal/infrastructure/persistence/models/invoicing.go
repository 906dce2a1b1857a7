package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/invoicing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for an invoice header. Gold and
// silver invoices share the table; the price columns not used by the metal
// stay NULL.
type InvoiceModel struct {
	AuditedModel
	Metal           catalog.Metal             `gorm:"type:varchar(10);not null;index"`
	WarehouseID     uuid.UUID                 `gorm:"type:uuid;not null;index"`
	SellerID        uuid.UUID                 `gorm:"type:uuid;not null;index"`
	BranchID        uuid.UUID                 `gorm:"type:uuid;not null;index"`
	CustomerID      uuid.UUID                 `gorm:"type:uuid;not null;index"`
	GoldPrice21     decimal.NullDecimal       `gorm:"column:gold_price_21;type:numeric(10,2)"`
	GoldPrice24     decimal.NullDecimal       `gorm:"column:gold_price_24;type:numeric(10,2)"`
	SilverPrice     decimal.NullDecimal       `gorm:"type:numeric(10,2)"`
	TransactionType invoicing.TransactionType `gorm:"type:varchar(10);not null;default:'Cash'"`
	InvoiceType     invoicing.InvoiceType     `gorm:"type:varchar(20);not null"`
	TotalPrice      decimal.Decimal           `gorm:"type:numeric(10,2);not null;default:0"`

	Items     []InvoiceItemModel `gorm:"foreignKey:InvoiceID"`
	Warehouse *WarehouseModel    `gorm:"foreignKey:WarehouseID"`
	Seller    *SellerModel       `gorm:"foreignKey:SellerID"`
	Branch    *BranchModel       `gorm:"foreignKey:BranchID"`
	Customer  *CustomerModel     `gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice. Items are
// included when they were loaded.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	inv := &invoicing.Invoice{
		AuditedAggregateRoot: m.ToAudited(),
		Metal:                m.Metal,
		WarehouseID:          m.WarehouseID,
		SellerID:             m.SellerID,
		BranchID:             m.BranchID,
		CustomerID:           m.CustomerID,
		Prices: invoicing.MetalPrices{
			GoldPrice21: fromNullDecimal(m.GoldPrice21),
			GoldPrice24: fromNullDecimal(m.GoldPrice24),
			SilverPrice: fromNullDecimal(m.SilverPrice),
		},
		TransactionType: m.TransactionType,
		InvoiceType:     m.InvoiceType,
		TotalPrice:      m.TotalPrice,
	}
	if m.Warehouse != nil {
		inv.WarehouseCode = m.Warehouse.Code
	}
	if m.Seller != nil {
		inv.SellerName = m.Seller.Name
	}
	if m.Branch != nil {
		inv.BranchName = m.Branch.Name
	}
	if m.Customer != nil {
		inv.CustomerName = m.Customer.Name
		inv.CustomerPhone = m.Customer.Phone
	}
	if m.Items != nil {
		inv.Items = make([]invoicing.Item, len(m.Items))
		for i := range m.Items {
			inv.Items[i] = m.Items[i].ToDomain()
		}
	}
	return inv
}

// FromDomain populates the header columns from a domain Invoice. Items are
// mapped separately with InvoiceItemModelFromDomain.
func (m *InvoiceModel) FromDomain(inv *invoicing.Invoice) {
	m.FromDomainAudited(inv.AuditedAggregateRoot)
	m.Metal = inv.Metal
	m.WarehouseID = inv.WarehouseID
	m.SellerID = inv.SellerID
	m.BranchID = inv.BranchID
	m.CustomerID = inv.CustomerID
	m.GoldPrice21 = toNullDecimal(inv.Prices.GoldPrice21)
	m.GoldPrice24 = toNullDecimal(inv.Prices.GoldPrice24)
	m.SilverPrice = toNullDecimal(inv.Prices.SilverPrice)
	m.TransactionType = inv.TransactionType
	m.InvoiceType = inv.InvoiceType
	m.TotalPrice = inv.TotalPrice
}

// InvoiceModelFromDomain creates a header model from a domain Invoice
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for an invoice line
type InvoiceItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position     int             `gorm:"not null;default:0"`
	ItemName     string          `gorm:"type:varchar(255);not null"`
	ItemWeight   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ItemCarat    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ItemStamp    decimal.Decimal `gorm:"column:item_stamp_enduser;type:numeric(10,2);not null"`
	ItemQuantity int64           `gorm:"type:bigint;not null"`
	ItemPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ItemTotal    decimal.Decimal `gorm:"column:item_total_price;type:numeric(10,2);not null"`
	VendorName   string          `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain Item
func (m *InvoiceItemModel) ToDomain() invoicing.Item {
	return invoicing.Item{
		ID:           m.ID,
		InvoiceID:    m.InvoiceID,
		Position:     m.Position,
		Name:         m.ItemName,
		Weight:       m.ItemWeight,
		Carat:        m.ItemCarat,
		StampEndUser: m.ItemStamp,
		Quantity:     m.ItemQuantity,
		Price:        m.ItemPrice,
		TotalPrice:   m.ItemTotal,
		VendorName:   m.VendorName,
	}
}

// InvoiceItemModelFromDomain creates a persistence model from a domain Item
func InvoiceItemModelFromDomain(it invoicing.Item, createdAt time.Time) InvoiceItemModel {
	return InvoiceItemModel{
		ID:           it.ID,
		InvoiceID:    it.InvoiceID,
		Position:     it.Position,
		ItemName:     it.Name,
		ItemWeight:   it.Weight,
		ItemCarat:    it.Carat,
		ItemStamp:    it.StampEndUser,
		ItemQuantity: it.Quantity,
		ItemPrice:    it.Price,
		ItemTotal:    it.TotalPrice,
		VendorName:   it.VendorName,
		CreatedAt:    createdAt,
	}
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
