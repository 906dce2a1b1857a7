package models

import (
	"github.com/jewelry-erp/backend/internal/domain/partner"
)

// VendorModel is the persistence model for Vendor
type VendorModel struct {
	AuditedModel
	SoftDeleteModel
	Name string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor
func (m *VendorModel) ToDomain() *partner.Vendor {
	return &partner.Vendor{
		AuditedAggregateRoot: m.ToAudited(),
		SoftDelete:           m.ToSoftDelete(),
		Name:                 m.Name,
	}
}

// FromDomain populates the persistence model from a domain Vendor
func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.FromDomainAudited(v.AuditedAggregateRoot)
	m.FromSoftDelete(v.SoftDelete)
	m.Name = v.Name
}

// VendorModelFromDomain creates a persistence model from a domain Vendor
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}

// CustomerModel is the persistence model for Customer
type CustomerModel struct {
	AuditedModel
	SoftDeleteModel
	Name  string `gorm:"type:varchar(255);not null"`
	Phone string `gorm:"type:varchar(32);not null;index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		AuditedAggregateRoot: m.ToAudited(),
		SoftDelete:           m.ToSoftDelete(),
		Name:                 m.Name,
		Phone:                m.Phone,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAudited(c.AuditedAggregateRoot)
	m.FromSoftDelete(c.SoftDelete)
	m.Name = c.Name
	m.Phone = c.Phone
}

// CustomerModelFromDomain creates a persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
