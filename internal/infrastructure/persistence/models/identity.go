package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/identity"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// UserModel is the persistence model for User
type UserModel struct {
	AggregateModel
	SoftDeleteModel
	Username     string      `gorm:"type:varchar(150);not null;uniqueIndex:idx_users_username"`
	Email        string      `gorm:"type:varchar(254);not null;uniqueIndex:idx_users_email"`
	PasswordHash string      `gorm:"type:varchar(255);not null"`
	Role         shared.Role `gorm:"type:varchar(20);not null"`
	BranchID     *uuid.UUID  `gorm:"type:uuid;index"`
	IsActive     bool        `gorm:"not null;default:true"`
	LastLoginAt  *time.Time

	Branch *BranchModel `gorm:"foreignKey:BranchID"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		BaseAggregateRoot: m.ToAggregateRoot(),
		SoftDelete:        m.ToSoftDelete(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		BranchID:          m.BranchID,
		IsActive:          m.IsActive,
		LastLoginAt:       m.LastLoginAt,
	}
	if m.Branch != nil {
		u.BranchName = m.Branch.Name
	}
	return u
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.FromSoftDelete(u.SoftDelete)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.BranchID = u.BranchID
	m.IsActive = u.IsActive
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// All returns every model in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&BranchModel{}, &WarehouseModel{}, &SellerModel{}, &VendorModel{}, &CustomerModel{},
		&ProductModel{}, &StockModel{}, &TransferModel{}, &InvoiceModel{}, &InvoiceItemModel{},
		&UserModel{},
	}
}
