// Package models holds the GORM rows behind the domain records. Each model
// converts with ToDomain and FromDomain. Display names (branch, warehouse
// code, vendor) come from preloaded belongs-to associations and are never
// written back.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel extends BaseModel with the version counter
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// ToAggregateRoot converts AggregateModel to domain BaseAggregateRoot
func (m *AggregateModel) ToAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.BaseModel.ToDomain(), Version: m.Version}
}

// AuditedModel records who created the row. The reference is nullable and
// is cleared when the user is hard deleted.
type AuditedModel struct {
	AggregateModel
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// FromDomainAudited populates AuditedModel from domain AuditedAggregateRoot
func (m *AuditedModel) FromDomainAudited(a shared.AuditedAggregateRoot) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.CreatedBy = a.CreatedBy
}

// ToAudited converts AuditedModel to domain AuditedAggregateRoot
func (m *AuditedModel) ToAudited() shared.AuditedAggregateRoot {
	return shared.AuditedAggregateRoot{BaseAggregateRoot: m.ToAggregateRoot(), CreatedBy: m.CreatedBy}
}

// SoftDeleteModel carries the nullable deletion timestamp. GORM excludes
// rows with a timestamp from default queries; Unscoped includes them.
type SoftDeleteModel struct {
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// ToSoftDelete converts the column to the domain representation
func (m SoftDeleteModel) ToSoftDelete() shared.SoftDelete {
	if !m.DeletedAt.Valid {
		return shared.SoftDelete{}
	}
	t := m.DeletedAt.Time
	return shared.SoftDelete{DeletedAt: &t}
}

// FromSoftDelete populates the column from the domain representation
func (m *SoftDeleteModel) FromSoftDelete(s shared.SoftDelete) {
	if s.DeletedAt == nil {
		m.DeletedAt = gorm.DeletedAt{}
		return
	}
	m.DeletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
}
