package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and timestamps. Warehouse transfers embed it
// directly since they are never edited after resolution.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// BaseAggregateRoot adds a version that repositories bump on every save.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// Revise records a mutation: it refreshes UpdatedAt and bumps Version.
func (a *BaseAggregateRoot) Revise() {
	a.UpdatedAt = time.Now()
	a.Version++
}

// AuditedAggregateRoot remembers who created the record. CreatedBy is nil
// once that user has been hard deleted.
type AuditedAggregateRoot struct {
	BaseAggregateRoot
	CreatedBy *uuid.UUID
}

func NewAuditedAggregateRoot(createdBy uuid.UUID) AuditedAggregateRoot {
	root := AuditedAggregateRoot{BaseAggregateRoot: NewBaseAggregateRoot()}
	if createdBy != uuid.Nil {
		root.CreatedBy = &createdBy
	}
	return root
}
