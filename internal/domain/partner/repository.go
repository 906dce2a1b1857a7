package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	access.Lifecycle
	FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*Vendor, error)
	FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]Vendor, int64, error)
	Save(ctx context.Context, vendor *Vendor) error
}

// CustomerRepository defines the interface for customer persistence.
// Search matches name or phone.
type CustomerRepository interface {
	access.Lifecycle
	FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*Customer, error)
	FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]Customer, int64, error)
	Save(ctx context.Context, customer *Customer) error
}
