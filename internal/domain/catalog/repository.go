package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence.
// Filters may carry "metal" and "vendor_id"; Search matches the name.
type ProductRepository interface {
	access.Lifecycle
	FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*Product, error)
	FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]Product, int64, error)
	Save(ctx context.Context, product *Product) error
}
