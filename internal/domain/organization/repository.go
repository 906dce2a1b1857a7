package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// BranchRepository defines the interface for branch persistence
type BranchRepository interface {
	access.Lifecycle

	// FindByID finds a branch visible within scope. Deleted rows are only
	// returned when includeDeleted is set.
	FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*Branch, error)

	// FindAll lists branches visible within scope
	FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]Branch, int64, error)

	// Save creates or updates a branch
	Save(ctx context.Context, branch *Branch) error
}

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	access.Lifecycle

	FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*Warehouse, error)

	// FindAll lists warehouses; Filters may carry "branch_id"
	FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]Warehouse, int64, error)

	// ExistsByCode checks code uniqueness across all rows, deleted included
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)

	Save(ctx context.Context, warehouse *Warehouse) error
}

// SellerRepository defines the interface for seller persistence
type SellerRepository interface {
	access.Lifecycle

	FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*Seller, error)

	// FindAll lists sellers; Filters may carry "branch_id"
	FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]Seller, int64, error)

	Save(ctx context.Context, seller *Seller) error
}
