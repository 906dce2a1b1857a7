package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// StockRepository defines the interface for stock persistence.
// Scope is applied through the stock row's warehouse.
type StockRepository interface {
	access.Lifecycle

	// FindByID finds a stock row visible within scope
	FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*Stock, error)

	// FindAll lists stock rows. Filters may carry "warehouse_id", "product_id" and "metal".
	FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]Stock, int64, error)

	// FindByPair finds the row of (warehouse, product, metal), deleted rows included
	FindByPair(ctx context.Context, warehouseID, productID uuid.UUID, metal catalog.Metal) (*Stock, error)

	// Create inserts a new row; a duplicate pair yields Conflict
	Create(ctx context.Context, stock *Stock) error

	// Save updates quantity and deletion state of an existing row
	Save(ctx context.Context, stock *Stock) error

	// AdjustQuantity atomically adds delta to the counter of a visible,
	// active row. It fails with insufficient stock, leaving the counter
	// unchanged, when the result would be negative.
	AdjustQuantity(ctx context.Context, scope access.Scope, id uuid.UUID, delta int64) (*Stock, error)

	// SetQuantity overwrites the counter of a visible, active row in one
	// update. A deleted row is left deleted and yields NotFound.
	SetQuantity(ctx context.Context, scope access.Scope, id uuid.UUID, quantity int64) (*Stock, error)

	// Summarize groups active, visible stock rows by warehouse, ordered by
	// total quantity descending. A nil metal covers both metals.
	Summarize(ctx context.Context, scope access.Scope, metal *catalog.Metal) ([]WarehouseSummary, error)
}

// TransferRepository defines the interface for transfer persistence.
// A transfer is visible when either warehouse lies in scope.
type TransferRepository interface {
	FindByID(ctx context.Context, scope access.Scope, id uuid.UUID) (*Transfer, error)

	// FindAll lists transfers. Filters may carry "status" and "warehouse_id".
	FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]Transfer, int64, error)

	Create(ctx context.Context, transfer *Transfer) error

	// Resolve moves a pending transfer to status in a single guarded update.
	// A transfer that is no longer pending yields Conflict and is left as is.
	Resolve(ctx context.Context, scope access.Scope, id uuid.UUID, status TransferStatus, actor uuid.UUID, at time.Time) (*Transfer, error)
}
