package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/inventory"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/datascope"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransferRepository implements TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

func transferScope(scope access.Scope) visibility {
	return datascope.Scope(scope, access.ResourceTransfer, "warehouse_transfers")
}

var transferPreload = unscopedPreload("FromWarehouse", "ToWarehouse")

// FindByID finds a transfer visible within scope
func (r *GormTransferRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID) (*inventory.Transfer, error) {
	m, err := findOne[models.TransferModel](ctx, r.db.Scopes(transferPreload), transferScope(scope), id, false, "Transfer")
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists transfers visible within scope. Search matches the item
// name or the code of either warehouse.
func (r *GormTransferRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]inventory.Transfer, int64, error) {
	q := r.db.WithContext(ctx).Scopes(transferScope(scope))
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(escapeLike(search)) + "%"
		q = q.Where(`(LOWER(warehouse_transfers.item_name) LIKE ? ESCAPE '\'
			OR warehouse_transfers.from_warehouse_id IN (SELECT id FROM warehouses WHERE LOWER(code) LIKE ? ESCAPE '\')
			OR warehouse_transfers.to_warehouse_id IN (SELECT id FROM warehouses WHERE LOWER(code) LIKE ? ESCAPE '\'))`,
			pattern, pattern, pattern)
	}
	if status, ok := filterString(filter, "status"); ok {
		q = q.Where("warehouse_transfers.status = ?", status)
	}
	if warehouseID, ok := filterUUID(filter, "warehouse_id"); ok {
		q = q.Where("(warehouse_transfers.from_warehouse_id = ? OR warehouse_transfers.to_warehouse_id = ?)", warehouseID, warehouseID)
	}

	rows, total, err := paginate[models.TransferModel](q, filter, transferSort, transferPreload, "Transfer")
	if err != nil {
		return nil, 0, err
	}
	out := make([]inventory.Transfer, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Create inserts a new transfer
func (r *GormTransferRepository) Create(ctx context.Context, transfer *inventory.Transfer) error {
	m := models.TransferModelFromDomain(transfer)
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error, "Transfer")
}

// Resolve moves a pending transfer to status. The status predicate in the
// UPDATE makes exactly one of several concurrent resolutions win.
func (r *GormTransferRepository) Resolve(ctx context.Context, scope access.Scope, id uuid.UUID, status inventory.TransferStatus, actor uuid.UUID, at time.Time) (*inventory.Transfer, error) {
	if !status.IsTerminal() {
		return nil, shared.NewValidationError("INVALID_STATUS", "A transfer can only be approved or rejected")
	}

	var actionBy *uuid.UUID
	if actor != uuid.Nil {
		actionBy = &actor
	}
	res := r.db.WithContext(ctx).Model(&models.TransferModel{}).
		Scopes(transferScope(scope)).
		Where(idEquals(id)).
		Where("warehouse_transfers.status = ?", inventory.TransferPending).
		Updates(map[string]any{
			"status":      status,
			"action_by":   actionBy,
			"action_date": at,
			"updated_at":  at,
		})
	if res.Error != nil {
		return nil, translateError(res.Error, "Transfer")
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, scope, id); err != nil {
			return nil, err
		}
		return nil, shared.ErrTransferResolved
	}
	return r.FindByID(ctx, scope, id)
}

var _ inventory.TransferRepository = (*GormTransferRepository)(nil)
