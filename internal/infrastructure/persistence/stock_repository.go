package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/inventory"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/datascope"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM.
// Counter changes go through a single conditional UPDATE so concurrent
// adjustments serialize on the row lock and never drive quantity below zero.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func stockScope(scope access.Scope) visibility {
	return datascope.Scope(scope, access.ResourceStock, "warehouse_stock")
}

var stockPreload = unscopedPreload("Warehouse", "Product")

// FindByID finds a stock row visible within scope
func (r *GormStockRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*inventory.Stock, error) {
	m, err := findOne[models.StockModel](ctx, r.db.Scopes(stockPreload), stockScope(scope), id, includeDeleted, "Stock")
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists stock rows visible within scope
func (r *GormStockRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]inventory.Stock, int64, error) {
	q := r.db.WithContext(ctx).Scopes(stockScope(scope))
	if warehouseID, ok := filterUUID(filter, "warehouse_id"); ok {
		q = q.Where("warehouse_stock.warehouse_id = ?", warehouseID)
	}
	if productID, ok := filterUUID(filter, "product_id"); ok {
		q = q.Where("warehouse_stock.product_id = ?", productID)
	}
	if metal, ok := filterString(filter, "metal"); ok {
		q = q.Where("warehouse_stock.metal = ?", metal)
	}

	rows, total, err := paginate[models.StockModel](q, filter, stockSort, stockPreload, "Stock")
	if err != nil {
		return nil, 0, err
	}
	out := make([]inventory.Stock, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// FindByPair finds the row of a (warehouse, product, metal) triple, deleted or not
func (r *GormStockRepository) FindByPair(ctx context.Context, warehouseID, productID uuid.UUID, metal catalog.Metal) (*inventory.Stock, error) {
	var m models.StockModel
	err := r.db.WithContext(ctx).Unscoped().
		Where("warehouse_id = ? AND product_id = ? AND metal = ?", warehouseID, productID, metal).
		Take(&m).Error
	if err != nil {
		return nil, translateError(err, "Stock")
	}
	return m.ToDomain(), nil
}

// Create inserts a new stock row
func (r *GormStockRepository) Create(ctx context.Context, stock *inventory.Stock) error {
	m := models.StockModelFromDomain(stock)
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error, "Stock")
}

// Save updates an existing stock row, including its deletion mark
func (r *GormStockRepository) Save(ctx context.Context, stock *inventory.Stock) error {
	m := models.StockModelFromDomain(stock)
	return translateError(r.db.WithContext(ctx).Unscoped().Omit(clause.Associations).Save(m).Error, "Stock")
}

// AdjustQuantity adds delta to the counter in one guarded UPDATE. When no
// row matches, the row is looked up again to tell a missing row from an
// insufficient counter.
func (r *GormStockRepository) AdjustQuantity(ctx context.Context, scope access.Scope, id uuid.UUID, delta int64) (*inventory.Stock, error) {
	res := r.db.WithContext(ctx).Model(&models.StockModel{}).
		Scopes(stockScope(scope)).
		Where(idEquals(id)).
		Where("warehouse_stock.quantity + ? >= 0", delta).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, translateError(res.Error, "Stock")
	}
	if res.RowsAffected == 0 {
		current, err := r.FindByID(ctx, scope, id, false)
		if err != nil {
			return nil, err
		}
		return nil, inventory.InsufficientStockError(current.Quantity, delta)
	}
	return r.FindByID(ctx, scope, id, false)
}

// SetQuantity overwrites the counter of an active row. Soft-deleted rows do
// not match the UPDATE, so a concurrent delete is never undone.
func (r *GormStockRepository) SetQuantity(ctx context.Context, scope access.Scope, id uuid.UUID, quantity int64) (*inventory.Stock, error) {
	res := r.db.WithContext(ctx).Model(&models.StockModel{}).
		Scopes(stockScope(scope)).
		Where(idEquals(id)).
		Updates(map[string]any{
			"quantity":   quantity,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, translateError(res.Error, "Stock")
	}
	if res.RowsAffected == 0 {
		return nil, shared.NewNotFoundError("Stock")
	}
	return r.FindByID(ctx, scope, id, false)
}

type warehouseSummaryRow struct {
	WarehouseID   uuid.UUID
	WarehouseCode string
	BranchName    string
	ProductCount  int64
	TotalQuantity int64
	TotalWeight   decimal.Decimal
}

// Summarize groups active stock rows by warehouse. Product weight is summed
// once per stock row.
func (r *GormStockRepository) Summarize(ctx context.Context, scope access.Scope, metal *catalog.Metal) ([]inventory.WarehouseSummary, error) {
	q := r.db.WithContext(ctx).Model(&models.StockModel{}).
		Select(`warehouse_stock.warehouse_id AS warehouse_id,
			warehouses.code AS warehouse_code,
			branches.name AS branch_name,
			COUNT(DISTINCT warehouse_stock.product_id) AS product_count,
			COALESCE(SUM(warehouse_stock.quantity), 0) AS total_quantity,
			COALESCE(SUM(products.weight), 0) AS total_weight`).
		Joins("JOIN warehouses ON warehouses.id = warehouse_stock.warehouse_id").
		Joins("JOIN branches ON branches.id = warehouses.branch_id").
		Joins("JOIN products ON products.id = warehouse_stock.product_id").
		Where("warehouse_stock.deleted_at IS NULL").
		Scopes(stockScope(scope))
	if metal != nil {
		q = q.Where("warehouse_stock.metal = ?", *metal)
	}

	var rows []warehouseSummaryRow
	err := q.Group("warehouse_stock.warehouse_id, warehouses.code, branches.name").
		Order("total_quantity DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "Stock")
	}

	out := make([]inventory.WarehouseSummary, len(rows))
	for i, row := range rows {
		out[i] = inventory.WarehouseSummary(row)
	}
	return out, nil
}

func (r *GormStockRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return softDelete[models.StockModel](ctx, r.db, stockScope(scope), id, "Stock")
}

func (r *GormStockRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return restoreRow[models.StockModel](ctx, r.db, stockScope(scope), id, "Stock")
}

func (r *GormStockRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return hardDelete[models.StockModel](ctx, r.db, stockScope(scope), id, "Stock")
}

var _ inventory.StockRepository = (*GormStockRepository)(nil)
