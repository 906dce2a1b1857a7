package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/organization"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/datascope"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

func branchScope(scope access.Scope) visibility {
	return datascope.Scope(scope, access.ResourceBranch, "branches")
}

// FindByID finds a branch visible within scope
func (r *GormBranchRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*organization.Branch, error) {
	m, err := findOne[models.BranchModel](ctx, r.db, branchScope(scope), id, includeDeleted, "Branch")
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists branches visible within scope
func (r *GormBranchRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]organization.Branch, int64, error) {
	q := r.db.WithContext(ctx).Scopes(branchScope(scope))
	q = searchLike(q, filter.Search, "branches.name")

	rows, total, err := paginate[models.BranchModel](q, filter, namedSort, nil, "Branch")
	if err != nil {
		return nil, 0, err
	}
	out := make([]organization.Branch, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *organization.Branch) error {
	m := models.BranchModelFromDomain(branch)
	return translateError(r.db.WithContext(ctx).Unscoped().Omit(clause.Associations).Save(m).Error, "Branch")
}

// Delete soft deletes a branch
func (r *GormBranchRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return softDelete[models.BranchModel](ctx, r.db, branchScope(scope), id, "Branch")
}

// Restore clears a branch's deletion mark
func (r *GormBranchRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return restoreRow[models.BranchModel](ctx, r.db, branchScope(scope), id, "Branch")
}

// HardDelete removes a branch permanently
func (r *GormBranchRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return hardDelete[models.BranchModel](ctx, r.db, branchScope(scope), id, "Branch")
}

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

func warehouseScope(scope access.Scope) visibility {
	return datascope.Scope(scope, access.ResourceWarehouse, "warehouses")
}

// FindByID finds a warehouse visible within scope
func (r *GormWarehouseRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*organization.Warehouse, error) {
	q := r.db.Scopes(unscopedPreload("Branch"))
	m, err := findOne[models.WarehouseModel](ctx, q, warehouseScope(scope), id, includeDeleted, "Warehouse")
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists warehouses visible within scope
func (r *GormWarehouseRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]organization.Warehouse, int64, error) {
	q := r.db.WithContext(ctx).Scopes(warehouseScope(scope))
	q = searchLike(q, filter.Search, "warehouses.code")
	if branchID, ok := filterUUID(filter, "branch_id"); ok {
		q = q.Where("warehouses.branch_id = ?", branchID)
	}

	rows, total, err := paginate[models.WarehouseModel](q, filter, warehouseSort, unscopedPreload("Branch"), "Warehouse")
	if err != nil {
		return nil, 0, err
	}
	out := make([]organization.Warehouse, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsByCode checks code uniqueness across all rows, deleted included
func (r *GormWarehouseRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Unscoped().Model(&models.WarehouseModel{}).Where("code = ?", code)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err, "Warehouse")
	}
	return count > 0, nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *organization.Warehouse) error {
	m := models.WarehouseModelFromDomain(warehouse)
	return translateError(r.db.WithContext(ctx).Unscoped().Omit(clause.Associations).Save(m).Error, "Warehouse")
}

// Delete soft deletes a warehouse
func (r *GormWarehouseRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return softDelete[models.WarehouseModel](ctx, r.db, warehouseScope(scope), id, "Warehouse")
}

// Restore clears a warehouse's deletion mark
func (r *GormWarehouseRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return restoreRow[models.WarehouseModel](ctx, r.db, warehouseScope(scope), id, "Warehouse")
}

// HardDelete removes a warehouse permanently
func (r *GormWarehouseRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return hardDelete[models.WarehouseModel](ctx, r.db, warehouseScope(scope), id, "Warehouse")
}

// GormSellerRepository implements SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

func sellerScope(scope access.Scope) visibility {
	return datascope.Scope(scope, access.ResourceSeller, "sellers")
}

// FindByID finds a seller visible within scope
func (r *GormSellerRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*organization.Seller, error) {
	q := r.db.Scopes(unscopedPreload("Branch"))
	m, err := findOne[models.SellerModel](ctx, q, sellerScope(scope), id, includeDeleted, "Seller")
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists sellers visible within scope
func (r *GormSellerRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]organization.Seller, int64, error) {
	q := r.db.WithContext(ctx).Scopes(sellerScope(scope))
	q = searchLike(q, filter.Search, "sellers.name")
	if branchID, ok := filterUUID(filter, "branch_id"); ok {
		q = q.Where("sellers.branch_id = ?", branchID)
	}

	rows, total, err := paginate[models.SellerModel](q, filter, namedSort, unscopedPreload("Branch"), "Seller")
	if err != nil {
		return nil, 0, err
	}
	out := make([]organization.Seller, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a seller
func (r *GormSellerRepository) Save(ctx context.Context, seller *organization.Seller) error {
	m := models.SellerModelFromDomain(seller)
	return translateError(r.db.WithContext(ctx).Unscoped().Omit(clause.Associations).Save(m).Error, "Seller")
}

// Delete soft deletes a seller
func (r *GormSellerRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return softDelete[models.SellerModel](ctx, r.db, sellerScope(scope), id, "Seller")
}

// Restore clears a seller's deletion mark
func (r *GormSellerRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return restoreRow[models.SellerModel](ctx, r.db, sellerScope(scope), id, "Seller")
}

// HardDelete removes a seller permanently
func (r *GormSellerRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return hardDelete[models.SellerModel](ctx, r.db, sellerScope(scope), id, "Seller")
}

var (
	_ organization.BranchRepository    = (*GormBranchRepository)(nil)
	_ organization.WarehouseRepository = (*GormWarehouseRepository)(nil)
	_ organization.SellerRepository    = (*GormSellerRepository)(nil)
)
