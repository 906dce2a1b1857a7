package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/datascope"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func productScope(scope access.Scope) visibility {
	return datascope.Scope(scope, access.ResourceProduct, "products")
}

// FindByID finds a product with its vendor name
func (r *GormProductRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*catalog.Product, error) {
	q := r.db.Scopes(unscopedPreload("Vendor"))
	m, err := findOne[models.ProductModel](ctx, q, productScope(scope), id, includeDeleted, "Product")
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists products filtered by metal and vendor
func (r *GormProductRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]catalog.Product, int64, error) {
	q := searchLike(r.db.WithContext(ctx).Scopes(productScope(scope)), filter.Search, "products.name")
	if metal, ok := filterString(filter, "metal"); ok {
		q = q.Where("products.metal = ?", metal)
	}
	if vendorID, ok := filterUUID(filter, "vendor_id"); ok {
		q = q.Where("products.vendor_id = ?", vendorID)
	}

	rows, total, err := paginate[models.ProductModel](q, filter, productSort, unscopedPreload("Vendor"), "Product")
	if err != nil {
		return nil, 0, err
	}
	out := make([]catalog.Product, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	m := models.ProductModelFromDomain(product)
	return translateError(r.db.WithContext(ctx).Unscoped().Omit(clause.Associations).Save(m).Error, "Product")
}

func (r *GormProductRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return softDelete[models.ProductModel](ctx, r.db, productScope(scope), id, "Product")
}

func (r *GormProductRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return restoreRow[models.ProductModel](ctx, r.db, productScope(scope), id, "Product")
}

func (r *GormProductRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return hardDelete[models.ProductModel](ctx, r.db, productScope(scope), id, "Product")
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
