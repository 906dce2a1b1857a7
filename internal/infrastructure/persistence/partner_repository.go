package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/partner"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/datascope"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

func vendorScope(scope access.Scope) visibility {
	return datascope.Scope(scope, access.ResourceVendor, "vendors")
}

func (r *GormVendorRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*partner.Vendor, error) {
	m, err := findOne[models.VendorModel](ctx, r.db, vendorScope(scope), id, includeDeleted, "Vendor")
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *GormVendorRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]partner.Vendor, int64, error) {
	q := searchLike(r.db.WithContext(ctx).Scopes(vendorScope(scope)), filter.Search, "vendors.name")
	rows, total, err := paginate[models.VendorModel](q, filter, namedSort, nil, "Vendor")
	if err != nil {
		return nil, 0, err
	}
	out := make([]partner.Vendor, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	m := models.VendorModelFromDomain(vendor)
	return translateError(r.db.WithContext(ctx).Unscoped().Save(m).Error, "Vendor")
}

func (r *GormVendorRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return softDelete[models.VendorModel](ctx, r.db, vendorScope(scope), id, "Vendor")
}

func (r *GormVendorRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return restoreRow[models.VendorModel](ctx, r.db, vendorScope(scope), id, "Vendor")
}

func (r *GormVendorRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return hardDelete[models.VendorModel](ctx, r.db, vendorScope(scope), id, "Vendor")
}

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func customerScope(scope access.Scope) visibility {
	return datascope.Scope(scope, access.ResourceCustomer, "customers")
}

func (r *GormCustomerRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*partner.Customer, error) {
	m, err := findOne[models.CustomerModel](ctx, r.db, customerScope(scope), id, includeDeleted, "Customer")
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists customers; Search matches name or phone
func (r *GormCustomerRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]partner.Customer, int64, error) {
	q := searchLike(r.db.WithContext(ctx).Scopes(customerScope(scope)), filter.Search, "customers.name", "customers.phone")
	rows, total, err := paginate[models.CustomerModel](q, filter, namedSort, nil, "Customer")
	if err != nil {
		return nil, 0, err
	}
	out := make([]partner.Customer, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	m := models.CustomerModelFromDomain(customer)
	return translateError(r.db.WithContext(ctx).Unscoped().Save(m).Error, "Customer")
}

func (r *GormCustomerRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return softDelete[models.CustomerModel](ctx, r.db, customerScope(scope), id, "Customer")
}

func (r *GormCustomerRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return restoreRow[models.CustomerModel](ctx, r.db, customerScope(scope), id, "Customer")
}

func (r *GormCustomerRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return hardDelete[models.CustomerModel](ctx, r.db, customerScope(scope), id, "Customer")
}

var (
	_ partner.VendorRepository   = (*GormVendorRepository)(nil)
	_ partner.CustomerRepository = (*GormCustomerRepository)(nil)
)
