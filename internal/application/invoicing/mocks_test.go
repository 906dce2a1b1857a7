package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/invoicing"
	"github.com/jewelry-erp/backend/internal/domain/organization"
	"github.com/jewelry-erp/backend/internal/domain/partner"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *invoicing.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID) (*invoicing.Invoice, error) {
	args := m.Called(ctx, scope, id)
	if fn, ok := args.Get(0).(func(context.Context, access.Scope, uuid.UUID) *invoicing.Invoice); ok {
		return fn(ctx, scope, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]invoicing.Invoice, int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]invoicing.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) FindItems(ctx context.Context, scope access.Scope, invoiceID uuid.UUID) ([]invoicing.Item, error) {
	args := m.Called(ctx, scope, invoiceID)
	return args.Get(0).([]invoicing.Item), args.Error(1)
}

func (m *MockInvoiceRepository) Summarize(ctx context.Context, scope access.Scope, metal *catalog.Metal, period invoicing.DateRange) ([]invoicing.SummaryRow, error) {
	args := m.Called(ctx, scope, metal, period)
	return args.Get(0).([]invoicing.SummaryRow), args.Error(1)
}

func (m *MockInvoiceRepository) DailySales(ctx context.Context, scope access.Scope, metal *catalog.Metal, since time.Time) ([]invoicing.DailySalesRow, error) {
	args := m.Called(ctx, scope, metal, since)
	return args.Get(0).([]invoicing.DailySalesRow), args.Error(1)
}

// MockLifecycle satisfies access.Lifecycle for the party repositories
type MockLifecycle struct {
	mock.Mock
}

func (m *MockLifecycle) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockLifecycle) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockLifecycle) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

type MockBranchRepository struct {
	MockLifecycle
}

func (m *MockBranchRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*organization.Branch, error) {
	args := m.Called(ctx, scope, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]organization.Branch, int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]organization.Branch), args.Get(1).(int64), args.Error(2)
}

func (m *MockBranchRepository) Save(ctx context.Context, branch *organization.Branch) error {
	return m.Called(ctx, branch).Error(0)
}

type MockWarehouseRepository struct {
	MockLifecycle
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*organization.Warehouse, error) {
	args := m.Called(ctx, scope, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]organization.Warehouse, int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]organization.Warehouse), args.Get(1).(int64), args.Error(2)
}

func (m *MockWarehouseRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, warehouse *organization.Warehouse) error {
	return m.Called(ctx, warehouse).Error(0)
}

type MockSellerRepository struct {
	MockLifecycle
}

func (m *MockSellerRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*organization.Seller, error) {
	args := m.Called(ctx, scope, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*organization.Seller), args.Error(1)
}

func (m *MockSellerRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]organization.Seller, int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]organization.Seller), args.Get(1).(int64), args.Error(2)
}

func (m *MockSellerRepository) Save(ctx context.Context, seller *organization.Seller) error {
	return m.Called(ctx, seller).Error(0)
}

type MockCustomerRepository struct {
	MockLifecycle
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*partner.Customer, error) {
	args := m.Called(ctx, scope, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]partner.Customer, int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]partner.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}
