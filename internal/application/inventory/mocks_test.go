package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/inventory"
	"github.com/jewelry-erp/backend/internal/domain/organization"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockStockRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockStockRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockStockRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*inventory.Stock, error) {
	args := m.Called(ctx, scope, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]inventory.Stock, int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]inventory.Stock), args.Get(1).(int64), args.Error(2)
}

func (m *MockStockRepository) FindByPair(ctx context.Context, warehouseID, productID uuid.UUID, metal catalog.Metal) (*inventory.Stock, error) {
	args := m.Called(ctx, warehouseID, productID, metal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) Create(ctx context.Context, stock *inventory.Stock) error {
	return m.Called(ctx, stock).Error(0)
}

func (m *MockStockRepository) Save(ctx context.Context, stock *inventory.Stock) error {
	return m.Called(ctx, stock).Error(0)
}

func (m *MockStockRepository) AdjustQuantity(ctx context.Context, scope access.Scope, id uuid.UUID, delta int64) (*inventory.Stock, error) {
	args := m.Called(ctx, scope, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) SetQuantity(ctx context.Context, scope access.Scope, id uuid.UUID, quantity int64) (*inventory.Stock, error) {
	args := m.Called(ctx, scope, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stock), args.Error(1)
}

func (m *MockStockRepository) Summarize(ctx context.Context, scope access.Scope, metal *catalog.Metal) ([]inventory.WarehouseSummary, error) {
	args := m.Called(ctx, scope, metal)
	return args.Get(0).([]inventory.WarehouseSummary), args.Error(1)
}

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID) (*inventory.Transfer, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]inventory.Transfer, int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]inventory.Transfer), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransferRepository) Create(ctx context.Context, transfer *inventory.Transfer) error {
	return m.Called(ctx, transfer).Error(0)
}

func (m *MockTransferRepository) Resolve(ctx context.Context, scope access.Scope, id uuid.UUID, status inventory.TransferStatus, actor uuid.UUID, at time.Time) (*inventory.Transfer, error) {
	args := m.Called(ctx, scope, id, status, actor, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Transfer), args.Error(1)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockWarehouseRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockWarehouseRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
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

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockProductRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockProductRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*catalog.Product, error) {
	args := m.Called(ctx, scope, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}
