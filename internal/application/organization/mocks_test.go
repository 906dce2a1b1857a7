package organization

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/organization"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockLifecycle implements access.Lifecycle
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

// MockBranchRepository is a mock implementation of BranchRepository
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

// MockWarehouseRepository is a mock implementation of WarehouseRepository
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

// MockSellerRepository is a mock implementation of SellerRepository
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

func principal(role shared.Role, branch *uuid.UUID) shared.Principal {
	return shared.Principal{UserID: uuid.New(), Username: "tester", Role: role, BranchID: branch}
}
