package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/identity"
	"github.com/jewelry-erp/backend/internal/domain/organization"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockUserRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockUserRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*identity.User, error) {
	args := m.Called(ctx, scope, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]identity.User, int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) RecordLogin(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

// MockBranchRepository is a mock implementation of organization.BranchRepository
type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockBranchRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockBranchRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return m.Called(ctx, scope, id).Error(0)
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
