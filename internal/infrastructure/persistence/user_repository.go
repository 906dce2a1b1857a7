package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/identity"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/datascope"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func userScope(scope access.Scope) visibility {
	return datascope.Scope(scope, access.ResourceUser, "users")
}

var userPreload = unscopedPreload("Branch")

// FindByID finds a user visible within scope
func (r *GormUserRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*identity.User, error) {
	m, err := findOne[models.UserModel](ctx, r.db.Scopes(userPreload), userScope(scope), id, includeDeleted, "User")
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByUsername finds a non-deleted user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var m models.UserModel
	if err := r.db.WithContext(ctx).Scopes(userPreload).Where("username = ?", username).Take(&m).Error; err != nil {
		return nil, translateError(err, "User")
	}
	return m.ToDomain(), nil
}

// FindAll lists users visible within scope
func (r *GormUserRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]identity.User, int64, error) {
	q := searchLike(r.db.WithContext(ctx).Scopes(userScope(scope)), filter.Search, "users.username", "users.email")
	if role, ok := filterString(filter, "role"); ok {
		q = q.Where("users.role = ?", role)
	}
	if branchID, ok := filterUUID(filter, "branch_id"); ok {
		q = q.Where("users.branch_id = ?", branchID)
	}
	if active, ok := filterBool(filter, "is_active"); ok {
		q = q.Where("users.is_active = ?", active)
	}

	rows, total, err := paginate[models.UserModel](q, filter, userSort, userPreload, "User")
	if err != nil {
		return nil, 0, err
	}
	out := make([]identity.User, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// ExistsByUsername reports whether a username is taken
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "username", username, excludeID)
}

// ExistsByEmail reports whether an email is taken
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	return r.exists(ctx, "email", email, excludeID)
}

func (r *GormUserRepository) exists(ctx context.Context, column, value string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Unscoped().Model(&models.UserModel{}).Where(column+" = ?", value)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, translateError(err, "User")
	}
	return count > 0, nil
}

// Save inserts or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	m := models.UserModelFromDomain(user)
	return translateError(r.db.WithContext(ctx).Unscoped().Omit(clause.Associations).Save(m).Error, "User")
}

// RecordLogin stores last_login_at only
func (r *GormUserRepository) RecordLogin(ctx context.Context, user *identity.User) error {
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where(idEquals(user.ID)).
		UpdateColumn("last_login_at", user.LastLoginAt).Error
	return translateError(err, "User")
}

func (r *GormUserRepository) Delete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return softDelete[models.UserModel](ctx, r.db, userScope(scope), id, "User")
}

func (r *GormUserRepository) Restore(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return restoreRow[models.UserModel](ctx, r.db, userScope(scope), id, "User")
}

func (r *GormUserRepository) HardDelete(ctx context.Context, scope access.Scope, id uuid.UUID) error {
	return hardDelete[models.UserModel](ctx, r.db, userScope(scope), id, "User")
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
