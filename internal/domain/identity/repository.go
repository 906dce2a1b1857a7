package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	access.Lifecycle

	// FindByID finds a user visible within scope
	FindByID(ctx context.Context, scope access.Scope, id uuid.UUID, includeDeleted bool) (*User, error)

	// FindByUsername finds an active or inactive, non-deleted user by username.
	// It is used for sign-in and is not scoped.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindAll lists users. Filters may carry "role", "branch_id" and "is_active".
	FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]User, int64, error)

	// ExistsByUsername reports whether a username is taken, deleted users included
	ExistsByUsername(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error)

	// ExistsByEmail reports whether an email is taken, deleted users included
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)

	// Save inserts or updates a user
	Save(ctx context.Context, user *User) error

	// RecordLogin stores the last sign-in time without touching other columns
	RecordLogin(ctx context.Context, user *User) error
}
