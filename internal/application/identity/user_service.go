package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/identity"
	"github.com/jewelry-erp/backend/internal/domain/organization"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService manages user accounts. Managers act only on non-admin users
// of their own branch.
type UserService struct {
	appshared.Lifecycle
	userRepo   identity.UserRepository
	branchRepo organization.BranchRepository
	policy     *access.Policy
	logger     *zap.Logger

	blacklist auth.TokenBlacklist
	tokenTTL  time.Duration
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo identity.UserRepository,
	branchRepo organization.BranchRepository,
	policy *access.Policy,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		Lifecycle:  appshared.NewLifecycle(policy, access.ResourceUser, userRepo, logger),
		userRepo:   userRepo,
		branchRepo: branchRepo,
		policy:     policy,
		logger:     logger,
	}
}

// SetTokenBlacklist enables revoking a user's sessions on password change,
// deactivation and deletion. ttl should cover the refresh token lifetime.
func (s *UserService) SetTokenBlacklist(blacklist auth.TokenBlacklist, ttl time.Duration) {
	s.blacklist = blacklist
	s.tokenTTL = ttl
}

// Create creates a user
func (s *UserService) Create(ctx context.Context, p shared.Principal, req CreateUserRequest) (*UserResponse, error) {
	if _, err := s.policy.Authorize(p, access.ResourceUser); err != nil {
		return nil, err
	}
	if !s.policy.CanAssignRole(p, req.Role, req.BranchID) {
		return nil, shared.ErrPermissionDenied
	}
	branchName, err := s.branchName(ctx, p, req.BranchID)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Username, req.Email, req.Password, req.Role, req.BranchID)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, user.Username, user.Email, nil); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	user.BranchName = branchName

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("created_by", p.UserID.String()))
	response := ToUserResponse(user)
	return &response, nil
}

// Update edits a user's username, email, role and branch
func (s *UserService) Update(ctx context.Context, p shared.Principal, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.manageable(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanAssignRole(p, req.Role, req.BranchID) {
		return nil, shared.ErrPermissionDenied
	}
	branchName, err := s.branchName(ctx, p, req.BranchID)
	if err != nil {
		return nil, err
	}

	previous := user.Principal()
	if err := user.Rename(req.Username); err != nil {
		return nil, err
	}
	if err := user.SetEmail(req.Email); err != nil {
		return nil, err
	}
	if err := user.Assign(req.Role, req.BranchID); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, user.Username, user.Email, &user.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	user.BranchName = branchName

	// tokens carry role and branch
	if previous.Role != user.Role || !sameBranch(previous.BranchID, user.BranchID) {
		s.revokeSessions(ctx, user.ID)
	}

	s.logger.Info("User updated", zap.String("user_id", user.ID.String()))
	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword sets another user's password. Only administrators may do
// this; an administrator changing their own password must supply the old one.
func (s *UserService) ChangePassword(ctx context.Context, p shared.Principal, id uuid.UUID, req ChangePasswordRequest) error {
	if err := s.policy.RequireAdmin(p); err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(ctx, access.Unrestricted(), id, false)
	if err != nil {
		return err
	}

	if id == p.UserID {
		err = user.ChangePassword(req.OldPassword, req.NewPassword, req.ConfirmPassword)
	} else {
		err = user.SetPassword(req.NewPassword, req.ConfirmPassword)
	}
	if err != nil {
		return err
	}
	return s.savePassword(ctx, p, user)
}

// ChangeOwnPassword changes the caller's password after verifying the old one
func (s *UserService) ChangeOwnPassword(ctx context.Context, p shared.Principal, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, access.Unrestricted(), p.UserID, false)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}
	return s.savePassword(ctx, p, user)
}

func (s *UserService) savePassword(ctx context.Context, p shared.Principal, user *identity.User) error {
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.revokeSessions(ctx, user.ID)
	s.logger.Info("User password changed",
		zap.String("user_id", user.ID.String()),
		zap.String("changed_by", p.UserID.String()))
	return nil
}

// ToggleStatus activates or deactivates a user. Callers cannot deactivate
// themselves.
func (s *UserService) ToggleStatus(ctx context.Context, p shared.Principal, id uuid.UUID) (*UserResponse, error) {
	if id == p.UserID {
		return nil, shared.NewValidationError("CANNOT_DEACTIVATE_SELF", "You cannot change your own status")
	}
	user, err := s.manageable(ctx, p, id)
	if err != nil {
		return nil, err
	}

	active := user.ToggleActive()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if !active {
		s.revokeSessions(ctx, user.ID)
	}

	s.logger.Info("User status changed", zap.String("user_id", user.ID.String()), zap.Bool("is_active", active))
	response := ToUserResponse(user)
	return &response, nil
}

// Delete soft-deletes a user and revokes their sessions
func (s *UserService) Delete(ctx context.Context, p shared.Principal, id uuid.UUID) error {
	if id == p.UserID {
		return shared.NewValidationError("CANNOT_DELETE_SELF", "You cannot delete your own account")
	}
	if _, err := s.manageable(ctx, p, id); err != nil {
		return err
	}
	if err := s.Lifecycle.Delete(ctx, p, id); err != nil {
		return err
	}
	s.revokeSessions(ctx, id)
	return nil
}

// HardDelete permanently removes a user
func (s *UserService) HardDelete(ctx context.Context, p shared.Principal, id uuid.UUID) error {
	if id == p.UserID {
		return shared.NewValidationError("CANNOT_DELETE_SELF", "You cannot delete your own account")
	}
	if err := s.Lifecycle.HardDelete(ctx, p, id); err != nil {
		return err
	}
	s.revokeSessions(ctx, id)
	return nil
}

// GetByID retrieves a visible user
func (s *UserService) GetByID(ctx context.Context, p shared.Principal, id uuid.UUID, includeDeleted bool) (*UserResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceUser)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, scope, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves visible users
func (s *UserService) List(ctx context.Context, p shared.Principal, query appshared.ListQuery, filter UserListFilter) ([]UserResponse, int64, error) {
	scope, err := s.policy.Authorize(p, access.ResourceUser)
	if err != nil {
		return nil, 0, err
	}

	f := query.Filter()
	appshared.SetString(f, "role", filter.Role)
	appshared.SetUUID(f, "branch_id", filter.BranchID)
	if filter.IsActive != nil {
		f.Filters["is_active"] = *filter.IsActive
	}

	users, total, err := s.userRepo.FindAll(ctx, scope, f)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, total, nil
}

// Profile returns the caller's own account
func (s *UserService) Profile(ctx context.Context, p shared.Principal) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, access.Unrestricted(), p.UserID, false)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// UpdateProfile changes the caller's email
func (s *UserService) UpdateProfile(ctx context.Context, p shared.Principal, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, access.Unrestricted(), p.UserID, false)
	if err != nil {
		return nil, err
	}
	if err := user.SetEmail(req.Email); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, "", user.Email, &user.ID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// manageable loads a visible user the caller may act on
func (s *UserService) manageable(ctx context.Context, p shared.Principal, id uuid.UUID) (*identity.User, error) {
	scope, err := s.policy.Authorize(p, access.ResourceUser)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, scope, id, false)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanAssignRole(p, user.Role, user.BranchID) {
		return nil, shared.ErrPermissionDenied
	}
	return user, nil
}

func (s *UserService) branchName(ctx context.Context, p shared.Principal, branchID *uuid.UUID) (string, error) {
	if branchID == nil || *branchID == uuid.Nil {
		return "", nil
	}
	branch, err := s.branchRepo.FindByID(ctx, s.policy.Scope(p, access.ResourceBranch), *branchID, false)
	if err != nil {
		return "", err
	}
	return branch.Name, nil
}

func (s *UserService) checkUnique(ctx context.Context, username, email string, excludeID *uuid.UUID) error {
	if username != "" {
		taken, err := s.userRepo.ExistsByUsername(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewConflictError("USERNAME_TAKEN", "Username is already taken")
		}
	}
	taken, err := s.userRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewConflictError("EMAIL_TAKEN", "Email is already registered")
	}
	return nil
}

func (s *UserService) revokeSessions(ctx context.Context, userID uuid.UUID) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.tokenTTL); err != nil {
		s.logger.Error("Failed to revoke user sessions", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func sameBranch(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
