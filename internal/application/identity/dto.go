package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/identity"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// LoginInput contains the credentials for a login attempt
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenInput contains the refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutInput carries the tokens revoked on logout. AccessTokenID is the jti
// of the access token that authenticated the request.
type LogoutInput struct {
	AccessTokenID  string
	AccessTokenTTL time.Duration
	RefreshToken   string `json:"refresh_token"`
}

// TokenResult is returned by login and refresh
type TokenResult struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// CreateUserRequest creates a user
type CreateUserRequest struct {
	Username string      `json:"username" binding:"required,min=3,max=150"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8,max=72"`
	Role     shared.Role `json:"role" binding:"required,oneof=Admin Manager Employee"`
	BranchID *uuid.UUID  `json:"branch_id"`
}

// UpdateUserRequest edits username, email, role and branch
type UpdateUserRequest struct {
	Username string      `json:"username" binding:"required,min=3,max=150"`
	Email    string      `json:"email" binding:"required,email"`
	Role     shared.Role `json:"role" binding:"required,oneof=Admin Manager Employee"`
	BranchID *uuid.UUID  `json:"branch_id"`
}

// ChangePasswordRequest sets a new password. OldPassword is only checked
// when callers change their own password.
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// UpdateProfileRequest edits the caller's own profile
type UpdateProfileRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UserListFilter narrows user listings
type UserListFilter struct {
	Role     string     `form:"role" binding:"omitempty,oneof=Admin Manager Employee"`
	BranchID *uuid.UUID `form:"-"`
	IsActive *bool      `form:"is_active"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID   `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        shared.Role `json:"role"`
	BranchID    *uuid.UUID  `json:"branch_id,omitempty"`
	BranchName  string      `json:"branch_name,omitempty"`
	IsActive    bool        `json:"is_active"`
	LastLoginAt *time.Time  `json:"last_login_at,omitempty"`
	Version     int         `json:"version"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	DeletedAt   *time.Time  `json:"deleted_at,omitempty"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		BranchID:    u.BranchID,
		BranchName:  u.BranchName,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		Version:     u.Version,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		DeletedAt:   u.DeletedAt,
	}
}
