package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

const (
	minUsernameLength = 3
	maxUsernameLength = 150
	minPasswordLength = 8
	// bcrypt ignores input beyond 72 bytes
	maxPasswordLength = 72
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.@+-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// User is an account that can sign in. Admins have no branch; managers and
// employees normally belong to one.
type User struct {
	shared.BaseAggregateRoot
	shared.SoftDelete
	Username     string
	Email        string
	PasswordHash string
	Role         shared.Role
	BranchID     *uuid.UUID
	IsActive     bool
	LastLoginAt  *time.Time

	// Read-side projection
	BranchName string
}

// NewUser creates an active user with a hashed password
func NewUser(username, email, password string, role shared.Role, branchID *uuid.UUID) (*User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("INVALID_ROLE", "Role must be Admin, Manager or Employee")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewInternalError("Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		BranchID:          normalizeBranch(branchID),
		IsActive:          true,
	}, nil
}

// Principal returns the caller identity used by core operations
func (u *User) Principal() shared.Principal {
	return shared.Principal{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		BranchID: u.BranchID,
	}
}

// CanSignIn reports whether the account may authenticate
func (u *User) CanSignIn() bool {
	return u.IsActive && !shared.IsDeleted(u)
}

// SetEmail sets the user's email
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return err
	}
	u.Email = email
	u.touch()
	return nil
}

// Assign changes role and branch together
func (u *User) Assign(role shared.Role, branchID *uuid.UUID) error {
	if !role.IsValid() {
		return shared.NewValidationError("INVALID_ROLE", "Role must be Admin, Manager or Employee")
	}
	u.Role = role
	u.BranchID = normalizeBranch(branchID)
	u.touch()
	return nil
}

// Rename changes the username
func (u *User) Rename(username string) error {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return err
	}
	u.Username = username
	u.touch()
	return nil
}

// ToggleActive flips the active flag and returns the new value
func (u *User) ToggleActive() bool {
	u.IsActive = !u.IsActive
	u.touch()
	return u.IsActive
}

// ChangePassword verifies the current password before setting a new one
func (u *User) ChangePassword(oldPassword, newPassword, confirm string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError(shared.KindAuthenticationFailed, "INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword, confirm)
}

// SetPassword sets a new password without checking the old one
func (u *User) SetPassword(newPassword, confirm string) error {
	if newPassword != confirm {
		return shared.ErrPasswordMismatch
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewInternalError("Failed to hash password")
	}
	u.PasswordHash = hash
	u.touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps a successful sign-in
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

func (u *User) touch() {
	u.Revise()
}

func normalizeBranch(branchID *uuid.UUID) *uuid.UUID {
	if branchID == nil || *branchID == uuid.Nil {
		return nil
	}
	id := *branchID
	return &id
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return shared.NewValidationError("INVALID_USERNAME", "Username must be between 3 and 150 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewValidationError("INVALID_USERNAME", "Username may contain letters, digits and @.+-_ only")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" || len(email) > 254 || !emailPattern.MatchString(email) {
		return shared.NewValidationError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return shared.NewValidationError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > maxPasswordLength {
		return shared.NewValidationError("INVALID_PASSWORD", "Password cannot exceed 72 bytes")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
