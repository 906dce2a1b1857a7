package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/identity"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/auth"
	"github.com/jewelry-erp/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPassword = "correct-horse"

type authFixture struct {
	users     *MockUserRepository
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
	svc       *AuthService
}

func newAuthFixture() *authFixture {
	users := new(MockUserRepository)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "jewelry-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	return &authFixture{
		users:     users,
		jwt:       jwtService,
		blacklist: blacklist,
		svc:       NewAuthService(users, jwtService, blacklist, zap.NewNop()),
	}
}

func newTestUser(t *testing.T, role shared.Role, branchID *uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser("cashier1", "cashier1@example.com", testPassword, role, branchID)
	require.NoError(t, err)
	return user
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("issues tokens carrying branch", func(t *testing.T) {
		f := newAuthFixture()
		branch := uuid.New()
		user := newTestUser(t, shared.RoleEmployee, &branch)
		user.BranchName = "Downtown"
		f.users.On("FindByUsername", ctx, "cashier1").Return(user, nil)
		f.users.On("RecordLogin", ctx, user).Return(nil)

		result, err := f.svc.Authenticate(ctx, LoginInput{Username: "cashier1", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.NotNil(t, result.User.LastLoginAt)

		claims, err := f.jwt.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "Downtown", claims.BranchName)
		p, err := claims.Principal()
		require.NoError(t, err)
		assert.Equal(t, user.ID, p.UserID)
		assert.Equal(t, shared.RoleEmployee, p.Role)
		assert.Equal(t, &branch, p.BranchID)
		f.users.AssertExpectations(t)
	})

	t.Run("unknown user fails authentication", func(t *testing.T) {
		f := newAuthFixture()
		f.users.On("FindByUsername", ctx, "ghost").Return(nil, shared.NewNotFoundError("User"))

		_, err := f.svc.Authenticate(ctx, LoginInput{Username: "ghost", Password: testPassword})
		assert.True(t, shared.IsKind(err, shared.KindAuthenticationFailed))
	})

	t.Run("wrong password fails without recording login", func(t *testing.T) {
		f := newAuthFixture()
		user := newTestUser(t, shared.RoleAdmin, nil)
		f.users.On("FindByUsername", ctx, "cashier1").Return(user, nil)

		_, err := f.svc.Authenticate(ctx, LoginInput{Username: "cashier1", Password: "wrong-password"})
		assert.True(t, shared.IsKind(err, shared.KindAuthenticationFailed))
		f.users.AssertNotCalled(t, "RecordLogin", mock.Anything, mock.Anything)
	})

	t.Run("inactive user fails even with correct password", func(t *testing.T) {
		f := newAuthFixture()
		user := newTestUser(t, shared.RoleAdmin, nil)
		user.ToggleActive()
		f.users.On("FindByUsername", ctx, "cashier1").Return(user, nil)

		_, err := f.svc.Authenticate(ctx, LoginInput{Username: "cashier1", Password: testPassword})
		assert.ErrorIs(t, err, shared.ErrAuthenticationFailed)
	})

	t.Run("failure to record login does not fail sign in", func(t *testing.T) {
		f := newAuthFixture()
		user := newTestUser(t, shared.RoleAdmin, nil)
		f.users.On("FindByUsername", ctx, "cashier1").Return(user, nil)
		f.users.On("RecordLogin", ctx, user).Return(assert.AnError)

		_, err := f.svc.Authenticate(ctx, LoginInput{Username: "cashier1", Password: testPassword})
		assert.NoError(t, err)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	login := func(t *testing.T, f *authFixture, user *identity.User) *TokenResult {
		t.Helper()
		f.users.On("FindByUsername", ctx, user.Username).Return(user, nil).Once()
		f.users.On("RecordLogin", ctx, user).Return(nil).Once()
		result, err := f.svc.Authenticate(ctx, LoginInput{Username: user.Username, Password: testPassword})
		require.NoError(t, err)
		return result
	}

	t.Run("reloads user and revokes the used token", func(t *testing.T) {
		f := newAuthFixture()
		user := newTestUser(t, shared.RoleManager, nil)
		tokens := login(t, f, user)

		// promoted since the last login
		reloaded := *user
		reloaded.Role = shared.RoleAdmin
		f.users.On("FindByID", ctx, access.Unrestricted(), user.ID, false).Return(&reloaded, nil)

		result, err := f.svc.Refresh(ctx, RefreshTokenInput{RefreshToken: tokens.RefreshToken})
		require.NoError(t, err)
		claims, err := f.jwt.ValidateAccessToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, string(shared.RoleAdmin), claims.Role)

		_, err = f.svc.Refresh(ctx, RefreshTokenInput{RefreshToken: tokens.RefreshToken})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindAuthenticationFailed))
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		f := newAuthFixture()
		tokens := login(t, f, newTestUser(t, shared.RoleAdmin, nil))

		_, err := f.svc.Refresh(ctx, RefreshTokenInput{RefreshToken: tokens.AccessToken})
		assert.True(t, shared.IsKind(err, shared.KindAuthenticationFailed))
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		f := newAuthFixture()
		user := newTestUser(t, shared.RoleAdmin, nil)
		tokens := login(t, f, user)
		inactive := *user
		inactive.IsActive = false
		f.users.On("FindByID", ctx, access.Unrestricted(), user.ID, false).Return(&inactive, nil)

		_, err := f.svc.Refresh(ctx, RefreshTokenInput{RefreshToken: tokens.RefreshToken})
		assert.ErrorIs(t, err, shared.ErrAuthenticationFailed)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	user := newTestUser(t, shared.RoleAdmin, nil)
	f.users.On("FindByUsername", ctx, user.Username).Return(user, nil)
	f.users.On("RecordLogin", ctx, user).Return(nil)
	tokens, err := f.svc.Authenticate(ctx, LoginInput{Username: user.Username, Password: testPassword})
	require.NoError(t, err)

	accessClaims, err := f.jwt.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	refresh, err := f.jwt.ValidateRefreshToken(tokens.RefreshToken)
	require.NoError(t, err)

	err = f.svc.Logout(ctx, user.Principal(), LogoutInput{
		AccessTokenID:  accessClaims.ID,
		AccessTokenTTL: accessClaims.GetRemainingTTL(),
		RefreshToken:   tokens.RefreshToken,
	})
	require.NoError(t, err)

	revoked, err := f.blacklist.IsBlacklisted(ctx, accessClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = f.blacklist.IsBlacklisted(ctx, refresh.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
