package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/auth"
	"github.com/jewelry-erp/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessTTL time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
	})
}

func newTestTokenPair(t *testing.T, svc *auth.JWTService, role shared.Role, branch *uuid.UUID) (*auth.TokenPair, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "clerk",
		Role:     role,
		BranchID: branch,
	}
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair, input
}

type failingBlacklist struct{}

func (failingBlacklist) IsBlacklisted(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func (failingBlacklist) IsUserTokenInvalidated(context.Context, string, time.Time) (bool, error) {
	return false, errors.New("redis down")
}

func (failingBlacklist) AddToBlacklist(context.Context, string, time.Duration) error { return nil }

func (failingBlacklist) AddUserTokensToBlacklist(context.Context, string, time.Duration) error {
	return nil
}

func serveWithToken(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(AuthHeaderKey, header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jwtRouter(cfg JWTMiddlewareConfig, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(cfg))
	if handler == nil {
		handler = func(c *gin.Context) { c.Status(http.StatusOK) }
	}
	router.GET("/test", handler)
	return router
}

func TestJWTAuth_ValidTokenSetsPrincipal(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	branch := uuid.New()
	pair, input := newTestTokenPair(t, svc, shared.RoleManager, &branch)

	var got shared.Principal
	router := jwtRouter(JWTMiddlewareConfig{JWTService: svc}, func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		require.True(t, ok)
		got = p
		require.NotNil(t, GetJWTClaims(c))
		c.Status(http.StatusOK)
	})

	rec := serveWithToken(router, BearerPrefix+pair.AccessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, input.UserID, got.UserID)
	assert.Equal(t, shared.RoleManager, got.Role)
	require.NotNil(t, got.BranchID)
	assert.Equal(t, branch, *got.BranchID)
}

func TestJWTAuth_Rejections(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	pair, _ := newTestTokenPair(t, svc, shared.RoleAdmin, nil)

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing header", "", "TOKEN_INVALID"},
		{"wrong scheme", "Basic abc", "TOKEN_INVALID"},
		{"empty bearer", BearerPrefix, "TOKEN_INVALID"},
		{"garbage token", BearerPrefix + "not-a-jwt", "TOKEN_INVALID"},
		{"refresh token used as access", BearerPrefix + pair.RefreshToken, "TOKEN_INVALID"},
	}

	router := jwtRouter(JWTMiddlewareConfig{JWTService: svc}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveWithToken(router, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	pair, _ := newTestTokenPair(t, svc, shared.RoleAdmin, nil)

	rec := serveWithToken(jwtRouter(JWTMiddlewareConfig{JWTService: svc}, nil), BearerPrefix+pair.AccessToken)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuth_Blacklist(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	ctx := context.Background()

	t.Run("revoked jti", func(t *testing.T) {
		bl := auth.NewInMemoryTokenBlacklist()
		pair, _ := newTestTokenPair(t, svc, shared.RoleEmployee, nil)
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.NoError(t, bl.AddToBlacklist(ctx, claims.ID, time.Minute))

		rec := serveWithToken(jwtRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: bl}, nil), BearerPrefix+pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "TOKEN_REVOKED")
	})

	t.Run("user sessions invalidated after issue", func(t *testing.T) {
		bl := auth.NewInMemoryTokenBlacklist()
		pair, input := newTestTokenPair(t, svc, shared.RoleEmployee, nil)
		require.NoError(t, bl.AddUserTokensToBlacklist(ctx, input.UserID.String(), time.Minute))

		rec := serveWithToken(jwtRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: bl}, nil), BearerPrefix+pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "TOKEN_REVOKED")
	})

	t.Run("blacklist outage lets the request through", func(t *testing.T) {
		pair, _ := newTestTokenPair(t, svc, shared.RoleEmployee, nil)

		rec := serveWithToken(jwtRouter(JWTMiddlewareConfig{JWTService: svc, TokenBlacklist: failingBlacklist{}}, nil), BearerPrefix+pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGetPrincipal_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetPrincipal(c)
	assert.False(t, ok)
	assert.Nil(t, GetJWTClaims(c))
}
