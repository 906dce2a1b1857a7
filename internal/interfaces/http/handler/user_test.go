package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/jewelry-erp/backend/internal/application/identity"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_LoginAndRefresh(t *testing.T) {
	h := newAPIHarness(t)
	admin := h.admin()
	s := h.seedBranch(admin, "Downtown", "WH-DT")

	created := decodeData[identityapp.UserResponse](t, h.do(admin, http.MethodPost, "/users", gin.H{
		"username":  "clerk",
		"email":     "clerk@example.com",
		"password":  "counter-secret",
		"role":      "Employee",
		"branch_id": s.branch.ID,
	}), http.StatusCreated)
	assert.True(t, created.IsActive)
	assert.Equal(t, s.branch.ID, *created.BranchID)

	login := func(password string) *httptest.ResponseRecorder {
		return h.do("", http.MethodPost, "/auth/login", gin.H{"username": "clerk", "password": password})
	}

	t.Run("wrong password", func(t *testing.T) {
		w := login("not-the-secret")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "AUTHENTICATION_FAILED", errorCode(t, w))
	})

	t.Run("unknown user fails the same way", func(t *testing.T) {
		w := h.do("", http.MethodPost, "/auth/login", gin.H{"username": "ghost", "password": "counter-secret"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "AUTHENTICATION_FAILED", errorCode(t, w))
	})

	t.Run("missing password", func(t *testing.T) {
		w := h.do("", http.MethodPost, "/auth/login", gin.H{"username": "clerk"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})

	var tokens identityapp.TokenResult
	t.Run("login", func(t *testing.T) {
		tokens = decodeData[identityapp.TokenResult](t, login("counter-secret"), http.StatusOK)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, shared.RoleEmployee, tokens.User.Role)
		assert.NotNil(t, tokens.User.LastLoginAt)

		claims, err := h.jwt.ValidateAccessToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, created.ID.String(), claims.UserID)
	})

	t.Run("refresh rotates the refresh token", func(t *testing.T) {
		require.NotEmpty(t, tokens.RefreshToken)
		next := decodeData[identityapp.TokenResult](t,
			h.do("", http.MethodPost, "/auth/refresh", gin.H{"refresh_token": tokens.RefreshToken}), http.StatusOK)
		assert.NotEqual(t, tokens.RefreshToken, next.RefreshToken)

		reused := h.do("", http.MethodPost, "/auth/refresh", gin.H{"refresh_token": tokens.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, reused.Code)
		assert.Equal(t, "TOKEN_REVOKED", errorCode(t, reused))
	})

	t.Run("garbage refresh token", func(t *testing.T) {
		w := h.do("", http.MethodPost, "/auth/refresh", gin.H{"refresh_token": "abc.def.ghi"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deactivated user cannot log in", func(t *testing.T) {
		got := decodeData[identityapp.UserResponse](t,
			h.do(admin, http.MethodPost, "/users/"+created.ID.String()+"/toggle-status", nil), http.StatusOK)
		require.False(t, got.IsActive)
		assert.Equal(t, http.StatusUnauthorized, login("counter-secret").Code)
	})
}

func TestUserHandler_Guards(t *testing.T) {
	h := newAPIHarness(t)
	selfID := uuid.New()
	self := h.as("self", shared.Principal{UserID: selfID, Username: "root", Role: shared.RoleAdmin})

	t.Run("cannot toggle own status", func(t *testing.T) {
		w := h.do(self, http.MethodPost, "/users/"+selfID.String()+"/toggle-status", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "CANNOT_DEACTIVATE_SELF", errorCode(t, w))
	})

	t.Run("employees cannot manage users", func(t *testing.T) {
		employee := h.as("employee", shared.Principal{UserID: uuid.New(), Username: "emp", Role: shared.RoleEmployee})
		w := h.do(employee, http.MethodGet, "/users", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("weak password", func(t *testing.T) {
		w := h.do(self, http.MethodPost, "/users", gin.H{
			"username": "shorty", "email": "s@example.com", "password": "123", "role": "Admin",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})

	t.Run("unknown role filter", func(t *testing.T) {
		w := h.do(self, http.MethodGet, "/users?role=Owner", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
