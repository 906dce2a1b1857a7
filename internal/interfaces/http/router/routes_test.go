package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/auth"
	"github.com/jewelry-erp/backend/internal/infrastructure/config"
	"github.com/jewelry-erp/backend/internal/interfaces/http/handler"
	"github.com/jewelry-erp/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiEngine mounts the full route table over handlers without services.
// Requests that pass the middleware would panic, so these tests only
// exercise rejections and the table itself.
func apiEngine(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret-32-characters!",
		RefreshSecret:          "router-test-refresh-32-characters",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "router-test",
	})

	engine := gin.New()
	r := NewRouter(engine)
	RegisterAPI(r, Handlers{
		Auth:      handler.NewAuthHandler(nil),
		User:      handler.NewUserHandler(nil),
		Branch:    handler.NewBranchHandler(nil),
		Warehouse: handler.NewWarehouseHandler(nil),
		Seller:    handler.NewSellerHandler(nil),
		Vendor:    handler.NewVendorHandler(nil),
		Customer:  handler.NewCustomerHandler(nil),
		Product:   handler.NewProductHandler(nil),
		Stock:     handler.NewStockHandler(nil),
		Transfer:  handler.NewTransferHandler(nil),
		Invoice:   handler.NewInvoiceHandler(nil),
	}, Chains{
		Authenticated: []gin.HandlerFunc{middleware.JWTAuth(middleware.JWTMiddlewareConfig{JWTService: jwtService})},
		Permissions:   middleware.NewPermissions(access.NewPolicy(), nil),
	})
	r.Setup()
	RegisterSystem(engine, handler.NewSystemHandler("test"))
	return engine, jwtService
}

func bearer(t *testing.T, svc *auth.JWTService, role shared.Role) string {
	t.Helper()
	branch := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "router",
		Role:     role,
		BranchID: &branch,
	})
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func TestRegisterAPI_RouteTable(t *testing.T) {
	engine, _ := apiEngine(t)

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/logout",
		"GET /api/v1/profile",
		"POST /api/v1/users/:id/toggle-status",
		"DELETE /api/v1/users/:id/hard",
		"GET /api/v1/branches",
		"POST /api/v1/warehouses/:id/restore",
		"PUT /api/v1/sellers/:id",
		"GET /api/v1/vendors/:id",
		"DELETE /api/v1/customers/:id",
		"POST /api/v1/products",
		"PUT /api/v1/stock",
		"GET /api/v1/stock/summary",
		"POST /api/v1/stock/:id/adjust",
		"POST /api/v1/transfers/:id/approve",
		"POST /api/v1/transfers/:id/reject",
		"GET /api/v1/invoices/summary",
		"GET /api/v1/invoices/daily-sales",
		"GET /api/v1/invoices/:id/items",
		"GET /health",
		"GET /ready",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
	assert.False(t, registered["PUT /api/v1/transfers/:id"], "transfers are decided, never edited")
}

func TestRegisterAPI_Guards(t *testing.T) {
	engine, jwtService := apiEngine(t)

	tests := []struct {
		name   string
		method string
		path   string
		role   shared.Role
		want   int
	}{
		{"stock needs a token", http.MethodGet, "/api/v1/stock", "", http.StatusUnauthorized},
		{"invoices need a token", http.MethodPost, "/api/v1/invoices", "", http.StatusUnauthorized},
		{"logout needs a token", http.MethodPost, "/api/v1/auth/logout", "", http.StatusUnauthorized},
		{"employees cannot reach users", http.MethodGet, "/api/v1/users", shared.RoleEmployee, http.StatusForbidden},
		{"managers cannot hard delete users", http.MethodDelete, "/api/v1/users/" + uuid.NewString() + "/hard", shared.RoleManager, http.StatusForbidden},
		{"managers cannot hard delete stock", http.MethodDelete, "/api/v1/stock/" + uuid.NewString() + "/hard", shared.RoleManager, http.StatusForbidden},
		{"managers cannot hard delete branches", http.MethodDelete, "/api/v1/branches/" + uuid.NewString() + "/hard", shared.RoleManager, http.StatusForbidden},
		{"managers cannot reset passwords", http.MethodPost, "/api/v1/users/" + uuid.NewString() + "/password", shared.RoleManager, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.role != "" {
				req.Header.Set(middleware.AuthHeaderKey, bearer(t, jwtService, tt.role))
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRegisterSystem_Health(t *testing.T) {
	engine, _ := apiEngine(t)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}
