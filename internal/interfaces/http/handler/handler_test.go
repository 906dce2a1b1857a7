package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/jewelry-erp/backend/internal/application/catalog"
	identityapp "github.com/jewelry-erp/backend/internal/application/identity"
	inventoryapp "github.com/jewelry-erp/backend/internal/application/inventory"
	invoicingapp "github.com/jewelry-erp/backend/internal/application/invoicing"
	orgapp "github.com/jewelry-erp/backend/internal/application/organization"
	partnerapp "github.com/jewelry-erp/backend/internal/application/partner"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/auth"
	"github.com/jewelry-erp/backend/internal/infrastructure/cache"
	"github.com/jewelry-erp/backend/internal/infrastructure/config"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/models"
	"github.com/jewelry-erp/backend/internal/interfaces/http/dto"
	"github.com/jewelry-erp/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

const testPrincipalHeader = "X-Test-Principal"

// apiHarness serves the handlers over an in-memory SQLite database. Requests
// pick their caller with the X-Test-Principal header; the JWT layer is
// covered by the middleware tests.
type apiHarness struct {
	t          *testing.T
	engine     *gin.Engine
	principals map[string]shared.Principal
	jwt        *auth.JWTService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()
	policy := access.NewPolicy()
	tx := persistence.NewGormTransactionScope(db)

	branchRepo := persistence.NewGormBranchRepository(db)
	warehouseRepo := persistence.NewGormWarehouseRepository(db)
	vendorRepo := persistence.NewGormVendorRepository(db)
	userRepo := persistence.NewGormUserRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-32-characters",
		RefreshSecret:          "handler-test-refresh-32-characters",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "handler-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	invoiceService := invoicingapp.NewInvoiceService(persistence.NewGormInvoiceRepository(db), tx, policy, log)
	invoiceService.SetIdempotencyStore(cache.NewInMemoryIdempotencyStore(), time.Hour)
	userService := identityapp.NewUserService(userRepo, branchRepo, policy, log)
	userService.SetTokenBlacklist(blacklist, time.Hour)

	branches := NewBranchHandler(orgapp.NewBranchService(branchRepo, policy, log))
	warehouses := NewWarehouseHandler(orgapp.NewWarehouseService(warehouseRepo, branchRepo, policy, log))
	sellers := NewSellerHandler(orgapp.NewSellerService(persistence.NewGormSellerRepository(db), branchRepo, policy, log))
	vendors := NewVendorHandler(partnerapp.NewVendorService(vendorRepo, policy, log))
	customers := NewCustomerHandler(partnerapp.NewCustomerService(persistence.NewGormCustomerRepository(db), policy, log))
	products := NewProductHandler(catalogapp.NewProductService(persistence.NewGormProductRepository(db), vendorRepo, policy, log))
	stock := NewStockHandler(inventoryapp.NewStockService(persistence.NewGormStockRepository(db), tx, policy, log))
	transfers := NewTransferHandler(inventoryapp.NewTransferService(persistence.NewGormTransferRepository(db), tx, policy, log))
	invoices := NewInvoiceHandler(invoiceService)
	users := NewUserHandler(userService)
	authHandler := NewAuthHandler(identityapp.NewAuthService(userRepo, jwtService, blacklist, log))

	h := &apiHarness{t: t, principals: make(map[string]shared.Principal), jwt: jwtService}
	engine := gin.New()
	engine.POST("/auth/login", authHandler.Login)
	engine.POST("/auth/refresh", authHandler.Refresh)

	api := engine.Group("", h.principalMiddleware)
	for prefix, r := range map[string]interface {
		Create(*gin.Context)
		GetByID(*gin.Context)
		List(*gin.Context)
		Update(*gin.Context)
		Delete(*gin.Context)
		Restore(*gin.Context)
		HardDelete(*gin.Context)
	}{
		"/branches": branches, "/warehouses": warehouses, "/sellers": sellers,
		"/vendors": vendors, "/customers": customers, "/products": products, "/users": users,
	} {
		g := api.Group(prefix)
		g.POST("", r.Create)
		g.GET("", r.List)
		g.GET("/:id", r.GetByID)
		g.PUT("/:id", r.Update)
		g.DELETE("/:id", r.Delete)
		g.POST("/:id/restore", r.Restore)
		g.DELETE("/:id/hard", r.HardDelete)
	}
	api.POST("/users/:id/toggle-status", users.ToggleStatus)
	api.GET("/profile", users.GetProfile)

	api.POST("/stock", stock.Create)
	api.PUT("/stock", stock.Upsert)
	api.GET("/stock", stock.List)
	api.GET("/stock/:id", stock.GetByID)
	api.PUT("/stock/:id", stock.SetQuantity)
	api.POST("/stock/:id/adjust", stock.Adjust)
	api.DELETE("/stock/:id", stock.Delete)
	api.POST("/stock/:id/restore", stock.Restore)

	api.POST("/transfers", transfers.Create)
	api.GET("/transfers", transfers.List)
	api.GET("/transfers/:id", transfers.GetByID)
	api.POST("/transfers/:id/approve", transfers.Approve)
	api.POST("/transfers/:id/reject", transfers.Reject)

	api.POST("/invoices", invoices.Create)
	api.GET("/invoices", invoices.List)
	api.GET("/invoices/:id", invoices.GetByID)
	api.GET("/invoices/:id/items", invoices.ListItems)

	h.engine = engine
	return h
}

func (h *apiHarness) principalMiddleware(c *gin.Context) {
	if p, ok := h.principals[c.GetHeader(testPrincipalHeader)]; ok {
		c.Set(middleware.PrincipalKey, p)
	}
	c.Next()
}

// as registers p under name for later requests
func (h *apiHarness) as(name string, p shared.Principal) string {
	h.principals[name] = p
	return name
}

func (h *apiHarness) admin() string {
	return h.as("admin", shared.Principal{UserID: uuid.New(), Username: "admin", Role: shared.RoleAdmin})
}

func (h *apiHarness) manager(branchID uuid.UUID) string {
	return h.as("manager-"+branchID.String(), shared.Principal{
		UserID: uuid.New(), Username: "manager", Role: shared.RoleManager, BranchID: &branchID,
	})
}

func (h *apiHarness) do(caller, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set(testPrincipalHeader, caller)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder, wantStatus int) T {
	t.Helper()
	require.Equal(t, wantStatus, w.Code, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &out))
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := decode(t, w)
	require.NotNil(t, env.Error, w.Body.String())
	return env.Error.Code
}

// branchSetup is one branch with a warehouse, seller, vendor, customer and a gold product
type branchSetup struct {
	branch    orgapp.BranchResponse
	warehouse orgapp.WarehouseResponse
	seller    orgapp.SellerResponse
	vendor    partnerapp.VendorResponse
	customer  partnerapp.CustomerResponse
	product   catalogapp.ProductResponse
}

func (h *apiHarness) seedBranch(admin, name, warehouseCode string) branchSetup {
	t := h.t
	t.Helper()
	var s branchSetup
	s.branch = decodeData[orgapp.BranchResponse](t,
		h.do(admin, http.MethodPost, "/branches", gin.H{"name": name}), http.StatusCreated)
	s.warehouse = decodeData[orgapp.WarehouseResponse](t,
		h.do(admin, http.MethodPost, "/warehouses", gin.H{"code": warehouseCode, "branch_id": s.branch.ID, "cash": "1000"}),
		http.StatusCreated)
	s.seller = decodeData[orgapp.SellerResponse](t,
		h.do(admin, http.MethodPost, "/sellers", gin.H{"name": name + " seller", "branch_id": s.branch.ID}), http.StatusCreated)
	s.vendor = decodeData[partnerapp.VendorResponse](t,
		h.do(admin, http.MethodPost, "/vendors", gin.H{"name": name + " vendor"}), http.StatusCreated)
	s.customer = decodeData[partnerapp.CustomerResponse](t,
		h.do(admin, http.MethodPost, "/customers", gin.H{"name": name + " customer", "phone": "0100000000"}), http.StatusCreated)
	s.product = decodeData[catalogapp.ProductResponse](t,
		h.do(admin, http.MethodPost, "/products", gin.H{
			"metal": "gold", "vendor_id": s.vendor.ID, "name": name + " ring", "weight": "4.25", "carat": "21",
		}), http.StatusCreated)
	return s
}

func (h *apiHarness) seedStock(caller string, s branchSetup, qty int64) inventoryapp.StockResponse {
	h.t.Helper()
	return decodeData[inventoryapp.StockResponse](h.t,
		h.do(caller, http.MethodPost, "/stock", gin.H{
			"warehouse_id": s.warehouse.ID, "product_id": s.product.ID, "metal": "gold", "quantity": qty,
		}), http.StatusCreated)
}
