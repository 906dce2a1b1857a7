package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/interfaces/http/handler"
	"github.com/jewelry-erp/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the handlers mounted under the API prefix
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Branch    *handler.BranchHandler
	Warehouse *handler.WarehouseHandler
	Seller    *handler.SellerHandler
	Vendor    *handler.VendorHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Stock     *handler.StockHandler
	Transfer  *handler.TransferHandler
	Invoice   *handler.InvoiceHandler
}

// Chains holds the middleware placed in front of public and authenticated
// routes. Authenticated must start with the JWT middleware. Permissions
// supplies the role guards.
type Chains struct {
	Public        []gin.HandlerFunc
	Authenticated []gin.HandlerFunc
	Permissions   *middleware.Permissions
}

// resourceHandler is the CRUD and lifecycle surface of a resource
type resourceHandler interface {
	Create(c *gin.Context)
	GetByID(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Restore(c *gin.Context)
	HardDelete(c *gin.Context)
}

// resource registers CRUD, restore and hard delete routes under prefix
func resource(name, prefix string, h resourceHandler, perms *middleware.Permissions) *DomainGroup {
	g := NewDomainGroup(name, prefix)
	g.POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.GetByID).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete).
		POST("/:id/restore", h.Restore).
		DELETE("/:id/hard", perms.RequireAdmin(), h.HardDelete)
	return g
}

// RegisterAPI registers every /api/v1 route on r
func RegisterAPI(r *Router, h Handlers, chains Chains) {
	perms := chains.Permissions
	authRoutes := NewDomainGroup("auth", "/auth").Use(chains.Public...)
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/refresh", h.Auth.Refresh)
	authRoutes.Group("session", "").
		Use(chains.Authenticated...).
		POST("/logout", h.Auth.Logout)

	profile := NewDomainGroup("profile", "/profile").Use(chains.Authenticated...)
	profile.GET("", h.User.GetProfile).
		PUT("", h.User.UpdateProfile).
		POST("/password", h.User.ChangeOwnPassword)

	users := resource("users", "/users", h.User, perms).
		Use(chains.Authenticated...).
		Use(perms.RequireAccess(access.ResourceUser))
	users.POST("/:id/password", perms.RequireAdmin(), h.User.ChangePassword).
		POST("/:id/toggle-status", h.User.ToggleStatus)

	stock := NewDomainGroup("stock", "/stock").Use(chains.Authenticated...)
	stock.POST("", h.Stock.Create).
		PUT("", h.Stock.Upsert).
		GET("", h.Stock.List).
		GET("/summary", h.Stock.Summary).
		GET("/:id", h.Stock.GetByID).
		PUT("/:id", h.Stock.SetQuantity).
		POST("/:id/adjust", h.Stock.Adjust).
		DELETE("/:id", h.Stock.Delete).
		POST("/:id/restore", h.Stock.Restore).
		DELETE("/:id/hard", perms.RequireAdmin(), h.Stock.HardDelete)

	transfers := NewDomainGroup("transfers", "/transfers").Use(chains.Authenticated...)
	transfers.POST("", h.Transfer.Create).
		GET("", h.Transfer.List).
		GET("/:id", h.Transfer.GetByID).
		POST("/:id/approve", h.Transfer.Approve).
		POST("/:id/reject", h.Transfer.Reject)

	invoices := NewDomainGroup("invoices", "/invoices").Use(chains.Authenticated...)
	invoices.POST("", h.Invoice.Create).
		GET("", h.Invoice.List).
		GET("/summary", h.Invoice.Summary).
		GET("/daily-sales", h.Invoice.DailySales).
		GET("/:id", h.Invoice.GetByID).
		GET("/:id/items", h.Invoice.ListItems)

	r.Register(
		authRoutes,
		profile,
		users,
		resource("branches", "/branches", h.Branch, perms).Use(chains.Authenticated...),
		resource("warehouses", "/warehouses", h.Warehouse, perms).Use(chains.Authenticated...),
		resource("sellers", "/sellers", h.Seller, perms).Use(chains.Authenticated...),
		resource("vendors", "/vendors", h.Vendor, perms).Use(chains.Authenticated...),
		resource("customers", "/customers", h.Customer, perms).Use(chains.Authenticated...),
		resource("products", "/products", h.Product, perms).Use(chains.Authenticated...),
		stock,
		transfers,
		invoices,
	)
}

// RegisterSystem mounts the probes outside the versioned prefix
func RegisterSystem(engine *gin.Engine, h *handler.SystemHandler) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
}
