package handler

import (
	"github.com/gin-gonic/gin"
	orgapp "github.com/jewelry-erp/backend/internal/application/organization"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
)

// SellerHandler handles seller endpoints
type SellerHandler struct {
	lifecycleHandler
	sellerService *orgapp.SellerService
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(sellerService *orgapp.SellerService) *SellerHandler {
	return &SellerHandler{
		lifecycleHandler: lifecycleHandler{lifecycle: sellerService},
		sellerService:    sellerService,
	}
}

// Create handles POST /sellers
func (h *SellerHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req orgapp.SellerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	seller, err := h.sellerService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, seller)
}

// GetByID handles GET /sellers/:id
func (h *SellerHandler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	seller, err := h.sellerService.GetByID(c.Request.Context(), p, id, includeDeleted(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, seller)
}

// List handles GET /sellers
func (h *SellerHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var query appshared.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	branchID, ok := h.queryUUID(c, "branch_id")
	if !ok {
		return
	}

	sellers, total, err := h.sellerService.List(c.Request.Context(), p, query,
		orgapp.SellerListFilter{BranchID: branchID})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, sellers, total, query)
}

// Update handles PUT /sellers/:id
func (h *SellerHandler) Update(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req orgapp.SellerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	seller, err := h.sellerService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, seller)
}
