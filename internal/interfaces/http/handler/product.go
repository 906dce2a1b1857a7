package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/jewelry-erp/backend/internal/application/catalog"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	lifecycleHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		lifecycleHandler: lifecycleHandler{lifecycle: productService},
		productService:   productService,
	}
}

// Create godoc
//
//	@Summary		Create a product
//	@Description	Creates a gold or silver product of an existing vendor
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapp.ProductRequest	true	"Product"
//	@Success		201		{object}	APIResponse[catalogapp.ProductResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID godoc
//
//	@Summary	Get a product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	APIResponse[catalogapp.ProductResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), p, id, includeDeleted(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List godoc
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Param		metal		query		string	false	"gold or silver"
//	@Param		vendor_id	query		string	false	"Vendor ID"
//	@Param		search		query		string	false	"Name search"
//	@Success	200			{object}	APIResponse[[]catalogapp.ProductResponse]
//	@Security	BearerAuth
//	@Router		/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var query appshared.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	var filter catalogapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	vendorID, ok := h.queryUUID(c, "vendor_id")
	if !ok {
		return
	}
	filter.VendorID = vendorID

	products, total, err := h.productService.List(c.Request.Context(), p, query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, products, total, query)
}

// Update godoc
//
//	@Summary		Replace a product
//	@Description	The metal of a product cannot change
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Product ID"
//	@Param			request	body		catalogapp.ProductRequest	true	"Product"
//	@Success		200		{object}	APIResponse[catalogapp.ProductResponse]
//	@Security		BearerAuth
//	@Router			/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
