package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/jewelry-erp/backend/internal/application/inventory"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
)

// StockHandler handles stock ledger endpoints
type StockHandler struct {
	lifecycleHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{
		lifecycleHandler: lifecycleHandler{lifecycle: stockService},
		stockService:     stockService,
	}
}

// Create godoc
//
//	@Summary		Create a stock row
//	@Description	Fails with 409 when the warehouse already holds a row for the product and metal
//	@Tags			stock
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventoryapp.StockRequest	true	"Stock row"
//	@Success		201		{object}	APIResponse[inventoryapp.StockResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/stock [post]
func (h *StockHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req inventoryapp.StockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	stock, err := h.stockService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, stock)
}

// Upsert godoc
//
//	@Summary		Create or overwrite a stock row
//	@Description	Sets the quantity of the (warehouse, product, metal) row, creating or restoring it as needed
//	@Tags			stock
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventoryapp.StockRequest	true	"Stock row"
//	@Success		200		{object}	APIResponse[inventoryapp.StockResponse]
//	@Security		BearerAuth
//	@Router			/stock [put]
func (h *StockHandler) Upsert(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req inventoryapp.StockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	stock, err := h.stockService.Upsert(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// SetQuantity godoc
//
//	@Summary	Overwrite the quantity of a stock row
//	@Tags		stock
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Stock ID"
//	@Param		request	body		inventoryapp.SetQuantityRequest	true	"Quantity"
//	@Success	200		{object}	APIResponse[inventoryapp.StockResponse]
//	@Security	BearerAuth
//	@Router		/stock/{id} [put]
func (h *StockHandler) SetQuantity(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.SetQuantityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	stock, err := h.stockService.SetQuantity(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// Adjust godoc
//
//	@Summary		Adjust a stock row by a signed delta
//	@Description	Rejects adjustments that would take the quantity below zero with INSUFFICIENT_STOCK
//	@Tags			stock
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Stock ID"
//	@Param			request	body		inventoryapp.AdjustStockRequest	true	"Adjustment"
//	@Success		200		{object}	APIResponse[inventoryapp.StockResponse]
//	@Failure		422		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/stock/{id}/adjust [post]
func (h *StockHandler) Adjust(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.AdjustStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	stock, err := h.stockService.Adjust(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// GetByID handles GET /stock/:id
func (h *StockHandler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	stock, err := h.stockService.GetByID(c.Request.Context(), p, id, includeDeleted(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// List handles GET /stock with warehouse_id, product_id and metal filters
func (h *StockHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var query appshared.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	var filter inventoryapp.StockListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.WarehouseID, ok = h.queryUUID(c, "warehouse_id"); !ok {
		return
	}
	if filter.ProductID, ok = h.queryUUID(c, "product_id"); !ok {
		return
	}

	rows, total, err := h.stockService.List(c.Request.Context(), p, query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, rows, total, query)
}

// Summary handles GET /stock/summary: quantity and weight per warehouse
func (h *StockHandler) Summary(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	summary, err := h.stockService.Summarize(c.Request.Context(), p, c.Query("metal"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
