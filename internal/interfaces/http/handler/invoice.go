package handler

import (
	"github.com/gin-gonic/gin"
	invoicingapp "github.com/jewelry-erp/backend/internal/application/invoicing"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
)

// IdempotencyKeyHeader lets clients retry invoice creation safely
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 255

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoicingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *invoicingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create godoc
//
//	@Summary		Create an invoice
//	@Description	Creates the invoice and its items atomically. The total is the sum of item totals.
//	@Description	A repeated Idempotency-Key returns the invoice created by the first request.
//	@Tags			invoices
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string								false	"Client retry key"
//	@Param			request			body		invoicingapp.CreateInvoiceRequest	true	"Invoice"
//	@Success		201				{object}	APIResponse[invoicingapp.InvoiceResponse]
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		409				{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	key := c.GetHeader(IdempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLength {
		h.BadRequest(c, "Idempotency-Key is too long")
		return
	}
	var req invoicingapp.CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), p, req, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// GetByID godoc
//
//	@Summary	Get an invoice with its items
//	@Tags		invoices
//	@Produce	json
//	@Param		id	path		string	true	"Invoice ID"
//	@Success	200	{object}	APIResponse[invoicingapp.InvoiceResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// ListItems handles GET /invoices/:id/items
func (h *InvoiceHandler) ListItems(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	items, err := h.invoiceService.ListItems(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// List godoc
//
//	@Summary	List invoices
//	@Tags		invoices
//	@Produce	json
//	@Param		metal				query		string	false	"gold or silver"
//	@Param		invoice_type		query		string	false	"Invoice type"
//	@Param		transaction_type	query		string	false	"Cash or Visa"
//	@Param		branch_id			query		string	false	"Branch ID"
//	@Param		seller_id			query		string	false	"Seller ID"
//	@Param		warehouse_id		query		string	false	"Warehouse ID"
//	@Param		from				query		string	false	"First day (YYYY-MM-DD)"
//	@Param		to					query		string	false	"Last day (YYYY-MM-DD)"
//	@Success	200					{object}	APIResponse[[]invoicingapp.InvoiceResponse]
//	@Security	BearerAuth
//	@Router		/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var query appshared.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	var filter invoicingapp.InvoiceListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.BranchID, ok = h.queryUUID(c, "branch_id"); !ok {
		return
	}
	if filter.SellerID, ok = h.queryUUID(c, "seller_id"); !ok {
		return
	}
	if filter.WarehouseID, ok = h.queryUUID(c, "warehouse_id"); !ok {
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), p, query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, invoices, total, query)
}

// Summary handles GET /invoices/summary: count and amount per invoice type
// and payment method between start_date and end_date
func (h *InvoiceHandler) Summary(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var q invoicingapp.SummaryQuery
	if !h.bindQuery(c, &q) {
		return
	}

	summary, err := h.invoiceService.Summary(c.Request.Context(), p, q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// DailySales handles GET /invoices/daily-sales
func (h *InvoiceHandler) DailySales(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	sales, err := h.invoiceService.DailySales(c.Request.Context(), p, c.Query("metal"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}
