package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/jewelry-erp/backend/internal/application/inventory"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// TransferHandler handles warehouse transfer endpoints
type TransferHandler struct {
	BaseHandler
	transferService *inventoryapp.TransferService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transferService *inventoryapp.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Create godoc
//
//	@Summary		Request a transfer between two warehouses
//	@Description	The transfer starts Pending; source and destination must differ
//	@Tags			transfers
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventoryapp.CreateTransferRequest	true	"Transfer"
//	@Success		201		{object}	APIResponse[inventoryapp.TransferResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/transfers [post]
func (h *TransferHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateTransferRequest
	if !h.bindJSON(c, &req) {
		return
	}

	transfer, err := h.transferService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, transfer)
}

// Approve godoc
//
//	@Summary	Approve a pending transfer
//	@Tags		transfers
//	@Produce	json
//	@Param		id	path		string	true	"Transfer ID"
//	@Success	200	{object}	APIResponse[inventoryapp.TransferResponse]
//	@Failure	409	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/transfers/{id}/approve [post]
func (h *TransferHandler) Approve(c *gin.Context) {
	h.resolve(c, h.transferService.Approve)
}

// Reject godoc
//
//	@Summary	Reject a pending transfer
//	@Tags		transfers
//	@Produce	json
//	@Param		id	path		string	true	"Transfer ID"
//	@Success	200	{object}	APIResponse[inventoryapp.TransferResponse]
//	@Failure	409	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/transfers/{id}/reject [post]
func (h *TransferHandler) Reject(c *gin.Context) {
	h.resolve(c, h.transferService.Reject)
}

func (h *TransferHandler) resolve(c *gin.Context, op func(context.Context, shared.Principal, uuid.UUID) (*inventoryapp.TransferResponse, error)) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	transfer, err := op(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transfer)
}

// GetByID handles GET /transfers/:id
func (h *TransferHandler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	transfer, err := h.transferService.GetByID(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, transfer)
}

// List handles GET /transfers. warehouse_id matches either end of a transfer.
func (h *TransferHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var query appshared.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	var filter inventoryapp.TransferListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.WarehouseID, ok = h.queryUUID(c, "warehouse_id"); !ok {
		return
	}

	transfers, total, err := h.transferService.List(c.Request.Context(), p, query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, transfers, total, query)
}
