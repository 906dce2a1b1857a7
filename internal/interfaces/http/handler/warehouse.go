package handler

import (
	"github.com/gin-gonic/gin"
	orgapp "github.com/jewelry-erp/backend/internal/application/organization"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
)

// WarehouseHandler handles warehouse-related API endpoints
type WarehouseHandler struct {
	lifecycleHandler
	warehouseService *orgapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *orgapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{
		lifecycleHandler: lifecycleHandler{lifecycle: warehouseService},
		warehouseService: warehouseService,
	}
}

// Create godoc
//
//	@Summary		Create a warehouse
//	@Description	The warehouse code must be unique across branches
//	@Tags			warehouses
//	@Accept			json
//	@Produce		json
//	@Param			request	body		orgapp.WarehouseRequest	true	"Warehouse"
//	@Success		201		{object}	APIResponse[orgapp.WarehouseResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req orgapp.WarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	warehouse, err := h.warehouseService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, warehouse)
}

// GetByID godoc
//
//	@Summary	Get a warehouse
//	@Tags		warehouses
//	@Produce	json
//	@Param		id	path		string	true	"Warehouse ID"
//	@Success	200	{object}	APIResponse[orgapp.WarehouseResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.GetByID(c.Request.Context(), p, id, includeDeleted(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// List godoc
//
//	@Summary	List warehouses
//	@Tags		warehouses
//	@Produce	json
//	@Param		branch_id	query		string	false	"Branch ID"
//	@Param		search		query		string	false	"Code search"
//	@Success	200			{object}	APIResponse[[]orgapp.WarehouseResponse]
//	@Security	BearerAuth
//	@Router		/warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
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

	warehouses, total, err := h.warehouseService.List(c.Request.Context(), p, query,
		orgapp.WarehouseListFilter{BranchID: branchID})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, warehouses, total, query)
}

// Update godoc
//
//	@Summary	Replace a warehouse
//	@Tags		warehouses
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Warehouse ID"
//	@Param		request	body		orgapp.WarehouseRequest	true	"Warehouse"
//	@Success	200		{object}	APIResponse[orgapp.WarehouseResponse]
//	@Security	BearerAuth
//	@Router		/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req orgapp.WarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	warehouse, err := h.warehouseService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}
