package handler

import (
	"github.com/gin-gonic/gin"
	orgapp "github.com/jewelry-erp/backend/internal/application/organization"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
)

// BranchHandler handles branch-related API endpoints
type BranchHandler struct {
	lifecycleHandler
	branchService *orgapp.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *orgapp.BranchService) *BranchHandler {
	return &BranchHandler{
		lifecycleHandler: lifecycleHandler{lifecycle: branchService},
		branchService:    branchService,
	}
}

// Create godoc
//
//	@Summary	Create a branch
//	@Tags		branches
//	@Accept		json
//	@Produce	json
//	@Param		request	body		orgapp.BranchRequest	true	"Branch"
//	@Success	201		{object}	APIResponse[orgapp.BranchResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req orgapp.BranchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	branch, err := h.branchService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, branch)
}

// GetByID godoc
//
//	@Summary	Get a branch
//	@Tags		branches
//	@Produce	json
//	@Param		id				path		string	true	"Branch ID"
//	@Param		include_deleted	query		bool	false	"Return the branch even if deleted"
//	@Success	200				{object}	APIResponse[orgapp.BranchResponse]
//	@Failure	404				{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/branches/{id} [get]
func (h *BranchHandler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	branch, err := h.branchService.GetByID(c.Request.Context(), p, id, includeDeleted(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, branch)
}

// List godoc
//
//	@Summary	List branches
//	@Tags		branches
//	@Produce	json
//	@Param		page			query		int		false	"Page number"
//	@Param		page_size		query		int		false	"Page size"
//	@Param		search			query		string	false	"Name search"
//	@Param		include_deleted	query		bool	false	"Include deleted branches"
//	@Success	200				{object}	APIResponse[[]orgapp.BranchResponse]
//	@Security	BearerAuth
//	@Router		/branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var query appshared.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}

	branches, total, err := h.branchService.List(c.Request.Context(), p, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, branches, total, query)
}

// Update godoc
//
//	@Summary	Rename a branch
//	@Tags		branches
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Branch ID"
//	@Param		request	body		orgapp.BranchRequest	true	"Branch"
//	@Success	200		{object}	APIResponse[orgapp.BranchResponse]
//	@Security	BearerAuth
//	@Router		/branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req orgapp.BranchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	branch, err := h.branchService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, branch)
}
