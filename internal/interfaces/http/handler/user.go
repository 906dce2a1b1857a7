package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/jewelry-erp/backend/internal/application/identity"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	lifecycleHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{
		lifecycleHandler: lifecycleHandler{lifecycle: userService},
		userService:      userService,
	}
}

// Create godoc
//
//	@Summary		Create a user
//	@Description	Managers may only create Manager or Employee users of their own branch
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identityapp.CreateUserRequest	true	"User"
//	@Success		201		{object}	APIResponse[identityapp.UserResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req identityapp.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// GetByID handles GET /users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), p, id, includeDeleted(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// List godoc
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Param		role		query		string	false	"Admin, Manager or Employee"
//	@Param		branch_id	query		string	false	"Branch ID"
//	@Param		is_active	query		bool	false	"Active flag"
//	@Success	200			{object}	APIResponse[[]identityapp.UserResponse]
//	@Security	BearerAuth
//	@Router		/users [get]
func (h *UserHandler) List(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var query appshared.ListQuery
	if !h.bindQuery(c, &query) {
		return
	}
	var filter identityapp.UserListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.BranchID, ok = h.queryUUID(c, "branch_id"); !ok {
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), p, query, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, users, total, query)
}

// Update handles PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req identityapp.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), p, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangePassword godoc
//
//	@Summary		Set a user's password
//	@Description	Administrators only. The old password is required when it is the caller's own account.
//	@Tags			users
//	@Accept			json
//	@Param			id		path	string								true	"User ID"
//	@Param			request	body	identityapp.ChangePasswordRequest	true	"Passwords"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		403	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/users/{id}/password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req identityapp.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), p, id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ToggleStatus handles POST /users/:id/toggle-status
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.ToggleStatus(c.Request.Context(), p, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// GetProfile handles GET /profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}

	user, err := h.userService.Profile(c.Request.Context(), p)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdateProfile handles PUT /profile. Only the email can change.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req identityapp.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), p, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangeOwnPassword handles POST /profile/password
func (h *UserHandler) ChangeOwnPassword(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	var req identityapp.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangeOwnPassword(c.Request.Context(), p, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
