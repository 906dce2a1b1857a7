package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	identityapp "github.com/jewelry-erp/backend/internal/application/identity"
	"github.com/jewelry-erp/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// logoutRequest is the optional body of a logout
type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchanges username and password for an access and refresh token pair
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identityapp.LoginInput	true	"Credentials"
//	@Success		200		{object}	APIResponse[identityapp.TokenResult]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginInput
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Authenticate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh godoc
//
//	@Summary	Rotate a refresh token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		identityapp.RefreshTokenInput	true	"Refresh token"
//	@Success	200		{object}	APIResponse[identityapp.TokenResult]
//	@Failure	401		{object}	ErrorResponse
//	@Router		/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshTokenInput
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout godoc
//
//	@Summary		Log out
//	@Description	Revokes the access token of the request and, when given, the refresh token
//	@Tags			auth
//	@Accept			json
//	@Param			request	body	logoutRequest	false	"Refresh token"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := h.principal(c)
	if !ok {
		return
	}
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.BadRequest(c, "Missing access token claims")
		return
	}

	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.HandleValidationError(c, err)
		return
	}

	err := h.authService.Logout(c.Request.Context(), p, identityapp.LogoutInput{
		AccessTokenID:  claims.ID,
		AccessTokenTTL: claims.GetRemainingTTL(),
		RefreshToken:   req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
