package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Permissions builds route guards from the access policy, so routes reject
// early with the same role rules the services enforce.
type Permissions struct {
	policy *access.Policy
	logger *zap.Logger
}

// NewPermissions creates route guards over policy
func NewPermissions(policy *access.Policy, logger *zap.Logger) *Permissions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Permissions{policy: policy, logger: logger}
}

// RequireAccess admits callers whose role may use resource.
// It must run after JWTAuth.
func (p *Permissions) RequireAccess(resource access.Resource) gin.HandlerFunc {
	return p.guard(func(principal shared.Principal) bool {
		return p.policy.CanUse(principal, resource)
	})
}

// RequireAdmin admits only administrators
func (p *Permissions) RequireAdmin() gin.HandlerFunc {
	return p.guard(func(principal shared.Principal) bool {
		return p.policy.RequireAdmin(principal) == nil
	})
}

func (p *Permissions) guard(allowed func(shared.Principal) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
			return
		}
		if !allowed(principal) {
			p.logger.Warn("Role check failed",
				zap.String("user_id", principal.UserID.String()),
				zap.String("role", string(principal.Role)),
				zap.String("path", c.FullPath()),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden, "Insufficient role for this operation", c.GetString(RequestIDKey)))
			return
		}
		c.Next()
	}
}
