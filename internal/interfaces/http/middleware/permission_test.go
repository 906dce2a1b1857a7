package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func roleRouter(p *shared.Principal, guard gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if p != nil {
			c.Set(PrincipalKey, *p)
		}
		c.Next()
	})
	router.GET("/guarded", guard, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestPermissions(t *testing.T) {
	branch := uuid.New()
	admin := &shared.Principal{UserID: uuid.New(), Role: shared.RoleAdmin}
	manager := &shared.Principal{UserID: uuid.New(), Role: shared.RoleManager, BranchID: &branch}
	employee := &shared.Principal{UserID: uuid.New(), Role: shared.RoleEmployee, BranchID: &branch}
	perms := NewPermissions(access.NewPolicy(), nil)

	tests := []struct {
		name   string
		caller *shared.Principal
		guard  gin.HandlerFunc
		want   int
	}{
		{"admin passes admin guard", admin, perms.RequireAdmin(), http.StatusOK},
		{"manager blocked by admin guard", manager, perms.RequireAdmin(), http.StatusForbidden},
		{"manager may use users", manager, perms.RequireAccess(access.ResourceUser), http.StatusOK},
		{"employee may not use users", employee, perms.RequireAccess(access.ResourceUser), http.StatusForbidden},
		{"employee may use invoices", employee, perms.RequireAccess(access.ResourceInvoice), http.StatusOK},
		{"no principal is unauthorized", nil, perms.RequireAdmin(), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			w := httptest.NewRecorder()
			roleRouter(tt.caller, tt.guard).ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			switch tt.want {
			case http.StatusForbidden:
				assert.Contains(t, w.Body.String(), "FORBIDDEN")
			case http.StatusUnauthorized:
				assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
			}
		})
	}
}

func TestPermissions_FollowPolicyTable(t *testing.T) {
	policy := access.NewPolicy()
	perms := NewPermissions(policy, nil)
	branch := uuid.New()

	for _, resource := range []access.Resource{access.ResourceBranch, access.ResourceProduct, access.ResourceStock, access.ResourceUser} {
		for _, role := range []shared.Role{shared.RoleAdmin, shared.RoleManager, shared.RoleEmployee} {
			p := shared.Principal{UserID: uuid.New(), Role: role, BranchID: &branch}
			want := http.StatusForbidden
			if policy.CanUse(p, resource) {
				want = http.StatusOK
			}

			w := httptest.NewRecorder()
			roleRouter(&p, perms.RequireAccess(resource)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
			assert.Equal(t, want, w.Code, "%s on %s", role, resource)
		}
	}
}
