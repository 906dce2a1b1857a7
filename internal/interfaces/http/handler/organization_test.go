package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/jewelry-erp/backend/internal/application/catalog"
	orgapp "github.com/jewelry-erp/backend/internal/application/organization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarehouseHandler_BranchScope(t *testing.T) {
	h := newAPIHarness(t)
	admin := h.admin()
	north := h.seedBranch(admin, "North", "WH-N")
	south := h.seedBranch(admin, "South", "WH-S")

	t.Run("admin lists every branch", func(t *testing.T) {
		all := decodeData[[]orgapp.WarehouseResponse](t, h.do(admin, http.MethodGet, "/warehouses", nil), http.StatusOK)
		assert.Len(t, all, 2)
	})

	t.Run("manager lists only their branch", func(t *testing.T) {
		mine := decodeData[[]orgapp.WarehouseResponse](t,
			h.do(h.manager(north.branch.ID), http.MethodGet, "/warehouses", nil), http.StatusOK)
		require.Len(t, mine, 1)
		assert.Equal(t, north.warehouse.ID, mine[0].ID)
	})

	t.Run("manager cannot read another branch's warehouse", func(t *testing.T) {
		w := h.do(h.manager(north.branch.ID), http.MethodGet, "/warehouses/"+south.warehouse.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("branch filter", func(t *testing.T) {
		w := h.do(admin, http.MethodGet, "/warehouses?branch_id="+south.branch.ID.String(), nil)
		got := decodeData[[]orgapp.WarehouseResponse](t, w, http.StatusOK)
		require.Len(t, got, 1)
		assert.Equal(t, "WH-S", got[0].Code)
	})

	t.Run("duplicate code conflicts", func(t *testing.T) {
		w := h.do(admin, http.MethodPost, "/warehouses", gin.H{"code": "WH-N", "branch_id": south.branch.ID, "cash": "0"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing branch fails validation", func(t *testing.T) {
		w := h.do(admin, http.MethodPost, "/warehouses", gin.H{"code": "WH-X"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
		require.NotEmpty(t, env.Error.Details)
		assert.Equal(t, "branch_id", env.Error.Details[0].Field)
	})
}

func TestBranchHandler_Lifecycle(t *testing.T) {
	h := newAPIHarness(t)
	admin := h.admin()
	branch := decodeData[orgapp.BranchResponse](t,
		h.do(admin, http.MethodPost, "/branches", gin.H{"name": "Airport"}), http.StatusCreated)
	path := "/branches/" + branch.ID.String()

	t.Run("manager may not create branches", func(t *testing.T) {
		w := h.do(h.manager(branch.ID), http.MethodPost, "/branches", gin.H{"name": "Rogue"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rename", func(t *testing.T) {
		got := decodeData[orgapp.BranchResponse](t, h.do(admin, http.MethodPut, path, gin.H{"name": "Airport T2"}), http.StatusOK)
		assert.Equal(t, "Airport T2", got.Name)
	})

	t.Run("delete hides, include_deleted reveals, restore returns", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, h.do(admin, http.MethodDelete, path, nil).Code)
		assert.Equal(t, http.StatusNotFound, h.do(admin, http.MethodGet, path, nil).Code)

		listed := decodeData[[]orgapp.BranchResponse](t, h.do(admin, http.MethodGet, "/branches?include_deleted=true", nil), http.StatusOK)
		require.Len(t, listed, 1)
		assert.NotNil(t, listed[0].DeletedAt)

		require.Equal(t, http.StatusNoContent, h.do(admin, http.MethodPost, path+"/restore", nil).Code)
		assert.Equal(t, http.StatusOK, h.do(admin, http.MethodGet, path, nil).Code)
	})

	t.Run("hard delete is reserved to admins", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, h.do(h.manager(branch.ID), http.MethodDelete, path+"/hard", nil).Code)
		require.Equal(t, http.StatusNoContent, h.do(admin, http.MethodDelete, path+"/hard", nil).Code)
		assert.Equal(t, http.StatusNotFound, h.do(admin, http.MethodGet, path+"?include_deleted=true", nil).Code)
	})
}

func TestProductHandler(t *testing.T) {
	h := newAPIHarness(t)
	admin := h.admin()
	s := h.seedBranch(admin, "Downtown", "WH-DT")

	t.Run("unknown vendor", func(t *testing.T) {
		w := h.do(admin, http.MethodPost, "/products", gin.H{
			"metal": "gold", "vendor_id": s.branch.ID, "name": "orphan", "weight": "1",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("negative weight", func(t *testing.T) {
		w := h.do(admin, http.MethodPost, "/products", gin.H{
			"metal": "gold", "vendor_id": s.vendor.ID, "name": "heavy", "weight": "-1",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("filter by metal and vendor", func(t *testing.T) {
		w := h.do(admin, http.MethodGet, "/products?metal=gold&vendor_id="+s.vendor.ID.String(), nil)
		got := decodeData[[]catalogapp.ProductResponse](t, w, http.StatusOK)
		require.Len(t, got, 1)
		assert.Equal(t, s.product.ID, got[0].ID)

		w = h.do(admin, http.MethodGet, "/products?metal=silver", nil)
		assert.Empty(t, decodeData[[]catalogapp.ProductResponse](t, w, http.StatusOK))
	})

	t.Run("paging meta", func(t *testing.T) {
		w := h.do(admin, http.MethodGet, "/products?page=1&page_size=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		meta := decode(t, w).Meta
		require.NotNil(t, meta)
		assert.Equal(t, 1, meta.Page)
		assert.Equal(t, 5, meta.PageSize)
		assert.Equal(t, int64(1), meta.Total)
	})
}
