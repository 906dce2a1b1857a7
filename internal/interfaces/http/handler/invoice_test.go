package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	invoicingapp "github.com/jewelry-erp/backend/internal/application/invoicing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceBody(s branchSetup, totals ...string) gin.H {
	items := make([]gin.H, len(totals))
	for i, total := range totals {
		items[i] = gin.H{
			"item_name":        "ring",
			"item_weight":      "3.5",
			"item_carat":       "21",
			"item_quantity":    1,
			"item_price":       total,
			"item_total_price": total,
			"vendor_name":      s.vendor.Name,
		}
	}
	return gin.H{
		"metal":            "gold",
		"warehouse_id":     s.warehouse.ID,
		"seller_id":        s.seller.ID,
		"branch_id":        s.branch.ID,
		"customer_id":      s.customer.ID,
		"gold_price_21":    "3100.50",
		"gold_price_24":    "3540.00",
		"transaction_type": "Cash",
		"invoice_type":     "Sale",
		"items":            items,
	}
}

func TestInvoiceHandler_Create(t *testing.T) {
	h := newAPIHarness(t)
	admin := h.admin()
	s := h.seedBranch(admin, "Downtown", "WH-DT")

	t.Run("total is the sum of item totals", func(t *testing.T) {
		inv := decodeData[invoicingapp.InvoiceResponse](t,
			h.do(admin, http.MethodPost, "/invoices", invoiceBody(s, "100.10", "200.20", "0.05")), http.StatusCreated)
		assert.True(t, inv.TotalPrice.Equal(decimal.RequireFromString("300.35")), inv.TotalPrice.String())
		assert.Len(t, inv.Items, 3)

		items := decodeData[[]invoicingapp.InvoiceItemResponse](t,
			h.do(admin, http.MethodGet, "/invoices/"+inv.ID.String()+"/items", nil), http.StatusOK)
		assert.Len(t, items, 3)
	})

	t.Run("no items totals zero", func(t *testing.T) {
		inv := decodeData[invoicingapp.InvoiceResponse](t,
			h.do(admin, http.MethodPost, "/invoices", invoiceBody(s)), http.StatusCreated)
		assert.True(t, inv.TotalPrice.IsZero())
	})

	t.Run("gold invoice without gold prices", func(t *testing.T) {
		body := invoiceBody(s, "10")
		delete(body, "gold_price_24")
		w := h.do(admin, http.MethodPost, "/invoices", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "MISSING_METAL_PRICE", errorCode(t, w))
	})

	t.Run("unknown metal fails binding", func(t *testing.T) {
		body := invoiceBody(s, "10")
		body["metal"] = "platinum"
		w := h.do(admin, http.MethodPost, "/invoices", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})
}

func TestInvoiceHandler_IdempotencyKey(t *testing.T) {
	h := newAPIHarness(t)
	admin := h.admin()
	s := h.seedBranch(admin, "Downtown", "WH-DT")

	first := decodeData[invoicingapp.InvoiceResponse](t,
		h.do(admin, http.MethodPost, "/invoices", invoiceBody(s, "50"), IdempotencyKeyHeader, "retry-1"), http.StatusCreated)
	second := decodeData[invoicingapp.InvoiceResponse](t,
		h.do(admin, http.MethodPost, "/invoices", invoiceBody(s, "50"), IdempotencyKeyHeader, "retry-1"), http.StatusCreated)
	assert.Equal(t, first.ID, second.ID)

	w := h.do(admin, http.MethodGet, "/invoices", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode(t, w).Meta.Total)

	long := make([]byte, maxIdempotencyKeyLength+1)
	for i := range long {
		long[i] = 'k'
	}
	w = h.do(admin, http.MethodPost, "/invoices", invoiceBody(s, "50"), IdempotencyKeyHeader, string(long))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_BranchScope(t *testing.T) {
	h := newAPIHarness(t)
	admin := h.admin()
	north := h.seedBranch(admin, "North", "WH-N")
	south := h.seedBranch(admin, "South", "WH-S")

	inv := decodeData[invoicingapp.InvoiceResponse](t,
		h.do(admin, http.MethodPost, "/invoices", invoiceBody(north, "75")), http.StatusCreated)

	southManager := h.manager(south.branch.ID)
	assert.Equal(t, http.StatusNotFound, h.do(southManager, http.MethodGet, "/invoices/"+inv.ID.String(), nil).Code)

	w := h.do(southManager, http.MethodGet, "/invoices", nil)
	assert.Empty(t, decodeData[[]invoicingapp.InvoiceResponse](t, w, http.StatusOK))

	t.Run("seller of another branch", func(t *testing.T) {
		body := invoiceBody(north, "10")
		body["seller_id"] = south.seller.ID
		w := h.do(admin, http.MethodPost, "/invoices", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestInvoiceHandler_ListFilters(t *testing.T) {
	h := newAPIHarness(t)
	admin := h.admin()
	s := h.seedBranch(admin, "Downtown", "WH-DT")
	decodeData[invoicingapp.InvoiceResponse](t, h.do(admin, http.MethodPost, "/invoices", invoiceBody(s, "10")), http.StatusCreated)

	tests := []struct {
		name  string
		query string
		code  int
		count int
	}{
		{"by branch", "?branch_id=" + s.branch.ID.String(), http.StatusOK, 1},
		{"by seller", "?seller_id=" + s.seller.ID.String(), http.StatusOK, 1},
		{"other metal", "?metal=silver", http.StatusOK, 0},
		{"bad seller id", "?seller_id=x", http.StatusBadRequest, 0},
		{"bad date", "?from=yesterday", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.do(admin, http.MethodGet, "/invoices"+tt.query, nil)
			if tt.code != http.StatusOK {
				assert.Equal(t, tt.code, w.Code)
				return
			}
			assert.Len(t, decodeData[[]invoicingapp.InvoiceResponse](t, w, http.StatusOK), tt.count)
		})
	}
}
