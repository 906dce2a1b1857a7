package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jewelry-erp/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	Email  string          `json:"email" binding:"required,email"`
	Qty    int64           `json:"qty" binding:"required,min=1"`
	Amount decimal.Decimal `json:"amount" binding:"gte=0"`
}

func bindRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req bindTarget
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleValidationError(t *testing.T) {
	router := bindRouter()

	t.Run("reports each failing field by its JSON name", func(t *testing.T) {
		w := postJSON(router, `{"email": "invalid", "qty": 0, "amount": "1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.Equal(t, "This field is required", fields["qty"])
	})

	t.Run("negative decimal fails gte", func(t *testing.T) {
		w := postJSON(router, `{"email": "a@b.co", "qty": 1, "amount": "-0.01"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"amount"`)
	})

	t.Run("malformed JSON is a bad request without details", func(t *testing.T) {
		w := postJSON(router, `{"email":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeBadRequest)
	})

	t.Run("valid input passes", func(t *testing.T) {
		w := postJSON(router, `{"email": "a@b.co", "qty": 2, "amount": "10.50"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
