package handler

import "github.com/jewelry-erp/backend/internal/interfaces/http/dto"

// Typed forms of dto.Response named by the godoc annotations. Handlers
// build dto.Response directly.
type (
	APIResponse[T any] struct {
		Success bool           `json:"success"`
		Data    T              `json:"data,omitempty"`
		Error   *dto.ErrorInfo `json:"error,omitempty"`
		Meta    *dto.Meta      `json:"meta,omitempty"`
	}

	ErrorResponse struct {
		Success bool           `json:"success"`
		Error   *dto.ErrorInfo `json:"error,omitempty"`
	}
)
