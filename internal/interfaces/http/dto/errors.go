package dto

import (
	"errors"
	"net/http"

	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// Codes produced by the HTTP layer itself. Domain errors keep their own
// codes (INSUFFICIENT_STOCK, TRANSFER_RESOLVED, ...).
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidID       = "INVALID_ID"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

// ErrorKindHTTPStatus maps domain error kinds to HTTP status codes
var ErrorKindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindNotFound:             http.StatusNotFound,
	shared.KindValidation:           http.StatusBadRequest,
	shared.KindConflict:             http.StatusConflict,
	shared.KindPermissionDenied:     http.StatusForbidden,
	shared.KindAuthenticationFailed: http.StatusUnauthorized,
	shared.KindInternal:             http.StatusInternalServerError,
}

// unprocessableCodes are validation failures caused by current state rather
// than by the shape of the request
var unprocessableCodes = map[string]bool{
	shared.ErrInsufficientStock.Code: true,
}

// StatusFor returns the HTTP status for a domain error
func StatusFor(err *shared.DomainError) int {
	if err.Kind == shared.KindValidation && unprocessableCodes[err.Code] {
		return http.StatusUnprocessableEntity
	}
	if status, ok := ErrorKindHTTPStatus[err.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromError builds the status and body for err. Anything that is not a
// domain error, and every internal error, is reported without its message.
func FromError(err error, requestID string) (int, Response) {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) || domainErr.Kind == shared.KindInternal {
		return http.StatusInternalServerError,
			NewErrorResponse(ErrCodeInternal, "An unexpected error occurred", requestID)
	}
	return StatusFor(domainErr), NewErrorResponse(domainErr.Code, domainErr.Message, requestID)
}
