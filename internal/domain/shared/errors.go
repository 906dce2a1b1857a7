package shared

import "errors"

// ErrorKind classifies a domain error independently of any transport.
type ErrorKind string

const (
	// KindNotFound covers records that are absent or outside the caller's branch scope.
	// The two cases are deliberately indistinguishable.
	KindNotFound ErrorKind = "NOT_FOUND"
	// KindValidation covers structural violations detected before any mutation.
	KindValidation ErrorKind = "VALIDATION_FAILED"
	// KindConflict covers state-machine violations and uniqueness clashes.
	KindConflict ErrorKind = "CONFLICT"
	// KindPermissionDenied is used when the record is visible but the role may not act on it.
	KindPermissionDenied ErrorKind = "PERMISSION_DENIED"
	// KindAuthenticationFailed covers credential mismatches.
	KindAuthenticationFailed ErrorKind = "AUTHENTICATION_FAILED"
	// KindInternal covers storage failures and other unexpected conditions.
	KindInternal ErrorKind = "INTERNAL"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same kind and code,
// so sentinel values keep working with errors.Is after messages are customized.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a NotFound error naming the missing entity
func NewNotFoundError(entity string) *DomainError {
	return NewDomainError(KindNotFound, "NOT_FOUND", entity+" not found")
}

// NewValidationError creates a ValidationFailed error
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(KindValidation, code, message)
}

// NewConflictError creates a Conflict error
func NewConflictError(code, message string) *DomainError {
	return NewDomainError(KindConflict, code, message)
}

// NewInternalError wraps an unexpected failure. The cause is kept out of the
// message so storage details never reach the caller.
func NewInternalError(message string) *DomainError {
	return NewDomainError(KindInternal, "INTERNAL_ERROR", message)
}

// KindOf returns the kind of err, or KindInternal when err is not a DomainError.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError(KindConflict, "ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError(KindValidation, "INVALID_INPUT", "Invalid input provided")
	ErrPermissionDenied     = NewDomainError(KindPermissionDenied, "PERMISSION_DENIED", "Permission denied")
	ErrAuthenticationFailed = NewDomainError(KindAuthenticationFailed, "AUTHENTICATION_FAILED", "Invalid credentials")
	ErrInsufficientStock    = NewDomainError(KindValidation, "INSUFFICIENT_STOCK", "insufficient stock")
	ErrSameWarehouse        = NewDomainError(KindValidation, "SAME_WAREHOUSE", "Source and destination warehouses must differ")
	ErrTransferResolved     = NewDomainError(KindConflict, "TRANSFER_RESOLVED", "Transfer has already been resolved")
	ErrPasswordMismatch     = NewDomainError(KindValidation, "PASSWORD_MISMATCH", "New password and confirmation do not match")
)
