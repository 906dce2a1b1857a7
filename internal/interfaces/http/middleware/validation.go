package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jewelry-erp/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// SetupValidator reports JSON (or form) field names in validation errors and
// lets numeric tags such as gte and gt apply to decimal weights and prices.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(fieldName)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return fld.Name
}

// ruleMessages maps validator tags to messages; %s receives the tag parameter.
var ruleMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"len":      "Must be exactly %s characters",
	"uuid":     "Invalid UUID format",
	"oneof":    "Must be one of: %s",
	"gte":      "Must be greater than or equal to %s",
	"lte":      "Must be less than or equal to %s",
	"gt":       "Must be greater than %s",
	"lt":       "Must be less than %s",
	"numeric":  "Must be numeric",
	"alphanum": "Must be alphanumeric",
	"datetime": "Must be a date in the format %s",
}

func ruleMessage(e validator.FieldError) string {
	if e.Tag() == "min" || e.Tag() == "max" {
		bound := "at least"
		if e.Tag() == "max" {
			bound = "at most"
		}
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be %s %s characters", bound, e.Param())
		}
		return fmt.Sprintf("Must be %s %s", bound, e.Param())
	}
	tmpl, ok := ruleMessages[e.Tag()]
	if !ok {
		return "Invalid value"
	}
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, e.Param())
	}
	return tmpl
}

// FormatValidationErrors lists every failing field of err.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var verrs validator.ValidationErrors
	errors.As(err, &verrs)
	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, dto.ValidationDetail{Field: e.Field(), Message: ruleMessage(e)})
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError answers a failed bind. Field failures are
// VALIDATION_ERROR with details, a body cut off by BodyLimit is
// PAYLOAD_TOO_LARGE, and anything else is a malformed request.
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(RequestIDKey)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		rejectOversized(c, tooLarge.Limit)
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, FormatValidationErrors(err, requestID))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, "Malformed request body", requestID))
}
