package shared

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmount is the exclusive bound of a numeric(10,2) column.
var maxAmount = decimal.New(1, 8)

// ValidateAmount checks that d fits numeric(10,2) and, unless allowNegative,
// is not negative.
func ValidateAmount(field string, d decimal.Decimal, allowNegative bool) error {
	if !allowNegative && d.IsNegative() {
		return NewValidationError("INVALID_AMOUNT", fmt.Sprintf("%s cannot be negative", field))
	}
	if !d.Equal(d.Round(2)) {
		return NewValidationError("INVALID_AMOUNT", fmt.Sprintf("%s allows at most 2 decimal places", field))
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return NewValidationError("INVALID_AMOUNT", fmt.Sprintf("%s is too large", field))
	}
	return nil
}

// ValidateName checks a required short text field
func ValidateName(field, value string, max int) error {
	code := "INVALID_" + strings.ToUpper(strings.ReplaceAll(field, " ", "_"))
	if strings.TrimSpace(value) == "" {
		return NewValidationError(code, fmt.Sprintf("%s cannot be empty", field))
	}
	if len(value) > max {
		return NewValidationError(code, fmt.Sprintf("%s cannot exceed %d characters", field, max))
	}
	return nil
}
