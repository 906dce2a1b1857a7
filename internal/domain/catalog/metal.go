package catalog

import (
	"fmt"
	"strings"

	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// Metal discriminates the gold and silver product lines. Products, stock
// rows and invoices each carry exactly one metal.
type Metal string

const (
	MetalGold   Metal = "gold"
	MetalSilver Metal = "silver"
)

// Metals lists every supported metal
var Metals = []Metal{MetalGold, MetalSilver}

// IsValid reports whether m is a known metal
func (m Metal) IsValid() bool {
	return m == MetalGold || m == MetalSilver
}

// ParseMetal parses a metal name case-insensitively
func ParseMetal(s string) (Metal, error) {
	m := Metal(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", shared.NewValidationError("INVALID_METAL", fmt.Sprintf("Unknown metal %q", s))
	}
	return m, nil
}
