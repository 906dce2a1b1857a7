package persistence

import (
	"strings"

	"github.com/jewelry-erp/backend/internal/domain/shared"
	"gorm.io/gorm/clause"
)

// sortColumns whitelists the columns a listing may be ordered by. Anything
// else falls back to created_at, so user input never reaches ORDER BY.
type sortColumns map[string]bool

const defaultSortColumn = "created_at"

func sortable(columns ...string) sortColumns {
	s := sortColumns{"id": true, "created_at": true, "updated_at": true}
	for _, c := range columns {
		s[c] = true
	}
	return s
}

var (
	namedSort     = sortable("name") // branches, sellers, vendors, customers
	warehouseSort = sortable("code", "cash")
	productSort   = sortable("name", "weight", "carat", "metal")
	stockSort     = sortable("quantity", "metal")
	transferSort  = sortable("status", "quantity", "action_date")
	invoiceSort   = sortable("total_price", "invoice_type", "transaction_type")
	userSort      = sortable("username", "email", "role", "last_login_at")
)

// orderBy resolves filter's ordering against the whitelist, qualified with
// the model's table so joins stay unambiguous.
func (s sortColumns) orderBy(filter shared.Filter) clause.OrderByColumn {
	column := strings.TrimSpace(filter.OrderBy)
	if !s[column] {
		column = defaultSortColumn
	}
	return clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: column},
		Desc:   !strings.EqualFold(strings.TrimSpace(filter.OrderDir), "asc"),
	}
}
