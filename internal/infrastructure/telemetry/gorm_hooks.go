package telemetry

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type queryStartKey struct{}

// ledgerTables are the tables whose rows move metal between warehouses and
// customers. Statements against them get an extra span attribute so stock
// writes can be filtered out of general query noise.
var ledgerTables = map[string]bool{
	"warehouse_stock":     true,
	"warehouse_transfers": true,
	"invoices":            true,
	"invoice_items":       true,
}

func isLedgerTable(table string) bool {
	return ledgerTables[table]
}

func markQueryStart(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, queryStartKey{}, time.Now())
}

func queryElapsed(db *gorm.DB) (time.Duration, bool) {
	if db.Statement.Context == nil {
		return 0, false
	}
	start, ok := db.Statement.Context.Value(queryStartKey{}).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}

// sqlVerb reads the operation off raw SQL for Row and Raw statements.
func sqlVerb(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, verb := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, verb) {
			return verb
		}
	}
	if strings.HasPrefix(sql, "WITH") {
		return "SELECT"
	}
	return "OTHER"
}

// hookSet describes one before/after pair to hang around every gorm processor.
// When afterOrder is set, after hooks run ahead of the callback named
// afterOrder+kind ("otel:after:" keeps them inside the otelgorm span).
type hookSet struct {
	name       string
	before     func(*gorm.DB)
	after      func(db *gorm.DB, operation string)
	afterOrder string
}

func (h hookSet) register(db *gorm.DB) error {
	cb := db.Callback()
	afterFor := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			op := operation
			if op == "" {
				op = sqlVerb(tx.Statement.SQL.String())
			}
			h.after(tx, op)
		}
	}
	order := func(kind string) string {
		if h.afterOrder == "" {
			return ""
		}
		return h.afterOrder + kind
	}

	var errs []error
	for _, p := range []struct {
		kind      string
		operation string
		before    func(name string, fn func(*gorm.DB)) error
		after     func(name, ahead string, fn func(*gorm.DB)) error
	}{
		{"create", "INSERT",
			func(n string, fn func(*gorm.DB)) error { return cb.Create().Before("gorm:create").Register(n, fn) },
			func(n, a string, fn func(*gorm.DB)) error { return cb.Create().After("gorm:create").Before(a).Register(n, fn) }},
		{"query", "SELECT",
			func(n string, fn func(*gorm.DB)) error { return cb.Query().Before("gorm:query").Register(n, fn) },
			func(n, a string, fn func(*gorm.DB)) error { return cb.Query().After("gorm:query").Before(a).Register(n, fn) }},
		{"update", "UPDATE",
			func(n string, fn func(*gorm.DB)) error { return cb.Update().Before("gorm:update").Register(n, fn) },
			func(n, a string, fn func(*gorm.DB)) error { return cb.Update().After("gorm:update").Before(a).Register(n, fn) }},
		{"delete", "DELETE",
			func(n string, fn func(*gorm.DB)) error { return cb.Delete().Before("gorm:delete").Register(n, fn) },
			func(n, a string, fn func(*gorm.DB)) error { return cb.Delete().After("gorm:delete").Before(a).Register(n, fn) }},
		{"row", "",
			func(n string, fn func(*gorm.DB)) error { return cb.Row().Before("gorm:row").Register(n, fn) },
			func(n, a string, fn func(*gorm.DB)) error { return cb.Row().After("gorm:row").Before(a).Register(n, fn) }},
		{"raw", "",
			func(n string, fn func(*gorm.DB)) error { return cb.Raw().Before("gorm:raw").Register(n, fn) },
			func(n, a string, fn func(*gorm.DB)) error { return cb.Raw().After("gorm:raw").Before(a).Register(n, fn) }},
	} {
		if h.before != nil {
			errs = append(errs, p.before(h.name+":before_"+p.kind, h.before))
		}
		errs = append(errs, p.after(h.name+":after_"+p.kind, order(p.kind), afterFor(p.operation)))
	}
	return errors.Join(errs...)
}
