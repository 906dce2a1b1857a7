package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence.
// Invoices are scoped by their branch; items by their invoice's branch.
type InvoiceRepository interface {
	// Create inserts the header and items and stores the computed total.
	// Callers run it inside a transaction.
	Create(ctx context.Context, invoice *Invoice) error

	// FindByID loads an invoice with its items
	FindByID(ctx context.Context, scope access.Scope, id uuid.UUID) (*Invoice, error)

	// FindAll lists invoice headers. Filters may carry "metal", "invoice_type",
	// "transaction_type", "branch_id", "seller_id", "warehouse_id", "from" and "to".
	FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]Invoice, int64, error)

	// FindItems lists the items of a visible invoice in their original order
	FindItems(ctx context.Context, scope access.Scope, invoiceID uuid.UUID) ([]Item, error)

	// Summarize groups invoices by invoice type and payment method
	Summarize(ctx context.Context, scope access.Scope, metal *catalog.Metal, period DateRange) ([]SummaryRow, error)

	// DailySales totals Sale invoices per day from since onwards
	DailySales(ctx context.Context, scope access.Scope, metal *catalog.Metal, since time.Time) ([]DailySalesRow, error)
}
