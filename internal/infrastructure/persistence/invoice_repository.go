package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/invoicing"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/datascope"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func invoiceScope(scope access.Scope) visibility {
	return datascope.Scope(scope, access.ResourceInvoice, "invoices")
}

var invoiceProjections = unscopedPreload("Warehouse", "Seller", "Branch", "Customer")

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the header, then the items in order, then stores the sum
// of the item totals on the header. Run it inside a transaction so a
// failure at any step leaves nothing behind.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *invoicing.Invoice) error {
	db := r.db.WithContext(ctx)

	header := models.InvoiceModelFromDomain(invoice)
	header.TotalPrice = decimal.Zero
	if err := db.Omit(clause.Associations).Create(header).Error; err != nil {
		return translateError(err, "Invoice")
	}

	if len(invoice.Items) > 0 {
		items := make([]models.InvoiceItemModel, len(invoice.Items))
		for i, it := range invoice.Items {
			items[i] = models.InvoiceItemModelFromDomain(it, invoice.CreatedAt)
		}
		if err := db.Create(&items).Error; err != nil {
			return translateError(err, "Invoice item")
		}
	}

	err := db.Model(&models.InvoiceModel{}).
		Where(idEquals(invoice.ID)).
		Update("total_price", invoicing.ComputeTotal(invoice.Items)).Error
	return translateError(err, "Invoice")
}

// FindByID loads an invoice with its items
func (r *GormInvoiceRepository) FindByID(ctx context.Context, scope access.Scope, id uuid.UUID) (*invoicing.Invoice, error) {
	q := r.db.Scopes(invoiceProjections).Preload("Items", orderedItems)
	m, err := findOne[models.InvoiceModel](ctx, q, invoiceScope(scope), id, false, "Invoice")
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAll lists invoice headers without items. Search matches the
// customer's name or phone.
func (r *GormInvoiceRepository) FindAll(ctx context.Context, scope access.Scope, filter shared.Filter) ([]invoicing.Invoice, int64, error) {
	q := r.db.WithContext(ctx).Scopes(invoiceScope(scope))
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(escapeLike(search)) + "%"
		q = q.Where(`invoices.customer_id IN (SELECT id FROM customers
			WHERE LOWER(name) LIKE ? ESCAPE '\' OR LOWER(phone) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	for _, key := range []string{"metal", "invoice_type", "transaction_type"} {
		if v, ok := filterString(filter, key); ok {
			q = q.Where("invoices."+key+" = ?", v)
		}
	}
	for _, key := range []string{"branch_id", "seller_id", "warehouse_id", "customer_id"} {
		if id, ok := filterUUID(filter, key); ok {
			q = q.Where("invoices."+key+" = ?", id)
		}
	}
	if from, ok := filterTime(filter, "from"); ok {
		q = q.Where("invoices.created_at >= ?", from)
	}
	if to, ok := filterTime(filter, "to"); ok {
		q = q.Where("invoices.created_at <= ?", to)
	}

	rows, total, err := paginate[models.InvoiceModel](q, filter, invoiceSort, invoiceProjections, "Invoice")
	if err != nil {
		return nil, 0, err
	}
	out := make([]invoicing.Invoice, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, total, nil
}

// FindItems lists the items of a visible invoice
func (r *GormInvoiceRepository) FindItems(ctx context.Context, scope access.Scope, invoiceID uuid.UUID) ([]invoicing.Item, error) {
	if err := ensureVisible[models.InvoiceModel](ctx, r.db, invoiceScope(scope), invoiceID, "Invoice"); err != nil {
		return nil, err
	}
	var rows []models.InvoiceItemModel
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).Scopes(orderedItems).Find(&rows).Error; err != nil {
		return nil, translateError(err, "Invoice item")
	}
	out := make([]invoicing.Item, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

type invoiceSummaryRow struct {
	InvoiceType     invoicing.InvoiceType
	TransactionType invoicing.TransactionType
	Count           int64
	TotalAmount     decimal.Decimal
}

// Summarize groups invoices by invoice type and payment method, largest total first
func (r *GormInvoiceRepository) Summarize(ctx context.Context, scope access.Scope, metal *catalog.Metal, period invoicing.DateRange) ([]invoicing.SummaryRow, error) {
	q := r.reportQuery(ctx, scope, metal).
		Select(`invoices.invoice_type AS invoice_type,
			invoices.transaction_type AS transaction_type,
			COUNT(*) AS count,
			COALESCE(SUM(invoices.total_price), 0) AS total_amount`)
	if !period.Start.IsZero() {
		q = q.Where("invoices.created_at >= ?", period.Start)
	}
	if !period.End.IsZero() {
		q = q.Where("invoices.created_at <= ?", period.End)
	}

	var rows []invoiceSummaryRow
	err := q.Group("invoices.invoice_type, invoices.transaction_type").
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "Invoice")
	}
	out := make([]invoicing.SummaryRow, len(rows))
	for i, row := range rows {
		out[i] = invoicing.SummaryRow(row)
	}
	return out, nil
}

type dailySalesRow struct {
	Day         string
	GoldSales   decimal.Decimal
	SilverSales decimal.Decimal
	TotalSales  decimal.Decimal
}

// DailySales totals Sale invoices per calendar day from since onwards,
// split by metal, oldest day first.
func (r *GormInvoiceRepository) DailySales(ctx context.Context, scope access.Scope, metal *catalog.Metal, since time.Time) ([]invoicing.DailySalesRow, error) {
	var rows []dailySalesRow
	err := r.reportQuery(ctx, scope, metal).
		Select(`DATE(invoices.created_at) AS day,
			COALESCE(SUM(CASE WHEN invoices.metal = ? THEN invoices.total_price ELSE 0 END), 0) AS gold_sales,
			COALESCE(SUM(CASE WHEN invoices.metal = ? THEN invoices.total_price ELSE 0 END), 0) AS silver_sales,
			COALESCE(SUM(invoices.total_price), 0) AS total_sales`, catalog.MetalGold, catalog.MetalSilver).
		Where("invoices.invoice_type = ?", invoicing.InvoiceSale).
		Where("invoices.created_at >= ?", since).
		Group("DATE(invoices.created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "Invoice")
	}
	out := make([]invoicing.DailySalesRow, len(rows))
	for i, row := range rows {
		day, err := parseSQLDate(row.Day)
		if err != nil {
			return nil, err
		}
		out[i] = invoicing.DailySalesRow{
			Date:        day,
			GoldSales:   row.GoldSales,
			SilverSales: row.SilverSales,
			TotalSales:  row.TotalSales,
		}
	}
	return out, nil
}

func (r *GormInvoiceRepository) reportQuery(ctx context.Context, scope access.Scope, metal *catalog.Metal) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Scopes(invoiceScope(scope))
	if metal != nil {
		q = q.Where("invoices.metal = ?", *metal)
	}
	return q
}

// parseSQLDate reads a DATE result scanned into a string. SQLite returns
// "2006-01-02"; the pgx driver returns a time that database/sql formats as RFC 3339.
func parseSQLDate(s string) (time.Time, error) {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse sales day %q: %w", s, err)
	}
	return t, nil
}

var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
