package invoicing

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesWindow is how far back DailySales looks
const DailySalesWindow = 30 * 24 * time.Hour

// SummaryRow aggregates invoices sharing an invoice type and payment method
type SummaryRow struct {
	InvoiceType     InvoiceType
	TransactionType TransactionType
	Count           int64
	TotalAmount     decimal.Decimal
}

// DailySalesRow is the sale total of one calendar day split by metal
type DailySalesRow struct {
	Date        time.Time
	GoldSales   decimal.Decimal
	SilverSales decimal.Decimal
	TotalSales  decimal.Decimal
}

// DateRange bounds a report. Zero times are open ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}
