package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/invoicing"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// InvoiceService creates invoices and serves invoice reports
type InvoiceService struct {
	invoiceRepo     invoicing.InvoiceRepository
	txScope         appshared.TransactionScope
	policy          *access.Policy
	logger          *zap.Logger
	idempotency     shared.IdempotencyStore
	idempotencyTTL  time.Duration
	businessMetrics *telemetry.BusinessMetrics
	now             func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	txScope appshared.TransactionScope,
	policy *access.Policy,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		txScope:     txScope,
		policy:      policy,
		logger:      logger,
		now:         time.Now,
	}
}

// SetIdempotencyStore enables Idempotency-Key handling on Create
func (s *InvoiceService) SetIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) {
	s.idempotency = store
	s.idempotencyTTL = ttl
}

// SetBusinessMetrics sets the business metrics recorder
func (s *InvoiceService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create stores an invoice with its items in one transaction. The total is
// the exact sum of the item totals. With a non-empty idempotency key a
// repeated request returns the invoice created by the first one.
func (s *InvoiceService) Create(ctx context.Context, p shared.Principal, req CreateInvoiceRequest, idempotencyKey string) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create")
	defer span.End()

	scope, err := s.policy.Authorize(p, access.ResourceInvoice)
	if err != nil {
		return nil, err
	}
	metal, err := catalog.ParseMetal(req.Metal)
	if err != nil {
		return nil, err
	}
	invoice, err := invoicing.NewInvoice(metal, req.header(), req.items(), p.UserID)
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrMetal, string(metal),
		telemetry.SpanAttrInvoiceType, string(invoice.InvoiceType),
		telemetry.SpanAttrBranchID, invoice.BranchID.String(),
		telemetry.SpanAttrItemsCount, len(invoice.Items),
	)

	key := s.idempotencyKey(p, idempotencyKey)
	if key != "" {
		if replay, done, err := s.replay(ctx, scope, key); done {
			return replay, err
		}
	}

	err = s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		if err := s.checkParties(ctx, repos, p, invoice); err != nil {
			return err
		}
		return repos.Invoices().Create(ctx, invoice)
	})
	if err != nil {
		s.release(ctx, key)
		telemetry.RecordError(span, err)
		return nil, err
	}

	// Once committed the key belongs to this invoice, even if the read below fails
	if key != "" {
		if err := s.idempotency.Complete(ctx, key, invoice.ID.String(), s.idempotencyTTL); err != nil {
			s.logger.Warn("Failed to record idempotency key", zap.String("invoice_id", invoice.ID.String()), zap.Error(err))
		}
	}

	stored, err := s.invoiceRepo.FindByID(ctx, scope, invoice.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordInvoiceCreated(ctx, string(stored.Metal), string(stored.InvoiceType), stored.TotalPrice)
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrInvoiceID, stored.ID.String())
	s.logger.Info("Invoice created",
		zap.String("invoice_id", stored.ID.String()),
		zap.String("metal", string(stored.Metal)),
		zap.String("invoice_type", string(stored.InvoiceType)),
		zap.String("branch_id", stored.BranchID.String()),
		zap.Int("items", len(stored.Items)),
		zap.String("total_price", stored.TotalPrice.String()),
		zap.String("user_id", p.UserID.String()),
	)
	response := ToInvoiceResponse(stored)
	return &response, nil
}

// checkParties verifies that the branch is visible to the caller and that
// the warehouse and seller belong to it
func (s *InvoiceService) checkParties(ctx context.Context, repos appshared.Repositories, p shared.Principal, invoice *invoicing.Invoice) error {
	if _, err := repos.Branches().FindByID(ctx, s.policy.Scope(p, access.ResourceBranch), invoice.BranchID, false); err != nil {
		return err
	}
	warehouse, err := repos.Warehouses().FindByID(ctx, access.Unrestricted(), invoice.WarehouseID, false)
	if err != nil {
		return err
	}
	if warehouse.BranchID != invoice.BranchID {
		return shared.NewValidationError("WAREHOUSE_BRANCH_MISMATCH", "Warehouse does not belong to the invoice branch")
	}
	seller, err := repos.Sellers().FindByID(ctx, access.Unrestricted(), invoice.SellerID, false)
	if err != nil {
		return err
	}
	if seller.BranchID != invoice.BranchID {
		return shared.NewValidationError("SELLER_BRANCH_MISMATCH", "Seller does not belong to the invoice branch")
	}
	_, err = repos.Customers().FindByID(ctx, access.Unrestricted(), invoice.CustomerID, false)
	return err
}

func (s *InvoiceService) idempotencyKey(p shared.Principal, key string) string {
	if s.idempotency == nil || key == "" {
		return ""
	}
	return "invoice:" + p.UserID.String() + ":" + key
}

// replay reserves key. done reports that the request must not proceed,
// either because the first invoice was found or because it is still in flight.
func (s *InvoiceService) replay(ctx context.Context, scope access.Scope, key string) (resp *InvoiceResponse, done bool, err error) {
	value, claimed, err := s.idempotency.Reserve(ctx, key, s.idempotencyTTL)
	if err != nil {
		// proceed without deduplication
		s.logger.Warn("Idempotency store unavailable", zap.Error(err))
		return nil, false, nil
	}
	if claimed {
		return nil, false, nil
	}
	if value == "" {
		return nil, true, shared.NewConflictError("REQUEST_IN_PROGRESS", "A request with this idempotency key is still being processed")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, true, shared.NewDomainError(shared.KindInternal, "IDEMPOTENCY_CORRUPT", "Stored idempotency result is not an invoice id")
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, true, err
	}
	s.logger.Info("Invoice replayed for idempotency key", zap.String("invoice_id", id.String()))
	response := ToInvoiceResponse(invoice)
	return &response, true, nil
}

func (s *InvoiceService) release(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.idempotency.Release(ctx, key); err != nil {
		s.logger.Warn("Failed to release idempotency key", zap.Error(err))
	}
}

// GetByID retrieves a visible invoice with its items
func (s *InvoiceService) GetByID(ctx context.Context, p shared.Principal, id uuid.UUID) (*InvoiceResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceInvoice)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves visible invoice headers
func (s *InvoiceService) List(ctx context.Context, p shared.Principal, query appshared.ListQuery, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	scope, err := s.policy.Authorize(p, access.ResourceInvoice)
	if err != nil {
		return nil, 0, err
	}
	f := query.Filter()
	appshared.SetString(f, "metal", filter.Metal)
	appshared.SetString(f, "invoice_type", filter.InvoiceType)
	appshared.SetString(f, "transaction_type", filter.TransactionType)
	appshared.SetUUID(f, "branch_id", filter.BranchID)
	appshared.SetUUID(f, "seller_id", filter.SellerID)
	appshared.SetUUID(f, "warehouse_id", filter.WarehouseID)
	if filter.From != nil {
		f.Filters["from"] = startOfDay(*filter.From)
	}
	if filter.To != nil {
		f.Filters["to"] = endOfDay(*filter.To)
	}

	rows, total, err := s.invoiceRepo.FindAll(ctx, scope, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]InvoiceResponse, len(rows))
	for i := range rows {
		out[i] = ToInvoiceResponse(&rows[i])
	}
	return out, total, nil
}

// ListItems returns the items of a visible invoice in their original order
func (s *InvoiceService) ListItems(ctx context.Context, p shared.Principal, invoiceID uuid.UUID) ([]InvoiceItemResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceInvoice)
	if err != nil {
		return nil, err
	}
	items, err := s.invoiceRepo.FindItems(ctx, scope, invoiceID)
	if err != nil {
		return nil, err
	}
	out := make([]InvoiceItemResponse, len(items))
	for i, it := range items {
		out[i] = ToInvoiceItemResponse(it)
	}
	return out, nil
}

// Summary groups visible invoices by invoice type and payment method,
// largest total first. Dates are whole days; open ends are unbounded.
func (s *InvoiceService) Summary(ctx context.Context, p shared.Principal, q SummaryQuery) ([]SummaryResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceInvoice)
	if err != nil {
		return nil, err
	}
	metal, err := optionalMetal(q.Metal)
	if err != nil {
		return nil, err
	}
	var period invoicing.DateRange
	if q.Start != nil {
		period.Start = startOfDay(*q.Start)
	}
	if q.End != nil {
		period.End = endOfDay(*q.End)
	}
	if !period.Start.IsZero() && !period.End.IsZero() && period.End.Before(period.Start) {
		return nil, shared.NewValidationError("INVALID_DATE_RANGE", "End date is before start date")
	}

	rows, err := s.invoiceRepo.Summarize(ctx, scope, metal, period)
	if err != nil {
		return nil, err
	}
	out := make([]SummaryResponse, len(rows))
	for i, r := range rows {
		out[i] = SummaryResponse{
			InvoiceType:     string(r.InvoiceType),
			TransactionType: string(r.TransactionType),
			Count:           r.Count,
			TotalAmount:     r.TotalAmount,
		}
	}
	return out, nil
}

// DailySales totals visible Sale invoices per day over the last 30 days
func (s *InvoiceService) DailySales(ctx context.Context, p shared.Principal, metal string) ([]DailySalesResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceInvoice)
	if err != nil {
		return nil, err
	}
	m, err := optionalMetal(metal)
	if err != nil {
		return nil, err
	}
	since := startOfDay(s.now()).Add(-invoicing.DailySalesWindow)

	rows, err := s.invoiceRepo.DailySales(ctx, scope, m, since)
	if err != nil {
		return nil, err
	}
	out := make([]DailySalesResponse, len(rows))
	for i, r := range rows {
		out[i] = DailySalesResponse{
			Date:        r.Date.Format(time.DateOnly),
			GoldSales:   r.GoldSales,
			SilverSales: r.SilverSales,
			TotalSales:  r.TotalSales,
		}
	}
	return out, nil
}

func optionalMetal(metal string) (*catalog.Metal, error) {
	if metal == "" {
		return nil, nil
	}
	m, err := catalog.ParseMetal(metal)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
