package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned by metric constructors given no meter.
var ErrMeterNil = errors.New("telemetry: meter is nil")

// StockAdjustmentOutcome labels a stock adjustment attempt.
type StockAdjustmentOutcome string

const (
	StockAdjustmentApplied StockAdjustmentOutcome = "applied"
	// StockAdjustmentRejected means the counter would have gone negative.
	StockAdjustmentRejected StockAdjustmentOutcome = "rejected"
)

// StockSnapshot is the inventory state observed at collection time.
type StockSnapshot struct {
	Quantities       []WarehouseQuantity
	PendingTransfers int64
}

type WarehouseQuantity struct {
	WarehouseID uuid.UUID
	Metal       string
	Quantity    int64
}

// StockMetricsProvider is read once per metric collection.
type StockMetricsProvider interface {
	StockSnapshot(ctx context.Context) (StockSnapshot, error)
}

type BusinessMetricsConfig struct {
	Meter         metric.Meter
	Logger        *zap.Logger
	StockProvider StockMetricsProvider // optional; no stock gauges without it
}

// BusinessMetrics counts stock adjustments, transfer decisions and invoices
// as they happen, and observes stock levels whenever the reader collects.
type BusinessMetrics struct {
	logger *zap.Logger

	adjustments *Counter
	decisions   *Counter
	invoices    *Counter
	invoiced    *Counter

	registration metric.Registration
}

func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	bm := &BusinessMetrics{logger: cfg.Logger}
	if bm.logger == nil {
		bm.logger = zap.NewNop()
	}

	counters := []struct {
		dst              **Counter
		name, desc, unit string
	}{
		{&bm.adjustments, "jewelry_stock_adjustment_total", "Stock adjustments by outcome", "{adjustments}"},
		{&bm.decisions, "jewelry_transfer_decision_total", "Transfers approved or rejected", "{transfers}"},
		{&bm.invoices, "jewelry_invoice_created_total", "Invoices created", "{invoices}"},
		{&bm.invoiced, "jewelry_invoice_amount_total", "Invoiced amount in cents", "{cents}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(cfg.Meter, c.name, c.desc, c.unit)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	if cfg.StockProvider != nil {
		if err := bm.observeStock(cfg.Meter, cfg.StockProvider); err != nil {
			return nil, err
		}
	}
	return bm, nil
}

func (bm *BusinessMetrics) observeStock(meter metric.Meter, provider StockMetricsProvider) error {
	quantity, err := meter.Int64ObservableGauge("jewelry_stock_quantity",
		metric.WithDescription("Active stock quantity per warehouse and metal"),
		metric.WithUnit("{units}"))
	if err != nil {
		return fmt.Errorf("create gauge jewelry_stock_quantity: %w", err)
	}
	pending, err := meter.Int64ObservableGauge("jewelry_transfer_pending_count",
		metric.WithDescription("Transfers awaiting approval"),
		metric.WithUnit("{transfers}"))
	if err != nil {
		return fmt.Errorf("create gauge jewelry_transfer_pending_count: %w", err)
	}

	bm.registration, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		snap, err := provider.StockSnapshot(ctx)
		if err != nil {
			bm.logger.Warn("Failed to read stock snapshot", zap.Error(err))
			return nil
		}
		for _, q := range snap.Quantities {
			o.ObserveInt64(quantity, q.Quantity, metric.WithAttributes(
				AttrWarehouseID.String(q.WarehouseID.String()),
				AttrMetal.String(q.Metal),
			))
		}
		o.ObserveInt64(pending, snap.PendingTransfers)
		return nil
	}, quantity, pending)
	if err != nil {
		return fmt.Errorf("register stock callback: %w", err)
	}
	return nil
}

func (bm *BusinessMetrics) RecordStockAdjustment(ctx context.Context, outcome StockAdjustmentOutcome) {
	bm.adjustments.Inc(ctx, AttrOutcome.String(string(outcome)))
}

func (bm *BusinessMetrics) RecordTransferDecision(ctx context.Context, status string) {
	bm.decisions.Inc(ctx, AttrTransferStatus.String(status))
}

// RecordInvoiceCreated counts an invoice and adds its total in cents.
func (bm *BusinessMetrics) RecordInvoiceCreated(ctx context.Context, metal, invoiceType string, amount decimal.Decimal) {
	attrs := []attribute.KeyValue{
		AttrMetal.String(metal),
		AttrInvoiceType.String(invoiceType),
	}
	bm.invoices.Inc(ctx, attrs...)
	bm.invoiced.Add(ctx, amount.Shift(2).IntPart(), attrs...)
}

// Close stops stock observation. Counters keep working.
func (bm *BusinessMetrics) Close() error {
	if bm.registration == nil {
		return nil
	}
	return bm.registration.Unregister()
}
