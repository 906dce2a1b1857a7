package telemetry_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jewelry-erp/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newRecordingMetrics(t *testing.T, provider telemetry.StockMetricsProvider) (*telemetry.BusinessMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:         mp.Meter("test"),
		Logger:        zap.NewNop(),
		StockProvider: provider,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bm.Close() })
	return bm, reader
}

// collect gathers int64 points of metric name, keyed by the value of key
// (or "" when key is empty).
func collect(t *testing.T, reader *sdkmetric.ManualReader, name string, key attribute.Key) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	add := func(set attribute.Set, v int64) {
		label := ""
		if key != "" {
			value, _ := set.Value(key)
			label = value.Emit()
		}
		out[label] += v
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					add(dp.Attributes, dp.Value)
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					add(dp.Attributes, dp.Value)
				}
			}
		}
	}
	return out
}

func TestNewBusinessMetrics(t *testing.T) {
	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{Meter: noop.NewMeterProvider().Meter("test")})
	require.NoError(t, err)
	assert.NoError(t, bm.Close(), "closing without a stock provider is a no-op")

	_, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{})
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestBusinessMetrics_Counters(t *testing.T) {
	bm, reader := newRecordingMetrics(t, nil)
	ctx := context.Background()

	bm.RecordStockAdjustment(ctx, telemetry.StockAdjustmentApplied)
	bm.RecordStockAdjustment(ctx, telemetry.StockAdjustmentApplied)
	bm.RecordStockAdjustment(ctx, telemetry.StockAdjustmentRejected)
	bm.RecordTransferDecision(ctx, "Approved")
	bm.RecordInvoiceCreated(ctx, "gold", "sale", decimal.RequireFromString("1250.75"))
	bm.RecordInvoiceCreated(ctx, "silver", "sale", decimal.NewFromInt(10))

	assert.Equal(t, map[string]int64{"applied": 2, "rejected": 1},
		collect(t, reader, "jewelry_stock_adjustment_total", telemetry.AttrOutcome))
	assert.Equal(t, map[string]int64{"Approved": 1},
		collect(t, reader, "jewelry_transfer_decision_total", telemetry.AttrTransferStatus))
	assert.Equal(t, map[string]int64{"gold": 125075, "silver": 1000},
		collect(t, reader, "jewelry_invoice_amount_total", telemetry.AttrMetal))
	assert.Equal(t, map[string]int64{"sale": 2},
		collect(t, reader, "jewelry_invoice_created_total", telemetry.AttrInvoiceType))
}

type stubStockProvider struct {
	calls atomic.Int32
	snap  telemetry.StockSnapshot
	err   error
}

func (p *stubStockProvider) StockSnapshot(context.Context) (telemetry.StockSnapshot, error) {
	p.calls.Add(1)
	return p.snap, p.err
}

func TestBusinessMetrics_ObservesStockOnCollect(t *testing.T) {
	warehouse := uuid.New()
	provider := &stubStockProvider{snap: telemetry.StockSnapshot{
		Quantities:       []telemetry.WarehouseQuantity{{WarehouseID: warehouse, Metal: "gold", Quantity: 42}},
		PendingTransfers: 3,
	}}
	bm, reader := newRecordingMetrics(t, provider)
	assert.Zero(t, provider.calls.Load(), "nothing is read before a collection")

	assert.Equal(t, map[string]int64{warehouse.String(): 42},
		collect(t, reader, "jewelry_stock_quantity", telemetry.AttrWarehouseID))
	assert.Equal(t, map[string]int64{"": 3},
		collect(t, reader, "jewelry_transfer_pending_count", ""))
	assert.Equal(t, int32(2), provider.calls.Load())

	require.NoError(t, bm.Close())
	assert.Empty(t, collect(t, reader, "jewelry_stock_quantity", telemetry.AttrWarehouseID))
	assert.Equal(t, int32(2), provider.calls.Load())
}

func TestBusinessMetrics_ProviderErrorSkipsGauges(t *testing.T) {
	provider := &stubStockProvider{err: errors.New("db down")}
	bm, reader := newRecordingMetrics(t, provider)
	bm.RecordStockAdjustment(context.Background(), telemetry.StockAdjustmentApplied)

	assert.Empty(t, collect(t, reader, "jewelry_stock_quantity", telemetry.AttrWarehouseID))
	assert.Equal(t, map[string]int64{"applied": 1},
		collect(t, reader, "jewelry_stock_adjustment_total", telemetry.AttrOutcome))
}

func TestGormStockMetricsProvider(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`CREATE TABLE warehouse_stock (warehouse_id TEXT, metal TEXT, quantity INTEGER, deleted_at DATETIME)`,
		`CREATE TABLE warehouse_transfers (id INTEGER PRIMARY KEY, status TEXT)`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	w := uuid.New()
	require.NoError(t, db.Exec(`INSERT INTO warehouse_stock VALUES (?, 'gold', 5, NULL), (?, 'gold', 7, NULL), (?, 'gold', 100, CURRENT_TIMESTAMP)`,
		w.String(), w.String(), w.String()).Error)
	require.NoError(t, db.Exec(`INSERT INTO warehouse_transfers (status) VALUES ('Pending'), ('Pending'), ('Approved')`).Error)

	snap, err := telemetry.NewGormStockMetricsProvider(db).StockSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Quantities, 1)
	assert.Equal(t, w, snap.Quantities[0].WarehouseID)
	assert.Equal(t, int64(12), snap.Quantities[0].Quantity, "soft-deleted rows are excluded")
	assert.Equal(t, int64(2), snap.PendingTransfers)
}
