package telemetry

import (
	"context"
	"fmt"

	"github.com/jewelry-erp/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormStockMetricsProvider reads the stock snapshot with two aggregate
// queries against the ledger tables.
type GormStockMetricsProvider struct {
	db *gorm.DB
}

func NewGormStockMetricsProvider(db *gorm.DB) *GormStockMetricsProvider {
	return &GormStockMetricsProvider{db: db}
}

func (p *GormStockMetricsProvider) StockSnapshot(ctx context.Context) (StockSnapshot, error) {
	var snap StockSnapshot
	db := p.db.WithContext(ctx)

	err := db.Table("warehouse_stock").
		Select("warehouse_id, metal, COALESCE(SUM(quantity), 0) AS quantity").
		Where("deleted_at IS NULL").
		Group("warehouse_id, metal").
		Scan(&snap.Quantities).Error
	if err != nil {
		return StockSnapshot{}, fmt.Errorf("sum stock by warehouse: %w", err)
	}

	err = db.Table("warehouse_transfers").
		Where("status = ?", inventory.TransferPending).
		Count(&snap.PendingTransfers).Error
	if err != nil {
		return StockSnapshot{}, fmt.Errorf("count pending transfers: %w", err)
	}
	return snap, nil
}
