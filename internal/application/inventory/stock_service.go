package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/inventory"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"github.com/jewelry-erp/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// StockService manages per-warehouse stock counters
type StockService struct {
	appshared.Lifecycle
	stockRepo       inventory.StockRepository
	txScope         appshared.TransactionScope
	policy          *access.Policy
	logger          *zap.Logger
	businessMetrics *telemetry.BusinessMetrics
}

// NewStockService creates a new StockService
func NewStockService(
	stockRepo inventory.StockRepository,
	txScope appshared.TransactionScope,
	policy *access.Policy,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		Lifecycle: appshared.NewLifecycle(policy, access.ResourceStock, stockRepo, logger),
		stockRepo: stockRepo,
		txScope:   txScope,
		policy:    policy,
		logger:    logger,
	}
}

// SetBusinessMetrics sets the business metrics recorder
func (s *StockService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Create adds the stock row of a triple. The warehouse must be visible, the
// product must carry the same metal, and a second row for the triple is a Conflict.
func (s *StockService) Create(ctx context.Context, p shared.Principal, req StockRequest) (*StockResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceStock)
	if err != nil {
		return nil, err
	}
	metal, err := catalog.ParseMetal(req.Metal)
	if err != nil {
		return nil, err
	}

	var created *inventory.Stock
	err = s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		if err := checkStockTarget(ctx, repos, scope, req.WarehouseID, req.ProductID, metal); err != nil {
			return err
		}
		stock, err := inventory.NewStock(req.WarehouseID, req.ProductID, metal, req.Quantity, p.UserID)
		if err != nil {
			return err
		}
		if err := repos.Stock().Create(ctx, stock); err != nil {
			return err
		}
		created, err = repos.Stock().FindByID(ctx, scope, stock.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock created",
		zap.String("stock_id", created.ID.String()),
		zap.String("warehouse_id", created.WarehouseID.String()),
		zap.String("product_id", created.ProductID.String()),
		zap.Int64("quantity", created.Quantity),
	)
	response := ToStockResponse(created)
	return &response, nil
}

// Upsert sets the counter of a triple, creating the row when absent and
// restoring it when soft-deleted
func (s *StockService) Upsert(ctx context.Context, p shared.Principal, req StockRequest) (*StockResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceStock)
	if err != nil {
		return nil, err
	}
	metal, err := catalog.ParseMetal(req.Metal)
	if err != nil {
		return nil, err
	}

	var result *inventory.Stock
	err = s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		if err := checkStockTarget(ctx, repos, scope, req.WarehouseID, req.ProductID, metal); err != nil {
			return err
		}

		stock, err := repos.Stock().FindByPair(ctx, req.WarehouseID, req.ProductID, metal)
		switch {
		case shared.IsKind(err, shared.KindNotFound):
			stock, err = inventory.NewStock(req.WarehouseID, req.ProductID, metal, req.Quantity, p.UserID)
			if err != nil {
				return err
			}
			if err := repos.Stock().Create(ctx, stock); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			shared.Restore(stock)
			if err := stock.SetQuantity(req.Quantity); err != nil {
				return err
			}
			if err := repos.Stock().Save(ctx, stock); err != nil {
				return err
			}
		}

		result, err = repos.Stock().FindByID(ctx, scope, stock.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock set",
		zap.String("stock_id", result.ID.String()),
		zap.Int64("quantity", result.Quantity),
	)
	response := ToStockResponse(result)
	return &response, nil
}

// SetQuantity overwrites the counter of a visible stock row
func (s *StockService) SetQuantity(ctx context.Context, p shared.Principal, id uuid.UUID, req SetQuantityRequest) (*StockResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceStock)
	if err != nil {
		return nil, err
	}
	if err := inventory.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	var stock *inventory.Stock
	err = s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		var err error
		stock, err = repos.Stock().SetQuantity(ctx, scope, id, req.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock quantity set",
		zap.String("stock_id", stock.ID.String()),
		zap.Int64("quantity", stock.Quantity),
		zap.String("user_id", p.UserID.String()),
	)
	response := ToStockResponse(stock)
	return &response, nil
}

// Adjust adds delta to the counter in one guarded update. A result below
// zero fails with insufficient stock and leaves the counter unchanged.
func (s *StockService) Adjust(ctx context.Context, p shared.Principal, id uuid.UUID, req AdjustStockRequest) (*StockResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "stock", "adjust",
		telemetry.WithAttribute(telemetry.SpanAttrStockID, id.String()),
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, req.Adjustment),
	)
	defer span.End()

	scope, err := s.policy.Authorize(p, access.ResourceStock)
	if err != nil {
		return nil, err
	}

	var stock *inventory.Stock
	err = s.txScope.Execute(ctx, func(repos appshared.Repositories) error {
		var err error
		stock, err = repos.Stock().AdjustQuantity(ctx, scope, id, req.Adjustment)
		return err
	})
	if err != nil {
		if errors.Is(err, shared.ErrInsufficientStock) {
			telemetry.AddEvent(span, "adjustment_rejected", telemetry.SpanAttrQuantity, req.Adjustment)
			s.recordAdjustment(ctx, telemetry.StockAdjustmentRejected)
			s.logger.Info("Stock adjustment rejected",
				zap.String("stock_id", id.String()),
				zap.Int64("delta", req.Adjustment),
				zap.String("user_id", p.UserID.String()),
			)
		} else {
			telemetry.RecordError(span, err)
		}
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrWarehouseID, stock.WarehouseID.String(), "stock.quantity", stock.Quantity)
	s.recordAdjustment(ctx, telemetry.StockAdjustmentApplied)
	s.logger.Info("Stock adjusted",
		zap.String("stock_id", stock.ID.String()),
		zap.Int64("delta", req.Adjustment),
		zap.Int64("quantity", stock.Quantity),
		zap.String("user_id", p.UserID.String()),
	)
	response := ToStockResponse(stock)
	return &response, nil
}

// GetByID retrieves a visible stock row
func (s *StockService) GetByID(ctx context.Context, p shared.Principal, id uuid.UUID, includeDeleted bool) (*StockResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceStock)
	if err != nil {
		return nil, err
	}
	stock, err := s.stockRepo.FindByID(ctx, scope, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	response := ToStockResponse(stock)
	return &response, nil
}

// List retrieves visible stock rows
func (s *StockService) List(ctx context.Context, p shared.Principal, query appshared.ListQuery, filter StockListFilter) ([]StockResponse, int64, error) {
	scope, err := s.policy.Authorize(p, access.ResourceStock)
	if err != nil {
		return nil, 0, err
	}
	f := query.Filter()
	appshared.SetUUID(f, "warehouse_id", filter.WarehouseID)
	appshared.SetUUID(f, "product_id", filter.ProductID)
	appshared.SetString(f, "metal", filter.Metal)

	rows, total, err := s.stockRepo.FindAll(ctx, scope, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]StockResponse, len(rows))
	for i := range rows {
		out[i] = ToStockResponse(&rows[i])
	}
	return out, total, nil
}

// Summarize groups visible, active stock by warehouse. An empty metal covers both.
func (s *StockService) Summarize(ctx context.Context, p shared.Principal, metal string) ([]StockSummaryResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceStock)
	if err != nil {
		return nil, err
	}
	var m *catalog.Metal
	if metal != "" {
		parsed, err := catalog.ParseMetal(metal)
		if err != nil {
			return nil, err
		}
		m = &parsed
	}

	rows, err := s.stockRepo.Summarize(ctx, scope, m)
	if err != nil {
		return nil, err
	}
	out := make([]StockSummaryResponse, len(rows))
	for i, r := range rows {
		out[i] = StockSummaryResponse{
			WarehouseID:   r.WarehouseID,
			WarehouseCode: r.WarehouseCode,
			BranchName:    r.BranchName,
			TotalProducts: r.ProductCount,
			TotalQuantity: r.TotalQuantity,
			TotalWeight:   r.TotalWeight,
		}
	}
	return out, nil
}

func (s *StockService) recordAdjustment(ctx context.Context, outcome telemetry.StockAdjustmentOutcome) {
	if s.businessMetrics != nil {
		s.businessMetrics.RecordStockAdjustment(ctx, outcome)
	}
}

// checkStockTarget verifies that the warehouse is visible within scope and
// the product exists with the requested metal
func checkStockTarget(ctx context.Context, repos appshared.Repositories, scope access.Scope, warehouseID, productID uuid.UUID, metal catalog.Metal) error {
	if _, err := repos.Warehouses().FindByID(ctx, scope, warehouseID, false); err != nil {
		return err
	}
	product, err := repos.Products().FindByID(ctx, access.Unrestricted(), productID, false)
	if err != nil {
		return err
	}
	if product.Metal != metal {
		return shared.NewValidationError("METAL_MISMATCH", "Product metal does not match the stock metal")
	}
	return nil
}
