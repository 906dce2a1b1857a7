package organization

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/organization"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// WarehouseService handles warehouse-related business operations
type WarehouseService struct {
	appshared.Lifecycle
	warehouseRepo organization.WarehouseRepository
	branchRepo    organization.BranchRepository
	policy        *access.Policy
	logger        *zap.Logger
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(
	warehouseRepo organization.WarehouseRepository,
	branchRepo organization.BranchRepository,
	policy *access.Policy,
	logger *zap.Logger,
) *WarehouseService {
	return &WarehouseService{
		Lifecycle:     appshared.NewLifecycle(policy, access.ResourceWarehouse, warehouseRepo, logger),
		warehouseRepo: warehouseRepo,
		branchRepo:    branchRepo,
		policy:        policy,
		logger:        logger,
	}
}

// Create creates a warehouse in a branch visible to the caller
func (s *WarehouseService) Create(ctx context.Context, p shared.Principal, req WarehouseRequest) (*WarehouseResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceWarehouse)
	if err != nil {
		return nil, err
	}
	if err := s.checkBranch(ctx, p, req.BranchID); err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, req.Code, nil); err != nil {
		return nil, err
	}

	warehouse, err := organization.NewWarehouse(req.BranchID, req.Code, req.Cash, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	s.logger.Info("Warehouse created",
		zap.String("warehouse_id", warehouse.ID.String()),
		zap.String("code", warehouse.Code),
		zap.String("branch_id", warehouse.BranchID.String()),
	)
	return s.reload(ctx, scope, warehouse.ID)
}

// GetByID retrieves a visible warehouse
func (s *WarehouseService) GetByID(ctx context.Context, p shared.Principal, id uuid.UUID, includeDeleted bool) (*WarehouseResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceWarehouse)
	if err != nil {
		return nil, err
	}
	warehouse, err := s.warehouseRepo.FindByID(ctx, scope, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// List retrieves visible warehouses
func (s *WarehouseService) List(ctx context.Context, p shared.Principal, query appshared.ListQuery, filter WarehouseListFilter) ([]WarehouseResponse, int64, error) {
	scope, err := s.policy.Authorize(p, access.ResourceWarehouse)
	if err != nil {
		return nil, 0, err
	}
	f := query.Filter()
	appshared.SetUUID(f, "branch_id", filter.BranchID)

	warehouses, total, err := s.warehouseRepo.FindAll(ctx, scope, f)
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(warehouses, ToWarehouseResponse), total, nil
}

// Update replaces code, cash and branch of a visible warehouse
func (s *WarehouseService) Update(ctx context.Context, p shared.Principal, id uuid.UUID, req WarehouseRequest) (*WarehouseResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceWarehouse)
	if err != nil {
		return nil, err
	}
	warehouse, err := s.warehouseRepo.FindByID(ctx, scope, id, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkCode(ctx, req.Code, &warehouse.ID); err != nil {
		return nil, err
	}
	if req.BranchID != warehouse.BranchID {
		if err := s.checkBranch(ctx, p, req.BranchID); err != nil {
			return nil, err
		}
		if err := warehouse.MoveToBranch(req.BranchID); err != nil {
			return nil, err
		}
	}
	if err := warehouse.Update(req.Code, req.Cash); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	return s.reload(ctx, scope, warehouse.ID)
}

// checkBranch reports NotFound unless the branch exists and is visible
func (s *WarehouseService) checkBranch(ctx context.Context, p shared.Principal, branchID uuid.UUID) error {
	_, err := s.branchRepo.FindByID(ctx, s.policy.Scope(p, access.ResourceBranch), branchID, false)
	return err
}

func (s *WarehouseService) checkCode(ctx context.Context, code string, excludeID *uuid.UUID) error {
	exists, err := s.warehouseRepo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflictError("ALREADY_EXISTS", "Warehouse with this code already exists")
	}
	return nil
}

func (s *WarehouseService) reload(ctx context.Context, scope access.Scope, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, scope, id, false)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}
