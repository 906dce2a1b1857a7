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

// SellerService handles seller-related business operations
type SellerService struct {
	appshared.Lifecycle
	sellerRepo organization.SellerRepository
	branchRepo organization.BranchRepository
	policy     *access.Policy
	logger     *zap.Logger
}

// NewSellerService creates a new SellerService
func NewSellerService(
	sellerRepo organization.SellerRepository,
	branchRepo organization.BranchRepository,
	policy *access.Policy,
	logger *zap.Logger,
) *SellerService {
	return &SellerService{
		Lifecycle:  appshared.NewLifecycle(policy, access.ResourceSeller, sellerRepo, logger),
		sellerRepo: sellerRepo,
		branchRepo: branchRepo,
		policy:     policy,
		logger:     logger,
	}
}

// Create creates a seller in a branch visible to the caller
func (s *SellerService) Create(ctx context.Context, p shared.Principal, req SellerRequest) (*SellerResponse, error) {
	if _, err := s.policy.Authorize(p, access.ResourceSeller); err != nil {
		return nil, err
	}
	branch, err := s.branchRepo.FindByID(ctx, s.policy.Scope(p, access.ResourceBranch), req.BranchID, false)
	if err != nil {
		return nil, err
	}

	seller, err := organization.NewSeller(branch.ID, req.Name, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.sellerRepo.Save(ctx, seller); err != nil {
		return nil, err
	}
	seller.BranchName = branch.Name

	s.logger.Info("Seller created", zap.String("seller_id", seller.ID.String()), zap.String("branch_id", branch.ID.String()))
	response := ToSellerResponse(seller)
	return &response, nil
}

// GetByID retrieves a visible seller
func (s *SellerService) GetByID(ctx context.Context, p shared.Principal, id uuid.UUID, includeDeleted bool) (*SellerResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceSeller)
	if err != nil {
		return nil, err
	}
	seller, err := s.sellerRepo.FindByID(ctx, scope, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	response := ToSellerResponse(seller)
	return &response, nil
}

// List retrieves visible sellers
func (s *SellerService) List(ctx context.Context, p shared.Principal, query appshared.ListQuery, filter SellerListFilter) ([]SellerResponse, int64, error) {
	scope, err := s.policy.Authorize(p, access.ResourceSeller)
	if err != nil {
		return nil, 0, err
	}
	f := query.Filter()
	appshared.SetUUID(f, "branch_id", filter.BranchID)

	sellers, total, err := s.sellerRepo.FindAll(ctx, scope, f)
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(sellers, ToSellerResponse), total, nil
}

// Update replaces name and branch of a visible seller
func (s *SellerService) Update(ctx context.Context, p shared.Principal, id uuid.UUID, req SellerRequest) (*SellerResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceSeller)
	if err != nil {
		return nil, err
	}
	seller, err := s.sellerRepo.FindByID(ctx, scope, id, false)
	if err != nil {
		return nil, err
	}
	branch, err := s.branchRepo.FindByID(ctx, s.policy.Scope(p, access.ResourceBranch), req.BranchID, false)
	if err != nil {
		return nil, err
	}
	if err := seller.Update(req.Name, branch.ID); err != nil {
		return nil, err
	}
	if err := s.sellerRepo.Save(ctx, seller); err != nil {
		return nil, err
	}
	seller.BranchName = branch.Name

	response := ToSellerResponse(seller)
	return &response, nil
}
