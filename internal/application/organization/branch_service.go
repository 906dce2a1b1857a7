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

// BranchService handles branch-related business operations
type BranchService struct {
	appshared.Lifecycle
	branchRepo organization.BranchRepository
	policy     *access.Policy
	logger     *zap.Logger
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo organization.BranchRepository, policy *access.Policy, logger *zap.Logger) *BranchService {
	return &BranchService{
		Lifecycle:  appshared.NewLifecycle(policy, access.ResourceBranch, branchRepo, logger),
		branchRepo: branchRepo,
		policy:     policy,
		logger:     logger,
	}
}

// Create creates a new branch. A new branch lies outside any manager's own
// branch, so only administrators may create one.
func (s *BranchService) Create(ctx context.Context, p shared.Principal, req BranchRequest) (*BranchResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceBranch)
	if err != nil {
		return nil, err
	}
	if !scope.IsUnrestricted() {
		return nil, shared.ErrPermissionDenied
	}

	branch, err := organization.NewBranch(req.Name, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	s.logger.Info("Branch created", zap.String("branch_id", branch.ID.String()), zap.String("name", branch.Name))
	response := ToBranchResponse(branch)
	return &response, nil
}

// GetByID retrieves a visible branch
func (s *BranchService) GetByID(ctx context.Context, p shared.Principal, id uuid.UUID, includeDeleted bool) (*BranchResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceBranch)
	if err != nil {
		return nil, err
	}
	branch, err := s.branchRepo.FindByID(ctx, scope, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}

// List retrieves visible branches
func (s *BranchService) List(ctx context.Context, p shared.Principal, query appshared.ListQuery) ([]BranchResponse, int64, error) {
	scope, err := s.policy.Authorize(p, access.ResourceBranch)
	if err != nil {
		return nil, 0, err
	}
	branches, total, err := s.branchRepo.FindAll(ctx, scope, query.Filter())
	if err != nil {
		return nil, 0, err
	}
	return mapSlice(branches, ToBranchResponse), total, nil
}

// Update renames a visible branch
func (s *BranchService) Update(ctx context.Context, p shared.Principal, id uuid.UUID, req BranchRequest) (*BranchResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceBranch)
	if err != nil {
		return nil, err
	}
	branch, err := s.branchRepo.FindByID(ctx, scope, id, false)
	if err != nil {
		return nil, err
	}
	if err := branch.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}
	response := ToBranchResponse(branch)
	return &response, nil
}
