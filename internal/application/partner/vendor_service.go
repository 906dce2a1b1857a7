package partner

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/partner"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// VendorService handles vendor-related business operations
type VendorService struct {
	appshared.Lifecycle
	vendorRepo partner.VendorRepository
	policy     *access.Policy
	logger     *zap.Logger
}

// NewVendorService creates a new VendorService
func NewVendorService(vendorRepo partner.VendorRepository, policy *access.Policy, logger *zap.Logger) *VendorService {
	return &VendorService{
		Lifecycle:  appshared.NewLifecycle(policy, access.ResourceVendor, vendorRepo, logger),
		vendorRepo: vendorRepo,
		policy:     policy,
		logger:     logger,
	}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, p shared.Principal, req VendorRequest) (*VendorResponse, error) {
	if _, err := s.policy.Authorize(p, access.ResourceVendor); err != nil {
		return nil, err
	}
	vendor, err := partner.NewVendor(req.Name, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	s.logger.Info("Vendor created", zap.String("vendor_id", vendor.ID.String()))
	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByID retrieves a vendor
func (s *VendorService) GetByID(ctx context.Context, p shared.Principal, id uuid.UUID, includeDeleted bool) (*VendorResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceVendor)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendorRepo.FindByID(ctx, scope, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves vendors; search matches the name
func (s *VendorService) List(ctx context.Context, p shared.Principal, query appshared.ListQuery) ([]VendorResponse, int64, error) {
	scope, err := s.policy.Authorize(p, access.ResourceVendor)
	if err != nil {
		return nil, 0, err
	}
	vendors, total, err := s.vendorRepo.FindAll(ctx, scope, query.Filter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]VendorResponse, len(vendors))
	for i := range vendors {
		out[i] = ToVendorResponse(&vendors[i])
	}
	return out, total, nil
}

// Update renames a vendor
func (s *VendorService) Update(ctx context.Context, p shared.Principal, id uuid.UUID, req VendorRequest) (*VendorResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceVendor)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendorRepo.FindByID(ctx, scope, id, false)
	if err != nil {
		return nil, err
	}
	if err := vendor.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	response := ToVendorResponse(vendor)
	return &response, nil
}
