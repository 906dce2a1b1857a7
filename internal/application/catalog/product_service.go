package catalog

import (
	"context"

	"github.com/google/uuid"
	appshared "github.com/jewelry-erp/backend/internal/application/shared"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/domain/catalog"
	"github.com/jewelry-erp/backend/internal/domain/partner"
	"github.com/jewelry-erp/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles gold and silver catalog operations
type ProductService struct {
	appshared.Lifecycle
	productRepo catalog.ProductRepository
	vendorRepo  partner.VendorRepository
	policy      *access.Policy
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	vendorRepo partner.VendorRepository,
	policy *access.Policy,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		Lifecycle:   appshared.NewLifecycle(policy, access.ResourceProduct, productRepo, logger),
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		policy:      policy,
		logger:      logger,
	}
}

// Create creates a product of the given metal. The vendor must exist.
func (s *ProductService) Create(ctx context.Context, p shared.Principal, req ProductRequest) (*ProductResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceProduct)
	if err != nil {
		return nil, err
	}
	metal, err := catalog.ParseMetal(req.Metal)
	if err != nil {
		return nil, err
	}
	vendor, err := s.vendorRepo.FindByID(ctx, scope, req.VendorID, false)
	if err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(metal, vendor.ID, req.spec(), p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	product.VendorName = vendor.Name

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("metal", string(product.Metal)),
		zap.String("vendor_id", vendor.ID.String()),
	)
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, p shared.Principal, id uuid.UUID, includeDeleted bool) (*ProductResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceProduct)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, scope, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products filtered by metal and vendor; search matches the name
func (s *ProductService) List(ctx context.Context, p shared.Principal, query appshared.ListQuery, filter ProductListFilter) ([]ProductResponse, int64, error) {
	scope, err := s.policy.Authorize(p, access.ResourceProduct)
	if err != nil {
		return nil, 0, err
	}
	f := query.Filter()
	appshared.SetString(f, "metal", filter.Metal)
	appshared.SetUUID(f, "vendor_id", filter.VendorID)

	products, total, err := s.productRepo.FindAll(ctx, scope, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out, total, nil
}

// Update replaces the attributes and vendor of a product. The metal never changes.
func (s *ProductService) Update(ctx context.Context, p shared.Principal, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceProduct)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, scope, id, false)
	if err != nil {
		return nil, err
	}
	if req.Metal != "" && catalog.Metal(req.Metal) != product.Metal {
		return nil, shared.NewValidationError("METAL_IMMUTABLE", "The metal of a product cannot be changed")
	}
	vendor, err := s.vendorRepo.FindByID(ctx, scope, req.VendorID, false)
	if err != nil {
		return nil, err
	}
	if err := product.Update(vendor.ID, req.spec()); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	product.VendorName = vendor.Name

	response := ToProductResponse(product)
	return &response, nil
}
