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

// CustomerService handles customer-related business operations.
// Customers are shared by every branch.
type CustomerService struct {
	appshared.Lifecycle
	customerRepo partner.CustomerRepository
	policy       *access.Policy
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, policy *access.Policy, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		Lifecycle:    appshared.NewLifecycle(policy, access.ResourceCustomer, customerRepo, logger),
		customerRepo: customerRepo,
		policy:       policy,
		logger:       logger,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, p shared.Principal, req CustomerRequest) (*CustomerResponse, error) {
	if _, err := s.policy.Authorize(p, access.ResourceCustomer); err != nil {
		return nil, err
	}
	customer, err := partner.NewCustomer(req.Name, req.Phone, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.logger.Info("Customer created", zap.String("customer_id", customer.ID.String()))
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer
func (s *CustomerService) GetByID(ctx context.Context, p shared.Principal, id uuid.UUID, includeDeleted bool) (*CustomerResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceCustomer)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, scope, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers; search matches name or phone
func (s *CustomerService) List(ctx context.Context, p shared.Principal, query appshared.ListQuery) ([]CustomerResponse, int64, error) {
	scope, err := s.policy.Authorize(p, access.ResourceCustomer)
	if err != nil {
		return nil, 0, err
	}
	customers, total, err := s.customerRepo.FindAll(ctx, scope, query.Filter())
	if err != nil {
		return nil, 0, err
	}
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out, total, nil
}

// Update replaces name and phone
func (s *CustomerService) Update(ctx context.Context, p shared.Principal, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	scope, err := s.policy.Authorize(p, access.ResourceCustomer)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, scope, id, false)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.Name, req.Phone); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}
