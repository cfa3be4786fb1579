package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService handles customer profile operations
type CustomerService struct {
	customerRepo account.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo account.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// GetByUserID returns the customer profile for an identity user
func (s *CustomerService) GetByUserID(ctx context.Context, userID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID returns a customer profile by its ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateProfile updates the signed-in customer's profile
func (s *CustomerService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := customer.UpdateProfile(req.FirstName, req.LastName, req.Phone); err != nil {
		return nil, err
	}
	if req.MarketingOptIn != nil {
		customer.SetMarketingOptIn(*req.MarketingOptIn)
	}

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer profile updated", zap.String("customer_id", customer.ID.String()))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetLoyalty returns the customer's loyalty standing
func (s *CustomerService) GetLoyalty(ctx context.Context, userID uuid.UUID) (*LoyaltyResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToLoyaltyResponse(customer)
	return &response, nil
}

// List returns customers for the back office
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) ([]CustomerResponse, int64, error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, ToCustomerResponse(&customers[i]))
	}
	return responses, total, nil
}

// Disable blocks a customer account from ordering
func (s *CustomerService) Disable(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, (*account.Customer).Disable)
}

// Enable reactivates a disabled customer account
func (s *CustomerService) Enable(ctx context.Context, id uuid.UUID) error {
	return s.setStatus(ctx, id, (*account.Customer).Enable)
}

func (s *CustomerService) setStatus(ctx context.Context, id uuid.UUID, op func(*account.Customer) error) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := op(customer); err != nil {
		return err
	}
	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return err
	}
	s.logger.Info("Customer status changed",
		zap.String("customer_id", id.String()),
		zap.String("status", string(customer.Status)))
	return nil
}
