package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const maxAddressesPerCustomer = 20

// AddressService handles a customer's address book
type AddressService struct {
	addressRepo  account.AddressRepository
	customerRepo account.CustomerRepository
	logger       *zap.Logger
}

// NewAddressService creates a new address service
func NewAddressService(addressRepo account.AddressRepository, customerRepo account.CustomerRepository, logger *zap.Logger) *AddressService {
	return &AddressService{
		addressRepo:  addressRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create adds an address to the customer's address book. The first
// address becomes the default for both shipping and billing.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.addressRepo.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= maxAddressesPerCustomer {
		return nil, shared.NewDomainError("ADDRESS_LIMIT", "Address book is full")
	}

	address, err := account.NewAddress(customer.ID, req.RecipientName, req.Line1, req.City, req.PostalCode, req.CountryCode)
	if err != nil {
		return nil, err
	}
	address.Line2 = req.Line2
	address.Region = req.Region
	address.Phone = req.Phone
	if err := address.SetLabel(req.Label); err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		address.IsDefaultShipping = true
		address.IsDefaultBilling = true
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	s.logger.Info("Address created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("address_id", address.ID.String()))

	response := ToAddressResponse(address)
	return &response, nil
}

// List returns the customer's address book
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	addresses, err := s.addressRepo.FindByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return ToAddressResponses(addresses), nil
}

// Update replaces the fields of one of the customer's addresses
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	address, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := address.Update(req.RecipientName, req.Line1, req.Line2, req.City, req.Region, req.PostalCode, req.CountryCode, req.Phone); err != nil {
		return nil, err
	}
	if err := address.SetLabel(req.Label); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	response := ToAddressResponse(address)
	return &response, nil
}

// SetDefaultShipping makes the address the customer's default shipping
// address, clearing the flag on any other address.
func (s *AddressService) SetDefaultShipping(ctx context.Context, userID, addressID uuid.UUID) error {
	address, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return err
	}
	return s.addressRepo.SetDefaultShipping(ctx, address.CustomerID, address.ID)
}

// SetDefaultBilling makes the address the customer's default billing
// address, clearing the flag on any other address.
func (s *AddressService) SetDefaultBilling(ctx context.Context, userID, addressID uuid.UUID) error {
	address, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return err
	}
	return s.addressRepo.SetDefaultBilling(ctx, address.CustomerID, address.ID)
}

// Delete removes an address from the customer's address book
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	address, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return err
	}
	if err := s.addressRepo.Delete(ctx, address.ID); err != nil {
		return err
	}
	s.logger.Info("Address deleted",
		zap.String("customer_id", address.CustomerID.String()),
		zap.String("address_id", address.ID.String()))
	return nil
}

// ownedAddress loads an address and verifies it belongs to the user's
// customer profile. Foreign addresses surface as not found.
func (s *AddressService) ownedAddress(ctx context.Context, userID, addressID uuid.UUID) (*account.Address, error) {
	customer, err := s.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.CustomerID != customer.ID {
		return nil, shared.ErrNotFound
	}
	return address, nil
}
