package account

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCustomerRepository is a mock implementation of account.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*account.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*account.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]account.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]account.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *account.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithLock(ctx context.Context, customer *account.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockAddressRepository is a mock implementation of account.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]account.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]account.Address), args.Error(1)
}

func (m *MockAddressRepository) FindDefaultShipping(ctx context.Context, customerID uuid.UUID) (*account.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Address), args.Error(1)
}

func (m *MockAddressRepository) FindDefaultBilling(ctx context.Context, customerID uuid.UUID) (*account.Address, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, address *account.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) SetDefaultShipping(ctx context.Context, customerID, addressID uuid.UUID) error {
	args := m.Called(ctx, customerID, addressID)
	return args.Error(0)
}

func (m *MockAddressRepository) SetDefaultBilling(ctx context.Context, customerID, addressID uuid.UUID) error {
	args := m.Called(ctx, customerID, addressID)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestCustomer(t *testing.T) *account.Customer {
	t.Helper()
	customer, err := account.NewCustomer(uuid.New(), "ada@example.com", "Ada", "Lovelace")
	require.NoError(t, err)
	customer.ClearDomainEvents()
	return customer
}

func TestAddressService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("first address becomes default shipping and billing", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := NewAddressService(addressRepo, customerRepo, zap.NewNop())
		customer := newTestCustomer(t)

		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		addressRepo.On("FindByCustomer", ctx, customer.ID).Return([]account.Address{}, nil)
		addressRepo.On("Save", ctx, mock.AnythingOfType("*account.Address")).Return(nil)

		resp, err := service.Create(ctx, customer.UserID, CreateAddressRequest{
			Label:         "Home",
			RecipientName: "Ada Lovelace",
			Line1:         "1 Analytical Way",
			City:          "London",
			PostalCode:    "EC1A 1BB",
			CountryCode:   "gb",
		})

		require.NoError(t, err)
		assert.True(t, resp.IsDefaultShipping)
		assert.True(t, resp.IsDefaultBilling)
		assert.Equal(t, "GB", resp.CountryCode)
	})

	t.Run("second address is not a default", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := NewAddressService(addressRepo, customerRepo, zap.NewNop())
		customer := newTestCustomer(t)

		first, err := account.NewAddress(customer.ID, "Ada Lovelace", "1 Analytical Way", "London", "EC1A 1BB", "GB")
		require.NoError(t, err)

		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		addressRepo.On("FindByCustomer", ctx, customer.ID).Return([]account.Address{*first}, nil)
		addressRepo.On("Save", ctx, mock.AnythingOfType("*account.Address")).Return(nil)

		resp, err := service.Create(ctx, customer.UserID, CreateAddressRequest{
			RecipientName: "Ada Lovelace",
			Line1:         "2 Difference St",
			City:          "London",
			PostalCode:    "EC1A 1BB",
			CountryCode:   "GB",
		})

		require.NoError(t, err)
		assert.False(t, resp.IsDefaultShipping)
		assert.False(t, resp.IsDefaultBilling)
	})

	t.Run("rejects a full address book", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := NewAddressService(addressRepo, customerRepo, zap.NewNop())
		customer := newTestCustomer(t)

		full := make([]account.Address, maxAddressesPerCustomer)
		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		addressRepo.On("FindByCustomer", ctx, customer.ID).Return(full, nil)

		_, err := service.Create(ctx, customer.UserID, CreateAddressRequest{
			RecipientName: "Ada Lovelace",
			Line1:         "1 Analytical Way",
			City:          "London",
			PostalCode:    "EC1A 1BB",
			CountryCode:   "GB",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ADDRESS_LIMIT", domainErr.Code)
		addressRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAddressService_Ownership(t *testing.T) {
	ctx := context.Background()

	t.Run("hides another customer's address", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := NewAddressService(addressRepo, customerRepo, zap.NewNop())
		customer := newTestCustomer(t)

		foreign, err := account.NewAddress(uuid.New(), "Someone Else", "9 Other Rd", "Leeds", "LS1 1AA", "GB")
		require.NoError(t, err)

		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		addressRepo.On("FindByID", ctx, foreign.ID).Return(foreign, nil)

		err = service.Delete(ctx, customer.UserID, foreign.ID)

		require.ErrorIs(t, err, shared.ErrNotFound)
		addressRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("sets default shipping through the repository", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		addressRepo := new(MockAddressRepository)
		service := NewAddressService(addressRepo, customerRepo, zap.NewNop())
		customer := newTestCustomer(t)

		address, err := account.NewAddress(customer.ID, "Ada Lovelace", "1 Analytical Way", "London", "EC1A 1BB", "GB")
		require.NoError(t, err)

		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		addressRepo.On("FindByID", ctx, address.ID).Return(address, nil)
		addressRepo.On("SetDefaultShipping", ctx, customer.ID, address.ID).Return(nil)

		require.NoError(t, service.SetDefaultShipping(ctx, customer.UserID, address.ID))
		addressRepo.AssertExpectations(t)
	})
}

func TestPaymentCardService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("first card becomes the default", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		cardRepo := new(MockPaymentCardRepository)
		service := NewPaymentCardService(cardRepo, customerRepo, zap.NewNop())
		customer := newTestCustomer(t)

		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		cardRepo.On("FindByCustomer", ctx, customer.ID).Return([]account.PaymentCard{}, nil)
		cardRepo.On("Save", ctx, mock.AnythingOfType("*account.PaymentCard")).Return(nil)

		resp, err := service.Create(ctx, customer.UserID, CreatePaymentCardRequest{
			Brand:       "Visa",
			LastFour:    "4242",
			HolderName:  "Ada Lovelace",
			ExpiryMonth: 12,
			ExpiryYear:  time.Now().Year() + 2,
		})

		require.NoError(t, err)
		assert.True(t, resp.IsDefault)
		assert.Equal(t, "visa", resp.Brand)
		assert.Equal(t, "**** **** **** 4242", resp.MaskedNumber)
	})

	t.Run("rejects an already expired card", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		cardRepo := new(MockPaymentCardRepository)
		service := NewPaymentCardService(cardRepo, customerRepo, zap.NewNop())
		customer := newTestCustomer(t)

		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		cardRepo.On("FindByCustomer", ctx, customer.ID).Return([]account.PaymentCard{}, nil)

		_, err := service.Create(ctx, customer.UserID, CreatePaymentCardRequest{
			Brand:       "visa",
			LastFour:    "4242",
			HolderName:  "Ada Lovelace",
			ExpiryMonth: 1,
			ExpiryYear:  2020,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CARD_EXPIRED", domainErr.Code)
		cardRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

// MockPaymentCardRepository is a mock implementation of account.PaymentCardRepository
type MockPaymentCardRepository struct {
	mock.Mock
}

func (m *MockPaymentCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.PaymentCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.PaymentCard), args.Error(1)
}

func (m *MockPaymentCardRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]account.PaymentCard, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]account.PaymentCard), args.Error(1)
}

func (m *MockPaymentCardRepository) FindDefault(ctx context.Context, customerID uuid.UUID) (*account.PaymentCard, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.PaymentCard), args.Error(1)
}

func (m *MockPaymentCardRepository) Save(ctx context.Context, card *account.PaymentCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockPaymentCardRepository) SetDefault(ctx context.Context, customerID, cardID uuid.UUID) error {
	args := m.Called(ctx, customerID, cardID)
	return args.Error(0)
}

func (m *MockPaymentCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
