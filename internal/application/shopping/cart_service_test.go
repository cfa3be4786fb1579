package shopping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/shopping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCartRepository is a mock implementation of shopping.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*shopping.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWishlistRepository is a mock implementation of shopping.WishlistRepository
type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*shopping.Wishlist, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) Save(ctx context.Context, wishlist *shopping.Wishlist) error {
	args := m.Called(ctx, wishlist)
	return args.Error(0)
}

func (m *MockWishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindStorefront(ctx context.Context, query catalog.StorefrontQuery, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, query, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountStorefront(ctx context.Context, query catalog.StorefrontQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByStatus(ctx context.Context, status catalog.ProductStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

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

func newTestCustomer(t *testing.T) *account.Customer {
	t.Helper()
	customer, err := account.NewCustomer(uuid.New(), "ada@example.com", "Ada", "Lovelace")
	require.NoError(t, err)
	customer.ClearDomainEvents()
	return customer
}

func newActiveProduct(t *testing.T, price string, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("KIT-001", "robot-kit", "Robot Kit", decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, product.AdjustStock(stock))
	require.NoError(t, product.Publish())
	product.ClearDomainEvents()
	return product
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a cart on first add and snapshots the price", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewCartService(cartRepo, productRepo, customerRepo, zap.NewNop())

		customer := newTestCustomer(t)
		product := newActiveProduct(t, "49.99", 10)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		cartRepo.On("FindByCustomer", ctx, customer.ID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", ctx, mock.AnythingOfType("*shopping.Cart")).Return(nil)

		resp, err := service.AddItem(ctx, customer.UserID, AddCartItemRequest{ProductID: product.ID, Quantity: 2})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Robot Kit", resp.Items[0].ProductName)
		assert.True(t, decimal.RequireFromString("99.98").Equal(resp.Subtotal))
		assert.False(t, resp.Items[0].PriceChanged)
		assert.True(t, resp.Items[0].InStock)
	})

	t.Run("rejects an inactive product", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewCartService(cartRepo, productRepo, customerRepo, zap.NewNop())

		customer := newTestCustomer(t)
		draft, err := catalog.NewProduct("KIT-002", "draft-kit", "Draft Kit", decimal.NewFromInt(10))
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, draft.ID).Return(draft, nil)

		_, err = service.AddItem(ctx, customer.UserID, AddCartItemRequest{ProductID: draft.ID, Quantity: 1})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects quantities above stock", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewCartService(cartRepo, productRepo, customerRepo, zap.NewNop())

		customer := newTestCustomer(t)
		product := newActiveProduct(t, "49.99", 1)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.AddItem(ctx, customer.UserID, AddCartItemRequest{ProductID: product.ID, Quantity: 5})

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
	})
}

func TestCartService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("flags price changes and unavailable products", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewCartService(cartRepo, productRepo, customerRepo, zap.NewNop())

		customer := newTestCustomer(t)
		product := newActiveProduct(t, "59.99", 10)
		goneID := uuid.New()

		cart, err := shopping.NewCart(customer.ID)
		require.NoError(t, err)
		require.NoError(t, cart.AddItem(product.ID, product.Name, decimal.RequireFromString("49.99"), 1))
		require.NoError(t, cart.AddItem(goneID, "Retired Kit", decimal.NewFromInt(20), 1))

		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		cartRepo.On("FindByCustomer", ctx, customer.ID).Return(cart, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("FindByID", ctx, goneID).Return(nil, shared.ErrNotFound)

		resp, err := service.Get(ctx, customer.UserID)

		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
		assert.True(t, resp.Items[0].PriceChanged)
		require.NotNil(t, resp.Items[0].CurrentPrice)
		assert.True(t, product.Price.Equal(*resp.Items[0].CurrentPrice))
		assert.True(t, resp.Items[1].Unavailable)
	})

	t.Run("returns an empty cart when none exists", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		customerRepo := new(MockCustomerRepository)
		service := NewCartService(cartRepo, new(MockProductRepository), customerRepo, zap.NewNop())

		customer := newTestCustomer(t)
		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		cartRepo.On("FindByCustomer", ctx, customer.ID).Return(nil, shared.ErrNotFound)

		resp, err := service.Get(ctx, customer.UserID)

		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.Equal(t, 0, resp.ItemCount)
	})
}

func TestWishlistService_MoveToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("moves a saved product into the cart", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		wishlistRepo := new(MockWishlistRepository)
		productRepo := new(MockProductRepository)
		customerRepo := new(MockCustomerRepository)
		cartService := NewCartService(cartRepo, productRepo, customerRepo, zap.NewNop())
		service := NewWishlistService(wishlistRepo, customerRepo, productRepo, cartService, zap.NewNop())

		customer := newTestCustomer(t)
		product := newActiveProduct(t, "29.99", 5)

		wishlist, err := shopping.NewWishlist(customer.ID)
		require.NoError(t, err)
		require.NoError(t, wishlist.AddItem(product.ID))

		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		wishlistRepo.On("FindByCustomer", ctx, customer.ID).Return(wishlist, nil)
		wishlistRepo.On("Save", ctx, wishlist).Return(nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("FindByCustomer", ctx, customer.ID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", ctx, mock.AnythingOfType("*shopping.Cart")).Return(nil)

		resp, err := service.MoveToCart(ctx, customer.UserID, product.ID)

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, product.ID, resp.Items[0].ProductID)
		assert.False(t, wishlist.Contains(product.ID))
	})

	t.Run("keeps the wishlist entry when the product is out of stock", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		wishlistRepo := new(MockWishlistRepository)
		productRepo := new(MockProductRepository)
		customerRepo := new(MockCustomerRepository)
		cartService := NewCartService(cartRepo, productRepo, customerRepo, zap.NewNop())
		service := NewWishlistService(wishlistRepo, customerRepo, productRepo, cartService, zap.NewNop())

		customer := newTestCustomer(t)
		product := newActiveProduct(t, "29.99", 0)

		wishlist, err := shopping.NewWishlist(customer.ID)
		require.NoError(t, err)
		require.NoError(t, wishlist.AddItem(product.ID))

		customerRepo.On("FindByUserID", ctx, customer.UserID).Return(customer, nil)
		wishlistRepo.On("FindByCustomer", ctx, customer.ID).Return(wishlist, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err = service.MoveToCart(ctx, customer.UserID, product.ID)

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, wishlist.Contains(product.ID))
		wishlistRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
