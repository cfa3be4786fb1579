package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockProductRepository is a mock implementation of ProductRepository
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
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindStorefront(ctx context.Context, query catalog.StorefrontQuery, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, query, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
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

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindRoots(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindActive(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// =============================================================================
// Tests
// =============================================================================

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates draft product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		publisher := new(MockEventPublisher)
		service := NewProductService(productRepo, categoryRepo, publisher)

		productRepo.On("ExistsBySKU", ctx, "KIT-001").Return(false, nil)
		productRepo.On("ExistsBySlug", ctx, "gear-bot-kit").Return(false, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		stock := 25
		response, err := service.Create(ctx, CreateProductRequest{
			SKU:           "KIT-001",
			Slug:          "gear-bot-kit",
			Name:          "Gear Bot Kit",
			Price:         decimal.NewFromFloat(39.99),
			StockQuantity: &stock,
		})
		require.NoError(t, err)
		assert.Equal(t, "KIT-001", response.SKU)
		assert.Equal(t, "draft", response.Status)
		assert.Equal(t, 25, response.StockQuantity)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockCategoryRepository), new(MockEventPublisher))

		productRepo.On("ExistsBySKU", ctx, "KIT-001").Return(true, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			SKU:   "KIT-001",
			Slug:  "gear-bot-kit",
			Name:  "Gear Bot Kit",
			Price: decimal.NewFromInt(10),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU already exists")
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := NewProductService(productRepo, categoryRepo, new(MockEventPublisher))

		categoryID := uuid.New()
		productRepo.On("ExistsBySKU", ctx, "KIT-001").Return(false, nil)
		productRepo.On("ExistsBySlug", ctx, "gear-bot-kit").Return(false, nil)
		categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateProductRequest{
			SKU:        "KIT-001",
			Slug:       "gear-bot-kit",
			Name:       "Gear Bot Kit",
			Price:      decimal.NewFromInt(10),
			CategoryID: &categoryID,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Category not found")
	})
}

func TestProductService_Publish(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	service := NewProductService(productRepo, new(MockCategoryRepository), publisher)

	product, err := catalog.NewProduct("KIT-001", "gear-bot-kit", "Gear Bot Kit", decimal.NewFromInt(40))
	require.NoError(t, err)
	product.ClearDomainEvents()

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", ctx, product).Return(nil)
	publisher.On("Publish", ctx, mock.Anything).Return(nil)

	response, err := service.Publish(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", response.Status)
	publisher.AssertExpectations(t)
}

func TestProductService_GetBySlug_HidesInactive(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	service := NewProductService(productRepo, new(MockCategoryRepository), new(MockEventPublisher))

	product, err := catalog.NewProduct("KIT-001", "gear-bot-kit", "Gear Bot Kit", decimal.NewFromInt(40))
	require.NoError(t, err)

	productRepo.On("FindBySlug", ctx, "gear-bot-kit").Return(product, nil)

	_, err = service.GetBySlug(ctx, "gear-bot-kit")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes draft product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockCategoryRepository), new(MockEventPublisher))

		product, err := catalog.NewProduct("KIT-001", "gear-bot-kit", "Gear Bot Kit", decimal.NewFromInt(40))
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Delete", ctx, product.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, product.ID))
		productRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete published product", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := NewProductService(productRepo, new(MockCategoryRepository), new(MockEventPublisher))

		product, err := catalog.NewProduct("KIT-001", "gear-bot-kit", "Gear Bot Kit", decimal.NewFromInt(40))
		require.NoError(t, err)
		require.NoError(t, product.Publish())

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		err = service.Delete(ctx, product.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "archive instead")
	})
}
