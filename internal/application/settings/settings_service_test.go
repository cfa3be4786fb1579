package settings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/settings"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStoreSettingsRepository is a mock implementation of settings.StoreSettingsRepository
type MockStoreSettingsRepository struct {
	mock.Mock
}

func (m *MockStoreSettingsRepository) Get(ctx context.Context) (*settings.StoreSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.StoreSettings), args.Error(1)
}

func (m *MockStoreSettingsRepository) Save(ctx context.Context, record *settings.StoreSettings) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates and uppercases the currency", func(t *testing.T) {
		repo := new(MockStoreSettingsRepository)
		service := NewSettingsService(repo, zap.NewNop())
		record := settings.DefaultStoreSettings()

		repo.On("Get", ctx).Return(record, nil)
		repo.On("Save", ctx, record).Return(nil)

		resp, err := service.Update(ctx, UpdateSettingsRequest{
			StoreName:        "STEM Kits UK",
			SupportEmail:     "help@stemkits.example",
			CurrencyCode:     "gbp",
			FlatShippingFee:  decimal.NewFromFloat(3.50),
			FreeShippingOver: decimal.NewFromInt(60),
		})

		require.NoError(t, err)
		assert.Equal(t, "GBP", resp.CurrencyCode)
		assert.Equal(t, "STEM Kits UK", resp.StoreName)
	})

	t.Run("rejects an unknown currency code", func(t *testing.T) {
		repo := new(MockStoreSettingsRepository)
		service := NewSettingsService(repo, zap.NewNop())
		record := settings.DefaultStoreSettings()

		repo.On("Get", ctx).Return(record, nil)

		_, err := service.Update(ctx, UpdateSettingsRequest{
			StoreName:        "STEM Kits",
			SupportEmail:     "help@stemkits.example",
			CurrencyCode:     "ZZZ",
			FlatShippingFee:  decimal.NewFromFloat(3.50),
			FreeShippingOver: decimal.NewFromInt(60),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CURRENCY", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSettingsService_PauseResume(t *testing.T) {
	ctx := context.Background()

	t.Run("pause and resume round trip", func(t *testing.T) {
		repo := new(MockStoreSettingsRepository)
		service := NewSettingsService(repo, zap.NewNop())
		record := settings.DefaultStoreSettings()

		repo.On("Get", ctx).Return(record, nil)
		repo.On("Save", ctx, record).Return(nil)

		resp, err := service.PauseOrders(ctx)
		require.NoError(t, err)
		assert.True(t, resp.OrdersPaused)

		resp, err = service.ResumeOrders(ctx)
		require.NoError(t, err)
		assert.False(t, resp.OrdersPaused)
	})

	t.Run("storefront view hides the support email", func(t *testing.T) {
		repo := new(MockStoreSettingsRepository)
		service := NewSettingsService(repo, zap.NewNop())
		record := settings.DefaultStoreSettings()
		require.NoError(t, record.SetAnnouncement("Summer sale on robot kits"))

		repo.On("Get", ctx).Return(record, nil)

		resp, err := service.GetStorefront(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Summer sale on robot kits", resp.AnnouncementText)
		assert.Equal(t, "STEM Kits", resp.StoreName)
	})
}
