package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/catalog"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.Product{})
	require.NoError(t, err)

	return db
}

func newTestProduct(t *testing.T, stock int) *catalog.Product {
	product, err := catalog.NewProduct("STEM-001", "snap-circuits-jr", "Snap Circuits Jr.", decimal.NewFromFloat(34.99))
	require.NoError(t, err)
	if stock > 0 {
		require.NoError(t, product.AdjustStock(stock))
	}
	return product
}

func TestGormProductRepositorySaveWithLock(t *testing.T) {
	ctx := context.Background()

	t.Run("persists stock deducted to zero", func(t *testing.T) {
		db := setupProductTestDB(t)
		repo := NewGormProductRepository(db)

		product := newTestProduct(t, 3)
		require.NoError(t, repo.Save(ctx, product))

		require.NoError(t, product.DeductStock(3))
		require.NoError(t, repo.SaveWithLock(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.StockQuantity)
		assert.Equal(t, product.Version, found.Version)
	})

	t.Run("persists cleared featured flag on archive", func(t *testing.T) {
		db := setupProductTestDB(t)
		repo := NewGormProductRepository(db)

		product := newTestProduct(t, 1)
		product.SetFeatured(true)
		require.NoError(t, product.Publish())
		require.NoError(t, repo.Save(ctx, product))

		require.NoError(t, product.Archive())
		require.NoError(t, repo.SaveWithLock(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, catalog.ProductStatusArchived, found.Status)
		assert.False(t, found.Featured)
	})

	t.Run("persists cleared compare-at price", func(t *testing.T) {
		db := setupProductTestDB(t)
		repo := NewGormProductRepository(db)

		product := newTestProduct(t, 1)
		require.NoError(t, product.SetPricing(decimal.NewFromFloat(34.99), decimal.NewFromFloat(44.99)))
		require.NoError(t, repo.Save(ctx, product))

		require.NoError(t, product.SetPricing(decimal.NewFromFloat(34.99), decimal.Zero))
		require.NoError(t, repo.SaveWithLock(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, found.CompareAtPrice.IsZero())
	})

	t.Run("returns conflict for stale version", func(t *testing.T) {
		db := setupProductTestDB(t)
		repo := NewGormProductRepository(db)

		product := newTestProduct(t, 5)
		require.NoError(t, repo.Save(ctx, product))

		stale := *product
		require.NoError(t, product.DeductStock(2))
		require.NoError(t, repo.SaveWithLock(ctx, product))

		require.NoError(t, stale.DeductStock(1))
		err := repo.SaveWithLock(ctx, &stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
