package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stemkits/backend/internal/domain/shopping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&shopping.Cart{}, &shopping.CartItem{})
	require.NoError(t, err)

	return db
}

func newTestCart(t *testing.T) *shopping.Cart {
	cart, err := shopping.NewCart(uuid.New())
	require.NoError(t, err)
	return cart
}

func TestGormCartRepositorySave(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	t.Run("saves new cart with items", func(t *testing.T) {
		cart := newTestCart(t)
		require.NoError(t, cart.AddItem(uuid.New(), "Snap Circuits Jr.", decimal.NewFromFloat(34.99), 2))
		require.NoError(t, cart.AddItem(uuid.New(), "Microscope Kit", decimal.NewFromFloat(59.00), 1))

		require.NoError(t, repo.Save(ctx, cart))

		found, err := repo.FindByCustomer(ctx, cart.CustomerID)
		require.NoError(t, err)
		assert.Equal(t, cart.ID, found.ID)
		assert.Len(t, found.Items, 2)
		assert.Equal(t, 3, found.ItemCount())
	})

	t.Run("replaces items wholesale on update", func(t *testing.T) {
		cart := newTestCart(t)
		productID := uuid.New()
		require.NoError(t, cart.AddItem(productID, "Robot Arm", decimal.NewFromFloat(89.99), 1))
		require.NoError(t, cart.AddItem(uuid.New(), "Crystal Growing Lab", decimal.NewFromFloat(24.50), 1))
		require.NoError(t, repo.Save(ctx, cart))

		require.NoError(t, cart.RemoveItem(productID))
		require.NoError(t, repo.Save(ctx, cart))

		found, err := repo.FindByID(ctx, cart.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "Crystal Growing Lab", found.Items[0].ProductName)

		var count int64
		require.NoError(t, db.Model(&shopping.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("persists snapshot prices", func(t *testing.T) {
		cart := newTestCart(t)
		require.NoError(t, cart.AddItem(uuid.New(), "Telescope", decimal.NewFromFloat(129.95), 1))
		require.NoError(t, repo.Save(ctx, cart))

		found, err := repo.FindByID(ctx, cart.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.True(t, found.Items[0].UnitPrice.Equal(decimal.NewFromFloat(129.95)))
	})
}

func TestGormCartRepositoryFind(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns not found for customer without cart", func(t *testing.T) {
		_, err := repo.FindByCustomer(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCartRepositoryDelete(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	t.Run("deletes cart and its items", func(t *testing.T) {
		cart := newTestCart(t)
		require.NoError(t, cart.AddItem(uuid.New(), "Chemistry Set", decimal.NewFromFloat(44.00), 1))
		require.NoError(t, repo.Save(ctx, cart))

		require.NoError(t, repo.Delete(ctx, cart.ID))

		_, err := repo.FindByID(ctx, cart.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var count int64
		require.NoError(t, db.Model(&shopping.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("returns not found for unknown cart", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
