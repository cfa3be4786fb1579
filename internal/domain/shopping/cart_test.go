package shopping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem(t *testing.T) {
	newCart := func(t *testing.T) *Cart {
		cart, err := NewCart(uuid.New())
		require.NoError(t, err)
		return cart
	}

	t.Run("adds a line with price snapshot", func(t *testing.T) {
		cart := newCart(t)
		productID := uuid.New()

		require.NoError(t, cart.AddItem(productID, "Gear Bot Kit", decimal.NewFromFloat(39.99), 2))
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "Gear Bot Kit", cart.Items[0].ProductName)
		assert.True(t, cart.Items[0].UnitPrice.Equal(decimal.NewFromFloat(39.99)))
		assert.Equal(t, 2, cart.ItemCount())
	})

	t.Run("merges quantity for a product already in the cart", func(t *testing.T) {
		cart := newCart(t)
		productID := uuid.New()

		require.NoError(t, cart.AddItem(productID, "Kit", decimal.NewFromInt(10), 2))
		require.NoError(t, cart.AddItem(productID, "Kit", decimal.NewFromInt(10), 3))
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("rejects quantity above per-item cap", func(t *testing.T) {
		cart := newCart(t)
		require.Error(t, cart.AddItem(uuid.New(), "Kit", decimal.NewFromInt(10), 100))

		productID := uuid.New()
		require.NoError(t, cart.AddItem(productID, "Kit", decimal.NewFromInt(10), 60))
		require.Error(t, cart.AddItem(productID, "Kit", decimal.NewFromInt(10), 60))
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		cart := newCart(t)
		require.Error(t, cart.AddItem(uuid.Nil, "Kit", decimal.NewFromInt(10), 1))
		require.Error(t, cart.AddItem(uuid.New(), "Kit", decimal.NewFromInt(10), 0))
		require.Error(t, cart.AddItem(uuid.New(), "Kit", decimal.NewFromInt(-1), 1))
	})
}

func TestCart_UpdateItemQuantity(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)
	productID := uuid.New()
	require.NoError(t, cart.AddItem(productID, "Kit", decimal.NewFromInt(10), 2))

	t.Run("sets a new quantity", func(t *testing.T) {
		require.NoError(t, cart.UpdateItemQuantity(productID, 7))
		assert.Equal(t, 7, cart.Items[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		require.NoError(t, cart.UpdateItemQuantity(productID, 0))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("fails for product not in cart", func(t *testing.T) {
		require.Error(t, cart.UpdateItemQuantity(uuid.New(), 1))
	})
}

func TestCart_Totals(t *testing.T) {
	cart, err := NewCart(uuid.New())
	require.NoError(t, err)

	require.NoError(t, cart.AddItem(uuid.New(), "Kit A", decimal.NewFromFloat(19.99), 2))
	require.NoError(t, cart.AddItem(uuid.New(), "Kit B", decimal.NewFromFloat(5.50), 3))

	assert.Equal(t, 5, cart.ItemCount())
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromFloat(56.48)))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Subtotal().IsZero())
}

func TestWishlist(t *testing.T) {
	wishlist, err := NewWishlist(uuid.New())
	require.NoError(t, err)
	productID := uuid.New()

	t.Run("add is idempotent", func(t *testing.T) {
		require.NoError(t, wishlist.AddItem(productID))
		require.NoError(t, wishlist.AddItem(productID))
		assert.Len(t, wishlist.Items, 1)
		assert.True(t, wishlist.Contains(productID))
	})

	t.Run("remove deletes the entry", func(t *testing.T) {
		require.NoError(t, wishlist.RemoveItem(productID))
		assert.False(t, wishlist.Contains(productID))
		require.Error(t, wishlist.RemoveItem(productID))
	})

	t.Run("rejects nil product", func(t *testing.T) {
		require.Error(t, wishlist.AddItem(uuid.Nil))
	})
}
