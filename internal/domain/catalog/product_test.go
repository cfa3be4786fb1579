package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("KIT-001", "gear-bot-kit", "Gear Bot Kit", decimal.NewFromFloat(39.99))
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "KIT-001", product.SKU)
		assert.Equal(t, "gear-bot-kit", product.Slug)
		assert.Equal(t, "Gear Bot Kit", product.Name)
		assert.Equal(t, ProductStatusDraft, product.Status)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(39.99)))
		assert.True(t, product.CompareAtPrice.IsZero())
		assert.Equal(t, 0, product.StockQuantity)
		assert.Equal(t, 5, product.LowStockThreshold)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("converts SKU to uppercase and slug to lowercase", func(t *testing.T) {
		product, err := NewProduct("kit-002", "Circuit-Lab", "Circuit Lab", decimal.NewFromInt(25))
		require.NoError(t, err)
		assert.Equal(t, "KIT-002", product.SKU)
		assert.Equal(t, "circuit-lab", product.Slug)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("KIT-003", "dna-model", "DNA Model", decimal.NewFromInt(15))
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.SKU, event.SKU)
		assert.Equal(t, product.Name, event.Name)
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		_, err := NewProduct("", "slug", "Name", decimal.NewFromInt(10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU cannot be empty")
	})

	t.Run("fails with invalid SKU characters", func(t *testing.T) {
		_, err := NewProduct("KIT@001", "slug", "Name", decimal.NewFromInt(10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can only contain letters")
	})

	t.Run("fails with invalid slug", func(t *testing.T) {
		_, err := NewProduct("KIT-001", "not a slug!", "Name", decimal.NewFromInt(10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lowercase letters")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("KIT-001", "slug", "Name", decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewProduct("KIT-001", "slug", strings.Repeat("x", 201), decimal.NewFromInt(10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})
}

func TestProduct_SetPricing(t *testing.T) {
	newProduct := func(t *testing.T) *Product {
		p, err := NewProduct("KIT-100", "rocket-lab", "Rocket Lab", decimal.NewFromInt(30))
		require.NoError(t, err)
		return p
	}

	t.Run("sets price and compare-at price", func(t *testing.T) {
		p := newProduct(t)
		err := p.SetPricing(decimal.NewFromInt(25), decimal.NewFromInt(30))
		require.NoError(t, err)
		assert.True(t, p.Price.Equal(decimal.NewFromInt(25)))
		assert.True(t, p.CompareAtPrice.Equal(decimal.NewFromInt(30)))
		assert.Equal(t, 2, p.GetVersion())
	})

	t.Run("zero compare-at clears the strike-through price", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetPricing(decimal.NewFromInt(25), decimal.NewFromInt(30)))
		require.NoError(t, p.SetPricing(decimal.NewFromInt(25), decimal.Zero))
		assert.True(t, p.CompareAtPrice.IsZero())
	})

	t.Run("rejects compare-at below price", func(t *testing.T) {
		p := newProduct(t)
		err := p.SetPricing(decimal.NewFromInt(25), decimal.NewFromInt(20))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be lower")
	})

	t.Run("rejects negative price", func(t *testing.T) {
		p := newProduct(t)
		err := p.SetPricing(decimal.NewFromInt(-5), decimal.Zero)
		require.Error(t, err)
	})
}

func TestProduct_SetAgeRange(t *testing.T) {
	p, err := NewProduct("KIT-200", "chem-set", "Chemistry Set", decimal.NewFromInt(45))
	require.NoError(t, err)

	t.Run("sets a valid range", func(t *testing.T) {
		require.NoError(t, p.SetAgeRange(8, 14))
		assert.Equal(t, 8, p.AgeMin)
		assert.Equal(t, 14, p.AgeMax)
	})

	t.Run("allows open-ended range with zero max", func(t *testing.T) {
		require.NoError(t, p.SetAgeRange(10, 0))
	})

	t.Run("rejects min above max", func(t *testing.T) {
		err := p.SetAgeRange(12, 8)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Minimum age cannot exceed")
	})

	t.Run("rejects negative values", func(t *testing.T) {
		require.Error(t, p.SetAgeRange(-1, 5))
	})
}

func TestProduct_Stock(t *testing.T) {
	newProduct := func(t *testing.T) *Product {
		p, err := NewProduct("KIT-300", "solar-rover", "Solar Rover", decimal.NewFromInt(60))
		require.NoError(t, err)
		require.NoError(t, p.AdjustStock(10))
		return p
	}

	t.Run("adjust stock up and down", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.AdjustStock(-4))
		assert.Equal(t, 6, p.StockQuantity)
	})

	t.Run("adjust cannot go negative", func(t *testing.T) {
		p := newProduct(t)
		err := p.AdjustStock(-11)
		require.Error(t, err)
		assert.Equal(t, 10, p.StockQuantity)
	})

	t.Run("deduct reduces stock", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.DeductStock(3))
		assert.Equal(t, 7, p.StockQuantity)
	})

	t.Run("deduct fails when insufficient", func(t *testing.T) {
		p := newProduct(t)
		err := p.DeductStock(11)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient stock")
	})

	t.Run("deduct rejects non-positive quantity", func(t *testing.T) {
		p := newProduct(t)
		require.Error(t, p.DeductStock(0))
		require.Error(t, p.DeductStock(-2))
	})

	t.Run("restock adds quantity back", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.DeductStock(5))
		require.NoError(t, p.Restock(5))
		assert.Equal(t, 10, p.StockQuantity)
	})

	t.Run("low stock respects threshold", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetLowStockThreshold(4))
		assert.False(t, p.IsLowStock())
		require.NoError(t, p.DeductStock(6))
		assert.True(t, p.IsLowStock())
	})
}

func TestProduct_Lifecycle(t *testing.T) {
	t.Run("publish activates product and emits event", func(t *testing.T) {
		p, err := NewProduct("KIT-400", "micro-scope", "Pocket Microscope", decimal.NewFromInt(20))
		require.NoError(t, err)
		p.ClearDomainEvents()

		require.NoError(t, p.Publish())
		assert.True(t, p.IsActive())

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductPublished, events[0].EventType())
	})

	t.Run("publish fails without price", func(t *testing.T) {
		p, err := NewProduct("KIT-401", "free-kit", "Free Kit", decimal.Zero)
		require.NoError(t, err)
		require.Error(t, p.Publish())
	})

	t.Run("publish fails when already active", func(t *testing.T) {
		p, err := NewProduct("KIT-402", "wave-kit", "Wave Kit", decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, p.Publish())
		require.Error(t, p.Publish())
	})

	t.Run("archive retires product and clears featured flag", func(t *testing.T) {
		p, err := NewProduct("KIT-403", "magnet-kit", "Magnet Kit", decimal.NewFromInt(18))
		require.NoError(t, err)
		require.NoError(t, p.Publish())
		p.SetFeatured(true)

		require.NoError(t, p.Archive())
		assert.True(t, p.IsArchived())
		assert.False(t, p.Featured)
	})

	t.Run("archive fails when already archived", func(t *testing.T) {
		p, err := NewProduct("KIT-404", "prism-kit", "Prism Kit", decimal.NewFromInt(12))
		require.NoError(t, err)
		require.NoError(t, p.Archive())
		require.Error(t, p.Archive())
	})
}

func TestProduct_DiscountPercent(t *testing.T) {
	p, err := NewProduct("KIT-500", "coding-robot", "Coding Robot", decimal.NewFromInt(75))
	require.NoError(t, err)

	t.Run("zero when no compare-at price", func(t *testing.T) {
		assert.Equal(t, 0, p.DiscountPercent())
	})

	t.Run("computes rounded percent", func(t *testing.T) {
		require.NoError(t, p.SetPricing(decimal.NewFromInt(75), decimal.NewFromInt(100)))
		assert.Equal(t, 25, p.DiscountPercent())
	})
}
