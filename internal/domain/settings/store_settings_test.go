package settings

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSettings_Update(t *testing.T) {
	t.Run("accepts valid settings", func(t *testing.T) {
		s := DefaultStoreSettings()
		err := s.Update("Spark Labs", "help@sparklabs.example", "eur",
			decimal.NewFromFloat(3.50), decimal.NewFromInt(50))
		require.NoError(t, err)
		assert.Equal(t, "EUR", s.CurrencyCode)
		assert.Equal(t, "Spark Labs", s.StoreName)
	})

	t.Run("rejects unknown currency", func(t *testing.T) {
		s := DefaultStoreSettings()
		err := s.Update("Spark Labs", "help@sparklabs.example", "XXX1",
			decimal.Zero, decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ISO 4217")
	})

	t.Run("rejects negative fees", func(t *testing.T) {
		s := DefaultStoreSettings()
		require.Error(t, s.Update("Spark Labs", "h@s.example", "USD", decimal.NewFromInt(-1), decimal.Zero))
		require.Error(t, s.Update("Spark Labs", "h@s.example", "USD", decimal.Zero, decimal.NewFromInt(-1)))
	})
}

func TestStoreSettings_ShippingFeeFor(t *testing.T) {
	s := DefaultStoreSettings()
	require.NoError(t, s.Update("STEM Kits", "support@stemkits.example", "USD",
		decimal.NewFromFloat(4.99), decimal.NewFromInt(75)))

	assert.True(t, s.ShippingFeeFor(decimal.NewFromInt(50)).Equal(decimal.NewFromFloat(4.99)))
	assert.True(t, s.ShippingFeeFor(decimal.NewFromInt(75)).IsZero(), "threshold is inclusive")
	assert.True(t, s.ShippingFeeFor(decimal.NewFromInt(200)).IsZero())

	t.Run("zero threshold disables free shipping", func(t *testing.T) {
		require.NoError(t, s.Update("STEM Kits", "support@stemkits.example", "USD",
			decimal.NewFromFloat(4.99), decimal.Zero))
		assert.True(t, s.ShippingFeeFor(decimal.NewFromInt(500)).Equal(decimal.NewFromFloat(4.99)))
	})
}

func TestStoreSettings_PauseResume(t *testing.T) {
	s := DefaultStoreSettings()
	assert.False(t, s.OrdersPaused)

	s.PauseOrders()
	assert.True(t, s.OrdersPaused)

	s.ResumeOrders()
	assert.False(t, s.OrdersPaused)
}

func TestStoreSettings_SetAnnouncement(t *testing.T) {
	s := DefaultStoreSettings()
	require.NoError(t, s.SetAnnouncement("Free shipping all week!"))
	assert.Equal(t, "Free shipping all week!", s.AnnouncementText)

	require.NoError(t, s.SetAnnouncement(""))
	assert.Empty(t, s.AnnouncementText)
}
