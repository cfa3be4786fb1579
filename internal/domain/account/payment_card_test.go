package account

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentCard(t *testing.T) {
	customerID := uuid.New()

	t.Run("creates card with valid inputs", func(t *testing.T) {
		card, err := NewPaymentCard(customerID, "Visa", "4242", "Jamie Rivera", 12, 2030)
		require.NoError(t, err)

		assert.Equal(t, "visa", card.Brand)
		assert.Equal(t, "4242", card.LastFour)
		assert.Equal(t, "**** **** **** 4242", card.MaskedNumber())
		assert.False(t, card.IsDefault)
	})

	t.Run("rejects unsupported brand", func(t *testing.T) {
		_, err := NewPaymentCard(customerID, "diners", "4242", "Jamie", 12, 2030)
		require.Error(t, err)
	})

	t.Run("rejects malformed last four", func(t *testing.T) {
		for _, lastFour := range []string{"", "42", "42424", "42ab"} {
			_, err := NewPaymentCard(customerID, "visa", lastFour, "Jamie", 12, 2030)
			require.Error(t, err, "lastFour=%q", lastFour)
		}
	})

	t.Run("rejects out-of-range expiry", func(t *testing.T) {
		_, err := NewPaymentCard(customerID, "visa", "4242", "Jamie", 0, 2030)
		require.Error(t, err)
		_, err = NewPaymentCard(customerID, "visa", "4242", "Jamie", 13, 2030)
		require.Error(t, err)
		_, err = NewPaymentCard(customerID, "visa", "4242", "Jamie", 6, 1999)
		require.Error(t, err)
	})
}

func TestPaymentCard_IsExpired(t *testing.T) {
	card, err := NewPaymentCard(uuid.New(), "mastercard", "5100", "Jamie", 6, 2026)
	require.NoError(t, err)

	assert.False(t, card.IsExpired(time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, card.IsExpired(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)), "valid through expiry month")
	assert.True(t, card.IsExpired(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, card.IsExpired(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNewAddress(t *testing.T) {
	customerID := uuid.New()

	t.Run("creates address with valid inputs", func(t *testing.T) {
		address, err := NewAddress(customerID, "Jamie Rivera", "1 Maker Way", "Austin", "73301", "us")
		require.NoError(t, err)

		assert.Equal(t, "US", address.CountryCode)
		assert.False(t, address.IsDefaultShipping)
		assert.False(t, address.IsDefaultBilling)
	})

	t.Run("rejects bad country code", func(t *testing.T) {
		_, err := NewAddress(customerID, "Jamie", "1 Maker Way", "Austin", "73301", "USA")
		require.Error(t, err)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		_, err := NewAddress(customerID, "", "1 Maker Way", "Austin", "73301", "US")
		require.Error(t, err)
		_, err = NewAddress(customerID, "Jamie", "", "Austin", "73301", "US")
		require.Error(t, err)
		_, err = NewAddress(customerID, "Jamie", "1 Maker Way", "", "73301", "US")
		require.Error(t, err)
		_, err = NewAddress(customerID, "Jamie", "1 Maker Way", "Austin", "", "US")
		require.Error(t, err)
	})
}
