package account

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	userID := uuid.New()

	t.Run("creates customer with valid inputs", func(t *testing.T) {
		customer, err := NewCustomer(userID, "Jamie@Example.com", "Jamie", "Rivera")
		require.NoError(t, err)

		assert.Equal(t, userID, customer.UserID)
		assert.Equal(t, "jamie@example.com", customer.Email)
		assert.Equal(t, "Jamie Rivera", customer.FullName())
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.Equal(t, AccountLevelBronze, customer.Level())
		assert.True(t, customer.LifetimeSpend.IsZero())
		assert.Equal(t, 0, customer.LoyaltyPoints)
	})

	t.Run("emits CustomerRegistered event", func(t *testing.T) {
		customer, err := NewCustomer(userID, "a@b.co", "A", "B")
		require.NoError(t, err)

		events := customer.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCustomerRegistered, events[0].EventType())
	})

	t.Run("fails with nil user ID", func(t *testing.T) {
		_, err := NewCustomer(uuid.Nil, "a@b.co", "A", "B")
		require.Error(t, err)
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		for _, email := range []string{"", "no-at-sign", "@leading.com", "trailing@", "a@nodot"} {
			_, err := NewCustomer(userID, email, "A", "B")
			require.Error(t, err, "email=%q", email)
		}
	})

	t.Run("fails with empty names", func(t *testing.T) {
		_, err := NewCustomer(userID, "a@b.co", "", "B")
		require.Error(t, err)
		_, err = NewCustomer(userID, "a@b.co", "A", "  ")
		require.Error(t, err)
	})
}

func TestCustomer_UpdateProfile(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "a@b.co", "A", "B")
	require.NoError(t, err)

	require.NoError(t, customer.UpdateProfile("Alex", "Brown", "+1-555-0101"))
	assert.Equal(t, "Alex", customer.FirstName)
	assert.Equal(t, "+1-555-0101", customer.Phone)
	assert.Equal(t, 2, customer.GetVersion())

	require.Error(t, customer.UpdateProfile("", "Brown", ""))
}

func TestCustomer_RecordOrderSpend(t *testing.T) {
	t.Run("accumulates spend and points", func(t *testing.T) {
		customer, err := NewCustomer(uuid.New(), "a@b.co", "A", "B")
		require.NoError(t, err)
		customer.ClearDomainEvents()

		require.NoError(t, customer.RecordOrderSpend(decimal.NewFromFloat(49.99)))
		assert.True(t, customer.LifetimeSpend.Equal(decimal.NewFromFloat(49.99)))
		assert.Equal(t, 49, customer.LoyaltyPoints)
		assert.Empty(t, customer.GetDomainEvents(), "no level change below threshold")
	})

	t.Run("emits LevelUp when crossing a threshold", func(t *testing.T) {
		customer, err := NewCustomer(uuid.New(), "a@b.co", "A", "B")
		require.NoError(t, err)
		customer.ClearDomainEvents()

		require.NoError(t, customer.RecordOrderSpend(decimal.NewFromInt(300)))
		events := customer.GetDomainEvents()
		require.Len(t, events, 1)

		event, ok := events[0].(*CustomerLevelUpEvent)
		require.True(t, ok)
		assert.Equal(t, string(AccountLevelBronze), event.FromLevel)
		assert.Equal(t, string(AccountLevelSilver), event.ToLevel)
		assert.Equal(t, AccountLevelSilver, customer.Level())
	})

	t.Run("rejects negative totals", func(t *testing.T) {
		customer, err := NewCustomer(uuid.New(), "a@b.co", "A", "B")
		require.NoError(t, err)
		require.Error(t, customer.RecordOrderSpend(decimal.NewFromInt(-10)))
	})
}

func TestCustomer_DisableEnable(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "a@b.co", "A", "B")
	require.NoError(t, err)

	require.Error(t, customer.Enable(), "already active")

	require.NoError(t, customer.Disable())
	assert.False(t, customer.IsActive())
	require.Error(t, customer.Disable())

	require.NoError(t, customer.Enable())
	assert.True(t, customer.IsActive())
}
