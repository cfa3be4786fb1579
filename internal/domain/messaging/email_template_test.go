package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailTemplate(t *testing.T) {
	t.Run("creates active template", func(t *testing.T) {
		template, err := NewEmailTemplate("Order_Confirmation", "Order confirmation", "Your order {{order_number}}", "Thanks {{first_name}}!")
		require.NoError(t, err)
		assert.Equal(t, "order_confirmation", template.Code)
		assert.True(t, template.IsActive)
	})

	t.Run("rejects bad codes", func(t *testing.T) {
		for _, code := range []string{"", "has space", "has-dash", "_leading", "trailing_"} {
			_, err := NewEmailTemplate(code, "Name", "Subject", "Body")
			require.Error(t, err, "code=%q", code)
		}
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := NewEmailTemplate("welcome", "", "Subject", "Body")
		require.Error(t, err)
		_, err = NewEmailTemplate("welcome", "Name", "", "Body")
		require.Error(t, err)
		_, err = NewEmailTemplate("welcome", "Name", "Subject", "")
		require.Error(t, err)
	})
}

func TestEmailTemplate_Render(t *testing.T) {
	newTemplate := func(t *testing.T) *EmailTemplate {
		template, err := NewEmailTemplate("order_confirmation", "Order confirmation",
			"Order {{order_number}} confirmed", "Hi {{first_name}}, your total is {{ total }}.")
		require.NoError(t, err)
		return template
	}

	t.Run("substitutes known placeholders", func(t *testing.T) {
		template := newTemplate(t)
		rendered, err := template.Render(map[string]string{
			"order_number": "ORD-000317",
			"first_name":   "Jamie",
			"total":        "$109.97",
		})
		require.NoError(t, err)
		assert.Equal(t, "Order ORD-000317 confirmed", rendered.Subject)
		assert.Equal(t, "Hi Jamie, your total is $109.97.", rendered.Body)
	})

	t.Run("leaves unknown placeholders intact", func(t *testing.T) {
		template := newTemplate(t)
		rendered, err := template.Render(map[string]string{"first_name": "Jamie"})
		require.NoError(t, err)
		assert.Contains(t, rendered.Subject, "{{order_number}}")
		assert.Contains(t, rendered.Body, "{{ total }}")
		assert.Contains(t, rendered.Body, "Hi Jamie")
	})

	t.Run("inactive template cannot render", func(t *testing.T) {
		template := newTemplate(t)
		require.NoError(t, template.Deactivate())

		_, err := template.Render(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "inactive")
	})
}

func TestEmailTemplate_Placeholders(t *testing.T) {
	template, err := NewEmailTemplate("order_shipped", "Order shipped",
		"{{order_number}} is on the way", "Track {{order_number}} with {{tracking_number}}.")
	require.NoError(t, err)

	assert.Equal(t, []string{"order_number", "tracking_number"}, template.Placeholders())
}

func TestEmailTemplate_ActivateDeactivate(t *testing.T) {
	template, err := NewEmailTemplate("welcome", "Welcome", "Welcome!", "Glad you joined.")
	require.NoError(t, err)

	require.Error(t, template.Activate(), "already active")
	require.NoError(t, template.Deactivate())
	require.Error(t, template.Deactivate())
	require.NoError(t, template.Activate())
}
