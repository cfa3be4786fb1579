package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates category with valid inputs", func(t *testing.T) {
		category, err := NewCategory("robotics", "Robotics")
		require.NoError(t, err)

		assert.Equal(t, "robotics", category.Slug)
		assert.Equal(t, "Robotics", category.Name)
		assert.True(t, category.IsActive)
		assert.True(t, category.IsRoot())
	})

	t.Run("lowercases the slug", func(t *testing.T) {
		category, err := NewCategory("Robotics", "Robotics")
		require.NoError(t, err)
		assert.Equal(t, "robotics", category.Slug)
	})

	t.Run("fails with invalid slug", func(t *testing.T) {
		_, err := NewCategory("robotics!", "Robotics")
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("robotics", "")
		require.Error(t, err)
	})
}

func TestCategory_SetParent(t *testing.T) {
	category, err := NewCategory("kits", "Kits")
	require.NoError(t, err)

	t.Run("assigns a parent", func(t *testing.T) {
		parentID := uuid.New()
		require.NoError(t, category.SetParent(&parentID))
		assert.False(t, category.IsRoot())
	})

	t.Run("clears the parent", func(t *testing.T) {
		require.NoError(t, category.SetParent(nil))
		assert.True(t, category.IsRoot())
	})

	t.Run("rejects self as parent", func(t *testing.T) {
		err := category.SetParent(&category.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "own parent")
	})
}

func TestCategory_ActivateDeactivate(t *testing.T) {
	category, err := NewCategory("chemistry", "Chemistry")
	require.NoError(t, err)

	require.Error(t, category.Activate(), "already active")

	require.NoError(t, category.Deactivate())
	assert.False(t, category.IsActive)
	require.Error(t, category.Deactivate())

	require.NoError(t, category.Activate())
	assert.True(t, category.IsActive)
}
