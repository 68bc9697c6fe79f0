package farm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestField(t *testing.T, name string) *Field {
	t.Helper()
	field, err := NewField(uuid.New(), name, 120.5)
	require.NoError(t, err)
	return field
}

func TestNewField(t *testing.T) {
	t.Run("creates field successfully", func(t *testing.T) {
		ownerID := uuid.New()
		field, err := NewField(ownerID, "La Esperanza", 250)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, field.ID)
		assert.Equal(t, ownerID, field.OwnerID)
		assert.Equal(t, 1, field.Version)
		assert.Equal(t, 0, field.TotalHead())
	})

	t.Run("fails with nil owner", func(t *testing.T) {
		_, err := NewField(uuid.Nil, "La Esperanza", 250)
		require.Error(t, err)
	})

	t.Run("fails with non-positive hectares", func(t *testing.T) {
		_, err := NewField(uuid.New(), "La Esperanza", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Hectares")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewField(uuid.New(), "", 250)
		require.Error(t, err)
	})
}

func TestField_IncreaseCount(t *testing.T) {
	t.Run("adds to the category counter", func(t *testing.T) {
		field := createTestField(t, "Campo Norte")

		require.NoError(t, field.IncreaseCount(CategoryCows, 10))
		require.NoError(t, field.IncreaseCount(CategoryCows, 5))

		assert.Equal(t, 15, field.Cows)
		assert.Equal(t, 15, field.Count(CategoryCows))
	})

	t.Run("counters are independent per category", func(t *testing.T) {
		field := createTestField(t, "Campo Norte")

		require.NoError(t, field.IncreaseCount(CategoryHeifers, 3))
		require.NoError(t, field.IncreaseCount(CategoryBulls, 2))

		assert.Equal(t, 3, field.Heifers)
		assert.Equal(t, 2, field.Bulls)
		assert.Equal(t, 0, field.Cows)
		assert.Equal(t, 5, field.TotalHead())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		field := createTestField(t, "Campo Norte")

		require.Error(t, field.IncreaseCount(CategoryCows, 0))
		require.Error(t, field.IncreaseCount(CategoryCows, -5))
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		field := createTestField(t, "Campo Norte")

		err := field.IncreaseCount(Category("LLAMAS"), 1)
		require.Error(t, err)
	})

	t.Run("increments version on mutation", func(t *testing.T) {
		field := createTestField(t, "Campo Norte")
		before := field.Version

		require.NoError(t, field.IncreaseCount(CategoryCows, 1))

		assert.Equal(t, before+1, field.Version)
	})
}

func TestField_DecreaseCount(t *testing.T) {
	t.Run("subtracts from the category counter", func(t *testing.T) {
		field := createTestField(t, "Campo Sur")
		require.NoError(t, field.IncreaseCount(CategorySteers, 20))

		require.NoError(t, field.DecreaseCount(CategorySteers, 8))

		assert.Equal(t, 12, field.Steers)
	})

	t.Run("fails without mutating when stock is insufficient", func(t *testing.T) {
		field := createTestField(t, "Campo Sur")
		require.NoError(t, field.IncreaseCount(CategoryCows, 10))

		err := field.DecreaseCount(CategoryCows, 20)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Campo Sur")
		assert.Contains(t, err.Error(), "COWS")
		assert.Equal(t, 10, field.Cows)
	})

	t.Run("fails on empty counter", func(t *testing.T) {
		field := createTestField(t, "Campo Sur")

		err := field.DecreaseCount(CategoryFemaleCalves, 1)

		require.Error(t, err)
		assert.Equal(t, 0, field.FemaleCalves)
	})

	t.Run("can drain a counter to exactly zero", func(t *testing.T) {
		field := createTestField(t, "Campo Sur")
		require.NoError(t, field.IncreaseCount(CategoryHeifers, 5))

		require.NoError(t, field.DecreaseCount(CategoryHeifers, 5))

		assert.Equal(t, 0, field.Heifers)
	})
}

func TestField_Counts(t *testing.T) {
	field := createTestField(t, "Campo Este")
	require.NoError(t, field.IncreaseCount(CategoryCows, 7))
	require.NoError(t, field.IncreaseCount(CategoryMaleCalves, 3))

	counts := field.Counts()

	assert.Equal(t, 7, counts.Cows)
	assert.Equal(t, 3, counts.MaleCalves)
	assert.Equal(t, 10, counts.Total())
}
