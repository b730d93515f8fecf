// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"testing"

	"github.com/morusworks/pplansvc/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemType(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		for _, it := range []models.ItemType{
			models.ItemTypeComputers,
			models.ItemTypeElectronics,
			models.ItemTypeFurniture,
			models.ItemTypeJewelry,
		} {
			assert.True(t, it.Valid(), it.String())
		}

		assert.False(t, models.ItemType("appliances").Valid())
		assert.False(t, models.ItemType("").Valid())
		assert.False(t, models.ItemType("Furniture").Valid())
	})

	t.Run("Value", func(t *testing.T) {
		v, err := models.ItemTypeFurniture.Value()
		require.NoError(t, err)
		assert.Equal(t, "furniture", v)

		// Unknown values pass through so lenient read paths can match
		// zero rows instead of failing the query
		v, err = models.ItemType("appliances").Value()
		require.NoError(t, err)
		assert.Equal(t, "appliances", v)
	})

	t.Run("Scan", func(t *testing.T) {
		var it models.ItemType
		require.NoError(t, it.Scan("electronics"))
		assert.Equal(t, models.ItemTypeElectronics, it)

		require.NoError(t, it.Scan([]byte("jewelry")))
		assert.Equal(t, models.ItemTypeJewelry, it)

		require.NoError(t, it.Scan(nil))
		assert.Equal(t, models.ItemType(""), it)

		assert.Error(t, it.Scan(42))
	})
}

func TestWarrantyDuration(t *testing.T) {
	t.Run("Lifetime", func(t *testing.T) {
		assert.True(t, models.DurationLifetime.IsLifetime())
		assert.False(t, models.WarrantyDuration(12).IsLifetime())
	})

	t.Run("Months", func(t *testing.T) {
		m, ok := models.WarrantyDuration(36).Months()
		assert.True(t, ok)
		assert.Equal(t, 36, m)

		_, ok = models.DurationLifetime.Months()
		assert.False(t, ok)
	})
}

func TestConstraintMatches(t *testing.T) {
	c := &models.Constraint{
		ItemType: models.ItemTypeFurniture,
		MinCost:  decimal.RequireFromString("100.01"),
		MaxCost:  decimal.RequireFromString("500.00"),
	}

	assert.True(t, c.Matches(decimal.RequireFromString("100.02")))
	assert.True(t, c.Matches(decimal.RequireFromString("250.00")))
	assert.True(t, c.Matches(decimal.RequireFromString("499.99")))

	// Both band edges are exclusive
	assert.False(t, c.Matches(decimal.RequireFromString("100.01")))
	assert.False(t, c.Matches(decimal.RequireFromString("500.00")))

	assert.False(t, c.Matches(decimal.RequireFromString("100.00")))
	assert.False(t, c.Matches(decimal.RequireFromString("500.01")))
}
