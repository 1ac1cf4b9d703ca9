package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklane/backoffice-golang/internal/models"
)

func TestGetItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assembles units, combinations and derived attribute config", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine()
		st := newFakeStore()
		st.addUnit(7)
		st.addAttribute(1, "Color")
		seedColorValues(st)

		itemID, err := st.InsertItem(ctx, &models.Item{Name: "Shirt", Type: models.ItemTypeVariable})
		require.NoError(t, err)

		_, err = e.replaceUnits(ctx, st, itemID, []UnitConfigInput{
			{UnitID: 7, IsBaseUnit: true, IsSalesUnit: true},
		})
		require.NoError(t, err)

		_, err = e.replaceVariations(ctx, st, itemID, "SHIRT", colorSizeAttrs(), []VariationInput{
			{SKU: "SHIRT-RED", AttributeCombination: map[string]string{"Color": "Red"}, IsActive: true},
			{SKU: "SHIRT-BLUE", AttributeCombination: map[string]string{"Color": "Blue"}, IsActive: true},
		}, nil)
		require.NoError(t, err)

		detail, err := e.getItem(ctx, st, itemID)
		require.NoError(t, err)

		assert.Equal(t, "Shirt", detail.Item.Name)
		require.Len(t, detail.Units, 1)
		assert.True(t, detail.Units[0].IsBaseUnit)

		require.Len(t, detail.Variations, 2)
		assert.Equal(t, map[string]string{"Color": "Red"}, detail.Variations[0].AttributeCombination)
		assert.Equal(t, "Color: Red", detail.Variations[0].DisplayName)
		assert.Equal(t, "Color: Blue", detail.Variations[1].DisplayName)

		require.Len(t, detail.AttributesConfig, 1)
		assert.Equal(t, "Color", detail.AttributesConfig[0].Name)
		assert.Equal(t, []string{"Red", "Blue"}, detail.AttributesConfig[0].Values)
	})

	t.Run("standard item has no variations and no attribute config", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine()
		st := newFakeStore()
		st.addUnit(7)

		itemID, err := st.InsertItem(ctx, &models.Item{Name: "Rice", Type: models.ItemTypeStandard})
		require.NoError(t, err)
		_, err = e.replaceUnits(ctx, st, itemID, []UnitConfigInput{{UnitID: 7, IsBaseUnit: true}})
		require.NoError(t, err)

		detail, err := e.getItem(ctx, st, itemID)
		require.NoError(t, err)
		assert.Empty(t, detail.Variations)
		assert.Empty(t, detail.AttributesConfig)
		require.Len(t, detail.Units, 1)
	})

	t.Run("missing item", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine()
		st := newFakeStore()

		_, err := e.getItem(ctx, st, 999)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindNotFound))
	})
}
