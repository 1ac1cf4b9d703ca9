package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklane/backoffice-golang/internal/models"
)

func TestSaveItemInputToRequest(t *testing.T) {
	t.Parallel()

	// Flags arrive in the loose encodings older clients send.
	payload := `{
		"name": "Shirt",
		"type": "variable",
		"version": 3,
		"unit_config": [
			{"unit_id": 5, "is_base_unit": "true", "is_sales_unit": 1},
			{"unit_id": 7, "conversion_factor": 12, "is_purchase_unit": true}
		],
		"attributes_config": [
			{"attribute_id": 1, "name": "Color", "values": ["Red", "Blue"]}
		],
		"variations_data": [
			{
				"sku": "SHIRT-RED",
				"cost_price": "10.50",
				"retail_price": 12,
				"attribute_combination": {"Color": "Red"},
				"stock_quantity": 4
			}
		],
		"stock_store_id": 9
	}`

	var input SaveItemInput
	require.NoError(t, json.Unmarshal([]byte(payload), &input))

	req := input.toRequest()
	assert.Equal(t, "Shirt", req.Name)
	assert.Equal(t, models.ItemTypeVariable, req.Type)
	assert.Equal(t, int64(3), req.Version)

	require.Len(t, req.UnitConfigs, 2)
	assert.True(t, req.UnitConfigs[0].IsBaseUnit)
	assert.True(t, req.UnitConfigs[0].IsSalesUnit)
	assert.False(t, req.UnitConfigs[0].IsPurchaseUnit)
	assert.True(t, req.UnitConfigs[1].IsPurchaseUnit)
	require.NotNil(t, req.UnitConfigs[1].ConversionFactor)
	assert.Equal(t, 12.0, *req.UnitConfigs[1].ConversionFactor)

	require.Len(t, req.AttributesConfig, 1)
	assert.Equal(t, []string{"Red", "Blue"}, req.AttributesConfig[0].Values)

	require.Len(t, req.Variations, 1)
	v := req.Variations[0]
	assert.Equal(t, "SHIRT-RED", v.SKU)
	require.NotNil(t, v.CostPrice)
	assert.Equal(t, "10.5", v.CostPrice.String())
	require.NotNil(t, v.RetailPrice)
	assert.Equal(t, "12", v.RetailPrice.String())
	assert.Equal(t, map[string]string{"Color": "Red"}, v.AttributeCombination)
	assert.Equal(t, 4, v.StockQuantity)
	assert.True(t, v.IsActive, "is_active defaults to true when omitted")

	require.NotNil(t, req.StockStoreID)
	assert.Equal(t, int64(9), *req.StockStoreID)
}

func TestSaveItemInputOmittedUnitConfigStaysNil(t *testing.T) {
	t.Parallel()

	var input SaveItemInput
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Rice", "type": "standard"}`), &input))

	req := input.toRequest()
	assert.Nil(t, req.UnitConfigs, "absent unit_config must stay nil so update keeps existing units")
}
