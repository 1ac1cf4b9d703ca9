package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/stocklane/backoffice-golang/internal/catalog"
	"github.com/stocklane/backoffice-golang/internal/models"
)

// --- Inputs ---
// Field preparation (trimming, flag coercion via models.BoolFlag) happens
// here at the JSON boundary; the engine receives fully typed values.

type UnitConfigInput struct {
	UnitID           int64           `json:"unit_id" binding:"required"`
	ConversionFactor *float64        `json:"conversion_factor"`
	IsBaseUnit       models.BoolFlag `json:"is_base_unit"`
	IsPurchaseUnit   models.BoolFlag `json:"is_purchase_unit"`
	IsSalesUnit      models.BoolFlag `json:"is_sales_unit"`
}

type AttributeConfigInput struct {
	AttributeID int64    `json:"attribute_id" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Values      []string `json:"values"`
}

type VariationInput struct {
	SKU                  string            `json:"sku"`
	CostPrice            *decimal.Decimal  `json:"cost_price"`
	RetailPrice          *decimal.Decimal  `json:"retail_price"`
	WholesalePrice       *decimal.Decimal  `json:"wholesale_price"`
	AttributeCombination map[string]string `json:"attribute_combination"`
	StockQuantity        int               `json:"stock_quantity" binding:"gte=0"`
	IsActive             *models.BoolFlag  `json:"is_active"`
}

type SaveItemInput struct {
	Name       string          `json:"name" binding:"required"`
	Slug       string          `json:"slug"`
	SKU        *string         `json:"sku"`
	Type       models.ItemType `json:"type" binding:"required,oneof=standard variable"`
	CategoryID *int64          `json:"category_id"`
	BrandID    *int64          `json:"brand_id"`

	CostPrice      *decimal.Decimal `json:"cost_price"`
	RetailPrice    *decimal.Decimal `json:"retail_price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`

	UnitConfig       []UnitConfigInput      `json:"unit_config"`
	AttributesConfig []AttributeConfigInput `json:"attributes_config"`
	VariationsData   []VariationInput       `json:"variations_data"`

	StockStoreID *int64 `json:"stock_store_id"`

	// Optimistic-concurrency token from the last read; checked on update.
	Version int64 `json:"version"`
}

func (in *SaveItemInput) toRequest() catalog.SaveItemRequest {
	req := catalog.SaveItemRequest{
		Version:        in.Version,
		Name:           in.Name,
		Slug:           in.Slug,
		SKU:            in.SKU,
		Type:           in.Type,
		CategoryID:     in.CategoryID,
		BrandID:        in.BrandID,
		CostPrice:      in.CostPrice,
		RetailPrice:    in.RetailPrice,
		WholesalePrice: in.WholesalePrice,
		StockStoreID:   in.StockStoreID,
	}

	if in.UnitConfig != nil {
		req.UnitConfigs = make([]catalog.UnitConfigInput, 0, len(in.UnitConfig))
		for _, u := range in.UnitConfig {
			req.UnitConfigs = append(req.UnitConfigs, catalog.UnitConfigInput{
				UnitID:           u.UnitID,
				ConversionFactor: u.ConversionFactor,
				IsBaseUnit:       u.IsBaseUnit.Bool(),
				IsPurchaseUnit:   u.IsPurchaseUnit.Bool(),
				IsSalesUnit:      u.IsSalesUnit.Bool(),
			})
		}
	}

	for _, a := range in.AttributesConfig {
		req.AttributesConfig = append(req.AttributesConfig, catalog.AttributeConfigInput{
			AttributeID: a.AttributeID,
			Name:        a.Name,
			Values:      a.Values,
		})
	}

	for _, v := range in.VariationsData {
		active := true
		if v.IsActive != nil {
			active = v.IsActive.Bool()
		}
		req.Variations = append(req.Variations, catalog.VariationInput{
			SKU:                  v.SKU,
			CostPrice:            v.CostPrice,
			RetailPrice:          v.RetailPrice,
			WholesalePrice:       v.WholesalePrice,
			AttributeCombination: v.AttributeCombination,
			StockQuantity:        v.StockQuantity,
			IsActive:             active,
		})
	}

	return req
}

// CreateItem is the handler for POST /v1/items.
func (h *Handlers) CreateItem(c *gin.Context) {
	var input SaveItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Engine.SaveItem(c.Request.Context(), input.toRequest())
	if err != nil {
		h.respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item saved",
		"itemId":  result.ItemID,
		"version": result.Version,
	})
}

// UpdateItem is the handler for PUT /v1/items/:id.
func (h *Handlers) UpdateItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || itemID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var input SaveItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := input.toRequest()
	req.ID = itemID

	result, err := h.Engine.SaveItem(c.Request.Context(), req)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated",
		"itemId":  result.ItemID,
		"version": result.Version,
	})
}

// GetItem is the handler for GET /v1/items/:id. It returns the edit view
// the save endpoints consume: item fields, unit configuration, derived
// attributes configuration and enriched variations.
func (h *Handlers) GetItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || itemID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	detail, err := h.Engine.GetItem(c.Request.Context(), itemID)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item":              detail.Item,
		"item_units_config": detail.Units,
		"attributes_config": detail.AttributesConfig,
		"variations_data":   detail.Variations,
	})
}

// respondEngineError maps the engine's error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an internal error and is logged with its
// cause; the client only ever sees one categorized message.
func (h *Handlers) respondEngineError(c *gin.Context, err error) {
	switch {
	case catalog.IsKind(err, catalog.KindValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case catalog.IsKind(err, catalog.KindConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case catalog.IsKind(err, catalog.KindNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case catalog.IsKind(err, catalog.KindIntegrity):
		h.Log.Error("integrity failure during item save", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		h.Log.Error("item save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
