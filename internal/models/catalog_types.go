package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType distinguishes single-SKU items from attribute-driven ones.
type ItemType string

const (
	ItemTypeStandard ItemType = "standard"
	ItemTypeVariable ItemType = "variable"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeStandard || t == ItemTypeVariable
}

// Item is the model for the 'items' table.
// Prices are pointers because a Variable item carries no item-level prices.
type Item struct {
	ID         int64    `json:"id" db:"id"`
	Name       string   `json:"name" db:"name"`
	Slug       string   `json:"slug" db:"slug"`
	SKU        *string  `json:"sku,omitempty" db:"sku"`
	Type       ItemType `json:"type" db:"item_type"`
	CategoryID *int64   `json:"categoryId,omitempty" db:"category_id"`
	BrandID    *int64   `json:"brandId,omitempty" db:"brand_id"`

	// Derived from the unit configuration, never set directly by clients.
	BaseUnitID *int64 `json:"baseUnitId,omitempty" db:"base_unit_id"`

	CostPrice      *decimal.Decimal `json:"costPrice,omitempty" db:"cost_price"`
	RetailPrice    *decimal.Decimal `json:"retailPrice,omitempty" db:"retail_price"`
	WholesalePrice *decimal.Decimal `json:"wholesalePrice,omitempty" db:"wholesale_price"`

	// Optimistic concurrency token, bumped on every successful save.
	Version int64 `json:"version" db:"version"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ItemUnit is the model for the 'item_units' table. One row per configured
// unit of measure; exactly one row per item carries IsBaseUnit with a
// conversion factor of 1.
type ItemUnit struct {
	ID               int64     `json:"id" db:"id"`
	ItemID           int64     `json:"itemId" db:"item_id"`
	UnitID           int64     `json:"unitId" db:"unit_id"`
	BaseUnitID       int64     `json:"baseUnitId" db:"base_unit_id"`
	ConversionFactor float64   `json:"conversionFactor" db:"conversion_factor"`
	IsBaseUnit       bool      `json:"isBaseUnit" db:"is_base_unit"`
	IsPurchaseUnit   bool      `json:"isPurchaseUnit" db:"is_purchase_unit"`
	IsSalesUnit      bool      `json:"isSalesUnit" db:"is_sales_unit"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`

	// Join field, populated from the 'units' reference table on reads.
	UnitName string `json:"unitName,omitempty" db:"-"`
}

// Attribute is catalog-level vocabulary (e.g. "Color"), shared across items.
type Attribute struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}

// AttributeValue is one value of an Attribute (e.g. "Red" for "Color").
type AttributeValue struct {
	ID          int64  `json:"id" db:"id"`
	AttributeID int64  `json:"attributeId" db:"attribute_id"`
	Value       string `json:"value" db:"value"`
}

// Variation is the model for the 'item_variations' table: one sellable SKU
// of a Variable item, identified by one value per configured attribute.
type Variation struct {
	ID             int64            `json:"id" db:"id"`
	ItemID         int64            `json:"itemId" db:"item_id"`
	SKU            string           `json:"sku" db:"sku"`
	CostPrice      *decimal.Decimal `json:"costPrice,omitempty" db:"cost_price"`
	RetailPrice    *decimal.Decimal `json:"retailPrice,omitempty" db:"retail_price"`
	WholesalePrice *decimal.Decimal `json:"wholesalePrice,omitempty" db:"wholesale_price"`
	IsActive       bool             `json:"isActive" db:"is_active"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`

	// Populated from variation_attribute_values on reads.
	AttributeCombination map[string]string `json:"attributeCombination,omitempty" db:"-"`
	DisplayName          string            `json:"displayName,omitempty" db:"-"`
}

// VariationAttributeLink joins a Variation to one AttributeValue.
type VariationAttributeLink struct {
	ID               int64 `json:"id" db:"id"`
	VariationID      int64 `json:"variationId" db:"variation_id"`
	AttributeValueID int64 `json:"attributeValueId" db:"attribute_value_id"`
}

// StockEntry is the initial quantity row written at variation-insert time
// when a store and a positive quantity are both known.
type StockEntry struct {
	ID          int64 `json:"id" db:"id"`
	ItemID      int64 `json:"itemId" db:"item_id"`
	VariationID int64 `json:"variationId" db:"variation_id"`
	StoreID     int64 `json:"storeId" db:"store_id"`
	Quantity    int   `json:"quantity" db:"quantity"`
}
