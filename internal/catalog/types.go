package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/stocklane/backoffice-golang/internal/models"
)

// UnitConfigInput is one entry of the unit list a save request carries.
// ConversionFactor may be nil for the base unit; it is forced to 1 there.
type UnitConfigInput struct {
	UnitID           int64
	ConversionFactor *float64
	IsBaseUnit       bool
	IsPurchaseUnit   bool
	IsSalesUnit      bool
}

// AttributeConfigInput is the per-item attribute vocabulary driving
// variation generation: one attribute plus the values chosen for this item.
type AttributeConfigInput struct {
	AttributeID int64
	Name        string
	Values      []string
}

// VariationInput describes one submitted variation of a Variable item.
// An empty SKU or empty combination is filled in from the generated
// cartesian product, positionally.
type VariationInput struct {
	SKU                  string
	CostPrice            *decimal.Decimal
	RetailPrice          *decimal.Decimal
	WholesalePrice       *decimal.Decimal
	AttributeCombination map[string]string
	StockQuantity        int
	IsActive             bool
}

// SaveItemRequest is the engine's single write entry point. ID zero means
// create. On update, Version carries the optimistic-concurrency token the
// client read; zero skips the stale-write check.
type SaveItemRequest struct {
	ID      int64
	Version int64

	Name       string
	Slug       string
	SKU        *string
	Type       models.ItemType
	CategoryID *int64
	BrandID    *int64

	// Standard items only; ignored for Variable items.
	CostPrice      *decimal.Decimal
	RetailPrice    *decimal.Decimal
	WholesalePrice *decimal.Decimal

	// nil means "no unit payload": allowed on update when the item already
	// owns at least one unit row. An empty non-nil slice is rejected.
	UnitConfigs []UnitConfigInput

	AttributesConfig []AttributeConfigInput
	Variations       []VariationInput

	// Store receiving initial stock rows for variations with a positive
	// quantity. Optional; quantity without a store is logged and skipped.
	StockStoreID *int64
}

// SaveItemResult carries the identifiers a read-model collaborator needs to
// assemble the response view.
type SaveItemResult struct {
	ItemID       int64
	Version      int64
	VariationIDs []int64
}

// ItemDetail is the engine's read-back view: the item with its unit
// configuration, the attribute configuration re-derived from persisted
// links, and each variation enriched with its resolved combination.
type ItemDetail struct {
	Item             models.Item
	Units            []models.ItemUnit
	AttributesConfig []AttributeConfigInput
	Variations       []models.Variation
}
