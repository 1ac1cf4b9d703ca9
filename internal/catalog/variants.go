package catalog

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/stocklane/backoffice-golang/internal/models"
)

// stagedVariation is one fully prepared candidate record. The whole batch
// is staged and validated in memory before the first insert, so a failure
// anywhere leaves nothing half-written for the transaction to expose.
type stagedVariation struct {
	row           models.Variation
	combination   map[string]string
	stockQuantity int
}

// replaceVariations rebuilds the complete variation set of a Variable item:
// teardown of the existing links and rows, then staged validation of the
// submitted batch, then inserts. An empty batch stops after teardown, which
// is how a Variable-to-Standard transition clears its variations.
func (e *Engine) replaceVariations(
	ctx context.Context,
	st store,
	itemID int64,
	baseSKU string,
	attrs []AttributeConfigInput,
	variations []VariationInput,
	stockStoreID *int64,
) ([]int64, error) {
	// Step 1: stock entries and links first, then the variation rows they
	// hang off.
	if err := st.DeleteStockEntries(ctx, itemID); err != nil {
		return nil, err
	}
	if err := st.DeleteVariationLinks(ctx, itemID); err != nil {
		return nil, err
	}
	if err := st.DeleteVariations(ctx, itemID); err != nil {
		return nil, err
	}

	// Step 2: nothing submitted, the item ends with zero variations.
	if len(variations) == 0 {
		return nil, nil
	}

	staged, err := e.stageVariations(itemID, baseSKU, attrs, variations)
	if err != nil {
		return nil, err
	}

	// Step 3: a duplicate SKU anywhere in the batch aborts before any insert.
	skus := lo.Map(staged, func(s stagedVariation, _ int) string { return s.row.SKU })
	if dupes := lo.FindDuplicates(skus); len(dupes) > 0 {
		return nil, validationf("duplicate SKU in submitted variations: %s", strings.Join(dupes, ", "))
	}

	// Step 4: every price must hold before the first row goes in.
	for _, s := range staged {
		if err := validatePrices(s.row.CostPrice, s.row.RetailPrice, s.row.WholesalePrice, s.row.SKU); err != nil {
			return nil, err
		}
	}

	// Step 5: insert rows, link resolved attribute values, seed stock.
	ids := make([]int64, 0, len(staged))
	for _, s := range staged {
		row := s.row
		variationID, err := st.InsertVariation(ctx, &row)
		if err != nil {
			return nil, err
		}
		ids = append(ids, variationID)

		valueIDs, err := e.resolveCombination(ctx, st, itemID, s.combination, attrs)
		if err != nil {
			return nil, err
		}
		for _, valueID := range valueIDs {
			if err := st.InsertVariationLink(ctx, variationID, valueID); err != nil {
				return nil, err
			}
		}

		if s.stockQuantity > 0 {
			if stockStoreID == nil {
				e.log.Warn("variation has initial stock but no store was given, skipping stock entry",
					zap.Int64("item_id", itemID),
					zap.String("sku", row.SKU),
					zap.Int("quantity", s.stockQuantity),
				)
				continue
			}
			entry := models.StockEntry{
				ItemID:      itemID,
				VariationID: variationID,
				StoreID:     *stockStoreID,
				Quantity:    s.stockQuantity,
			}
			if err := st.InsertStockEntry(ctx, &entry); err != nil {
				return nil, err
			}
		}
	}

	return ids, nil
}

// stageVariations pairs the submitted variation data with the generated
// cartesian product. A variation missing its combination or SKU takes them
// from the generated candidate at the same position.
func (e *Engine) stageVariations(
	itemID int64,
	baseSKU string,
	attrs []AttributeConfigInput,
	variations []VariationInput,
) ([]stagedVariation, error) {
	combos, err := generateCombinations(attrs)
	if err != nil {
		return nil, err
	}

	if len(variations) != len(combos) {
		e.log.Warn("submitted variation count differs from generated combination count",
			zap.Int64("item_id", itemID),
			zap.Int("submitted", len(variations)),
			zap.Int("generated", len(combos)),
		)
	}

	staged := make([]stagedVariation, 0, len(variations))
	for i, input := range variations {
		combo := Combination{Values: input.AttributeCombination}
		if len(combo.Values) == 0 && i < len(combos) {
			combo = combos[i]
		}
		combo.Ordered = orderedValues(combo, attrs)

		sku := input.SKU
		if sku == "" {
			sku = defaultSKU(baseSKU, combo, i)
		}

		staged = append(staged, stagedVariation{
			row: models.Variation{
				ItemID:         itemID,
				SKU:            sku,
				CostPrice:      input.CostPrice,
				RetailPrice:    input.RetailPrice,
				WholesalePrice: input.WholesalePrice,
				IsActive:       input.IsActive,
			},
			combination:   combo.Values,
			stockQuantity: input.StockQuantity,
		})
	}
	return staged, nil
}

// orderedValues projects a combination onto the configured attribute order.
func orderedValues(combo Combination, attrs []AttributeConfigInput) []string {
	if len(combo.Ordered) > 0 {
		return combo.Ordered
	}
	var ordered []string
	for _, attr := range attrs {
		if value, ok := lookupFold(combo.Values, attr.Name); ok {
			ordered = append(ordered, value)
		}
	}
	return ordered
}
