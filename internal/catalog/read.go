package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/stocklane/backoffice-golang/internal/models"
)

// GetItem assembles the full edit view of an item: the row itself, its unit
// configuration with unit display names, the attribute configuration
// re-derived from the persisted variation links, and every variation
// enriched with its resolved combination and a display name like
// "Color: Red / Size: M". The attribute configuration is not stored
// anywhere; it only exists as the union of the links.
func (e *Engine) GetItem(ctx context.Context, itemID int64) (*ItemDetail, error) {
	return e.getItem(ctx, newMySQLStore(e.db), itemID)
}

func (e *Engine) getItem(ctx context.Context, st readStore, itemID int64) (*ItemDetail, error) {
	item, err := st.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	units, err := st.ListItemUnits(ctx, itemID)
	if err != nil {
		return nil, err
	}

	detail := &ItemDetail{Item: *item, Units: units}

	variations, err := st.ListVariations(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(variations) == 0 {
		return detail, nil
	}

	pairsByVariation, err := st.ListVariationAttributes(ctx, itemID)
	if err != nil {
		return nil, err
	}

	detail.AttributesConfig = deriveAttributesConfig(variations, pairsByVariation)

	for i := range variations {
		v := &variations[i]
		pairs := pairsByVariation[v.ID]
		v.AttributeCombination = make(map[string]string, len(pairs))
		parts := make([]string, 0, len(pairs))
		for _, pair := range pairs {
			v.AttributeCombination[pair.AttributeName] = pair.Value
			parts = append(parts, fmt.Sprintf("%s: %s", pair.AttributeName, pair.Value))
		}
		v.DisplayName = strings.Join(parts, " / ")
	}
	detail.Variations = variations

	return detail, nil
}

// deriveAttributesConfig folds the persisted links of all variations back
// into the per-item attribute configuration, keeping first-seen order for
// both attributes and values.
func deriveAttributesConfig(variations []models.Variation, pairsByVariation map[int64][]AttributePair) []AttributeConfigInput {
	var configs []AttributeConfigInput
	index := make(map[int64]int)
	seenValue := make(map[int64]map[string]bool)

	for _, v := range variations {
		for _, pair := range pairsByVariation[v.ID] {
			pos, ok := index[pair.AttributeID]
			if !ok {
				pos = len(configs)
				index[pair.AttributeID] = pos
				configs = append(configs, AttributeConfigInput{
					AttributeID: pair.AttributeID,
					Name:        pair.AttributeName,
				})
				seenValue[pair.AttributeID] = make(map[string]bool)
			}
			key := strings.ToLower(pair.Value)
			if !seenValue[pair.AttributeID][key] {
				seenValue[pair.AttributeID][key] = true
				configs[pos].Values = append(configs[pos].Values, pair.Value)
			}
		}
	}
	return configs
}
