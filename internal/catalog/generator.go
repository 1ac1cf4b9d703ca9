package catalog

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// Combination is one fully determined attribute assignment for a variation,
// e.g. {"Color": "Red", "Size": "M"}. The paired ordered value list keeps
// the attribute input order for SKU synthesis and display names.
type Combination struct {
	Values  map[string]string
	Ordered []string
}

// generateCombinations expands the configured attributes into the cartesian
// product of their values. The expansion is iterative: it starts from a
// single empty combination and widens it one attribute at a time, so the
// attribute order of the input fixes the field order of every result. The
// full set is produced in memory before anything is persisted; the
// persistence coordinator validates the whole batch first.
func generateCombinations(attrs []AttributeConfigInput) ([]Combination, error) {
	if len(attrs) == 0 {
		return nil, validationf("add at least one attribute")
	}
	for _, attr := range attrs {
		if len(attr.Values) == 0 {
			return nil, validationf("all attributes must have values selected")
		}
	}

	combos := []Combination{{Values: map[string]string{}}}
	for _, attr := range attrs {
		expanded := make([]Combination, 0, len(combos)*len(attr.Values))
		for _, base := range combos {
			for _, value := range attr.Values {
				next := Combination{
					Values:  make(map[string]string, len(base.Values)+1),
					Ordered: append(append([]string(nil), base.Ordered...), value),
				}
				for k, v := range base.Values {
					next.Values[k] = v
				}
				next.Values[attr.Name] = value
				expanded = append(expanded, next)
			}
		}
		combos = expanded
	}
	return combos, nil
}

// defaultSKU synthesizes a SKU for a combination when the client supplied
// none: "{base}-{slugged values}", "VAR-{slugged values}" without a base
// SKU, and "VAR-{index}" when the combination slugs to nothing.
func defaultSKU(baseSKU string, combo Combination, index int) string {
	joined := slug.Make(strings.Join(combo.Ordered, "-"))
	if baseSKU != "" && joined != "" {
		return baseSKU + "-" + joined
	}
	if joined != "" {
		return "VAR-" + joined
	}
	return fmt.Sprintf("VAR-%d", index)
}
