package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// AttributeMismatchPolicy decides what happens when an attribute name or
// value of a submitted combination does not resolve against the catalog
// vocabulary. The historical behavior is to drop the pair and keep saving;
// strict mode fails the whole save instead.
type AttributeMismatchPolicy int

const (
	// MismatchSkip drops unresolved pairs with a warning log. Callers must
	// not assume the returned link set covers every input pair.
	MismatchSkip AttributeMismatchPolicy = iota
	// MismatchFail rejects the save on the first unresolved pair.
	MismatchFail
)

// resolveCombination maps the (attribute name, value string) pairs of one
// combination to canonical attribute-value ids. Attribute names match
// case-insensitively within the item's configured attribute set; values
// match case-insensitively within the attribute. Resolution order follows
// the configured attribute order, not map iteration order.
func (e *Engine) resolveCombination(
	ctx context.Context,
	st store,
	itemID int64,
	combo map[string]string,
	attrs []AttributeConfigInput,
) ([]int64, error) {
	var valueIDs []int64

	for _, attr := range attrs {
		value, ok := lookupFold(combo, attr.Name)
		if !ok {
			continue
		}

		av, err := st.FindAttributeValue(ctx, attr.AttributeID, value)
		if err != nil {
			return nil, err
		}
		if av == nil {
			if e.mismatchPolicy == MismatchFail {
				return nil, validationf("attribute %q has no value %q in the catalog", attr.Name, value)
			}
			e.log.Warn("skipping unresolved attribute value",
				zap.Int64("item_id", itemID),
				zap.String("attribute", attr.Name),
				zap.String("value", value),
			)
			continue
		}
		valueIDs = append(valueIDs, av.ID)
	}

	// Pairs naming attributes outside the configured set are dropped too.
	for name := range combo {
		if !containsAttributeFold(attrs, name) {
			if e.mismatchPolicy == MismatchFail {
				return nil, validationf("attribute %q is not configured for this item", name)
			}
			e.log.Warn("skipping unconfigured attribute",
				zap.Int64("item_id", itemID),
				zap.String("attribute", name),
			)
		}
	}

	return valueIDs, nil
}

func lookupFold(combo map[string]string, name string) (string, bool) {
	for k, v := range combo {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

func containsAttributeFold(attrs []AttributeConfigInput, name string) bool {
	for _, attr := range attrs {
		if strings.EqualFold(attr.Name, name) {
			return true
		}
	}
	return false
}
