package catalog

import "github.com/shopspring/decimal"

// validatePrices enforces the price ordering invariant: when both sides are
// present, retail and wholesale prices must not undercut cost. Absent
// prices are not compared. The sku argument names the offending variation
// in the error text; pass "" for item-level prices.
func validatePrices(cost, retail, wholesale *decimal.Decimal, sku string) error {
	subject := "item"
	if sku != "" {
		subject = "variation " + sku
	}

	if cost != nil && retail != nil && retail.LessThan(*cost) {
		return validationf("%s: retail price %s is below cost price %s", subject, retail.String(), cost.String())
	}
	if cost != nil && wholesale != nil && wholesale.LessThan(*cost) {
		return validationf("%s: wholesale price %s is below cost price %s", subject, wholesale.String(), cost.String())
	}
	return nil
}
