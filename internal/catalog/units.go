package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/stocklane/backoffice-golang/internal/models"
)

// replaceUnits rebuilds the full unit configuration of an item: it resolves
// the base unit, normalizes conversion factors, deletes every existing
// item_units row and bulk-inserts the new set. The replace is never a diff.
// Item.base_unit_id is updated to the resolved base as a side effect.
func (e *Engine) replaceUnits(ctx context.Context, st store, itemID int64, configs []UnitConfigInput) ([]models.ItemUnit, error) {
	if len(configs) == 0 {
		return nil, validationf("item must have at least one unit")
	}

	if err := e.checkUnitsExist(ctx, st, configs); err != nil {
		return nil, err
	}

	baseUnitID, err := e.resolveBaseUnit(itemID, configs)
	if err != nil {
		return nil, err
	}

	units := make([]models.ItemUnit, 0, len(configs))
	for _, cfg := range configs {
		unit := models.ItemUnit{
			ItemID:         itemID,
			UnitID:         cfg.UnitID,
			BaseUnitID:     baseUnitID,
			IsBaseUnit:     cfg.UnitID == baseUnitID,
			IsPurchaseUnit: cfg.IsPurchaseUnit,
			IsSalesUnit:    cfg.IsSalesUnit,
		}

		if unit.IsBaseUnit {
			// The base unit converts to itself; any supplied factor is
			// overridden.
			unit.ConversionFactor = 1.0
		} else {
			if cfg.ConversionFactor == nil || *cfg.ConversionFactor <= 0 {
				return nil, validationf("unit %d requires a conversion factor greater than zero", cfg.UnitID)
			}
			unit.ConversionFactor = *cfg.ConversionFactor
		}

		units = append(units, unit)
	}

	if err := st.DeleteItemUnits(ctx, itemID); err != nil {
		return nil, err
	}
	if err := st.InsertItemUnits(ctx, units); err != nil {
		return nil, err
	}
	if err := st.SetItemBaseUnit(ctx, itemID, baseUnitID); err != nil {
		return nil, err
	}

	return units, nil
}

// resolveBaseUnit picks the unit every conversion factor is relative to.
// With several entries flagged as base, the last flagged one wins. With
// none flagged, the first entry is promoted unless the engine is configured
// to demand an explicit designation.
func (e *Engine) resolveBaseUnit(itemID int64, configs []UnitConfigInput) (int64, error) {
	var baseUnitID int64
	flagged := 0
	for _, cfg := range configs {
		if cfg.IsBaseUnit {
			baseUnitID = cfg.UnitID
			flagged++
		}
	}

	switch {
	case flagged == 1:
		return baseUnitID, nil
	case flagged > 1:
		if e.requireExplicitBase {
			return 0, validationf("more than one unit is flagged as the base unit")
		}
		e.log.Warn("multiple units flagged as base, keeping the last one",
			zap.Int64("item_id", itemID),
			zap.Int64("base_unit_id", baseUnitID),
			zap.Int("flagged", flagged),
		)
		return baseUnitID, nil
	default:
		if e.requireExplicitBase {
			return 0, validationf("one unit must be flagged as the base unit")
		}
		baseUnitID = configs[0].UnitID
		e.log.Warn("no base unit flagged, promoting the first configured unit",
			zap.Int64("item_id", itemID),
			zap.Int64("base_unit_id", baseUnitID),
		)
		return baseUnitID, nil
	}
}

// checkUnitsExist resolves the supplied unit ids against the units
// reference table. A batch where nothing resolves points at corrupt input
// rather than a single bad reference, so it surfaces as an integrity
// failure instead of a not-found.
func (e *Engine) checkUnitsExist(ctx context.Context, st store, configs []UnitConfigInput) error {
	ids := make([]int64, 0, len(configs))
	for _, cfg := range configs {
		ids = append(ids, cfg.UnitID)
	}

	existing, err := st.ListExistingUnitIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return integrityf("none of the supplied unit ids could be resolved")
	}

	known := make(map[int64]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}
	for _, id := range ids {
		if !known[id] {
			return notFoundf("unit %d does not exist", id)
		}
	}
	return nil
}

// ensureUnitsExist guards the update path when a save arrives without a
// unit payload: the item must already own at least one unit row.
func (e *Engine) ensureUnitsExist(ctx context.Context, st store, itemID int64) error {
	count, err := st.CountItemUnits(ctx, itemID)
	if err != nil {
		return err
	}
	if count == 0 {
		return validationf("item has no units and none were supplied")
	}
	return nil
}
