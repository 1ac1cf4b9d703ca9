package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/stocklane/backoffice-golang/internal/models"
)

// Engine coordinates every catalog save as one database transaction: the
// item row, its unit configuration and, for Variable items, the full
// variation set either all become visible together or not at all.
type Engine struct {
	db                  *sql.DB
	log                 *zap.Logger
	mismatchPolicy      AttributeMismatchPolicy
	requireExplicitBase bool
}

// Option tweaks engine policy knobs.
type Option func(*Engine)

// WithAttributeMismatchPolicy selects how unresolved attribute/value pairs
// are treated during link resolution.
func WithAttributeMismatchPolicy(p AttributeMismatchPolicy) Option {
	return func(e *Engine) { e.mismatchPolicy = p }
}

// WithRequireExplicitBaseUnit rejects unit batches that do not flag exactly
// one base unit instead of silently promoting the first entry.
func WithRequireExplicitBaseUnit(require bool) Option {
	return func(e *Engine) { e.requireExplicitBase = require }
}

func NewEngine(db *sql.DB, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{db: db, log: log, mismatchPolicy: MismatchSkip}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SaveItem creates or updates an item together with its units and
// variations. Request validation that needs no database state runs before
// the transaction opens; everything after the first write happens inside
// one transaction and any error rolls the whole save back.
func (e *Engine) SaveItem(ctx context.Context, req SaveItemRequest) (*SaveItemResult, error) {
	if err := normalizeRequest(&req); err != nil {
		return nil, err
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save transaction: %w", err)
	}
	defer tx.Rollback()

	st := newMySQLStore(tx)

	var result *SaveItemResult
	if req.ID == 0 {
		result, err = e.createItem(ctx, st, req)
	} else {
		result, err = e.updateItem(ctx, st, req)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save transaction: %w", err)
	}

	e.log.Info("item saved",
		zap.Int64("item_id", result.ItemID),
		zap.Int64("version", result.Version),
		zap.String("type", string(req.Type)),
		zap.Int("variations", len(result.VariationIDs)),
	)
	return result, nil
}

// normalizeRequest applies defaults and rejects requests that can never
// succeed, before any write happens.
func normalizeRequest(req *SaveItemRequest) error {
	if req.Name == "" {
		return validationf("item name is required")
	}
	if !req.Type.Valid() {
		return validationf("item type must be %q or %q", models.ItemTypeStandard, models.ItemTypeVariable)
	}
	if req.Slug == "" {
		req.Slug = slug.Make(req.Name)
	}

	if req.Type == models.ItemTypeVariable {
		// A Variable item may not end a save with zero variations, and a
		// Standard-to-Variable transition needs its full payload up front.
		if len(req.AttributesConfig) == 0 {
			return validationf("a variable item requires at least one attribute")
		}
		if len(req.Variations) == 0 {
			return validationf("a variable item requires at least one variation")
		}
		// Item-level prices belong to Standard items only.
		req.CostPrice, req.RetailPrice, req.WholesalePrice = nil, nil, nil
	} else {
		if err := validatePrices(req.CostPrice, req.RetailPrice, req.WholesalePrice, ""); err != nil {
			return err
		}
	}

	if req.ID == 0 && req.UnitConfigs == nil {
		return validationf("item must have at least one unit")
	}
	return nil
}

func (e *Engine) createItem(ctx context.Context, st store, req SaveItemRequest) (*SaveItemResult, error) {
	item := itemFromRequest(req)
	itemID, err := st.InsertItem(ctx, item)
	if err != nil {
		return nil, err
	}

	if _, err := e.replaceUnits(ctx, st, itemID, req.UnitConfigs); err != nil {
		return nil, err
	}

	var variationIDs []int64
	if req.Type == models.ItemTypeVariable {
		variationIDs, err = e.replaceVariations(ctx, st, itemID, baseSKU(req), req.AttributesConfig, req.Variations, req.StockStoreID)
		if err != nil {
			return nil, err
		}
	}

	return &SaveItemResult{ItemID: itemID, Version: 1, VariationIDs: variationIDs}, nil
}

func (e *Engine) updateItem(ctx context.Context, st store, req SaveItemRequest) (*SaveItemResult, error) {
	current, err := st.GetItemForUpdate(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	item := itemFromRequest(req)
	item.ID = req.ID
	if err := st.UpdateItem(ctx, item, req.Version); err != nil {
		return nil, err
	}

	if req.UnitConfigs != nil {
		if _, err := e.replaceUnits(ctx, st, req.ID, req.UnitConfigs); err != nil {
			return nil, err
		}
	} else {
		if err := e.ensureUnitsExist(ctx, st, req.ID); err != nil {
			return nil, err
		}
	}

	var variationIDs []int64
	switch {
	case req.Type == models.ItemTypeVariable:
		variationIDs, err = e.replaceVariations(ctx, st, req.ID, baseSKU(req), req.AttributesConfig, req.Variations, req.StockStoreID)
		if err != nil {
			return nil, err
		}
	case current.Type == models.ItemTypeVariable:
		// Variable-to-Standard transition tears down every variation and
		// link inside the same transaction.
		if _, err := e.replaceVariations(ctx, st, req.ID, "", nil, nil, nil); err != nil {
			return nil, err
		}
	}

	version := current.Version + 1
	if req.Version > 0 {
		version = req.Version + 1
	}
	return &SaveItemResult{ItemID: req.ID, Version: version, VariationIDs: variationIDs}, nil
}

func itemFromRequest(req SaveItemRequest) *models.Item {
	return &models.Item{
		Name:           req.Name,
		Slug:           req.Slug,
		SKU:            req.SKU,
		Type:           req.Type,
		CategoryID:     req.CategoryID,
		BrandID:        req.BrandID,
		CostPrice:      req.CostPrice,
		RetailPrice:    req.RetailPrice,
		WholesalePrice: req.WholesalePrice,
	}
}

func baseSKU(req SaveItemRequest) string {
	if req.SKU != nil {
		return *req.SKU
	}
	return ""
}
