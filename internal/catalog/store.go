package catalog

import (
	"context"

	"github.com/stocklane/backoffice-golang/internal/models"
)

// store is the persistence surface the engine components write through.
// Inside a save it is backed by the coordinator's *sql.Tx, so every call
// participates in the same transaction; tests swap in a fake.
type store interface {
	// Item row.
	InsertItem(ctx context.Context, item *models.Item) (int64, error)
	// UpdateItem bumps the version counter. When expectedVersion > 0 the
	// update only matches a row still at that version; zero rows affected
	// means a concurrent writer got there first.
	UpdateItem(ctx context.Context, item *models.Item, expectedVersion int64) error
	GetItemForUpdate(ctx context.Context, itemID int64) (*models.Item, error)
	SetItemBaseUnit(ctx context.Context, itemID, baseUnitID int64) error

	// Unit configuration, replace-all.
	ListExistingUnitIDs(ctx context.Context, unitIDs []int64) ([]int64, error)
	DeleteItemUnits(ctx context.Context, itemID int64) error
	InsertItemUnits(ctx context.Context, units []models.ItemUnit) error
	CountItemUnits(ctx context.Context, itemID int64) (int, error)

	// Variations, replace-all. Teardown order matters: stock entries and
	// links reference variation rows, so they go first.
	DeleteStockEntries(ctx context.Context, itemID int64) error
	DeleteVariationLinks(ctx context.Context, itemID int64) error
	DeleteVariations(ctx context.Context, itemID int64) error
	InsertVariation(ctx context.Context, v *models.Variation) (int64, error)
	InsertVariationLink(ctx context.Context, variationID, attributeValueID int64) error
	InsertStockEntry(ctx context.Context, entry *models.StockEntry) error

	// Attribute vocabulary lookups used by the resolver.
	FindAttributeValue(ctx context.Context, attributeID int64, value string) (*models.AttributeValue, error)
}

// readStore is the non-transactional surface backing GetItem.
type readStore interface {
	GetItem(ctx context.Context, itemID int64) (*models.Item, error)
	ListItemUnits(ctx context.Context, itemID int64) ([]models.ItemUnit, error)
	ListVariations(ctx context.Context, itemID int64) ([]models.Variation, error)
	// ListVariationAttributes returns, per variation id, the resolved
	// (attribute name, value) pairs in attribute-id order.
	ListVariationAttributes(ctx context.Context, itemID int64) (map[int64][]AttributePair, error)
}

// AttributePair is one resolved (attribute, value) of a persisted variation.
type AttributePair struct {
	AttributeID   int64
	AttributeName string
	ValueID       int64
	Value         string
}
