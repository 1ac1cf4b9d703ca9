package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/stocklane/backoffice-golang/internal/models"
)

// fakeStore is an in-memory store used by the component tests. It keeps
// just enough state to verify replace-all semantics and records inserts so
// tests can assert that failed batches never touched the tables.
type fakeStore struct {
	nextID int64

	items           map[int64]*models.Item
	existingUnits   map[int64]bool
	attributeNames  map[int64]string
	itemUnits       []models.ItemUnit
	variations      []models.Variation
	links           []models.VariationAttributeLink
	stockEntries    []models.StockEntry
	attributeVals   []models.AttributeValue
	unitCountByItem map[int64]int

	failInsertVariation error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:          100,
		items:           make(map[int64]*models.Item),
		existingUnits:   make(map[int64]bool),
		attributeNames:  make(map[int64]string),
		unitCountByItem: make(map[int64]int),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addUnit(id int64) { f.existingUnits[id] = true }

func (f *fakeStore) addAttribute(id int64, name string) { f.attributeNames[id] = name }

func (f *fakeStore) addAttributeValue(attributeID int64, value string) int64 {
	id := f.id()
	f.attributeVals = append(f.attributeVals, models.AttributeValue{
		ID: id, AttributeID: attributeID, Value: value,
	})
	return id
}

func (f *fakeStore) InsertItem(_ context.Context, item *models.Item) (int64, error) {
	item.ID = f.id()
	item.Version = 1
	f.items[item.ID] = item
	return item.ID, nil
}

func (f *fakeStore) UpdateItem(_ context.Context, item *models.Item, expectedVersion int64) error {
	current, ok := f.items[item.ID]
	if !ok {
		return notFoundf("item %d does not exist", item.ID)
	}
	if expectedVersion > 0 && current.Version != expectedVersion {
		return conflictf("item %d was modified by another request (stale version %d)", item.ID, expectedVersion)
	}
	item.Version = current.Version + 1
	f.items[item.ID] = item
	return nil
}

func (f *fakeStore) GetItemForUpdate(_ context.Context, itemID int64) (*models.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, notFoundf("item %d does not exist", itemID)
	}
	return item, nil
}

func (f *fakeStore) SetItemBaseUnit(_ context.Context, itemID, baseUnitID int64) error {
	if item, ok := f.items[itemID]; ok {
		item.BaseUnitID = &baseUnitID
	}
	return nil
}

func (f *fakeStore) ListExistingUnitIDs(_ context.Context, unitIDs []int64) ([]int64, error) {
	var existing []int64
	for _, id := range unitIDs {
		if f.existingUnits[id] {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

func (f *fakeStore) DeleteItemUnits(_ context.Context, itemID int64) error {
	kept := f.itemUnits[:0]
	for _, u := range f.itemUnits {
		if u.ItemID != itemID {
			kept = append(kept, u)
		}
	}
	f.itemUnits = kept
	f.unitCountByItem[itemID] = 0
	return nil
}

func (f *fakeStore) InsertItemUnits(_ context.Context, units []models.ItemUnit) error {
	seen := make(map[int64]bool)
	for _, u := range units {
		if seen[u.UnitID] {
			return conflictf("duplicate entry: insert item unit")
		}
		seen[u.UnitID] = true
	}
	f.itemUnits = append(f.itemUnits, units...)
	for _, u := range units {
		f.unitCountByItem[u.ItemID]++
	}
	return nil
}

func (f *fakeStore) CountItemUnits(_ context.Context, itemID int64) (int, error) {
	return f.unitCountByItem[itemID], nil
}

func (f *fakeStore) DeleteVariationLinks(_ context.Context, itemID int64) error {
	owned := make(map[int64]bool)
	for _, v := range f.variations {
		if v.ItemID == itemID {
			owned[v.ID] = true
		}
	}
	kept := f.links[:0]
	for _, l := range f.links {
		if !owned[l.VariationID] {
			kept = append(kept, l)
		}
	}
	f.links = kept
	return nil
}

func (f *fakeStore) DeleteStockEntries(_ context.Context, itemID int64) error {
	kept := f.stockEntries[:0]
	for _, se := range f.stockEntries {
		if se.ItemID != itemID {
			kept = append(kept, se)
		}
	}
	f.stockEntries = kept
	return nil
}

func (f *fakeStore) DeleteVariations(_ context.Context, itemID int64) error {
	doomed := make(map[int64]bool)
	for _, v := range f.variations {
		if v.ItemID == itemID {
			doomed[v.ID] = true
		}
	}
	// Same restriction the schema's foreign key enforces.
	for _, se := range f.stockEntries {
		if doomed[se.VariationID] {
			return integrityf("cannot delete variation %d: stock entries still reference it", se.VariationID)
		}
	}
	kept := f.variations[:0]
	for _, v := range f.variations {
		if v.ItemID != itemID {
			kept = append(kept, v)
		}
	}
	f.variations = kept
	return nil
}

func (f *fakeStore) InsertVariation(_ context.Context, v *models.Variation) (int64, error) {
	if f.failInsertVariation != nil {
		return 0, f.failInsertVariation
	}
	for _, existing := range f.variations {
		if existing.SKU == v.SKU {
			return 0, conflictf("duplicate entry: insert variation %s", v.SKU)
		}
	}
	v.ID = f.id()
	f.variations = append(f.variations, *v)
	return v.ID, nil
}

func (f *fakeStore) InsertVariationLink(_ context.Context, variationID, attributeValueID int64) error {
	f.links = append(f.links, models.VariationAttributeLink{
		ID: f.id(), VariationID: variationID, AttributeValueID: attributeValueID,
	})
	return nil
}

func (f *fakeStore) InsertStockEntry(_ context.Context, entry *models.StockEntry) error {
	entry.ID = f.id()
	f.stockEntries = append(f.stockEntries, *entry)
	return nil
}

func (f *fakeStore) FindAttributeValue(_ context.Context, attributeID int64, value string) (*models.AttributeValue, error) {
	for _, av := range f.attributeVals {
		if av.AttributeID == attributeID && strings.EqualFold(av.Value, value) {
			found := av
			return &found, nil
		}
	}
	return nil, nil
}

// --- readStore ---

func (f *fakeStore) GetItem(_ context.Context, itemID int64) (*models.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, notFoundf("item %d does not exist", itemID)
	}
	copied := *item
	return &copied, nil
}

func (f *fakeStore) ListItemUnits(_ context.Context, itemID int64) ([]models.ItemUnit, error) {
	units := f.unitsForItem(itemID)
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].IsBaseUnit && !units[j].IsBaseUnit
	})
	return units, nil
}

func (f *fakeStore) ListVariations(_ context.Context, itemID int64) ([]models.Variation, error) {
	return f.variationsForItem(itemID), nil
}

func (f *fakeStore) ListVariationAttributes(_ context.Context, itemID int64) (map[int64][]AttributePair, error) {
	owned := make(map[int64]bool)
	for _, v := range f.variations {
		if v.ItemID == itemID {
			owned[v.ID] = true
		}
	}
	result := make(map[int64][]AttributePair)
	for _, l := range f.links {
		if !owned[l.VariationID] {
			continue
		}
		for _, av := range f.attributeVals {
			if av.ID == l.AttributeValueID {
				result[l.VariationID] = append(result[l.VariationID], AttributePair{
					AttributeID:   av.AttributeID,
					AttributeName: f.attributeNames[av.AttributeID],
					ValueID:       av.ID,
					Value:         av.Value,
				})
			}
		}
	}
	return result, nil
}

func (f *fakeStore) unitsForItem(itemID int64) []models.ItemUnit {
	var units []models.ItemUnit
	for _, u := range f.itemUnits {
		if u.ItemID == itemID {
			units = append(units, u)
		}
	}
	return units
}

func (f *fakeStore) variationsForItem(itemID int64) []models.Variation {
	var variations []models.Variation
	for _, v := range f.variations {
		if v.ItemID == itemID {
			variations = append(variations, v)
		}
	}
	return variations
}
