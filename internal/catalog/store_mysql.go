package catalog

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stocklane/backoffice-golang/internal/models"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same statements serve the transactional store and the read store.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// mysqlStore implements store and readStore over hand-written MySQL.
type mysqlStore struct {
	q dbtx
}

func newMySQLStore(q dbtx) *mysqlStore { return &mysqlStore{q: q} }

// --- Item row ---

func (s *mysqlStore) InsertItem(ctx context.Context, item *models.Item) (int64, error) {
	query := `
		INSERT INTO items
		(name, slug, sku, item_type, category_id, brand_id, cost_price, retail_price, wholesale_price, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`

	now := time.Now()
	res, err := s.q.ExecContext(ctx, query,
		item.Name, item.Slug, item.SKU, item.Type, item.CategoryID, item.BrandID,
		nullDecimal(item.CostPrice), nullDecimal(item.RetailPrice), nullDecimal(item.WholesalePrice),
		now, now,
	)
	if err != nil {
		return 0, translateDBError(err, "insert item")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translateDBError(err, "insert item id")
	}
	item.ID = id
	item.Version = 1
	return id, nil
}

func (s *mysqlStore) UpdateItem(ctx context.Context, item *models.Item, expectedVersion int64) error {
	query := `
		UPDATE items
		SET name = ?, slug = ?, sku = ?, item_type = ?, category_id = ?, brand_id = ?,
		    cost_price = ?, retail_price = ?, wholesale_price = ?,
		    version = version + 1, updated_at = ?
		WHERE id = ?`
	args := []interface{}{
		item.Name, item.Slug, item.SKU, item.Type, item.CategoryID, item.BrandID,
		nullDecimal(item.CostPrice), nullDecimal(item.RetailPrice), nullDecimal(item.WholesalePrice),
		time.Now(), item.ID,
	}
	if expectedVersion > 0 {
		query += " AND version = ?"
		args = append(args, expectedVersion)
	}

	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return translateDBError(err, "update item")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return translateDBError(err, "update item rows")
	}
	if affected == 0 {
		if expectedVersion > 0 {
			return conflictf("item %d was modified by another request (stale version %d)", item.ID, expectedVersion)
		}
		return notFoundf("item %d does not exist", item.ID)
	}
	return nil
}

func (s *mysqlStore) GetItemForUpdate(ctx context.Context, itemID int64) (*models.Item, error) {
	query := `
		SELECT id, name, slug, sku, item_type, category_id, brand_id, base_unit_id,
		       cost_price, retail_price, wholesale_price, version, created_at, updated_at
		FROM items
		WHERE id = ? FOR UPDATE`
	return s.scanItem(s.q.QueryRowContext(ctx, query, itemID), itemID)
}

func (s *mysqlStore) GetItem(ctx context.Context, itemID int64) (*models.Item, error) {
	query := `
		SELECT id, name, slug, sku, item_type, category_id, brand_id, base_unit_id,
		       cost_price, retail_price, wholesale_price, version, created_at, updated_at
		FROM items
		WHERE id = ?`
	return s.scanItem(s.q.QueryRowContext(ctx, query, itemID), itemID)
}

func (s *mysqlStore) scanItem(row *sql.Row, itemID int64) (*models.Item, error) {
	var item models.Item
	var cost, retail, wholesale decimal.NullDecimal

	err := row.Scan(
		&item.ID, &item.Name, &item.Slug, &item.SKU, &item.Type, &item.CategoryID, &item.BrandID,
		&item.BaseUnitID, &cost, &retail, &wholesale, &item.Version,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, notFoundf("item %d does not exist", itemID)
		}
		return nil, translateDBError(err, "load item")
	}

	item.CostPrice = fromNullDecimal(cost)
	item.RetailPrice = fromNullDecimal(retail)
	item.WholesalePrice = fromNullDecimal(wholesale)
	return &item, nil
}

func (s *mysqlStore) SetItemBaseUnit(ctx context.Context, itemID, baseUnitID int64) error {
	_, err := s.q.ExecContext(ctx, "UPDATE items SET base_unit_id = ? WHERE id = ?", baseUnitID, itemID)
	return translateDBError(err, "set item base unit")
}

// --- Unit configuration ---

func (s *mysqlStore) ListExistingUnitIDs(ctx context.Context, unitIDs []int64) ([]int64, error) {
	if len(unitIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(unitIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, len(unitIDs))
	for i, id := range unitIDs {
		args[i] = id
	}

	rows, err := s.q.QueryContext(ctx, "SELECT id FROM units WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, translateDBError(err, "list existing unit ids")
	}
	defer rows.Close()

	var existing []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, translateDBError(err, "scan unit id")
		}
		existing = append(existing, id)
	}
	return existing, rows.Err()
}

func (s *mysqlStore) DeleteItemUnits(ctx context.Context, itemID int64) error {
	_, err := s.q.ExecContext(ctx, "DELETE FROM item_units WHERE item_id = ?", itemID)
	return translateDBError(err, "delete item units")
}

func (s *mysqlStore) InsertItemUnits(ctx context.Context, units []models.ItemUnit) error {
	query := `
		INSERT INTO item_units
		(item_id, unit_id, base_unit_id, conversion_factor, is_base_unit, is_purchase_unit, is_sales_unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	for i := range units {
		u := &units[i]
		_, err := s.q.ExecContext(ctx, query,
			u.ItemID, u.UnitID, u.BaseUnitID, u.ConversionFactor,
			u.IsBaseUnit, u.IsPurchaseUnit, u.IsSalesUnit, now,
		)
		if err != nil {
			return translateDBError(err, "insert item unit")
		}
	}
	return nil
}

func (s *mysqlStore) CountItemUnits(ctx context.Context, itemID int64) (int, error) {
	var count int
	err := s.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM item_units WHERE item_id = ?", itemID).Scan(&count)
	if err != nil {
		return 0, translateDBError(err, "count item units")
	}
	return count, nil
}

// --- Variations ---

func (s *mysqlStore) DeleteStockEntries(ctx context.Context, itemID int64) error {
	_, err := s.q.ExecContext(ctx, "DELETE FROM stock_entries WHERE item_id = ?", itemID)
	return translateDBError(err, "delete stock entries")
}

func (s *mysqlStore) DeleteVariationLinks(ctx context.Context, itemID int64) error {
	query := `
		DELETE val FROM variation_attribute_values val
		JOIN item_variations v ON v.id = val.variation_id
		WHERE v.item_id = ?`
	_, err := s.q.ExecContext(ctx, query, itemID)
	return translateDBError(err, "delete variation links")
}

func (s *mysqlStore) DeleteVariations(ctx context.Context, itemID int64) error {
	_, err := s.q.ExecContext(ctx, "DELETE FROM item_variations WHERE item_id = ?", itemID)
	return translateDBError(err, "delete variations")
}

func (s *mysqlStore) InsertVariation(ctx context.Context, v *models.Variation) (int64, error) {
	query := `
		INSERT INTO item_variations
		(item_id, sku, cost_price, retail_price, wholesale_price, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	now := time.Now()
	res, err := s.q.ExecContext(ctx, query,
		v.ItemID, v.SKU,
		nullDecimal(v.CostPrice), nullDecimal(v.RetailPrice), nullDecimal(v.WholesalePrice),
		v.IsActive, now, now,
	)
	if err != nil {
		return 0, translateDBError(err, "insert variation "+v.SKU)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, translateDBError(err, "insert variation id")
	}
	v.ID = id
	return id, nil
}

func (s *mysqlStore) InsertVariationLink(ctx context.Context, variationID, attributeValueID int64) error {
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO variation_attribute_values (variation_id, attribute_value_id) VALUES (?, ?)",
		variationID, attributeValueID,
	)
	return translateDBError(err, "insert variation attribute link")
}

func (s *mysqlStore) InsertStockEntry(ctx context.Context, entry *models.StockEntry) error {
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO stock_entries (item_id, variation_id, store_id, quantity) VALUES (?, ?, ?, ?)",
		entry.ItemID, entry.VariationID, entry.StoreID, entry.Quantity,
	)
	return translateDBError(err, "insert stock entry")
}

// --- Attribute vocabulary ---

func (s *mysqlStore) FindAttributeValue(ctx context.Context, attributeID int64, value string) (*models.AttributeValue, error) {
	var av models.AttributeValue
	err := s.q.QueryRowContext(ctx,
		"SELECT id, attribute_id, value FROM attribute_values WHERE attribute_id = ? AND LOWER(value) = LOWER(?)",
		attributeID, value,
	).Scan(&av.ID, &av.AttributeID, &av.Value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, translateDBError(err, "find attribute value")
	}
	return &av, nil
}

// --- Read store ---

func (s *mysqlStore) ListItemUnits(ctx context.Context, itemID int64) ([]models.ItemUnit, error) {
	query := `
		SELECT iu.id, iu.item_id, iu.unit_id, iu.base_unit_id, iu.conversion_factor,
		       iu.is_base_unit, iu.is_purchase_unit, iu.is_sales_unit, iu.created_at, u.name
		FROM item_units iu
		JOIN units u ON u.id = iu.unit_id
		WHERE iu.item_id = ?
		ORDER BY iu.is_base_unit DESC, iu.id ASC`

	rows, err := s.q.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, translateDBError(err, "list item units")
	}
	defer rows.Close()

	var units []models.ItemUnit
	for rows.Next() {
		var u models.ItemUnit
		if err := rows.Scan(
			&u.ID, &u.ItemID, &u.UnitID, &u.BaseUnitID, &u.ConversionFactor,
			&u.IsBaseUnit, &u.IsPurchaseUnit, &u.IsSalesUnit, &u.CreatedAt, &u.UnitName,
		); err != nil {
			return nil, translateDBError(err, "scan item unit")
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (s *mysqlStore) ListVariations(ctx context.Context, itemID int64) ([]models.Variation, error) {
	query := `
		SELECT id, item_id, sku, cost_price, retail_price, wholesale_price, is_active, created_at, updated_at
		FROM item_variations
		WHERE item_id = ?
		ORDER BY id ASC`

	rows, err := s.q.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, translateDBError(err, "list variations")
	}
	defer rows.Close()

	var variations []models.Variation
	for rows.Next() {
		var v models.Variation
		var cost, retail, wholesale decimal.NullDecimal
		if err := rows.Scan(
			&v.ID, &v.ItemID, &v.SKU, &cost, &retail, &wholesale,
			&v.IsActive, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, translateDBError(err, "scan variation")
		}
		v.CostPrice = fromNullDecimal(cost)
		v.RetailPrice = fromNullDecimal(retail)
		v.WholesalePrice = fromNullDecimal(wholesale)
		variations = append(variations, v)
	}
	return variations, rows.Err()
}

func (s *mysqlStore) ListVariationAttributes(ctx context.Context, itemID int64) (map[int64][]AttributePair, error) {
	query := `
		SELECT val.variation_id, a.id, a.name, av.id, av.value
		FROM variation_attribute_values val
		JOIN item_variations v ON v.id = val.variation_id
		JOIN attribute_values av ON av.id = val.attribute_value_id
		JOIN attributes a ON a.id = av.attribute_id
		WHERE v.item_id = ?
		ORDER BY val.variation_id ASC, a.id ASC`

	rows, err := s.q.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, translateDBError(err, "list variation attributes")
	}
	defer rows.Close()

	result := make(map[int64][]AttributePair)
	for rows.Next() {
		var variationID int64
		var pair AttributePair
		if err := rows.Scan(&variationID, &pair.AttributeID, &pair.AttributeName, &pair.ValueID, &pair.Value); err != nil {
			return nil, translateDBError(err, "scan variation attribute")
		}
		result[variationID] = append(result[variationID], pair)
	}
	return result, rows.Err()
}

// --- Null helpers ---

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	val := d.Decimal
	return &val
}
