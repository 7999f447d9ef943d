package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const itemColumns = `
    id, name, sku, category, quantity, unit, unit_price, reorder_level,
    supplier, location, status, last_restocked, expiry_date, COALESCE(description, '')`

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	err := row.Scan(&item.ID, &item.Name, &item.SKU, &item.Category, &item.Quantity,
		&item.Unit, &item.UnitPrice, &item.ReorderLevel, &item.Supplier, &item.Location,
		&item.Status, &item.LastRestocked, &item.ExpiryDate, &item.Description)
	return item, err
}

func (s *Store) ListItems(ctx context.Context) ([]Item, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+itemColumns+" FROM inventory_items ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) GetItem(ctx context.Context, id string) (Item, error) {
	item, err := scanItem(s.DB.QueryRow(ctx, "SELECT"+itemColumns+" FROM inventory_items WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

func (s *Store) CreateItem(ctx context.Context, item Item) (Item, error) {
	item.Status = StatusFor(item.Quantity, item.ReorderLevel)
	if item.LastRestocked.IsZero() {
		item.LastRestocked = time.Now().UTC()
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO inventory_items
      (name, sku, category, quantity, unit, unit_price, reorder_level, supplier, location, status, last_restocked, expiry_date, description)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    RETURNING id
  `, item.Name, item.SKU, item.Category, item.Quantity, item.Unit, item.UnitPrice,
		item.ReorderLevel, item.Supplier, item.Location, item.Status, item.LastRestocked,
		item.ExpiryDate, nullIfEmpty(item.Description)).Scan(&item.ID)
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

func (s *Store) UpdateItem(ctx context.Context, id string, update ItemUpdate) (Item, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE inventory_items SET
      name = COALESCE($2, name),
      sku = COALESCE($3, sku),
      category = COALESCE($4, category),
      quantity = COALESCE($5, quantity),
      unit = COALESCE($6, unit),
      unit_price = COALESCE($7, unit_price),
      reorder_level = COALESCE($8, reorder_level),
      supplier = COALESCE($9, supplier),
      location = COALESCE($10, location),
      expiry_date = COALESCE($11, expiry_date),
      description = COALESCE($12, description)
    WHERE id = $1
  `, id, update.Name, update.SKU, update.Category, update.Quantity, update.Unit,
		update.UnitPrice, update.ReorderLevel, update.Supplier, update.Location,
		update.ExpiryDate, update.Description)
	if err != nil {
		return Item{}, err
	}
	if tag.RowsAffected() == 0 {
		return Item{}, ErrNotFound
	}
	// Status depends on quantity and reorder level, refresh it.
	if _, err := s.DB.Exec(ctx, `
    UPDATE inventory_items SET status = CASE
      WHEN quantity <= 0 THEN $2
      WHEN quantity <= reorder_level THEN $3
      ELSE $4 END
    WHERE id = $1
  `, id, StatusOutOfStock, StatusLowStock, StatusInStock); err != nil {
		return Item{}, err
	}
	return s.GetItem(ctx, id)
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM inventory_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetQuantity(ctx context.Context, id string, quantity float64, restockedAt *time.Time) (Item, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE inventory_items SET
      quantity = $2,
      last_restocked = COALESCE($3, last_restocked),
      status = CASE
        WHEN $2 <= 0 THEN $4
        WHEN $2 <= reorder_level THEN $5
        ELSE $6 END
    WHERE id = $1
  `, id, quantity, restockedAt, StatusOutOfStock, StatusLowStock, StatusInStock)
	if err != nil {
		return Item{}, err
	}
	if tag.RowsAffected() == 0 {
		return Item{}, ErrNotFound
	}
	return s.GetItem(ctx, id)
}

func (s *Store) AppendMovement(ctx context.Context, movement Movement) (Movement, error) {
	if movement.Date.IsZero() {
		movement.Date = time.Now().UTC()
	}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO stock_movements
      (item_id, item_name, type, quantity, previous_quantity, new_quantity, reason, date, performed_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING id
  `, movement.ItemID, movement.ItemName, movement.Type, movement.Quantity,
		movement.PreviousQuantity, movement.NewQuantity, movement.Reason,
		movement.Date, movement.PerformedBy).Scan(&movement.ID)
	if err != nil {
		return Movement{}, err
	}
	return movement, nil
}

func (s *Store) ListMovements(ctx context.Context, itemID string) ([]Movement, error) {
	query := `
    SELECT id, item_id, item_name, type, quantity, previous_quantity, new_quantity, reason, date, performed_by
    FROM stock_movements`
	var args []any
	if itemID != "" {
		query += " WHERE item_id = $1"
		args = append(args, itemID)
	}
	query += " ORDER BY date, id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []Movement
	for rows.Next() {
		var movement Movement
		if err := rows.Scan(&movement.ID, &movement.ItemID, &movement.ItemName, &movement.Type,
			&movement.Quantity, &movement.PreviousQuantity, &movement.NewQuantity,
			&movement.Reason, &movement.Date, &movement.PerformedBy); err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
