package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/domain/item"
	"github.com/baskit-app/baskit/internal/ports"
)

var _ ports.ItemRepository = (*itemRepo)(nil)

type itemRepo struct {
	tx *sql.Tx
}

const itemColumns = "id, list_id, name, normalized_name, quantity, unit, is_bought, bought_at, created_at, updated_at"

func scanItem(row *sql.Row) (*item.Item, error) {
	var it item.Item
	var boughtAt sql.NullTime
	if err := row.Scan(&it.ID, &it.ListID, &it.Name, &it.NormalizedName, &it.Quantity, &it.Unit, &it.IsBought, &boughtAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	if boughtAt.Valid {
		t := boughtAt.Time
		it.BoughtAt = &t
	}
	return &it, nil
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*item.Item, error) {
	row := r.tx.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM grocery_items WHERE id = ?", id)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.MsgItemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying item by id: %w", err)
	}
	return it, nil
}

func (r *itemRepo) FindLocations(ctx context.Context, ownerID int64, normalizedName string, includeBought bool) ([]item.Location, error) {
	query := `SELECT i.list_id, l.name, i.id, i.quantity, i.unit, i.is_bought
		FROM grocery_items i
		JOIN grocery_lists l ON l.id = i.list_id
		WHERE l.owner_id = ? AND l.is_deleted = 0 AND i.normalized_name = ?`
	if !includeBought {
		query += " AND i.is_bought = 0"
	}
	query += " ORDER BY i.list_id, i.id"

	rows, err := r.tx.QueryContext(ctx, query, ownerID, normalizedName)
	if err != nil {
		return nil, fmt.Errorf("querying item locations: %w", err)
	}
	defer rows.Close()

	var locations []item.Location
	for rows.Next() {
		var loc item.Location
		if err := rows.Scan(&loc.ListID, &loc.ListName, &loc.ItemID, &loc.Quantity, &loc.Unit, &loc.IsBought); err != nil {
			return nil, fmt.Errorf("scanning location row: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating location rows: %w", err)
	}
	return locations, nil
}

func (r *itemRepo) FindInList(ctx context.Context, listID int64, normalizedName string) (*item.Item, error) {
	row := r.tx.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM grocery_items WHERE list_id = ? AND normalized_name = ? ORDER BY id LIMIT 1",
		listID, normalizedName)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.MsgItemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying item in list: %w", err)
	}
	return it, nil
}

func (r *itemRepo) Create(ctx context.Context, it *item.Item) error {
	now := time.Now().UTC()
	res, err := r.tx.ExecContext(ctx,
		"INSERT INTO grocery_items (list_id, name, normalized_name, quantity, unit, is_bought, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 0, ?, ?)",
		it.ListID, it.Name, it.NormalizedName, it.Quantity, it.Unit, now, now)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted item id: %w", err)
	}
	it.ID = id
	it.CreatedAt = now
	it.UpdatedAt = now
	return nil
}

func (r *itemRepo) UpdateQuantity(ctx context.Context, id int64, quantity int, unit string) error {
	_, err := r.tx.ExecContext(ctx,
		"UPDATE grocery_items SET quantity = ?, unit = ?, updated_at = ? WHERE id = ?",
		quantity, unit, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating item quantity: %w", err)
	}
	return nil
}

func (r *itemRepo) SetBought(ctx context.Context, id int64, bought bool, at *time.Time) error {
	_, err := r.tx.ExecContext(ctx,
		"UPDATE grocery_items SET is_bought = ?, bought_at = ?, updated_at = ? WHERE id = ?",
		bought, at, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("setting item bought state: %w", err)
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.tx.ExecContext(ctx, "DELETE FROM grocery_items WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

func (r *itemRepo) ListByList(ctx context.Context, listID int64, includeBought bool) ([]item.Item, error) {
	query := "SELECT " + itemColumns + " FROM grocery_items WHERE list_id = ?"
	if !includeBought {
		query += " AND is_bought = 0"
	}
	query += " ORDER BY id"

	rows, err := r.tx.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("querying list items: %w", err)
	}
	defer rows.Close()

	var items []item.Item
	for rows.Next() {
		var it item.Item
		var boughtAt sql.NullTime
		if err := rows.Scan(&it.ID, &it.ListID, &it.Name, &it.NormalizedName, &it.Quantity, &it.Unit, &it.IsBought, &boughtAt, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		if boughtAt.Valid {
			t := boughtAt.Time
			it.BoughtAt = &t
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}
	return items, nil
}

func (r *itemRepo) CountByList(ctx context.Context, listID int64) (int, int, error) {
	var total, bought int
	err := r.tx.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(is_bought), 0) FROM grocery_items WHERE list_id = ?",
		listID).Scan(&total, &bought)
	if err != nil {
		return 0, 0, fmt.Errorf("counting list items: %w", err)
	}
	return total, bought, nil
}
