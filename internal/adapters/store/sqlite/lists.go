package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/baskit-app/baskit/internal/domain"
	"github.com/baskit-app/baskit/internal/domain/groclist"
	"github.com/baskit-app/baskit/internal/ports"
)

var _ ports.ListRepository = (*listRepo)(nil)

type listRepo struct {
	tx *sql.Tx
}

const listColumns = "id, name, owner_id, is_deleted, deleted_at, deleted_by, created_at, updated_at"

func scanList(row *sql.Row) (*groclist.List, error) {
	var l groclist.List
	var deletedAt sql.NullTime
	var deletedBy sql.NullInt64
	if err := row.Scan(&l.ID, &l.Name, &l.OwnerID, &l.IsDeleted, &deletedAt, &deletedBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		l.DeletedAt = &t
	}
	if deletedBy.Valid {
		v := deletedBy.Int64
		l.DeletedBy = &v
	}
	return &l, nil
}

func (r *listRepo) GetByID(ctx context.Context, id int64) (*groclist.List, error) {
	row := r.tx.QueryRowContext(ctx,
		"SELECT "+listColumns+" FROM grocery_lists WHERE id = ?", id)

	list, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.MsgListNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying list by id: %w", err)
	}
	return list, nil
}

func (r *listRepo) GetActiveByName(ctx context.Context, ownerID int64, name string) (*groclist.List, error) {
	row := r.tx.QueryRowContext(ctx,
		"SELECT "+listColumns+" FROM grocery_lists WHERE owner_id = ? AND name = ? AND is_deleted = 0",
		ownerID, name)

	list, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.MsgListNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying active list by name: %w", err)
	}
	return list, nil
}

func (r *listRepo) GetDeletedByName(ctx context.Context, ownerID int64, name string) (*groclist.List, error) {
	row := r.tx.QueryRowContext(ctx,
		"SELECT "+listColumns+" FROM grocery_lists WHERE owner_id = ? AND name = ? AND is_deleted = 1 ORDER BY deleted_at DESC LIMIT 1",
		ownerID, name)

	list, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound(domain.MsgListNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying deleted list by name: %w", err)
	}
	return list, nil
}

func (r *listRepo) ListActive(ctx context.Context, ownerID int64) ([]groclist.List, error) {
	rows, err := r.tx.QueryContext(ctx,
		"SELECT "+listColumns+" FROM grocery_lists WHERE owner_id = ? AND is_deleted = 0 ORDER BY id",
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying active lists: %w", err)
	}
	defer rows.Close()

	var lists []groclist.List
	for rows.Next() {
		var l groclist.List
		var deletedAt sql.NullTime
		var deletedBy sql.NullInt64
		if err := rows.Scan(&l.ID, &l.Name, &l.OwnerID, &l.IsDeleted, &deletedAt, &deletedBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning list row: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating list rows: %w", err)
	}
	return lists, nil
}

func (r *listRepo) Create(ctx context.Context, list *groclist.List) error {
	now := time.Now().UTC()
	res, err := r.tx.ExecContext(ctx,
		"INSERT INTO grocery_lists (name, owner_id, is_deleted, created_at, updated_at) VALUES (?, ?, 0, ?, ?)",
		list.Name, list.OwnerID, now, now)
	if err != nil {
		return asDomainError(fmt.Errorf("inserting list: %w", err), list.Name)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted list id: %w", err)
	}
	list.ID = id
	list.CreatedAt = now
	list.UpdatedAt = now
	return nil
}

func (r *listRepo) Rename(ctx context.Context, id int64, name string) error {
	_, err := r.tx.ExecContext(ctx,
		"UPDATE grocery_lists SET name = ?, updated_at = ? WHERE id = ?",
		name, time.Now().UTC(), id)
	if err != nil {
		return asDomainError(fmt.Errorf("renaming list: %w", err), name)
	}
	return nil
}

func (r *listRepo) MarkDeleted(ctx context.Context, id int64, at time.Time, by int64) error {
	_, err := r.tx.ExecContext(ctx,
		"UPDATE grocery_lists SET is_deleted = 1, deleted_at = ?, deleted_by = ?, updated_at = ? WHERE id = ?",
		at, by, at, id)
	if err != nil {
		return fmt.Errorf("soft-deleting list: %w", err)
	}
	return nil
}

func (r *listRepo) ClearDeleted(ctx context.Context, id int64) error {
	_, err := r.tx.ExecContext(ctx,
		"UPDATE grocery_lists SET is_deleted = 0, deleted_at = NULL, deleted_by = NULL, updated_at = ? WHERE id = ?",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("restoring list: %w", err)
	}
	return nil
}

func (r *listRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.tx.ExecContext(ctx, "DELETE FROM grocery_lists WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting list: %w", err)
	}
	return nil
}
