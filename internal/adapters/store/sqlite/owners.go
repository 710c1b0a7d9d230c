package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/baskit-app/baskit/internal/ports"
)

var _ ports.OwnerRepository = (*ownerRepo)(nil)

type ownerRepo struct {
	tx *sql.Tx
}

func (r *ownerRepo) Ensure(ctx context.Context, ownerID int64) error {
	now := time.Now().UTC()
	_, err := r.tx.ExecContext(ctx,
		"INSERT INTO owners (id, default_list_id, created_at, updated_at) VALUES (?, NULL, ?, ?) ON CONFLICT (id) DO NOTHING",
		ownerID, now, now)
	if err != nil {
		return fmt.Errorf("ensuring owner row: %w", err)
	}
	return nil
}

func (r *ownerRepo) DefaultListID(ctx context.Context, ownerID int64) (*int64, error) {
	var defID sql.NullInt64
	err := r.tx.QueryRowContext(ctx,
		"SELECT default_list_id FROM owners WHERE id = ?", ownerID).Scan(&defID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying default list: %w", err)
	}
	if !defID.Valid {
		return nil, nil
	}
	v := defID.Int64
	return &v, nil
}

func (r *ownerRepo) SetDefaultList(ctx context.Context, ownerID int64, listID *int64) error {
	_, err := r.tx.ExecContext(ctx,
		"UPDATE owners SET default_list_id = ?, updated_at = ? WHERE id = ?",
		listID, time.Now().UTC(), ownerID)
	if err != nil {
		return fmt.Errorf("setting default list: %w", err)
	}
	return nil
}
