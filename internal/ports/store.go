package ports

import (
	"context"
	"time"

	"github.com/baskit-app/baskit/internal/domain/groclist"
	"github.com/baskit-app/baskit/internal/domain/item"
)

// Store defines the persistence port. Implemented by the SQLite adapter;
// called by the application layer.
//
// Every mutation runs inside WithinTx: the function receives a transactional
// view, the transaction commits when fn returns nil and rolls back entirely
// on any error, so a failing tool call never leaves partial writes.
type Store interface {
	// WithinTx runs fn inside a single transaction. The error returned by
	// fn is returned unchanged after rollback.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database handle.
	Close() error
}

// Tx is the transactional view of the store's repositories. A Tx is only
// valid for the duration of the WithinTx call that produced it.
type Tx interface {
	Lists() ListRepository
	Items() ItemRepository
	Owners() OwnerRepository
}

// ListRepository provides row-level access to grocery lists.
// Lookups scoped "active" exclude soft-deleted rows.
type ListRepository interface {
	// GetByID returns a list regardless of deletion state.
	// Returns domain.ErrNotFound if no row exists.
	GetByID(ctx context.Context, id int64) (*groclist.List, error)

	// GetActiveByName returns the owner's active list with the exact name.
	// Returns domain.ErrNotFound if absent.
	GetActiveByName(ctx context.Context, ownerID int64, name string) (*groclist.List, error)

	// GetDeletedByName returns the owner's soft-deleted list with the exact
	// name, if one exists. Returns domain.ErrNotFound if absent.
	GetDeletedByName(ctx context.Context, ownerID int64, name string) (*groclist.List, error)

	// ListActive returns all of the owner's active lists ordered by id.
	ListActive(ctx context.Context, ownerID int64) ([]groclist.List, error)

	// Create inserts a new active list and populates its ID. A violation of
	// the active-name uniqueness constraint surfaces as domain.ErrDuplicate,
	// so concurrent creates degrade to the duplicate-name error path.
	Create(ctx context.Context, list *groclist.List) error

	// Rename updates the list name. Uniqueness violations surface as
	// domain.ErrDuplicate.
	Rename(ctx context.Context, id int64, name string) error

	// MarkDeleted stamps deleted_at/deleted_by and sets is_deleted.
	MarkDeleted(ctx context.Context, id int64, at time.Time, by int64) error

	// ClearDeleted removes the delete stamp, making the list active again.
	ClearDeleted(ctx context.Context, id int64) error

	// Delete hard-removes the row; item rows cascade.
	Delete(ctx context.Context, id int64) error
}

// ItemRepository provides row-level access to grocery items.
type ItemRepository interface {
	// GetByID returns an item. Returns domain.ErrNotFound if no row exists.
	GetByID(ctx context.Context, id int64) (*item.Item, error)

	// FindLocations returns every location (across the owner's active lists)
	// of items whose normalized name matches, ordered by list id. Bought
	// items are excluded unless includeBought is set.
	FindLocations(ctx context.Context, ownerID int64, normalizedName string, includeBought bool) ([]item.Location, error)

	// FindInList returns the active-list item with the normalized name in
	// the given list. Returns domain.ErrNotFound if absent.
	FindInList(ctx context.Context, listID int64, normalizedName string) (*item.Item, error)

	// Create inserts a new item and populates its ID.
	Create(ctx context.Context, it *item.Item) error

	// UpdateQuantity sets quantity and unit.
	UpdateQuantity(ctx context.Context, id int64, quantity int, unit string) error

	// SetBought sets the bought flag and timestamp (nil when clearing).
	SetBought(ctx context.Context, id int64, bought bool, at *time.Time) error

	// Delete hard-removes the item row.
	Delete(ctx context.Context, id int64) error

	// ListByList returns the items of one list ordered by id, optionally
	// excluding bought ones.
	ListByList(ctx context.Context, listID int64, includeBought bool) ([]item.Item, error)

	// CountByList returns total and bought item counts for one list.
	CountByList(ctx context.Context, listID int64) (total, bought int, err error)
}

// OwnerRepository tracks owners and their default-list references.
type OwnerRepository interface {
	// Ensure creates the owner row if it does not exist yet.
	Ensure(ctx context.Context, ownerID int64) error

	// DefaultListID returns the owner's default list id, or nil when no
	// default is configured.
	DefaultListID(ctx context.Context, ownerID int64) (*int64, error)

	// SetDefaultList points the owner's default at listID (nil clears it).
	SetDefaultList(ctx context.Context, ownerID int64, listID *int64) error
}
