// Package groclist contains the grocery list aggregate: the list entity,
// per-list summaries, and list contents returned by read operations.
package groclist

import (
	"time"

	"github.com/baskit-app/baskit/internal/domain/item"
)

// List represents one grocery list row. A list is the unit of ownership and
// visibility scoping; every resolution and mutation is scoped to one owner.
// DeletedAt and DeletedBy are set together on soft delete and cleared
// together on restore.
type List struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	OwnerID   int64      `json:"owner_id"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *int64     `json:"deleted_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Active reports whether the list accepts mutations.
func (l *List) Active() bool {
	return !l.IsDeleted
}

// Summary holds per-list aggregate counts for the list-all read operation.
type Summary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TotalItems   int    `json:"total_items"`
	BoughtItems  int    `json:"bought_items"`
	PendingItems int    `json:"pending_items"`
	IsDefault    bool   `json:"is_default"`
}

// Contents is the full read model of one list: its identity plus items,
// optionally filtered to unbought ones.
type Contents struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	IsDefault bool        `json:"is_default"`
	Items     []item.Item `json:"items"`
}
