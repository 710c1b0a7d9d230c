// Package item contains the grocery item entity and its value objects.
package item

import (
	"time"
)

// Item represents one grocery item row. An item belongs to exactly one list
// and only exists under a list that is not soft-deleted. NormalizedName is
// the trimmed, lower-cased form of Name used for equality search across
// lists.
type Item struct {
	ID             int64      `json:"id"`
	ListID         int64      `json:"list_id"`
	Name           string     `json:"name"`
	NormalizedName string     `json:"-"`
	Quantity       int        `json:"quantity"`
	Unit           string     `json:"unit"`
	IsBought       bool       `json:"is_bought"`
	BoughtAt       *time.Time `json:"bought_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Location describes where an item with a given name lives: the containing
// list plus the item's current state. The resolver returns Locations so the
// caller can disambiguate between same-named items in different lists.
type Location struct {
	ListID   int64
	ListName string
	ItemID   int64
	Quantity int
	Unit     string
	IsBought bool
}
