package app

import (
	"time"

	"github.com/baskit-app/baskit/internal/domain/hebrew"
	"github.com/baskit-app/baskit/internal/domain/item"
)

// Policy carries the engine's behavior knobs. It is an immutable snapshot
// taken from configuration at construction time and injected into the
// services and the dispatcher; no component reads configuration at runtime.
type Policy struct {
	// ConfidenceThreshold rejects interpretations below this score before
	// dispatch. Skipped when the intent source runs deterministically.
	ConfidenceThreshold float64

	// ToolTimeout bounds each tool-call handler independently.
	ToolTimeout time.Duration

	// AllowDuplicateItems permits two items with the same normalized name
	// in one list. When false, add collisions either merge or fail.
	AllowDuplicateItems bool

	// AutoMergeSimilar turns an add collision into a quantity merge
	// (existing + requested) instead of a duplicate error.
	AutoMergeSimilar bool

	// RemoveMarksBought substitutes remove_item with mark_bought. Applied
	// by the dispatcher; the item service's RemoveItem always hard-deletes.
	RemoveMarksBought bool

	// DefaultUnit is applied when a tool call supplies no unit.
	DefaultUnit string

	// MinHebrewRatio is the accepted-language threshold for names.
	MinHebrewRatio float64

	// SummaryWorkers bounds the fan-out for per-list summary counts.
	SummaryWorkers int
}

// DefaultPolicy returns the production defaults.
func DefaultPolicy() Policy {
	return Policy{
		ConfidenceThreshold: 0.6,
		ToolTimeout:         5 * time.Second,
		AllowDuplicateItems: false,
		AutoMergeSimilar:    true,
		RemoveMarksBought:   true,
		DefaultUnit:         item.DefaultUnit,
		MinHebrewRatio:      hebrew.MinRatio,
		SummaryWorkers:      4,
	}
}

func (p Policy) unitOrDefault(unit string) string {
	if unit == "" {
		return p.DefaultUnit
	}
	return unit
}
