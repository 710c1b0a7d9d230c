// Package hebrew provides the HebrewText value object: a validated,
// normalized string that is guaranteed to be predominantly Hebrew.
// All item and list names in the system are hebrew.Text values.
package hebrew

import (
	"strings"
	"unicode"

	"github.com/baskit-app/baskit/internal/domain"
)

// MinRatio is the minimum fraction of Hebrew-block characters (whitespace
// excluded) a value must contain to be accepted.
const MinRatio = 0.7

// Hebrew Unicode block bounds (U+0590..U+05FF covers letters, points, and
// punctuation).
const (
	blockStart = 0x0590
	blockEnd   = 0x05FF
)

// Text is a validated Hebrew string. The zero value is invalid; construct
// through New. Comparisons between Texts use the normalized key, so values
// differing only in case or surrounding whitespace are equal.
type Text struct {
	value      string
	normalized string
}

// New validates raw and returns a trimmed Text. It fails with a
// domain.ErrValidation error when raw is empty or whitespace-only, or when
// fewer than MinRatio of its non-space characters fall in the Hebrew block.
func New(raw string) (Text, error) {
	return NewWithRatio(raw, MinRatio)
}

// NewWithRatio is New with an explicit minimum Hebrew ratio, used when the
// threshold comes from configuration.
func NewWithRatio(raw string, minRatio float64) (Text, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Text{}, domain.Validation(domain.MsgEmptyText)
	}

	var hebrew, total int
	for _, r := range trimmed {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if r >= blockStart && r <= blockEnd {
			hebrew++
		}
	}

	if total == 0 {
		return Text{}, domain.Validation(domain.MsgEmptyText)
	}
	if hebrew == 0 || float64(hebrew)/float64(total) < minRatio {
		return Text{}, domain.Validation(domain.MsgNotHebrew)
	}

	return Text{value: trimmed, normalized: Normalize(trimmed)}, nil
}

// String returns the trimmed display form.
func (t Text) String() string {
	return t.value
}

// Normalized returns the key used for equality search: trimmed and
// lower-cased. Hebrew has no letter case, but mixed-in Latin characters
// (up to 30% of a valid value) fold consistently.
func (t Text) Normalized() string {
	return t.normalized
}

// IsZero reports whether the Text was never constructed through New.
func (t Text) IsZero() bool {
	return t.value == ""
}

// Equal reports whether two Texts share a normalized key.
func (t Text) Equal(other Text) bool {
	return t.normalized == other.normalized
}

// Normalize produces the search key for a raw name without validating it.
// The store applies the same transformation when persisting normalized_name,
// so lookups and stored keys cannot drift apart.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
