package item

import (
	"strings"

	"github.com/baskit-app/baskit/internal/domain"
)

// Quantity bounds. Zero is never a stored state: reducing an item to zero
// removes the item instead.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// DefaultUnit is the unit applied when the caller supplies none.
const DefaultUnit = "יחידה"

// Quantity is a validated amount with a unit. Construct through NewQuantity;
// the zero value is invalid.
type Quantity struct {
	Value int
	Unit  string
}

// NewQuantity validates value against [MinQuantity, MaxQuantity] and applies
// DefaultUnit when unit is blank. Out-of-range values fail with a
// domain.ErrValidation error carrying the user-facing Hebrew message.
func NewQuantity(value int, unit string) (Quantity, error) {
	if value < MinQuantity {
		return Quantity{}, domain.Validation(domain.MsgQuantityPositive)
	}
	if value > MaxQuantity {
		return Quantity{}, domain.Validation(domain.MsgQuantityTooHigh)
	}

	unit = strings.TrimSpace(unit)
	if unit == "" {
		unit = DefaultUnit
	}

	return Quantity{Value: value, Unit: unit}, nil
}
