package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when a caller asks for a negative quantity.
// UI callers normally prevent this by disabling the decrement control at
// zero; defensive callers should clamp rather than propagate.
var ErrInvalidQuantity = errors.New("quantity cannot be negative")

// LineItem is a priced catalog entry with a chosen quantity within a single
// order. It is a pure value: mutations return a new value.
type LineItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is the item's contribution to the subtotal, rounded to cents.
func (li LineItem) LineTotal() decimal.Decimal {
	return RoundCurrency(li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))))
}

// WithQuantity returns a copy of the item with the quantity replaced.
// A quantity of zero means the item is absent from the order's active set.
func (li LineItem) WithQuantity(quantity int) (LineItem, error) {
	if quantity < 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	li.Quantity = quantity
	return li, nil
}
