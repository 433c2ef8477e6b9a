package cashbill

import (
	"strings"

	"github.com/samber/lo"
)

// NoSelection is the index of a selection that selects nothing.
const NoSelection = -1

// LineItem is one purchased product on a bill.
//
// Total is derived from Quantity and UnitPrice when the item is created, and is
// never edited afterwards. UnitPrice is kept in whole paise, the precision
// invoices are persisted with.
type LineItem struct {
	Name      string `json:"name" validate:"required,singleline"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
	UnitPrice Money  `json:"pricePerUnit" validate:"gte=0"`
	Total     Money  `json:"total"`
}

// NewLineItem validates a line and computes its total.
//
// The name is trimmed and must fit on one line; the quantity must be positive
// and the unit price must not be negative. The unit price is rounded to the
// currency fraction. On failure it returns a *ValidationError listing every
// invalid field.
func NewLineItem(name string, quantity int, unitPrice Money) (LineItem, error) {
	item := LineItem{
		Name:      strings.TrimSpace(name),
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	if err := validateStruct(item); err != nil {
		return LineItem{}, err
	}
	item.UnitPrice = unitPrice.Round()
	item.Total = item.UnitPrice.Mul(quantity)
	return item, nil
}

// Equal reports whether both items hold the same values.
func (it LineItem) Equal(other LineItem) bool {
	return it.Name == other.Name && it.Quantity == other.Quantity &&
		it.UnitPrice.Equal(other.UnitPrice) && it.Total.Equal(other.Total)
}

// RemoveItem returns a copy of items without the selected one.
//
// It returns a *NotFoundError if selected does not designate an item, including
// NoSelection. items is never modified.
func RemoveItem(items []LineItem, selected int) ([]LineItem, error) {
	if selected < 0 || selected >= len(items) {
		return items, &NotFoundError{What: "item"}
	}
	out := make([]LineItem, 0, len(items)-1)
	out = append(out, items[:selected]...)
	return append(out, items[selected+1:]...), nil
}

// Total returns the sum of all items totals.
func Total(items []LineItem) Money {
	return lo.Reduce(items, func(total Money, item LineItem, _ int) Money {
		return total.Add(item.Total)
	}, M(0))
}
