package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/cashbill"
)

// itemEntry is a line item as typed by the user, not validated yet.
type itemEntry struct {
	name     string
	quantity int
	price    cashbill.Money
}

// parseItem reads "name:quantity:price". The name may contain colons.
func parseItem(s string) (itemEntry, error) {
	rest, price, ok := cut(s)
	if !ok {
		return itemEntry{}, fmt.Errorf("invalid item %q, want name:quantity:price", s)
	}
	name, quantity, ok := cut(rest)
	if !ok {
		return itemEntry{}, fmt.Errorf("invalid item %q, want name:quantity:price", s)
	}
	return newItemEntry(name, quantity, price)
}

// cut splits s around its last colon.
func cut(s string) (before, after string, found bool) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

func newItemEntry(name, quantity, price string) (itemEntry, error) {
	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return itemEntry{}, fmt.Errorf("invalid quantity %q for %q", quantity, name)
	}
	p, err := cashbill.ParseMoney(price)
	if err != nil {
		return itemEntry{}, fmt.Errorf("invalid price for %q: %w", name, err)
	}
	return itemEntry{name: name, quantity: q, price: p}, nil
}

// itemsFlag collects repeated -i flags.
type itemsFlag []itemEntry

func (f *itemsFlag) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, 0, len(*f))
	for _, it := range *f {
		parts = append(parts, fmt.Sprintf("%s:%d:%s", it.name, it.quantity, it.price.Plain()))
	}
	return strings.Join(parts, ",")
}

func (f *itemsFlag) Set(s string) error {
	it, err := parseItem(s)
	if err != nil {
		return err
	}
	*f = append(*f, it)
	return nil
}
