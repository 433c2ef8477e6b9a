package cashbill

import (
	"testing"
	"time"
)

// newInvoice is a test helper to create an invoice with a single item.
func newInvoice(t *testing.T, number, day, customer string, price float64) Invoice {
	t.Helper()
	on, err := time.Parse(time.DateOnly, day)
	if err != nil {
		t.Fatalf("invalid day %q: %v", day, err)
	}
	item, err := NewLineItem("Item", 1, M(price))
	if err != nil {
		t.Fatal(err)
	}
	return NewInvoice(number, on, customer, "9999999999", []LineItem{item})
}
