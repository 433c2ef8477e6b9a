package cashbill

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// DatetimeFormat is the persisted format of invoice dates: UTC with millisecond
// precision, e.g. "2024-03-01T10:15:00.000Z".
const DatetimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Invoice is a finalized bill. It is immutable: accessors return copies.
type Invoice struct {
	number       string
	date         time.Time
	customerName string
	mobileNumber string
	items        []LineItem
	totalAmount  Money
}

// NewInvoice creates an invoice whose total is the sum of its items.
//
// The date is truncated to the millisecond, the precision it is persisted with.
func NewInvoice(number string, date time.Time, customerName, mobileNumber string, items []LineItem) Invoice {
	return Invoice{
		number:       number,
		date:         date.Truncate(time.Millisecond),
		customerName: customerName,
		mobileNumber: mobileNumber,
		items:        slices.Clone(items),
		totalAmount:  Total(items),
	}
}

func (inv Invoice) Number() string       { return inv.number }
func (inv Invoice) Date() time.Time      { return inv.date }
func (inv Invoice) CustomerName() string { return inv.customerName }
func (inv Invoice) MobileNumber() string { return inv.mobileNumber }
func (inv Invoice) TotalAmount() Money   { return inv.totalAmount }

// Items returns a copy of the invoice items, in order.
func (inv Invoice) Items() []LineItem { return slices.Clone(inv.items) }

// Equal reports whether both invoices hold the same values.
func (inv Invoice) Equal(other Invoice) bool {
	return inv.number == other.number &&
		inv.date.Equal(other.date) &&
		inv.customerName == other.customerName &&
		inv.mobileNumber == other.mobileNumber &&
		inv.totalAmount.Equal(other.totalAmount) &&
		slices.EqualFunc(inv.items, other.items, LineItem.Equal)
}

func (inv Invoice) String() string {
	return fmt.Sprintf("%s %s %s %s", inv.number, inv.date.Format(time.DateOnly), inv.customerName, inv.totalAmount)
}

// MarshalJSON writes the invoice with a stable key order.
func (inv Invoice) MarshalJSON() ([]byte, error) {
	items := inv.items
	if items == nil {
		items = []LineItem{}
	}
	var w jsonObjectWriter
	w.Append("number", inv.number)
	w.Append("date", inv.date.UTC().Format(DatetimeFormat))
	w.Append("customerName", inv.customerName)
	w.Append("mobileNumber", inv.mobileNumber)
	w.Append("items", items)
	w.Append("totalAmount", inv.totalAmount)
	return w.MarshalJSON()
}

// UnmarshalJSON reads an invoice as persisted by MarshalJSON.
//
// Amounts are kept as they were issued. Records that lack a line total or the
// invoice total get them computed from quantities and prices.
func (inv *Invoice) UnmarshalJSON(data []byte) error {
	var temp struct {
		Number       string `json:"number"`
		Date         string `json:"date"`
		CustomerName string `json:"customerName"`
		MobileNumber string `json:"mobileNumber"`
		Items        []struct {
			Name      string `json:"name"`
			Quantity  int    `json:"quantity"`
			UnitPrice Money  `json:"pricePerUnit"`
			Total     *Money `json:"total"`
		} `json:"items"`
		TotalAmount *Money `json:"totalAmount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}

	var date time.Time
	if temp.Date != "" {
		var err error
		date, err = time.Parse(time.RFC3339Nano, temp.Date)
		if err != nil {
			return fmt.Errorf("invalid date in invoice %q: %w", temp.Number, err)
		}
	}

	items := make([]LineItem, 0, len(temp.Items))
	for _, it := range temp.Items {
		item := LineItem{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
		if it.Total != nil {
			item.Total = *it.Total
		} else {
			item.Total = it.UnitPrice.Mul(it.Quantity)
		}
		items = append(items, item)
	}

	*inv = Invoice{
		number:       temp.Number,
		date:         date,
		customerName: temp.CustomerName,
		mobileNumber: temp.MobileNumber,
		items:        items,
		totalAmount:  Total(items),
	}
	if temp.TotalAmount != nil {
		inv.totalAmount = *temp.TotalAmount
	}
	return nil
}
