package cashbill

import (
	"slices"
	"strings"
	"time"
)

// Draft is a bill being edited.
//
// A Draft lives in memory only, until it is finalized into an Invoice. Its zero
// value is not usable, use NewDraft.
type Draft struct {
	billNo       string
	customerName string
	mobileNumber string
	items        []LineItem
	selected     int
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{selected: NoSelection}
}

// UpdateHeader replaces the bill metadata.
func (d *Draft) UpdateHeader(billNo, customerName, mobileNumber string) {
	d.billNo = billNo
	d.customerName = customerName
	d.mobileNumber = mobileNumber
}

func (d *Draft) BillNo() string       { return d.billNo }
func (d *Draft) CustomerName() string { return d.customerName }
func (d *Draft) MobileNumber() string { return d.mobileNumber }

// Items returns a copy of the draft items, in order.
func (d *Draft) Items() []LineItem { return slices.Clone(d.items) }

// Len returns the number of items.
func (d *Draft) Len() int { return len(d.items) }

// Selected returns the index of the selected item or NoSelection.
func (d *Draft) Selected() int { return d.selected }

// AddItem validates and appends a new line. The draft is unchanged on error.
func (d *Draft) AddItem(name string, quantity int, unitPrice Money) (LineItem, error) {
	item, err := NewLineItem(name, quantity, unitPrice)
	if err != nil {
		return LineItem{}, err
	}
	d.items = append(d.items, item)
	return item, nil
}

// Select marks the item at index as selected.
func (d *Draft) Select(index int) error {
	if index < 0 || index >= len(d.items) {
		return &NotFoundError{What: "item"}
	}
	d.selected = index
	return nil
}

// RemoveSelected removes the selected item and clears the selection.
// It returns a *NotFoundError if nothing is selected.
func (d *Draft) RemoveSelected() error {
	items, err := RemoveItem(d.items, d.selected)
	if err != nil {
		return err
	}
	d.items = items
	d.selected = NoSelection
	return nil
}

// RemoveItem removes the item at index.
func (d *Draft) RemoveItem(index int) error {
	items, err := RemoveItem(d.items, index)
	if err != nil {
		return err
	}
	d.items = items
	d.selected = NoSelection
	return nil
}

// ComputeTotal returns the sum of the current items totals.
func (d *Draft) ComputeTotal() Money { return Total(d.items) }

// Reset clears the header, the items and the selection.
func (d *Draft) Reset() {
	*d = Draft{selected: NoSelection}
}

// finalHeader is the shape a draft must have to be finalized.
type finalHeader struct {
	BillNo       string     `json:"billNo" validate:"required,singleline"`
	CustomerName string     `json:"customerName" validate:"required,singleline"`
	MobileNumber string     `json:"mobileNumber" validate:"required,singleline"`
	Items        []LineItem `json:"items" validate:"gt=0"`
}

// Finalize turns the draft into an Invoice issued at now.
//
// It fails with a *ValidationError naming every blank header field, and
// "items" when there is no item. The draft is never modified, even on
// success: call Reset once the invoice has been handled.
func (d *Draft) Finalize(now time.Time) (Invoice, error) {
	h := finalHeader{
		BillNo:       strings.TrimSpace(d.billNo),
		CustomerName: strings.TrimSpace(d.customerName),
		MobileNumber: strings.TrimSpace(d.mobileNumber),
		Items:        d.items,
	}
	if err := validateStruct(h); err != nil {
		return Invoice{}, err
	}
	return NewInvoice(h.BillNo, now, h.CustomerName, h.MobileNumber, h.Items), nil
}
