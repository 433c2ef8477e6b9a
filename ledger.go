package cashbill

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"iter"
	"slices"
	"strings"

	"github.com/etnz/cashbill/date"
)

// Ledger is the history of finalized invoices, bound to a store entry.
//
// Invoices are kept in insertion order, which is also the persisted order. The
// bill number identifies invoices for users but it is not unique: nothing
// prevents a number from being reused.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	invoices []Invoice
	store    Store
	key      string
}

// NewLedger creates an empty ledger persisted in store under key.
// A nil store keeps the ledger in memory only.
func NewLedger(store Store, key string) *Ledger {
	return &Ledger{
		invoices: make([]Invoice, 0),
		store:    store,
		key:      key,
	}
}

// LoadLedger creates a ledger and loads it from the store.
//
// The returned ledger is always usable. A missing entry is an empty history;
// an unreadable store or corrupt data also yields an empty ledger, together
// with a *PersistenceError for the caller to report.
func LoadLedger(ctx context.Context, store Store, key string) (*Ledger, error) {
	l := NewLedger(store, key)
	return l, l.Load(ctx)
}

// Key returns the store entry of this ledger.
func (l *Ledger) Key() string { return l.key }

// Load replaces the in-memory invoices with the persisted ones.
//
// On error the ledger is left empty, see LoadLedger.
func (l *Ledger) Load(ctx context.Context) error {
	l.invoices = make([]Invoice, 0)
	if l.store == nil {
		return nil
	}
	data, err := l.store.Get(ctx, l.key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &PersistenceError{Op: "load", Key: l.key, Err: err}
	}
	invoices, err := DecodeInvoices(bytes.NewReader(data))
	if err != nil {
		return &PersistenceError{Op: "load", Key: l.key, Err: err}
	}
	l.invoices = invoices
	return nil
}

// Save rewrites the whole collection into the store.
func (l *Ledger) Save(ctx context.Context) error {
	if l.store == nil {
		return nil
	}
	var b bytes.Buffer
	if err := EncodeInvoices(&b, l.invoices); err != nil {
		return &PersistenceError{Op: "save", Key: l.key, Err: err}
	}
	if err := l.store.Set(ctx, l.key, b.Bytes()); err != nil {
		return &PersistenceError{Op: "save", Key: l.key, Err: err}
	}
	return nil
}

// Append adds an invoice and persists the ledger.
//
// If saving fails the invoice stays in the ledger, and the *PersistenceError is
// returned: the history is still usable for the rest of the session.
func (l *Ledger) Append(ctx context.Context, inv Invoice) error {
	l.invoices = append(l.invoices, inv)
	return l.Save(ctx)
}

// Len returns the number of invoices.
func (l *Ledger) Len() int { return len(l.invoices) }

// AcceptAll is a predicate that accepts every invoice.
func AcceptAll(Invoice) bool { return true }

// IssuedIn returns a predicate accepting invoices issued during r, days being
// counted in the bill time zone.
func IssuedIn(r date.Range) func(Invoice) bool {
	return func(inv Invoice) bool { return r.Contains(date.Of(inv.Date())) }
}

// ByCustomer returns a predicate accepting invoices whose customer name
// contains name, ignoring case.
func ByCustomer(name string) func(Invoice) bool {
	name = strings.ToLower(name)
	return func(inv Invoice) bool { return strings.Contains(strings.ToLower(inv.CustomerName()), name) }
}

// Invoices iterates over the invoices accepted by accept, in insertion order.
func (l *Ledger) Invoices(accept func(Invoice) bool) iter.Seq[Invoice] {
	return func(yield func(Invoice) bool) {
		for _, inv := range l.invoices {
			if accept(inv) && !yield(inv) {
				return
			}
		}
	}
}

// ListByRecency returns the invoices, most recent first. Invoices issued at the
// same instant keep their insertion order. The ledger order is not changed.
func (l *Ledger) ListByRecency() []Invoice {
	return SortByRecency(l.invoices)
}

// SortByRecency returns a copy of invoices, most recent first. Invoices issued
// at the same instant keep their relative order.
func SortByRecency(invoices []Invoice) []Invoice {
	sorted := slices.Clone(invoices)
	slices.SortStableFunc(sorted, func(a, b Invoice) int {
		return b.Date().Compare(a.Date())
	})
	return sorted
}

// FindByNumber returns the first invoice, in insertion order, with this bill
// number. When a number has been reused, later invoices cannot be found this
// way.
func (l *Ledger) FindByNumber(number string) (Invoice, error) {
	for _, inv := range l.invoices {
		if inv.Number() == number {
			return inv, nil
		}
	}
	return Invoice{}, &NotFoundError{What: "invoice", Key: number}
}

// Duplicates returns, for every bill number used more than once, how many
// invoices carry it.
func (l *Ledger) Duplicates() map[string]int {
	counts := make(map[string]int)
	for _, inv := range l.invoices {
		counts[inv.Number()]++
	}
	for number, n := range counts {
		if n < 2 {
			delete(counts, number)
		}
	}
	return counts
}
