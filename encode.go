package cashbill

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// EncodeInvoices writes invoices as a JSON array, one invoice per line.
//
// The output is valid JSON that the browser application reads as is, and it
// keeps diffs readable when the store lives under version control.
func EncodeInvoices(w io.Writer, invoices []Invoice) error {
	var b bytes.Buffer
	b.WriteString("[")
	for i, inv := range invoices {
		if i > 0 {
			b.WriteString(",")
		}
		data, err := json.Marshal(inv)
		if err != nil {
			return fmt.Errorf("failed to marshal invoice %q: %w", inv.Number(), err)
		}
		b.WriteString("\n")
		b.Write(data)
	}
	if len(invoices) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("failed to write invoices: %w", err)
	}
	return nil
}

// DecodeInvoices reads a JSON array of invoices. Blank input and a JSON null
// decode into an empty list.
func DecodeInvoices(r io.Reader) ([]Invoice, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []Invoice{}, nil
	}
	var invoices []Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, fmt.Errorf("invalid invoice history: %w", err)
	}
	if invoices == nil {
		invoices = []Invoice{}
	}
	return invoices, nil
}
