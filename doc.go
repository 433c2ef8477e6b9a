// Package cashbill models the bills of a shop counter.
//
// A bill is built in a [Draft]: a header (bill number, customer name and
// mobile number) and an ordered list of [LineItem]. Finalizing a valid draft
// issues an immutable [Invoice], which is recorded in a [Ledger]. The ledger
// keeps invoices in issue order and persists them through a [Store], as the
// JSON array the browser application keeps in its local storage.
//
// Amounts are [Money] in Indian rupees, kept with full precision and rounded
// to paise for display and persistence.
//
// This package serves as the foundational logic for the `bill` command-line
// tool.
package cashbill
