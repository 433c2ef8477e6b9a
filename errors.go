package cashbill

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors to test error kinds with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence error")
)

// FieldError describes a single invalid field.
type FieldError struct {
	Field  string
	Reason string
}

func (f FieldError) String() string { return f.Field + " " + f.Reason }

// ValidationError reports user-correctable input problems. The operation that
// returned it has not changed any state.
type ValidationError struct {
	Problems []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.String())
	}
	return "invalid input: " + strings.Join(msgs, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Fields returns the name of every invalid field, in order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		fields = append(fields, p.Field)
	}
	return fields
}

// add records a problem.
func (e *ValidationError) add(field, reason string) {
	e.Problems = append(e.Problems, FieldError{Field: field, Reason: reason})
}

// orNil returns e as an error only if it holds a problem.
func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// NotFoundError reports a lookup or a selection that matched nothing.
type NotFoundError struct {
	What string // kind of the thing looked for, e.g. "invoice"
	Key  string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("no %s selected", e.What)
	}
	return fmt.Sprintf("%s %q not found", e.What, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PersistenceError reports a store that could not be read or written.
//
// It is never fatal: the in-memory ledger remains usable for the session.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cannot %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
