package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cashbill"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over the invoice history" }
func (*queryCmd) Usage() string {
	return `bill query <jsonpath>

  Evaluates a JSONPath expression over the invoice history as it is stored,
  and prints the result as JSON.

Usage Examples:
# Bill numbers of every invoice.
$ bill query '$[*].number'

# Invoices of a customer.
$ bill query '$[?(@.customerName == "Asha")]'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one JSONPath expression is required")
		return subcommands.ExitUsageError
	}
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	data, err := store.Get(ctx, cashbill.DefaultKey)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = []byte("[]"), nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read invoice history: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := queryHistory(data, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// queryHistory evaluates path over a persisted history.
func queryHistory(data []byte, path string) (any, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("invoice history is not valid JSON: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return jval, nil
}
