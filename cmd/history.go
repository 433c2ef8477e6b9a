package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/cashbill"
	"github.com/etnz/cashbill/date"
	"github.com/etnz/cashbill/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	period   string
	start    string
	date     string
	customer string
	html     string
	markdown bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list issued bills, most recent first" }
func (*historyCmd) Usage() string {
	return `bill history [-p <period> | -s <start_date>] [-d <end_date>] [-c <customer>] [-html <file>] [-md]

  Lists the bills of the invoice history, most recent first.

  Without -p or -s every bill is listed. Dates are read like "2024-03-01",
  "today", "-1w" or "-2m"; days are counted in Indian Standard Time.
  -c keeps the bills whose customer name contains the given text.
  -html writes the table as a standalone HTML page instead of printing it.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "predefined period ending on -d (day, week, month, quarter, year)")
	f.StringVar(&c.start, "s", "", "start date of a custom range, overrides -p")
	f.StringVar(&c.date, "d", "0d", "end date of the range")
	f.StringVar(&c.customer, "c", "", "customer name filter")
	f.StringVar(&c.html, "html", "", "write the history as an HTML page to this file")
	f.BoolVar(&c.markdown, "md", false, "print raw markdown")
}

// filter returns the predicate selected by the flags.
func (c *historyCmd) filter() (func(cashbill.Invoice) bool, error) {
	var accepts []func(cashbill.Invoice) bool

	if c.period != "" || c.start != "" {
		end, err := date.Parse(c.date)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", err)
		}
		var r date.Range
		if c.start != "" {
			start, err := date.Parse(c.start)
			if err != nil {
				return nil, fmt.Errorf("invalid start date: %w", err)
			}
			r = date.Range{From: start, To: end}
		} else {
			period, err := date.ParsePeriod(c.period)
			if err != nil {
				return nil, err
			}
			r = date.NewRange(end, period)
		}
		logger().Debugw("history range", "range", r.String())
		accepts = append(accepts, cashbill.IssuedIn(r))
	}
	if c.customer != "" {
		accepts = append(accepts, cashbill.ByCustomer(c.customer))
	}

	return func(inv cashbill.Invoice) bool {
		for _, accept := range accepts {
			if !accept(inv) {
				return false
			}
		}
		return true
	}, nil
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	accept, err := c.filter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for number, n := range ledger.Duplicates() {
		fmt.Fprintf(os.Stderr, "Warning: bill number %q is used by %d invoices, only the first one can be shown\n", number, n)
	}

	invoices := cashbill.SortByRecency(slices.Collect(ledger.Invoices(accept)))

	if c.html != "" {
		page, err := renderer.HistoryHTML(invoices)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.html, []byte(page), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("History of %d invoices written to %s\n", len(invoices), c.html)
		return subcommands.ExitSuccess
	}

	md := renderer.HistoryMarkdown(invoices)
	if c.markdown {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
