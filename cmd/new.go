package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashbill"
	"github.com/google/subcommands"
)

type newCmd struct {
	billNo   string
	customer string
	mobile   string
	items    itemsFlag
	share    bool
	download bool
	pdf      bool
	dir      string
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "issue a new bill" }
func (*newCmd) Usage() string {
	return `bill new -n <billNo> -c <customer> -m <mobile> -i <name:qty:price> [-i ...] [-share | -download | -pdf]

  Issues a bill and records it in the invoice history.

  Each -i flag adds a line item, in order. The price is in rupees, e.g.
  "Pen:3:10.50". By default the bill is printed as a text message; -share also
  prints a WhatsApp link, -download and -pdf write the printable document
  instead.
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.billNo, "n", "", "bill number")
	f.StringVar(&c.customer, "c", "", "customer name")
	f.StringVar(&c.mobile, "m", "", "customer mobile number")
	f.Var(&c.items, "i", "line item as name:quantity:price, repeatable")
	f.BoolVar(&c.share, "share", false, "print the WhatsApp share link after the text")
	f.BoolVar(&c.download, "download", false, "write the printable HTML document")
	f.BoolVar(&c.pdf, "pdf", false, "write the printable PDF document")
	f.StringVar(&c.dir, "o", ".", "folder where documents are written")
}

func (c *newCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	draft := cashbill.NewDraft()
	draft.UpdateHeader(c.billNo, c.customer, c.mobile)
	for _, it := range c.items {
		if _, err := draft.AddItem(it.name, it.quantity, it.price); err != nil {
			fmt.Fprintf(os.Stderr, "Error: item %q: %v\n", it.name, err)
			return subcommands.ExitUsageError
		}
	}
	inv, err := draft.Finalize(now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	AppendInvoice(ctx, os.Stderr, ledger, inv)

	return deliver(inv, cfg.Shop, c.share, c.download, c.pdf, c.dir)
}
