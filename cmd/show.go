package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashbill"
	"github.com/etnz/cashbill/renderer"
	"github.com/google/subcommands"
)

// findInvoice loads the history and looks up a bill number given by -n or as
// the first argument.
func findInvoice(ctx context.Context, number string, f *flag.FlagSet) (cashbill.Invoice, subcommands.ExitStatus) {
	if number == "" && f.NArg() > 0 {
		number = f.Arg(0)
	}
	if number == "" {
		fmt.Fprintln(os.Stderr, "Error: a bill number is required")
		return cashbill.Invoice{}, subcommands.ExitUsageError
	}
	ledger, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cashbill.Invoice{}, subcommands.ExitFailure
	}
	inv, err := ledger.FindByNumber(number)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cashbill.Invoice{}, subcommands.ExitFailure
	}
	return inv, subcommands.ExitSuccess
}

type showCmd struct {
	number string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print an issued bill" }
func (*showCmd) Usage() string {
	return `bill show -n <billNo>

  Prints the text of a bill from the history. When a bill number has been
  used more than once, the first bill issued with it is shown.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.number, "n", "", "bill number")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	inv, status := findInvoice(ctx, c.number, f)
	if status != subcommands.ExitSuccess {
		return status
	}
	fmt.Println(cfg.Shop.PlainText(inv))
	return subcommands.ExitSuccess
}

type shareCmd struct {
	number string
}

func (*shareCmd) Name() string     { return "share" }
func (*shareCmd) Synopsis() string { return "print an issued bill with its WhatsApp link" }
func (*shareCmd) Usage() string {
	return `bill share -n <billNo>

  Prints the text of a bill from the history followed by a link that opens
  WhatsApp Web with the text ready to send.
`
}

func (c *shareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.number, "n", "", "bill number")
}

func (c *shareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	inv, status := findInvoice(ctx, c.number, f)
	if status != subcommands.ExitSuccess {
		return status
	}
	return deliver(inv, cfg.Shop, true, false, false, "")
}

type downloadCmd struct {
	number string
	dir    string
	pdf    bool
}

func (*downloadCmd) Name() string     { return "download" }
func (*downloadCmd) Synopsis() string { return "write the printable document of an issued bill" }
func (*downloadCmd) Usage() string {
	return `bill download -n <billNo> [-o <dir>] [-pdf]

  Writes the printable document of a bill from the history, as
  Invoice_<billNo>.html, or Invoice_<billNo>.pdf with -pdf.
`
}

func (c *downloadCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.number, "n", "", "bill number")
	f.StringVar(&c.dir, "o", ".", "folder where the document is written")
	f.BoolVar(&c.pdf, "pdf", false, "write a PDF instead of HTML")
}

func (c *downloadCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	inv, status := findInvoice(ctx, c.number, f)
	if status != subcommands.ExitSuccess {
		return status
	}
	return deliver(inv, cfg.Shop, false, !c.pdf, c.pdf, c.dir)
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the invoice history as a spreadsheet" }
func (*exportCmd) Usage() string {
	return `bill export [-o <file.xlsx>]

  Writes the invoice history, in issue order, to an XLSX workbook with an
  "Invoices" sheet and an "Items" sheet.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "invoices.xlsx", "output file")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	var invoices []cashbill.Invoice
	for inv := range ledger.Invoices(cashbill.AcceptAll) {
		invoices = append(invoices, inv)
	}
	if err := renderer.Workbook(out, invoices); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot export history: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%d invoices exported to %s\n", len(invoices), c.output)
	return subcommands.ExitSuccess
}
