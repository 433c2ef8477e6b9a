package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/etnz/cashbill"
	"github.com/etnz/cashbill/renderer"
	"github.com/google/subcommands"
)

type sessionCmd struct {
	dir string
}

func (*sessionCmd) Name() string     { return "session" }
func (*sessionCmd) Synopsis() string { return "build bills interactively" }
func (*sessionCmd) Usage() string {
	return `bill session [-o <dir>]

  Starts an interactive session reading one command per line. Type "help"
  for the list of commands. Arguments containing spaces are quoted, e.g.
    bill B100 "Asha Rao" 9999999999
    add "Ball pen" 3 10.50

  An unfinished bill is discarded when the session ends.
`
}

func (c *sessionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "o", ".", "folder where documents are written")
}

func (c *sessionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	s := &Session{
		Draft:  cashbill.NewDraft(),
		Ledger: ledger,
		Shop:   cfg.Shop,
		Dir:    c.dir,
		Now:    now,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Prompt: "bill> ",
	}
	fmt.Fprintln(s.Out, `Type "help" for the list of commands.`)
	if err := s.Run(ctx, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// Session edits a single draft bill from text commands, and issues it into
// the ledger.
type Session struct {
	Draft  *cashbill.Draft
	Ledger *cashbill.Ledger
	Shop   renderer.Shop
	Dir    string // where documents are written
	Now    func() time.Time
	Out    io.Writer
	Err    io.Writer
	Prompt string
}

const sessionHelp = `Commands:
  bill <billNo> <customer> <mobile>   set the bill header
  add <name> <quantity> <price>       add a line item
  items                               list the line items, * marks the selection
  select <n>                          select the n-th item
  remove [n]                          remove the n-th item, or the selected one
  total                               print the bill total
  share                               issue the bill, print its text and WhatsApp link
  download [pdf]                      issue the bill and write its printable document
  reset                               clear the bill
  history                             list issued bills, most recent first
  show <billNo>                       print an issued bill
  quit                                end the session`

// Run executes the commands read from in until "quit" or the end of input.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(s.Out, s.Prompt)
	for sc.Scan() {
		if s.Exec(ctx, sc.Text()) {
			return nil
		}
		fmt.Fprint(s.Out, s.Prompt)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	s.discard()
	return nil
}

// Exec executes one command line. It returns true when the session is over.
func (s *Session) Exec(ctx context.Context, line string) (quit bool) {
	args, err := splitArgs(line)
	if err != nil {
		s.errorf("%v", err)
		return false
	}
	if len(args) == 0 {
		return false
	}

	name, args := args[0], args[1:]
	switch name {
	case "bill":
		s.header(args)
	case "add":
		s.add(args)
	case "items":
		s.items()
	case "select":
		if n, ok := s.index(args); ok {
			if err := s.Draft.Select(n); err != nil {
				s.errorf("%v", err)
				return false
			}
			s.items()
		}
	case "remove":
		s.remove(args)
	case "total":
		fmt.Fprintf(s.Out, "Total: %s\n", s.Draft.ComputeTotal())
	case "share":
		if inv, ok := s.issue(ctx); ok {
			text := s.Shop.PlainText(inv)
			fmt.Fprintf(s.Out, "%s\n\n%s\n", text, renderer.ShareURL(text))
		}
	case "download":
		asPDF := len(args) > 0 && args[0] == "pdf"
		if inv, ok := s.issue(ctx); ok {
			path, err := writeDocument(inv, s.Shop, s.Dir, asPDF)
			if err != nil {
				s.errorf("%v", err)
				return false
			}
			fmt.Fprintf(s.Out, "Invoice %s written to %s\n", inv.Number(), path)
		}
	case "reset":
		s.Draft.Reset()
		fmt.Fprintln(s.Out, "Bill cleared.")
	case "history":
		fmt.Fprint(s.Out, renderer.HistoryMarkdown(s.Ledger.ListByRecency()))
	case "show":
		if len(args) != 1 {
			s.errorf("usage: show <billNo>")
			return false
		}
		inv, err := s.Ledger.FindByNumber(args[0])
		if err != nil {
			s.errorf("%v", err)
			return false
		}
		fmt.Fprintln(s.Out, s.Shop.PlainText(inv))
	case "help":
		fmt.Fprintln(s.Out, sessionHelp)
	case "quit", "exit":
		s.discard()
		return true
	default:
		s.errorf("unknown command %q, type help for the list of commands", name)
	}
	return false
}

func (s *Session) errorf(format string, args ...any) {
	fmt.Fprintf(s.Err, "Error: "+format+"\n", args...)
}

func (s *Session) header(args []string) {
	if len(args) > 3 {
		s.errorf("usage: bill <billNo> <customer> <mobile>")
		return
	}
	fields := make([]string, 3)
	copy(fields, args)
	s.Draft.UpdateHeader(fields[0], fields[1], fields[2])
	fmt.Fprintf(s.Out, "Bill No.: %s, Name: %s, Mobile: %s\n", fields[0], fields[1], fields[2])
}

func (s *Session) add(args []string) {
	var (
		entry itemEntry
		err   error
	)
	switch len(args) {
	case 1:
		entry, err = parseItem(args[0])
	case 3:
		entry, err = newItemEntry(args[0], args[1], args[2])
	default:
		err = errors.New("usage: add <name> <quantity> <price>")
	}
	if err != nil {
		s.errorf("%v", err)
		return
	}
	item, err := s.Draft.AddItem(entry.name, entry.quantity, entry.price)
	if err != nil {
		s.errorf("%v", err)
		return
	}
	fmt.Fprintf(s.Out, "Added %s (Qty: %d) - %s\n", item.Name, item.Quantity, item.Total)
	fmt.Fprintf(s.Out, "Total: %s\n", s.Draft.ComputeTotal())
}

func (s *Session) items() {
	for i, it := range s.Draft.Items() {
		mark := " "
		if i == s.Draft.Selected() {
			mark = "*"
		}
		fmt.Fprintf(s.Out, "%s %d. %s (Qty: %d) x %s = %s\n", mark, i+1, it.Name, it.Quantity, it.UnitPrice.Plain(), it.Total.Plain())
	}
	fmt.Fprintf(s.Out, "Total: %s\n", s.Draft.ComputeTotal())
}

// index reads a 1-based item number.
func (s *Session) index(args []string) (int, bool) {
	if len(args) != 1 {
		s.errorf("an item number is required")
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		s.errorf("invalid item number %q", args[0])
		return 0, false
	}
	return n - 1, true
}

func (s *Session) remove(args []string) {
	var err error
	if len(args) == 0 {
		err = s.Draft.RemoveSelected()
	} else if n, ok := s.index(args); ok {
		err = s.Draft.RemoveItem(n)
	} else {
		return
	}
	if err != nil {
		s.errorf("%v", err)
		return
	}
	s.items()
}

// issue finalizes the draft into the ledger and clears it. On validation
// failure the draft is left as it is.
func (s *Session) issue(ctx context.Context) (cashbill.Invoice, bool) {
	inv, err := s.Draft.Finalize(s.Now())
	if err != nil {
		s.errorf("%v", err)
		return cashbill.Invoice{}, false
	}
	AppendInvoice(ctx, s.Err, s.Ledger, inv)
	s.Draft.Reset()
	return inv, true
}

// discard drops the unfinished draft, telling the user about it.
func (s *Session) discard() {
	if s.Draft.Len() > 0 || s.Draft.BillNo() != "" || s.Draft.CustomerName() != "" || s.Draft.MobileNumber() != "" {
		fmt.Fprintln(s.Out, "Unfinished bill discarded.")
	}
	s.Draft.Reset()
}

// splitArgs splits a command line on spaces. Double quotes group words.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		b       strings.Builder
		inArg   bool
		inQuote bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			inArg = true
		case unicode.IsSpace(r) && !inQuote:
			if inArg {
				args = append(args, b.String())
				b.Reset()
				inArg = false
			}
		default:
			b.WriteRune(r)
			inArg = true
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if inArg {
		args = append(args, b.String())
	}
	return args, nil
}
