// Package cmd implements the CLI application to issue cash bills.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/etnz/cashbill"
	"github.com/google/subcommands"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Commands lists the bill subcommands.
var Commands = []subcommands.Command{
	&newCmd{},
	&sessionCmd{},
	&historyCmd{},
	&showCmd{},
	&shareCmd{},
	&downloadCmd{},
	&exportCmd{},
	&queryCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(&topicCmd{}, "")

	c.Register(&newCmd{}, "bills")
	c.Register(&sessionCmd{}, "bills")

	c.Register(&historyCmd{}, "history")
	c.Register(&showCmd{}, "history")
	c.Register(&shareCmd{}, "history")
	c.Register(&downloadCmd{}, "history")
	c.Register(&exportCmd{}, "history")
	c.Register(&queryCmd{}, "history")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	storeDir   = flag.String("store", ".cashbill", "Path to the folder holding the invoice history")
	configFile = flag.String("config", "", "Path to the configuration file (default cashbill.yaml in the current folder)")
	Verbose    = flag.Bool("v", false, "Verbose logging")
)

// EnvTestingNow fixes the issue time of new bills, for reproducible examples.
const EnvTestingNow = "BILL_TESTING_NOW"

// now returns the time bills are issued at.
func now() time.Time {
	if s := os.Getenv(EnvTestingNow); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	return time.Now()
}

// isFlagSet reports whether a global flag has been set on the command line.
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// config returns the application configuration, loaded once.
var config = sync.OnceValues(func() (*Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if isFlagSet("store") {
		cfg.Store = *storeDir
	}
	return cfg, nil
})

// logger returns the diagnostic logger, verbose with -v.
var logger = sync.OnceValue(func() *zap.SugaredLogger { return NewLogger(*Verbose) })

// NewLogger creates a console logger writing to stderr. Only warnings are
// shown unless verbose is set.
func NewLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// OpenStore returns the store holding the invoice history.
func OpenStore() (*cashbill.FileStore, error) {
	cfg, err := config()
	if err != nil {
		return nil, err
	}
	return cashbill.NewFileStore(cfg.Store), nil
}

// DecodeLedger loads the invoice history.
//
// A history that cannot be read is reported as a warning and replaced by an
// empty one: bills can still be issued.
func DecodeLedger(ctx context.Context) (*cashbill.Ledger, error) {
	store, err := OpenStore()
	if err != nil {
		return nil, err
	}
	ledger, err := cashbill.LoadLedger(ctx, store, cashbill.DefaultKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, starting with an empty history\n", err)
	}
	logger().Debugw("invoice history loaded", "path", store.Path(ledger.Key()), "invoices", ledger.Len())
	for number, n := range ledger.Duplicates() {
		logger().Debugw("bill number used more than once", "number", number, "count", n)
	}
	return ledger, nil
}

// AppendInvoice adds an invoice to the history. A failure to save is only a
// warning, the invoice has been issued anyway.
func AppendInvoice(ctx context.Context, w io.Writer, ledger *cashbill.Ledger, inv cashbill.Invoice) {
	if _, err := ledger.FindByNumber(inv.Number()); err == nil {
		fmt.Fprintf(w, "Warning: bill number %q is already used, only the first one can be looked up\n", inv.Number())
	}
	if err := ledger.Append(ctx, inv); err != nil {
		fmt.Fprintf(w, "Warning: %v\n", err)
		return
	}
	logger().Debugw("invoice saved", "number", inv.Number(), "invoices", ledger.Len())
}
