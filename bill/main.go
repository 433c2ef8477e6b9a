// Command bill issues cash bills and keeps their history.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/cashbill/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests, and exits, when COMP_LINE is set.
	cmd.Completion().Complete("bill")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()

	if name := flag.Arg(0); name != "" && !isRegistered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// isRegistered reports whether name is a builtin subcommand.
func isRegistered(commander *subcommands.Commander, name string) bool {
	found := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			found = true
		}
	})
	return found
}
