package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/etnz/cashbill"
	"github.com/etnz/cashbill/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// billNumbers predicts the bill numbers of the configured invoice history.
var billNumbers = complete.PredictFunc(func(prefix string) []string {
	ledger, err := cashbill.LoadLedger(context.Background(), cashbill.NewFileStore(completionStore()), cashbill.DefaultKey)
	if err != nil {
		return nil
	}
	var numbers []string
	for inv := range ledger.Invoices(cashbill.AcceptAll) {
		numbers = append(numbers, inv.Number())
	}
	return numbers
})

// completionStore returns the store folder the way config does. Completion
// runs before the command line is parsed, so -store is read from the line
// being completed.
func completionStore() string {
	if dir := flagFromLine(os.Getenv("COMP_LINE"), "store"); dir != "" {
		return dir
	}
	cfg, err := LoadConfig(flagFromLine(os.Getenv("COMP_LINE"), "config"))
	if err != nil {
		return *storeDir
	}
	return cfg.Store
}

// flagFromLine returns the value of a -name or --name flag in a command line.
func flagFromLine(line, name string) string {
	args := strings.Fields(line)
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		arg = strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
		if v, ok := strings.CutPrefix(arg, name+"="); ok {
			return v
		}
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

var topics = complete.PredictFunc(func(prefix string) []string {
	all, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return append(all, "readme", "*")
})

// Completion returns the shell completion of the bill command line.
func Completion() *complete.Command {
	byNumber := map[string]complete.Predictor{"n": billNumbers}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"store":  predict.Dirs("*"),
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"new": {Flags: map[string]complete.Predictor{
				"n":        predict.Something,
				"c":        predict.Something,
				"m":        predict.Something,
				"i":        predict.Something,
				"share":    predict.Nothing,
				"download": predict.Nothing,
				"pdf":      predict.Nothing,
				"o":        predict.Dirs("*"),
			}},
			"session": {Flags: map[string]complete.Predictor{"o": predict.Dirs("*")}},
			"history": {Flags: map[string]complete.Predictor{
				"p":    predict.Set{"day", "week", "month", "quarter", "year"},
				"s":    predict.Something,
				"d":    predict.Something,
				"c":    predict.Something,
				"html": predict.Files("*.html"),
				"md":   predict.Nothing,
			}},
			"show":  {Flags: byNumber, Args: billNumbers},
			"share": {Flags: byNumber, Args: billNumbers},
			"download": {Flags: map[string]complete.Predictor{
				"n":   billNumbers,
				"o":   predict.Dirs("*"),
				"pdf": predict.Nothing,
			}, Args: billNumbers},
			"export": {Flags: map[string]complete.Predictor{"o": predict.Files("*.xlsx")}},
			"query":  {Args: predict.Something},
			"topic":  {Flags: map[string]complete.Predictor{"md": predict.Nothing}, Args: topics},
			"help":   {Args: predict.Set(commandNames())},
		},
	}
}

func commandNames() []string {
	names := make([]string, 0, len(Commands))
	for _, c := range Commands {
		names = append(names, c.Name())
	}
	return names
}
