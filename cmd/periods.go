package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/returns"
	"github.com/etnz/returns/renderer"
	"github.com/google/subcommands"
)

// periodsCmd holds the flags for the 'periods' subcommand.
type periodsCmd struct {
	begin    string
	end      string
	income   string
	expenses string
}

func (*periodsCmd) Name() string { return "periods" }
func (*periodsCmd) Synopsis() string {
	return "show how the timeline is segmented around external flows"
}
func (*periodsCmd) Usage() string {
	return `pret periods [-s <date>] [-d <date>] <ledger.jsonl> <related-pattern>

  Segments the ledger timeline at every external flow and shows each period
  with its boundary balances evaluated at market value. Useful to understand
  or debug a returns computation.
`
}

func (c *periodsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.begin, "s", "", "Beginning date of the period to segment (default is the first related directive)")
	f.StringVar(&c.end, "d", "", "End date of the period to segment (default is the last related directive)")
	f.StringVar(&c.income, "income", "Income", "Root of the income accounts tree")
	f.StringVar(&c.expenses, "expenses", "Expenses", "Root of the expenses accounts tree")
}

func (c *periodsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	setupLog()
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected a ledger file and a related accounts pattern")
		return subcommands.ExitUsageError
	}
	filename, pattern := f.Arg(0), f.Arg(1)

	begin, end, err := parseRange(c.begin, c.end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	entries, err := loadLedger(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	isIncome := returns.IncomeStatementPredicate(c.income, c.expenses)
	_, accounts, err := returns.Classify(entries, isIncome, pattern)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	periods, err := returns.Segment(entries, accounts.Assets, accounts.Internal, begin, end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PeriodsMarkdown(periods, returns.BuildPriceMap(entries)))
	return subcommands.ExitSuccess
}
