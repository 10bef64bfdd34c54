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

// accountsCmd holds the flags for the 'accounts' subcommand.
type accountsCmd struct {
	income   string
	expenses string
}

func (*accountsCmd) Name() string { return "accounts" }
func (*accountsCmd) Synopsis() string {
	return "show the asset, internal flow, and external flow account groups"
}
func (*accountsCmd) Usage() string {
	return `pret accounts <ledger.jsonl> <related-pattern>

  Classifies the accounts touched by the transactions matching the pattern
  into assets, internal flows, and external flows.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.income, "income", "Income", "Root of the income accounts tree")
	f.StringVar(&c.expenses, "expenses", "Expenses", "Root of the expenses accounts tree")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	setupLog()
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected a ledger file and a related accounts pattern")
		return subcommands.ExitUsageError
	}
	filename, pattern := f.Arg(0), f.Arg(1)

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

	printMarkdown(renderer.AccountsMarkdown(accounts))
	return subcommands.ExitSuccess
}
