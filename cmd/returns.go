package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/returns"
	"github.com/etnz/returns/renderer"
	"github.com/google/subcommands"
)

// returnsCmd holds the flags for the 'returns' subcommand.
type returnsCmd struct {
	begin    string
	end      string
	verbose  bool
	income   string
	expenses string
}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "compute the time-weighted returns of a portfolio" }
func (*returnsCmd) Usage() string {
	return `pret returns [-s <date>] [-d <date>] [-v] <ledger.jsonl> <related-pattern>

  Computes the total and annualized returns of the accounts matching the
  related-pattern (a regular expression anchored at the beginning of the
  account name), excluding external deposits and withdrawals.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.begin, "s", "", "Beginning date of the period to compute returns over (default is the first related directive)")
	f.StringVar(&c.end, "d", "", "End date of the period to compute returns over (default is the last related directive)")
	f.BoolVar(&c.verbose, "v", false, "Output the account groups and the period-by-period trace on stderr")
	f.StringVar(&c.income, "income", "Income", "Root of the income accounts tree")
	f.StringVar(&c.expenses, "expenses", "Expenses", "Root of the expenses accounts tree")
}

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	prices := returns.BuildPriceMap(entries)

	if c.verbose {
		for _, group := range []struct {
			name string
			set  returns.AccountSet
		}{
			{"Asset accounts", accounts.Assets},
			{"Internal flows", accounts.Internal},
			{"External flows", accounts.External},
		} {
			log.Printf("%s:", group.name)
			for _, account := range group.set.Sorted() {
				log.Printf("  %s", account)
			}
		}
		if periods, err := returns.Segment(entries, accounts.Assets, accounts.Internal, begin, end); err == nil {
			for _, p := range periods {
				log.Printf("period %s .. %s", p.Begin, p.End)
				log.Printf("  begin %s => %s", p.BalanceBegin, returns.MarketValue(p.BalanceBegin, p.Begin, prices))
				log.Printf("  end   %s => %s", p.BalanceEnd, returns.MarketValue(p.BalanceEnd, p.End, prices))
				log.Printf("  returns %v", returns.PeriodReturns(p, prices))
			}
		}
	}

	total, err := returns.ComputeReturns(entries, accounts.Assets, accounts.Internal, prices, begin, end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	annual, err := returns.Annualize(total.ByCurrency, total.First, total.Last)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReturnsMarkdown(total, annual))
	return subcommands.ExitSuccess
}
