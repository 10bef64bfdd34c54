package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/returns"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	begin  string
	end    string
	latest string
}

func (*fetchCmd) Name() string { return "fetch" }
func (*fetchCmd) Synopsis() string {
	return "fetch end-of-day currency pair prices as price directives"
}
func (*fetchCmd) Usage() string {
	return `pret fetch [-s <date>] [-d <date>] <base> <quote>

  Fetches the end-of-day prices of one unit of base currency quoted in the
  quote currency from EODHD.com, and writes them on stdout as JSONL price
  directives ready to append to a ledger.

  With -latest, fetches instead a single intraday quote for today from the
  ls-tc.de chart endpoint identified by the given instrument id.

Usage Examples:
# Fill the USD prices of a EUR-denominated ledger.
$ pret fetch -s 2020-01-01 -d 2020-12-31 USD EUR >> ledger.jsonl
# Append today's intraday USD quote.
$ pret fetch -latest 149 USD EUR >> ledger.jsonl
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.begin, "s", "", "First date to fetch (defaults to one year ago)")
	f.StringVar(&c.end, "d", returns.Today().String(), "Last date to fetch")
	f.StringVar(&c.latest, "latest", "", "ls-tc.de instrument id: fetch a single intraday quote for today instead of the EODHD history")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	setupLog()
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "expected a base and a quote currency")
		return subcommands.ExitUsageError
	}
	base, quote := f.Arg(0), f.Arg(1)

	if c.latest != "" {
		price, err := returns.FetchForexLatest(c.latest, base, quote)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching %s/%s: %v\n", base, quote, err)
			return subcommands.ExitFailure
		}
		if err := returns.EncodeDirective(os.Stdout, price); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing price: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	begin, end, err := parseRange(c.begin, c.end)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if begin.IsZero() {
		begin = end.Add(-365)
	}

	prices, err := returns.FetchForexDaily(base, quote, begin, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching %s/%s: %v\n", base, quote, err)
		return subcommands.ExitFailure
	}

	for _, price := range prices {
		if err := returns.EncodeDirective(os.Stdout, price); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing price: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
