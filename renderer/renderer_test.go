package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/returns"
)

func TestReturnsMarkdown(t *testing.T) {
	r := returns.Returns{
		ByCurrency: map[string]float64{"USD": 1.1, "EUR": 0.95},
		First:      returns.NewDate(2020, time.January, 1),
		Last:       returns.NewDate(2020, time.December, 31),
	}
	annual := map[string]float64{"USD": 1.1, "EUR": 0.95}

	md := ReturnsMarkdown(r, annual)

	for _, want := range []string{
		"Returns from 2020-01-01 to 2020-12-31",
		"+10.000%",
		"-5.000%",
		"USD",
		"EUR",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown misses %q:\n%s", want, md)
		}
	}
	// currencies come out in lexical order
	if strings.Index(md, "EUR") > strings.Index(md, "USD") {
		t.Errorf("currencies are not sorted:\n%s", md)
	}
}

func TestPeriodsMarkdown(t *testing.T) {
	begin := returns.NewInventory()
	begin.Add(returns.Position{Amount: returns.Q(1000), Currency: "USD"})
	end := returns.NewInventory()
	end.Add(returns.Position{Amount: returns.Q(1234567.89), Currency: "USD"})

	periods := []returns.Period{{
		Begin:        returns.NewDate(2020, time.January, 1),
		End:          returns.NewDate(2020, time.June, 1),
		BalanceBegin: begin,
		BalanceEnd:   end,
	}}
	md := PeriodsMarkdown(periods, returns.BuildPriceMap(nil))

	for _, want := range []string{
		"1 periods",
		"2020-01-01",
		"2020-06-01",
		// precision is inferred from the whole column, thousands are grouped
		"1,000.00 USD",
		"1,234,567.89 USD",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown misses %q:\n%s", want, md)
		}
	}
}

func TestAccountsMarkdown(t *testing.T) {
	accounts := returns.Accounts{
		Assets:   returns.NewAccountSet("Brokerage:Assets"),
		Internal: returns.NewAccountSet("Income:Dividends"),
		External: returns.NewAccountSet("Assets:Checking"),
	}
	md := AccountsMarkdown(accounts)
	for _, want := range []string{"Assets", "Internal flows", "External flows",
		"Brokerage:Assets", "Income:Dividends", "Assets:Checking"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown misses %q:\n%s", want, md)
		}
	}
}
