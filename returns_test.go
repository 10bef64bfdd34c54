package returns

import (
	"bytes"
	"errors"
	"log"
	"math"
	"os"
	"strings"
	"testing"
)

const tolerance = 1e-9

func almost(a, b float64) bool { return math.Abs(a-b) < tolerance }

func TestComputeReturnsDividendOnly(t *testing.T) {
	// Deposits and the withdrawal are external flows; only the dividend may
	// contribute to the return.
	total, err := ComputeReturns(depositDividendWithdraw(t), brokerageAssets, brokerageInternal,
		nil, Date{}, Date{})
	if err != nil {
		t.Fatalf("ComputeReturns() failed: %v", err)
	}

	// The only performing period runs 2020-06-01 .. 2021-01-01 from 1500 to
	// 1650 USD: 10% growth, entirely dividend-driven.
	want := 1650.0 / 1500.0
	if got := total.ByCurrency["USD"]; !almost(got, want) {
		t.Errorf("total USD return = %v, want %v", got, want)
	}
	if total.First != day(t, "2020-01-01") || total.Last != day(t, "2021-01-01") {
		t.Errorf("span = %s..%s, want 2020-01-01..2021-01-01", total.First, total.Last)
	}
}

func TestComputeReturnsCompoundingIdentity(t *testing.T) {
	entries := depositDividendWithdraw(t)
	periods, err := Segment(entries, brokerageAssets, brokerageInternal, Date{}, Date{})
	if err != nil {
		t.Fatalf("Segment() failed: %v", err)
	}
	prices := BuildPriceMap(entries)

	product := 1.0
	for _, p := range periods {
		ratio, ok := PeriodReturns(p, prices)["USD"]
		if !ok {
			ratio = 1.0
		}
		product *= ratio
	}

	total, err := ComputeReturns(entries, brokerageAssets, brokerageInternal, prices, Date{}, Date{})
	if err != nil {
		t.Fatalf("ComputeReturns() failed: %v", err)
	}
	if got := total.ByCurrency["USD"]; !almost(got, product) {
		t.Errorf("total return %v is not the product of period returns %v", got, product)
	}
}

func TestComputeReturnsWarnsOnFlowIntoInternalAccount(t *testing.T) {
	entries := depositDividendWithdraw(t)
	// outside money posted straight to an internal flow account corrupts the
	// return attribution: warned about, never fatal.
	entries = append(entries, tx(t, "2020-06-15", "sponsored dividend",
		post("Assets:Checking", -100, "USD"),
		post("Income:Dividends", 100, "USD")))
	stableSortByDate(entries)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	_, err := ComputeReturns(entries, brokerageAssets, brokerageInternal, nil, Date{}, Date{})
	if err != nil {
		t.Fatalf("ComputeReturns() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "may not affect internal flow account Income:Dividends") {
		t.Errorf("missing data quality warning, log was:\n%s", buf.String())
	}
}

func TestComputeReturnsAfterAllEntries(t *testing.T) {
	// date begin after all activity: a degenerate period, neutral returns.
	total, err := ComputeReturns(depositDividendWithdraw(t), brokerageAssets, brokerageInternal,
		nil, day(t, "2022-01-01"), Date{})
	if err != nil {
		t.Fatalf("ComputeReturns() failed: %v", err)
	}
	for currency, ratio := range total.ByCurrency {
		if ratio != 1.0 {
			t.Errorf("return for %s = %v, want the neutral 1.0", currency, ratio)
		}
	}
}

func TestPeriodReturnsNeutralOnZeroBegin(t *testing.T) {
	begin := NewInventory()
	end := NewInventory()
	end.Add(post("Brokerage:Assets", 100, "USD").Position)
	p := Period{day(t, "2020-01-01"), day(t, "2020-06-01"), begin, end}

	ratios := PeriodReturns(p, NewMarketData())
	if got := ratios["USD"]; got != 1.0 {
		t.Errorf("return from a zero beginning balance = %v, want 1.0", got)
	}
}

func TestPeriodReturnsAtMarketValue(t *testing.T) {
	// 10 HOOL at 100 USD cost, priced 100 at begin and 130 at end.
	begin := NewInventory()
	begin.Add(postAtCost("Brokerage:Assets", 10, "HOOL", 100, "USD", "2020-01-01").Position)
	end := begin.Copy()
	p := Period{day(t, "2020-01-01"), day(t, "2020-12-31"), begin, end}

	prices := NewMarketData()
	prices.Append("HOOL", day(t, "2020-01-01"), M(100, "USD"))
	prices.Append("HOOL", day(t, "2020-12-30"), M(130, "USD"))

	ratios := PeriodReturns(p, prices)
	if got := ratios["USD"]; !almost(got, 1.3) {
		t.Errorf("market value return = %v, want 1.3", got)
	}
}

func TestPeriodReturnsExcludesUnresolvedLots(t *testing.T) {
	begin := NewInventory()
	begin.Add(postAtCost("Brokerage:Assets", 10, "HOOL", 100, "USD", "2020-01-01").Position)
	begin.Add(post("Brokerage:Assets", 500, "USD").Position)
	end := begin.Copy()
	p := Period{day(t, "2020-01-01"), day(t, "2020-12-31"), begin, end}

	// no price for HOOL: the lot cannot be valued, USD cash still can.
	ratios := PeriodReturns(p, NewMarketData())
	if _, ok := ratios["HOOL"]; ok {
		t.Error("unresolved cost-bearing position leaked into the return set")
	}
	if got := ratios["USD"]; got != 1.0 {
		t.Errorf("USD return = %v, want 1.0", got)
	}
}

func TestAnnualize(t *testing.T) {
	cases := []struct {
		name        string
		ratio       float64
		first, last string
		want        float64
	}{
		{"identity over 365 days", 1.1, "2020-01-01", "2020-12-31", 1.1},
		{"half year squares", 1.1, "2020-01-01", "2020-07-01", math.Pow(1.1, 365.0/182.0)},
		{"two years take the root", 1.21, "2019-01-01", "2021-01-01", math.Pow(1.21, 365.0/731.0)},
		{"loss stays a loss", 0.9, "2020-01-01", "2020-12-31", 0.9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Annualize(map[string]float64{"USD": tc.ratio}, day(t, tc.first), day(t, tc.last))
			if err != nil {
				t.Fatalf("Annualize() failed: %v", err)
			}
			if !almost(got["USD"], tc.want) {
				t.Errorf("Annualize(%v) = %v, want %v", tc.ratio, got["USD"], tc.want)
			}
		})
	}
}

func TestAnnualizeZeroDays(t *testing.T) {
	on := day(t, "2020-01-01")

	// flat returns over zero days annualize to themselves
	got, err := Annualize(map[string]float64{"USD": 1.0}, on, on)
	if err != nil {
		t.Fatalf("Annualize() failed: %v", err)
	}
	if got["USD"] != 1.0 {
		t.Errorf("Annualize(1.0) over 0 days = %v, want 1.0", got["USD"])
	}

	// nonzero change over zero days is a modeling error
	_, err = Annualize(map[string]float64{"USD": 1.1}, on, on)
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("Annualize() error = %v, want ErrInvalidPeriod", err)
	}
}

func TestComputeReturnsMatching(t *testing.T) {
	total, err := ComputeReturnsMatching(depositDividendWithdraw(t), isIncome,
		"Brokerage|Income:Dividends", Date{}, Date{})
	if err != nil {
		t.Fatalf("ComputeReturnsMatching() failed: %v", err)
	}
	if got, want := total.ByCurrency["USD"], 1650.0/1500.0; !almost(got, want) {
		t.Errorf("total USD return = %v, want %v", got, want)
	}
}

func TestComputeReturnsUnorderedDates(t *testing.T) {
	_, err := ComputeReturns(depositDividendWithdraw(t), brokerageAssets, brokerageInternal,
		nil, day(t, "2021-01-01"), day(t, "2020-01-01"))
	if !errors.Is(err, ErrUnorderedDates) {
		t.Fatalf("ComputeReturns() error = %v, want ErrUnorderedDates", err)
	}
}

func TestComputeReturnsMultiCurrency(t *testing.T) {
	entries := []Directive{
		tx(t, "2020-01-01", "usd deposit",
			post("Assets:Checking", -1000, "USD"),
			post("Brokerage:Assets", 1000, "USD")),
		tx(t, "2020-01-01", "eur deposit",
			post("Assets:Checking", -2000, "EUR"),
			post("Brokerage:Assets", 2000, "EUR")),
		tx(t, "2020-06-01", "usd dividend",
			post("Income:Dividends", -100, "USD"),
			post("Brokerage:Assets", 100, "USD")),
		tx(t, "2021-01-01", "withdraw",
			post("Brokerage:Assets", -500, "EUR"),
			post("Assets:Checking", 500, "EUR")),
	}
	total, err := ComputeReturns(entries, brokerageAssets, brokerageInternal, nil, Date{}, Date{})
	if err != nil {
		t.Fatalf("ComputeReturns() failed: %v", err)
	}
	if got := total.ByCurrency["USD"]; !almost(got, 1.1) {
		t.Errorf("USD return = %v, want 1.1", got)
	}
	// EUR only moved through external flows: flat.
	if got := total.ByCurrency["EUR"]; !almost(got, 1.0) {
		t.Errorf("EUR return = %v, want 1.0", got)
	}
}
