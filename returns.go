package returns

import (
	"errors"
	"fmt"
	"log"
	"math"
)

// ErrInvalidPeriod is returned when a zero-length period carries a nonzero
// return: there is no time over which that change could have happened.
var ErrInvalidPeriod = errors.New("invalid period for return")

// Returns holds the per-currency return ratios computed over a date span.
// Ratios are plain multipliers, 1.0 meaning a flat result: +5% is 1.05.
type Returns struct {
	ByCurrency  map[string]float64
	First, Last Date
}

// PeriodReturns computes the per-currency return of a single period: the
// ratio of the ending to the beginning market value.
//
// The currencies of both boundary valuations are unioned; a currency absent
// at one boundary counts as zero there, and a zero beginning value yields the
// neutral 1.0 (nothing to compare against). Positions still held at cost
// after valuation cannot participate: they are reported as a data quality
// issue and excluded, never fatal.
func PeriodReturns(p Period, prices PriceMap) map[string]float64 {
	valueBegin := MarketValue(p.BalanceBegin, p.Begin, prices)
	valueEnd := MarketValue(p.BalanceEnd, p.End, prices)

	currencies := make(map[string]bool)
	singleBegin := make(map[string]Quantity)
	singleEnd := make(map[string]Quantity)
	for _, boundary := range []struct {
		value  Inventory
		single map[string]Quantity
	}{{valueBegin, singleBegin}, {valueEnd, singleEnd}} {
		for _, pos := range boundary.value.Positions() {
			if pos.Cost != nil {
				log.Printf("warning: could not reduce position %s to its market value", pos)
				continue
			}
			currencies[pos.Currency] = true
			boundary.single[pos.Currency] = pos.Amount
		}
	}

	ratios := make(map[string]float64, len(currencies))
	for currency := range currencies {
		begin := singleBegin[currency]
		end := singleEnd[currency]
		if begin.IsZero() {
			ratios[currency] = 1.0
		} else {
			ratios[currency] = end.Div(begin).Float()
		}
	}
	return ratios
}

// Annualize rescales return ratios computed over the given span to their
// 365-day equivalent. A zero-length span is only valid when every return is
// exactly flat, and then annualizes to itself.
func Annualize(ratios map[string]float64, first, last Date) (map[string]float64, error) {
	days := last.Sub(first)
	exponent := 1.0
	if days == 0 {
		for currency, ratio := range ratios {
			if ratio != 1.0 {
				return nil, fmt.Errorf("%w: 0 days for %v %s", ErrInvalidPeriod, ratio, currency)
			}
		}
	} else {
		exponent = 365.0 / float64(days)
	}
	annual := make(map[string]float64, len(ratios))
	for currency, ratio := range ratios {
		annual[currency] = math.Pow(ratio, exponent)
	}
	return annual, nil
}

// ComputeReturns computes the total time-weighted returns of the asset
// accounts over the requested range: the timeline is segmented at external
// flows, each period's return is computed at market value, and the periods
// compound geometrically per currency, a currency inactive during a period
// contributing the neutral 1.0.
//
// External flow transactions touching an internal flow account corrupt the
// return attribution (outside money funding the portfolio's own income or
// expenses); they are reported as data quality issues and processing
// continues.
func ComputeReturns(entries []Directive, assets, internal AccountSet, prices PriceMap, begin, end Date) (Returns, error) {
	if prices == nil {
		prices = BuildPriceMap(entries)
	}
	related := assets.Union(internal)

	for _, entry := range entries {
		if !isExternalFlow(entry, related) {
			continue
		}
		txn := entry.(*Transaction)
		for _, p := range txn.Postings {
			if internal.Has(p.Account) {
				log.Printf("warning: external flow on %s may not affect internal flow account %s", txn.Date, p.Account)
				break
			}
		}
	}

	periods, err := Segment(entries, assets, internal, begin, end)
	if err != nil {
		return Returns{}, err
	}

	allRatios := make([]map[string]float64, 0, len(periods))
	currencies := make(map[string]bool)
	for _, p := range periods {
		ratios := PeriodReturns(p, prices)
		allRatios = append(allRatios, ratios)
		for currency := range ratios {
			currencies[currency] = true
		}
	}

	total := make(map[string]float64, len(currencies))
	for currency := range currencies {
		compound := 1.0
		for _, ratios := range allRatios {
			ratio, ok := ratios[currency]
			if !ok {
				ratio = 1.0 // no activity in that currency during that period
			}
			compound *= ratio
		}
		total[currency] = compound
	}

	return Returns{
		ByCurrency: total,
		First:      periods[0].Begin,
		Last:       periods[len(periods)-1].End,
	}, nil
}

// ComputeReturnsMatching classifies the accounts related to the pattern and
// computes the returns of the resulting portfolio. See Classify and
// ComputeReturns.
func ComputeReturnsMatching(entries []Directive, isIncomeStatement func(string) bool, pattern string, begin, end Date) (Returns, error) {
	_, accounts, err := Classify(entries, isIncomeStatement, pattern)
	if err != nil {
		return Returns{}, err
	}
	return ComputeReturns(entries, accounts.Assets, accounts.Internal, nil, begin, end)
}
