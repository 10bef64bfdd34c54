package returns

import "sort"

// A Directive is a dated record of the ledger. Directives are consumed in
// chronological order; only transactions carry postings, price points feed
// the market data.
type Directive interface {
	// When returns the date the directive takes effect.
	When() Date
}

// A Posting is one account-leg of a transaction, carrying a position.
type Posting struct {
	Account  string
	Position Position
}

// A Transaction moves positions between accounts. The sum of its postings
// balances to zero, double-entry style, but this package never needs to
// enforce that: it consumes an already validated stream.
type Transaction struct {
	Date      Date
	Narration string
	Postings  []Posting
}

func (t *Transaction) When() Date { return t.Date }

// Touches reports whether any posting of the transaction is on an account of
// the given set.
func (t *Transaction) Touches(accounts AccountSet) bool {
	for _, p := range t.Postings {
		if accounts.Has(p.Account) {
			return true
		}
	}
	return false
}

// A Price declares the market value of one unit of a currency or commodity,
// quoted in another currency, on a given date.
type Price struct {
	Date     Date
	Currency string // the priced currency or commodity
	Value    Money  // the value of one unit, in the quote currency
}

func (p *Price) When() Date { return p.Date }

// stableSortByDate puts the entries in chronological order, preserving the
// relative order of same-day entries.
func stableSortByDate(entries []Directive) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].When().Before(entries[j].When())
	})
}
