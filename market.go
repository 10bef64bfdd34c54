package returns

import (
	"sort"
)

// A PriceMap is the price oracle: the market value of one unit of a currency
// or commodity at a given date, with at-or-before lookup semantics.
type PriceMap interface {
	// PriceAt returns the latest price of the currency on or before the given
	// date, and whether one is known.
	PriceAt(currency string, on Date) (Money, bool)
}

// history stores a chronological series of prices. Dates are unique and the
// series is always sorted.
type history struct {
	days   []Date
	prices []Money
}

// append adds a price point. An existing value on that date is overwritten,
// the last data wins.
func (h *history) append(on Date, price Money) {
	i := sort.Search(len(h.days), func(i int) bool { return !h.days[i].Before(on) })
	if i < len(h.days) && h.days[i] == on {
		h.prices[i] = price
		return
	}
	h.days = append(h.days, Date{})
	h.prices = append(h.prices, Money{})
	copy(h.days[i+1:], h.days[i:])
	copy(h.prices[i+1:], h.prices[i:])
	h.days[i], h.prices[i] = on, price
}

// at returns the latest price on or before the given date.
func (h *history) at(on Date) (Money, bool) {
	i := sort.Search(len(h.days), func(i int) bool { return h.days[i].After(on) })
	if i == 0 {
		return Money{}, false
	}
	return h.prices[i-1], true
}

// MarketData is a PriceMap built from the price directives of an entry
// stream. It is immutable once built, and safe for concurrent reads.
type MarketData struct {
	series map[string]*history
}

// NewMarketData returns an empty price database.
func NewMarketData() *MarketData {
	return &MarketData{series: make(map[string]*history)}
}

// Append records the value of one unit of the currency at the given date.
func (m *MarketData) Append(currency string, on Date, value Money) {
	h, ok := m.series[currency]
	if !ok {
		h = &history{}
		m.series[currency] = h
	}
	h.append(on, value)
}

// PriceAt implements PriceMap.
func (m *MarketData) PriceAt(currency string, on Date) (Money, bool) {
	h, ok := m.series[currency]
	if !ok {
		return Money{}, false
	}
	return h.at(on)
}

// BuildPriceMap collects every price point of the entry stream into a price
// database: price directives, and the cost lots of transactions, a trade
// being evidence of the price on its date.
func BuildPriceMap(entries []Directive) *MarketData {
	m := NewMarketData()
	for _, entry := range entries {
		switch d := entry.(type) {
		case *Price:
			m.Append(d.Currency, d.Date, d.Value)
		case *Transaction:
			for _, p := range d.Postings {
				if c := p.Position.Cost; c != nil {
					m.Append(p.Position.Currency, d.Date, M(c.Cost.value, c.Currency))
				}
			}
		}
	}
	return m
}
