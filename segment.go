package returns

import (
	"errors"
	"fmt"
)

// ErrUnorderedDates is returned when a requested date range has its beginning
// on or after its end.
var ErrUnorderedDates = errors.New("dates are not ordered correctly")

// A Period is a maximal span of the timeline free of external flows, with the
// asset balance snapshot at both boundaries. Periods are produced by Segment
// and never mutated afterwards: consecutive periods share their boundary date
// and the produced list contiguously partitions the segmented range.
type Period struct {
	Begin, End               Date
	BalanceBegin, BalanceEnd Inventory
}

// isExternalFlow reports whether the entry is a transaction with at least one
// posting outside the related (assets and internal flows) accounts.
func isExternalFlow(entry Directive, related AccountSet) bool {
	txn, ok := entry.(*Transaction)
	if !ok {
		return false
	}
	for _, p := range txn.Postings {
		if !related.Has(p.Account) {
			return true
		}
	}
	return false
}

// sumAssets accumulates into balance the postings of the entry on asset
// accounts. Non-transaction entries are ignored.
func sumAssets(balance Inventory, entry Directive, assets AccountSet) {
	txn, ok := entry.(*Transaction)
	if !ok {
		return
	}
	for _, p := range txn.Postings {
		if assets.Has(p.Account) {
			balance.Add(p.Position)
		}
	}
}

// Segment cuts the chronological entry stream into contiguous periods at
// every external flow transaction, tracking the running asset balance and
// snapshotting it at each boundary.
//
// Entries touching no asset account are skipped entirely: they can neither
// change the balance nor be a flow boundary. When begin is set, entries
// strictly before it are accumulated silently into the starting balance; if
// the stream holds nothing at or after begin, a single degenerate period is
// returned covering the requested range with an unchanged balance. When end
// is set, scanning stops there and the last period is clamped to it.
//
// Boundary entries are not inside any period: their asset postings are
// absorbed into the running balance between the period they close and the
// period they open.
//
// Zero Date values mean an unbounded range on that side.
func Segment(entries []Directive, assets, internal AccountSet, begin, end Date) ([]Period, error) {
	if !begin.IsZero() && !end.IsZero() && !begin.Before(end) {
		return nil, fmt.Errorf("%w: %s >= %s", ErrUnorderedDates, begin, end)
	}

	related := assets.Union(internal)

	// Keep only the entries that can matter to the balance.
	var relevant []Directive
	for _, entry := range entries {
		if txn, ok := entry.(*Transaction); ok && txn.Touches(assets) {
			relevant = append(relevant, entry)
		}
	}
	if len(relevant) == 0 {
		return nil, fmt.Errorf("no transaction touches any asset account")
	}

	balance := NewInventory()
	i := 0

	// Skip (and accumulate) the entries before the beginning cut-off.
	var periodBegin Date
	if !begin.IsZero() {
		periodBegin = begin
		for {
			if i >= len(relevant) {
				// No in-range activity at all: one degenerate zero-activity period.
				last := end
				if last.IsZero() {
					last = begin
				}
				return []Period{{begin, last, balance.Copy(), balance.Copy()}}, nil
			}
			on := relevant[i].When()
			if !on.Before(begin) {
				break
			}
			if !end.IsZero() && !on.Before(end) {
				break
			}
			sumAssets(balance, relevant[i], assets)
			i++
		}
	} else {
		periodBegin = relevant[0].When()
	}

	// Main loop: each turn emits one period and absorbs one boundary entry.
	var periods []Period
	var periodEnd Date
	done := false
	for {
		balanceBegin := balance.Copy()

		// Consume internal flow entries, accumulating the running balance,
		// until a boundary: an external flow entry (left unconsumed for the
		// absorption step below), the end cut-off, or stream exhaustion.
		for {
			entry := relevant[i]
			periodEnd = entry.When()
			if isExternalFlow(entry, related) {
				break
			}
			if !end.IsZero() && !entry.When().Before(end) {
				periodEnd = end
				done = true
				break
			}
			sumAssets(balance, entry, assets)
			i++
			if i >= len(relevant) {
				done = true
				if !end.IsZero() {
					periodEnd = end
				}
				break
			}
		}

		periods = append(periods, Period{periodBegin, periodEnd, balanceBegin, balance.Copy()})
		if done {
			break
		}

		// Absorb the external flow entry: the cash moved changes the balance
		// but the entry itself sits between periods, not inside one.
		sumAssets(balance, relevant[i], assets)
		i++
		if i >= len(relevant) {
			if !end.IsZero() {
				periods = append(periods, Period{periodEnd, end, balance.Copy(), balance.Copy()})
			}
			break
		}
		periodBegin = periodEnd
	}

	return periods, nil
}
