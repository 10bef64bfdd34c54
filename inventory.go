package returns

import (
	"fmt"
	"sort"
	"strings"
)

// A Lot records the cost basis of a position: the unit cost it was acquired
// at, and when. Lot values are immutable.
type Lot struct {
	Currency string   // the currency the cost is expressed in
	Cost     Quantity // the cost of one unit
	Date     Date     // the acquisition date
}

func (l Lot) String() string {
	return fmt.Sprintf("{%s %s / %s}", l.Cost, l.Currency, l.Date)
}

// A Position is a quantity of a currency or commodity, optionally held at
// cost. Position values are immutable.
type Position struct {
	Amount   Quantity
	Currency string
	Cost     *Lot // nil for a plain currency amount
}

func (p Position) String() string {
	if p.Cost != nil {
		return fmt.Sprintf("%s %s %s", p.Amount, p.Currency, *p.Cost)
	}
	return fmt.Sprintf("%s %s", p.Amount, p.Currency)
}

// lotKey identifies the aggregation bucket of a position inside an inventory:
// same currency and same cost lot always sum together.
type lotKey struct {
	currency string
	costCur  string
	cost     string // canonical decimal representation, "" for no lot
	costDate Date
}

func keyOf(p Position) lotKey {
	k := lotKey{currency: p.Currency}
	if p.Cost != nil {
		k.costCur = p.Cost.Currency
		k.cost = p.Cost.Cost.String()
		k.costDate = p.Cost.Date
	}
	return k
}

// An Inventory is an aggregated multiset of positions, keyed by currency and
// cost lot. The zero value is not usable, call NewInventory.
type Inventory struct {
	amounts map[lotKey]Quantity
	lots    map[lotKey]*Lot
}

// NewInventory returns a new empty inventory.
func NewInventory() Inventory {
	return Inventory{
		amounts: make(map[lotKey]Quantity),
		lots:    make(map[lotKey]*Lot),
	}
}

// Add accumulates a position into the inventory. Quantities on the same
// (currency, lot) bucket are summed, never duplicated.
func (inv Inventory) Add(p Position) {
	k := keyOf(p)
	inv.amounts[k] = inv.amounts[k].Add(p.Amount)
	if p.Cost != nil {
		inv.lots[k] = p.Cost
	}
}

// Copy returns an independent deep copy. Mutating the original afterwards
// never changes the copy: period snapshots rely on this.
func (inv Inventory) Copy() Inventory {
	c := NewInventory()
	for k, q := range inv.amounts {
		c.amounts[k] = q
		if lot, ok := inv.lots[k]; ok {
			c.lots[k] = lot
		}
	}
	return c
}

// Positions returns the aggregated positions, zero quantities pruned, in a
// stable order.
func (inv Inventory) Positions() []Position {
	keys := make([]lotKey, 0, len(inv.amounts))
	for k, q := range inv.amounts {
		if q.IsZero() {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.currency != b.currency {
			return a.currency < b.currency
		}
		if a.costCur != b.costCur {
			return a.costCur < b.costCur
		}
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		return a.costDate.Before(b.costDate)
	})
	positions := make([]Position, 0, len(keys))
	for _, k := range keys {
		positions = append(positions, Position{
			Amount:   inv.amounts[k],
			Currency: k.currency,
			Cost:     inv.lots[k],
		})
	}
	return positions
}

// IsEmpty reports whether the inventory holds no nonzero position.
func (inv Inventory) IsEmpty() bool { return len(inv.Positions()) == 0 }

// Equal reports whether both inventories hold the same aggregated positions.
func (inv Inventory) Equal(other Inventory) bool {
	a, b := inv.Positions(), other.Positions()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Currency != b[i].Currency || !a[i].Amount.Equal(b[i].Amount) {
			return false
		}
		la, lb := a[i].Cost, b[i].Cost
		if (la == nil) != (lb == nil) {
			return false
		}
		if la != nil && (la.Currency != lb.Currency || !la.Cost.Equal(lb.Cost) || la.Date != lb.Date) {
			return false
		}
	}
	return true
}

func (inv Inventory) String() string {
	positions := inv.Positions()
	if len(positions) == 0 {
		return "()"
	}
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
