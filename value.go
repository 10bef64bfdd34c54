package returns

// MarketValue evaluates an asset balance at market value on a given date.
//
// Positions held at cost are reduced to a plain amount in the quote currency
// of their price; a cost-bearing position with no resolvable price is kept as
// is in the result, it is the caller's decision to exclude or report it.
// Plain currency amounts are carried through unchanged.
func MarketValue(balance Inventory, on Date, prices PriceMap) Inventory {
	value := NewInventory()
	for _, pos := range balance.Positions() {
		if pos.Cost == nil {
			value.Add(pos)
			continue
		}
		price, ok := prices.PriceAt(pos.Currency, on)
		if !ok {
			// Unresolvable: keep the lot attached so the caller can flag it.
			value.Add(pos)
			continue
		}
		value.Add(Position{
			Amount:   pos.Amount.Mul(price.Amount()),
			Currency: price.Currency(),
		})
	}
	return value
}
