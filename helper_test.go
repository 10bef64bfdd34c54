package returns

import "testing"

// test builders for the directive stream.

func day(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func post(account string, amount float64, currency string) Posting {
	return Posting{Account: account, Position: Position{Amount: Q(amount), Currency: currency}}
}

func postAtCost(account string, amount float64, currency string, cost float64, costCur, costDate string) Posting {
	d, _ := ParseDate(costDate)
	return Posting{Account: account, Position: Position{
		Amount:   Q(amount),
		Currency: currency,
		Cost:     &Lot{Currency: costCur, Cost: Q(cost), Date: d},
	}}
}

func tx(t *testing.T, on, narration string, postings ...Posting) *Transaction {
	t.Helper()
	return &Transaction{Date: day(t, on), Narration: narration, Postings: postings}
}

func priceAt(t *testing.T, on, currency string, value float64, quote string) *Price {
	t.Helper()
	return &Price{Date: day(t, on), Currency: currency, Value: M(value, quote)}
}

// isIncome is the default income statement predicate used across tests.
var isIncome = IncomeStatementPredicate("Income", "Expenses")
