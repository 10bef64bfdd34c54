package returns

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// An AccountSet is a set of account names.
type AccountSet map[string]struct{}

// NewAccountSet returns a set holding the given account names.
func NewAccountSet(accounts ...string) AccountSet {
	s := make(AccountSet, len(accounts))
	for _, a := range accounts {
		s.add(a)
	}
	return s
}

func (s AccountSet) add(account string) { s[account] = struct{}{} }

// Has reports whether the account belongs to the set.
func (s AccountSet) Has(account string) bool { _, ok := s[account]; return ok }

// Union returns a new set holding the accounts of both sets.
func (s AccountSet) Union(other AccountSet) AccountSet {
	u := make(AccountSet, len(s)+len(other))
	for a := range s {
		u.add(a)
	}
	for a := range other {
		u.add(a)
	}
	return u
}

// Sorted returns the account names in lexical order.
func (s AccountSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for a := range s {
		names = append(names, a)
	}
	sort.Strings(names)
	return names
}

// Accounts is the result of classifying the accounts touched by the matching
// transactions into their three disjoint roles. It is computed once per run
// and read-only thereafter.
type Accounts struct {
	// Assets are the valued accounts: their balances count towards the total
	// value of the portfolio.
	Assets AccountSet
	// Internal are the income and expense accounts posting the portfolio's
	// own activity (dividends, fees, realized gains).
	Internal AccountSet
	// External are the accounts funds are deposited from or withdrawn to.
	External AccountSet
}

// Related returns the union of asset and internal flow accounts. A
// transaction posting outside that union is an external flow.
func (a Accounts) Related() AccountSet { return a.Assets.Union(a.Internal) }

// IncomeStatementPredicate returns a predicate reporting whether an account
// belongs to the income statement, from the root names of the income and
// expenses account trees.
func IncomeStatementPredicate(incomeRoot, expensesRoot string) func(string) bool {
	return func(account string) bool {
		return account == incomeRoot || account == expensesRoot ||
			strings.HasPrefix(account, incomeRoot+":") ||
			strings.HasPrefix(account, expensesRoot+":")
	}
}

// Classify matches transactions whose postings touch an account matching the
// pattern, and partitions the accounts they touch into their three roles:
// matching accounts are internal flows when the predicate reports them on the
// income statement, assets otherwise; non-matching accounts of a matching
// transaction are external flows.
//
// The pattern is anchored at the beginning of the account name. Classify is a
// pure function: running it twice on the same input yields identical sets.
func Classify(entries []Directive, isIncomeStatement func(string) bool, pattern string) ([]*Transaction, Accounts, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, Accounts{}, fmt.Errorf("invalid related accounts pattern %q: %w", pattern, err)
	}

	accounts := Accounts{
		Assets:   make(AccountSet),
		Internal: make(AccountSet),
		External: make(AccountSet),
	}
	var matching []*Transaction
	for _, entry := range entries {
		txn, ok := entry.(*Transaction)
		if !ok {
			continue
		}
		match := false
		for _, p := range txn.Postings {
			if re.MatchString(p.Account) {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		matching = append(matching, txn)

		for _, p := range txn.Postings {
			switch {
			case !re.MatchString(p.Account):
				accounts.External.add(p.Account)
			case isIncomeStatement(p.Account):
				accounts.Internal.add(p.Account)
			default:
				accounts.Assets.add(p.Account)
			}
		}
	}
	return matching, accounts, nil
}
