// Package returns computes the time-weighted returns of a portfolio from a
// chronological stream of double-entry bookkeeping directives.
//
// The portfolio is defined by a regular expression over account names. Three
// groups of accounts emerge from that definition:
//
//   - Asset accounts: accounts whose balances are counted towards the total
//     value of the portfolio.
//   - Internal flow accounts: income and expense accounts that post activity
//     generated by the portfolio itself, such as dividends, realized gains,
//     commissions and fees. They are not valued, but their activity belongs
//     to the portfolio's performance.
//   - External flow accounts: accounts from which funds are deposited or
//     withdrawn. Those deposits and withdrawals must be excluded from the
//     returns; their presence is the reason computing portfolio returns is
//     not a trivial exercise.
//
// The timeline is cut into periods at every transaction touching an external
// flow account. Each period's return is the ratio of its ending to beginning
// market value, and the total return is the geometric compound of all period
// returns.
package returns
