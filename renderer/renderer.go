// Package renderer renders the computed returns as markdown reports.
package renderer

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/returns"
	md "github.com/nao1215/markdown"
)

// ReturnsMarkdown renders the total and annualized returns per currency.
func ReturnsMarkdown(r returns.Returns, annual map[string]float64) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Returns from %s to %s", r.First, r.Last))

	rows := make([][]string, 0, len(r.ByCurrency))
	for _, currency := range sortedCurrencies(r.ByCurrency) {
		rows = append(rows, []string{
			currency,
			formatRatio(r.ByCurrency[currency]),
			formatRatio(annual[currency]),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Currency", "Total", "Annualized"},
		Rows:   rows,
	})

	return doc.String()
}

// PeriodsMarkdown renders the diagnostic period table: the timeline cuts and
// the boundary balances evaluated at market value. Amounts of a currency are
// rendered at a precision inferred from the whole column.
func PeriodsMarkdown(periods []returns.Period, prices returns.PriceMap) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%d periods", len(periods)))

	values := make([][2]returns.Inventory, 0, len(periods))
	builder := returns.NewDisplayBuilder()
	for _, p := range periods {
		begin := returns.MarketValue(p.BalanceBegin, p.Begin, prices)
		end := returns.MarketValue(p.BalanceEnd, p.End, prices)
		values = append(values, [2]returns.Inventory{begin, end})
		for _, value := range []returns.Inventory{begin, end} {
			for _, pos := range value.Positions() {
				builder.Update(pos.Amount, pos.Currency)
			}
		}
	}
	ctx := builder.Build()
	ctx.Commas = true

	rows := make([][]string, 0, len(periods))
	for i, p := range periods {
		rows = append(rows, []string{
			p.Begin.String(),
			p.End.String(),
			formatValue(values[i][0], ctx),
			formatValue(values[i][1], ctx),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Begin", "End", "Value at begin", "Value at end"},
		Rows:   rows,
	})

	return doc.String()
}

// formatValue renders every position of a valued balance with the context.
func formatValue(value returns.Inventory, ctx *returns.DisplayContext) string {
	positions := value.Positions()
	if len(positions) == 0 {
		return "0"
	}
	parts := make([]string, 0, len(positions))
	for _, pos := range positions {
		s := ctx.Format(pos.Amount, pos.Currency) + " " + pos.Currency
		if pos.Cost != nil {
			s += fmt.Sprintf(" {%s}", pos.Cost)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// AccountsMarkdown renders the three classified account groups.
func AccountsMarkdown(accounts returns.Accounts) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Account classification")
	doc.H2("Assets")
	doc.BulletList(accounts.Assets.Sorted()...)
	doc.H2("Internal flows")
	doc.BulletList(accounts.Internal.Sorted()...)
	doc.H2("External flows")
	doc.BulletList(accounts.External.Sorted()...)

	return doc.String()
}

// formatRatio renders a return ratio as a signed percentage: 1.05 -> +5.000%.
func formatRatio(ratio float64) string {
	return fmt.Sprintf("%+.3f%%", (ratio-1)*100)
}

func sortedCurrencies(ratios map[string]float64) []string {
	currencies := make([]string, 0, len(ratios))
	for currency := range ratios {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)
	return currencies
}
