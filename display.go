package returns

import (
	"strings"
)

// fullPrecision renders numbers at their natural precision, without rounding.
const fullPrecision = -1

// A Distribution is a frequency count of small integers, used to track the
// decimal exponents observed for a currency.
type Distribution struct {
	counts map[int]int
}

// Update records one occurrence of the value.
func (d *Distribution) Update(value int) {
	if d.counts == nil {
		d.counts = make(map[int]int)
	}
	d.counts[value]++
}

// Empty reports whether nothing was recorded yet.
func (d *Distribution) Empty() bool { return len(d.counts) == 0 }

// Mode returns the most frequent recorded value, the smallest one on ties.
func (d *Distribution) Mode() int {
	mode, best := 0, -1
	for value, count := range d.counts {
		if count > best || (count == best && value < mode) {
			mode, best = value, count
		}
	}
	return mode
}

// Min returns the smallest recorded value.
func (d *Distribution) Min() int {
	first := true
	min := 0
	for value := range d.counts {
		if first || value < min {
			min = value
			first = false
		}
	}
	return min
}

// A DisplayBuilder accumulates, per currency, the precision distribution and
// the maximum integer digit width of the numbers seen, to later build a
// DisplayContext rendering them consistently.
type DisplayBuilder struct {
	infos map[string]*builderInfo
}

type builderInfo struct {
	exponents    Distribution // decimal exponents seen for this currency
	maxIntDigits int          // widest integral part seen
}

// NewDisplayBuilder returns an empty builder.
func NewDisplayBuilder() *DisplayBuilder {
	return &DisplayBuilder{infos: make(map[string]*builderInfo)}
}

// Update records a number for a currency. It is called on every amount to
// display, so it stays cheap: one map lookup and two integer updates.
func (b *DisplayBuilder) Update(q Quantity, currency string) {
	info, ok := b.infos[currency]
	if !ok {
		info = &builderInfo{maxIntDigits: 1}
		b.infos[currency] = info
	}
	info.exponents.Update(q.Exponent())
	if digits := q.IntDigits(); digits > info.maxIntDigits {
		info.maxIntDigits = digits
	}
}

// Build derives a DisplayContext from the accumulated numbers: the common
// precision of a currency is the most frequent one seen, its maximum
// precision is the finest one seen.
func (b *DisplayBuilder) Build() *DisplayContext {
	ctx := NewDisplayContext()
	for currency, info := range b.infos {
		ctx.precision[currency] = -info.exponents.Mode()
		ctx.precisionMax[currency] = -info.exponents.Min()
		ctx.intDigits[currency] = info.maxIntDigits
	}
	return ctx
}

// A DisplayContext holds the settings controlling how numbers are rendered:
// per-currency precision, thousands separators, explicit signs. It is meant
// to be constructed explicitly and passed to whatever formats numbers; there
// is no process-wide default.
type DisplayContext struct {
	// Commas renders thousands separators when set.
	Commas bool
	// Signs always renders a sign (space for positive) when set.
	Signs bool

	precision    map[string]int
	precisionMax map[string]int
	intDigits    map[string]int
}

// NewDisplayContext returns a context rendering every currency at its
// natural, full precision.
func NewDisplayContext() *DisplayContext {
	return &DisplayContext{
		precision:    make(map[string]int),
		precisionMax: make(map[string]int),
		intDigits:    make(map[string]int),
	}
}

// SetPrecision overrides the common precision for a currency.
func (c *DisplayContext) SetPrecision(currency string, precision int) {
	c.precision[currency] = precision
}

// Format renders the number at the currency's common precision.
func (c *DisplayContext) Format(q Quantity, currency string) string {
	return c.render(q, c.lookup(c.precision, currency))
}

// FormatMax renders the number at the currency's maximum observed precision.
func (c *DisplayContext) FormatMax(q Quantity, currency string) string {
	return c.render(q, c.lookup(c.precisionMax, currency))
}

func (c *DisplayContext) lookup(precisions map[string]int, currency string) int {
	if p, ok := precisions[currency]; ok {
		return p
	}
	return fullPrecision
}

func (c *DisplayContext) render(q Quantity, precision int) string {
	var s string
	if precision == fullPrecision {
		s = q.String()
	} else {
		s = q.StringFixed(precision)
	}
	if c.Commas {
		s = groupThousands(s)
	}
	if c.Signs && !strings.HasPrefix(s, "-") {
		s = " " + s
	}
	return s
}

// groupThousands inserts comma separators in the integral part of a plain
// decimal representation.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := sign + b.String()
	if hasFrac {
		out += "." + fracPart
	}
	return out
}
