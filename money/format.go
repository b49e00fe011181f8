package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRule changes the output of Format
type FormatRule uint8

const (
	// NoCents drops the fractional part, "$5" instead of "$5.70"
	NoCents FormatRule = 1 << iota
	// WithCurrency appends the ISO code, "$5.70 CAD"
	WithCurrency
	// HTML wraps the ISO code added by WithCurrency into a span
	HTML
)

const freeLabel = "free"

// Format renders the value with a leading "$" and two decimals. A zero amount is always
// rendered as "free" whatever rules are given.
//
//	New(570, cad, b).Format(HTML, WithCurrency) => "$5.70 <span class=\"currency\">CAD</span>"
func (m Money) Format(rules ...FormatRule) string {
	if m.amount == 0 {
		return freeLabel
	}

	var set FormatRule
	for _, r := range rules {
		set |= r
	}

	var sb strings.Builder
	sb.WriteString("$")
	if set&NoCents != 0 {
		sb.WriteString(strconv.FormatInt(m.amount/100, 10))
	} else {
		sb.WriteString(m.String())
	}

	if set&WithCurrency != 0 {
		sb.WriteString(" ")
		if set&HTML != 0 {
			sb.WriteString(`<span class="currency">`)
		}
		sb.WriteString(m.currency.ISOCode)
		if set&HTML != 0 {
			sb.WriteString(`</span>`)
		}
	}

	return sb.String()
}

// String returns amount / 100 with exactly two decimals, whatever the subunit of the currency is
func (m Money) String() string {
	return decimal.New(m.amount, -2).StringFixed(2)
}
