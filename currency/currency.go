// Package currency loads the table of known currencies and resolves codes, keys
// and symbols into canonical Currency values.
package currency

import (
	"strconv"
)

// Currency describes a single currency of the registry. Values returned by the Registry
// are copies, changing them never affects the registry
type Currency struct {
	// Key canonical lowercase identifier, for example "usd"
	Key string
	// ISOCode alphabetic code, for example "USD"
	ISOCode string
	// ID numeric short id, zero when the id is not assigned yet
	ID       int
	Priority int
	Name     string
	Symbol   string

	AlternateSymbols []string
	Subunit          string
	// SubunitToUnit number of minor units in one unit, for example 100 cents in a dollar
	SubunitToUnit int64
	SymbolFirst   bool
	HTMLEntity    string

	DecimalMark        string
	ThousandsSeparator string

	ISONumeric           string
	SmallestDenomination int
}

// HasID reports whether the currency has a numeric short id
func (c Currency) HasID() bool {
	return c.ID > 0
}

// Exponent returns the number of fractional digits used when parsing amounts,
// it is never less than one
func (c Currency) Exponent() int {
	digits := len(strconv.FormatInt(c.SubunitToUnit, 10)) - 1
	if digits < 1 {
		digits = 1
	}

	return digits
}

func (c Currency) String() string {
	return c.ISOCode
}

func (c Currency) clone() Currency {
	if c.AlternateSymbols != nil {
		symbols := make([]string, len(c.AlternateSymbols))
		copy(symbols, c.AlternateSymbols)
		c.AlternateSymbols = symbols
	}

	return c
}
