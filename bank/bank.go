// Package bank keeps directed exchange rates between currencies and converts
// minor-unit amounts with them.
package bank

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/robotomize/gocy/currency"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

var (
	ErrRateNotFound = errors.New("exchange rate not found")
	ErrInvalidRate  = errors.New("exchange rate must be positive")
	ErrOutOfRange   = errors.New("amount does not fit in int64 minor units")
)

var (
	one      = decimal.NewFromInt(1)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

type pair struct {
	from string
	to   string
}

// Rate is a directed exchange rate of the table
type Rate struct {
	From string
	To   string
	Rate decimal.Decimal
}

// Bank is a table of directed exchange rates. Rates are not assumed symmetric,
// from->to and to->from are independent entries.
//
// A Bank is safe for concurrent use. Replacing a rate is atomic per pair and
// updates of different pairs never block each other
type Bank struct {
	rates sync.Map
}

func New() *Bank {
	return &Bank{}
}

// AddRate stores or replaces the rate for from->to and returns the previous one
func (b *Bank) AddRate(from, to currency.Currency, rate decimal.Decimal) (decimal.NullDecimal, error) {
	if !rate.IsPositive() {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %s -> %s: %s", ErrInvalidRate, from, to, rate)
	}

	prev, loaded := b.rates.Swap(pairOf(from, to), rate)
	if !loaded {
		return decimal.NullDecimal{}, nil
	}

	return decimal.NullDecimal{Decimal: prev.(decimal.Decimal), Valid: true}, nil
}

// Rate returns the rate for from->to. The rate of a currency to itself is always 1
func (b *Bank) Rate(from, to currency.Currency) (decimal.Decimal, error) {
	if SameCurrency(from, to) {
		return one, nil
	}

	v, ok := b.rates.Load(pairOf(from, to))
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s -> %s", ErrRateNotFound, from, to)
	}

	return v.(decimal.Decimal), nil
}

// Exchange converts amount minor units of from into minor units of to.
// The result is rounded half away from zero
func (b *Bank) Exchange(amount int64, from, to currency.Currency) (int64, error) {
	if SameCurrency(from, to) {
		return amount, nil
	}

	rate, err := b.Rate(from, to)
	if err != nil {
		return 0, err
	}

	converted, err := ToMinor(decimal.NewFromInt(amount).Mul(rate))
	if err != nil {
		return 0, fmt.Errorf("exchange %d %s -> %s: %w", amount, from, to, err)
	}

	return converted, nil
}

// SameCurrency reports whether a and b are the same currency
func (b *Bank) SameCurrency(a, c currency.Currency) bool {
	return SameCurrency(a, c)
}

// Rates returns a snapshot of the table ordered by pair
func (b *Bank) Rates() []Rate {
	var list []Rate
	b.rates.Range(func(k, v interface{}) bool {
		p := k.(pair)
		list = append(list, Rate{From: p.from, To: p.to, Rate: v.(decimal.Decimal)})
		return true
	})

	sort.Slice(list, func(i, j int) bool {
		if list[i].From != list[j].From {
			return list[i].From < list[j].From
		}

		return list[i].To < list[j].To
	})

	return list
}

func (b *Bank) Len() int {
	n := 0
	b.rates.Range(func(_, _ interface{}) bool {
		n++
		return true
	})

	return n
}

// SameCurrency reports whether a and b resolve to the same canonical key, case-insensitively
func SameCurrency(a, b currency.Currency) bool {
	return keyOf(a) == keyOf(b)
}

// Round rounds a fractional minor-unit value half away from zero. The result
// wraps silently when it does not fit in int64, use ToMinor for untrusted values
func Round(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// ToMinor is Round with a range check. Every conversion of a computed or parsed
// value to integer minor units in the module goes through it
func ToMinor(d decimal.Decimal) (int64, error) {
	rounded := d.Round(0)
	if rounded.GreaterThan(maxMinor) || rounded.LessThan(minMinor) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, rounded)
	}

	return rounded.IntPart(), nil
}

func pairOf(from, to currency.Currency) pair {
	return pair{from: keyOf(from), to: keyOf(to)}
}

func keyOf(c currency.Currency) string {
	key := c.Key
	if key == "" {
		key = c.ISOCode
	}

	return cases.Fold().String(key)
}
