// Package money implements an immutable amount of minor units bound to a currency,
// its arithmetic, formatting and the free-text parser.
package money

import (
	"errors"
	"fmt"

	"github.com/robotomize/gocy/bank"
	"github.com/robotomize/gocy/currency"
	"github.com/shopspring/decimal"
)

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrNoBank           = errors.New("no exchange bank for a cross-currency operation")
	ErrCurrencyMismatch = errors.New("mismatching currencies")
	ErrInvalidAmount    = errors.New("invalid currency amount")
)

// Money is an amount of minor units of a currency, for example cents of a dollar.
// The zero value is not usable, construct it with New
type Money struct {
	amount   int64
	currency currency.Currency
	bank     *bank.Bank
}

// New returns amount minor units of ccy. The bank is used for cross-currency
// operations only and may be nil if none are needed
func New(amount int64, ccy currency.Currency, b *bank.Bank) Money {
	return Money{amount: amount, currency: ccy, bank: b}
}

// NewFromDecimal is like New for a fractional amount of minor units, the amount
// is rounded half away from zero. Amounts outside int64 fail with ErrInvalidAmount
func NewFromDecimal(amount decimal.Decimal, ccy currency.Currency, b *bank.Bank) (Money, error) {
	minor, err := bank.ToMinor(amount)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	return New(minor, ccy, b), nil
}

// FromUnits converts an amount of whole units into minor units of ccy,
// FromUnits(decimal.NewFromInt(100), usd, b) holds 10000 cents
func FromUnits(units decimal.Decimal, ccy currency.Currency, b *bank.Bank) (Money, error) {
	return NewFromDecimal(units.Mul(decimal.NewFromInt(ccy.SubunitToUnit)), ccy, b)
}

// FromUnitString is like FromUnits for a canonical decimal string such as "100.37"
func FromUnitString(value string, ccy currency.Currency, b *bank.Bank) (Money, error) {
	units, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}

	return FromUnits(units, ccy, b)
}

// Empty returns zero minor units of ccy
func Empty(ccy currency.Currency, b *bank.Bank) Money {
	return New(0, ccy, b)
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() currency.Currency {
	return m.currency
}

func (m Money) Bank() *bank.Bank {
	return m.bank
}

func (m Money) IsZero() bool {
	return m.amount == 0
}

// Equal reports whether both values hold the same amount of the same currency.
// No conversion is ever made, values of different currencies are never equal
func (m Money) Equal(other Money) bool {
	return m.amount == other.amount && bank.SameCurrency(m.currency, other.currency)
}

// Compare returns -1, 0 or +1. Unlike Equal, other is exchanged into the
// currency of m when the currencies differ
func (m Money) Compare(other Money) (int, error) {
	o, err := m.align(other)
	if err != nil {
		return 0, fmt.Errorf("compare: %w", err)
	}

	switch {
	case m.amount < o:
		return -1, nil
	case m.amount > o:
		return 1, nil
	default:
		return 0, nil
	}
}

// Add returns m + other in the currency of m
func (m Money) Add(other Money) (Money, error) {
	o, err := m.align(other)
	if err != nil {
		return Money{}, fmt.Errorf("add: %w", err)
	}

	return New(m.amount+o, m.currency, m.bank), nil
}

// Sub returns m - other in the currency of m
func (m Money) Sub(other Money) (Money, error) {
	o, err := m.align(other)
	if err != nil {
		return Money{}, fmt.Errorf("sub: %w", err)
	}

	return New(m.amount-o, m.currency, m.bank), nil
}

func (m Money) Mul(n int64) Money {
	return New(m.amount*n, m.currency, m.bank)
}

// Div divides the amount by n truncating toward zero
func (m Money) Div(n int64) (Money, error) {
	if n == 0 {
		return Money{}, ErrDivisionByZero
	}

	return New(m.amount/n, m.currency, m.bank), nil
}

// ExchangeTo returns the value converted into ccy by the bank of m
func (m Money) ExchangeTo(ccy currency.Currency) (Money, error) {
	if bank.SameCurrency(m.currency, ccy) {
		return New(m.amount, ccy, m.bank), nil
	}

	if m.bank == nil {
		return Money{}, fmt.Errorf("%w: %s -> %s", ErrNoBank, m.currency, ccy)
	}

	amount, err := m.bank.Exchange(m.amount, m.currency, ccy)
	if err != nil {
		return Money{}, fmt.Errorf("exchange: %w", err)
	}

	return New(amount, ccy, m.bank), nil
}

// align returns the amount of other in the currency of m
func (m Money) align(other Money) (int64, error) {
	if bank.SameCurrency(m.currency, other.currency) {
		return other.amount, nil
	}

	converted, err := other.ExchangeTo(m.currency)
	if err != nil {
		return 0, err
	}

	return converted.amount, nil
}
