package money

import (
	"fmt"
	"strings"

	"github.com/robotomize/gocy/bank"
	"github.com/robotomize/gocy/currency"
	"github.com/robotomize/gocy/internal/strutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// DefaultCurrencyCode is used by the Parser when neither the text nor the caller names a currency
const DefaultCurrencyCode = "USD"

// leading symbols recognised when symbol priority is on
var prioritySymbols = []struct {
	symbol string
	code   string
}{
	{symbol: "$", code: "USD"},
	{symbol: "€", code: "EUR"},
	{symbol: "£", code: "GBP"},
}

type ParserOption func(*Parser)

// WithDefaultCurrency set the currency code used when the text has no currency
func WithDefaultCurrency(code string) ParserOption {
	return func(p *Parser) {
		p.defaultCode = code
	}
}

// WithSymbolPriority let a leading $, € or £ decide the currency
func WithSymbolPriority(enabled bool) ParserOption {
	return func(p *Parser) {
		p.symbolPriority = enabled
	}
}

// Parser turns free text such as "USD 1,234.56" into Money. It is safe for concurrent use
type Parser struct {
	registry       *currency.Registry
	bank           *bank.Bank
	defaultCode    string
	symbolPriority bool
}

func NewParser(registry *currency.Registry, b *bank.Bank, opts ...ParserOption) *Parser {
	p := &Parser{
		registry:    registry,
		bank:        b,
		defaultCode: DefaultCurrencyCode,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse extracts the currency and the amount from input. Excess characters are discarded.
// hint is the expected currency code, an empty hint means any.
//
//	Parse("100", "")              => 10000 USD
//	Parse("100 USD", "")          => 10000 USD
//	Parse("hello 2000 world", "") => 200000 USD
//	Parse("USD 2000", "EUR")      => ErrCurrencyMismatch
func (p *Parser) Parse(input, hint string) (Money, error) {
	text := strings.TrimSpace(norm.NFC.String(input))

	code, err := p.negotiate(p.detect(text), strings.TrimSpace(hint))
	if err != nil {
		return Money{}, err
	}

	ccy, err := p.registry.Wrap(code)
	if err != nil {
		return Money{}, fmt.Errorf("parse %q: %w", input, err)
	}

	amount, err := ExtractAmount(text, ccy)
	if err != nil {
		return Money{}, fmt.Errorf("parse %q: %w", input, err)
	}

	return New(amount, ccy, p.bank), nil
}

// detect returns the currency code named by the text or an empty string
func (p *Parser) detect(text string) string {
	if p.symbolPriority {
		for _, s := range prioritySymbols {
			if strings.HasPrefix(text, s.symbol) {
				return s.code
			}
		}
	}

	code, _ := strutil.FirstUpperCode(text)
	return code
}

func (p *Parser) negotiate(detected, hint string) (string, error) {
	switch {
	case hint != "" && detected != "" && !strings.EqualFold(hint, detected):
		return "", fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, hint, detected)
	case hint != "":
		return hint, nil
	case detected != "":
		return detected, nil
	default:
		return p.defaultCode, nil
	}
}

// ExtractAmount takes a text with a potential number and returns it in minor units of ccy
// using the decimal mark and thousands separator of the currency
func ExtractAmount(input string, ccy currency.Currency) (int64, error) {
	num := strutil.Keep(input, func(r rune) bool {
		return (r >= '0' && r <= '9') ||
			r == '\'' ||
			r == '-' ||
			strings.ContainsRune(ccy.ThousandsSeparator, r) ||
			strings.ContainsRune(ccy.DecimalMark, r)
	})
	num = strings.TrimSpace(num)

	negative := false
	switch {
	case strings.HasPrefix(num, "-"):
		negative = true
		num = num[1:]
	case strings.HasSuffix(num, "-"):
		negative = true
		num = num[:len(num)-1]
	}

	if strings.Contains(num, "-") {
		return 0, fmt.Errorf("%w: misplaced minus in %q", ErrInvalidAmount, input)
	}

	num = strutil.RemoveAll(num, ccy.ThousandsSeparator, "'")
	num = strings.ReplaceAll(num, ccy.DecimalMark, ".")

	if num == "" || num == "." {
		return 0, nil
	}

	value, err := decimal.NewFromString(num)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}

	major := value.Truncate(0)
	minor := value.Sub(major).Shift(int32(ccy.Exponent()))

	total := major.Mul(decimal.NewFromInt(ccy.SubunitToUnit)).Add(minor.Round(0))
	if negative {
		total = total.Neg()
	}

	amount, err := bank.ToMinor(total)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, input, err)
	}

	return amount, nil
}
