package money

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/robotomize/gocy/bank"
	"github.com/robotomize/gocy/currency"
)

func TestExtractAmount(t *testing.T) {
	t.Parallel()

	registry := testRegistry(t)

	testCases := []struct {
		name     string
		input    string
		code     string
		expected int64
		err      error
	}{
		{name: "test_extract_integer", input: "100", code: "USD", expected: 10000},
		{name: "test_extract_fraction", input: "100.37", code: "USD", expected: 10037},
		{name: "test_extract_negative_prefix", input: "-5.00", code: "USD", expected: -500},
		{name: "test_extract_negative_suffix", input: "5.00-", code: "USD", expected: -500},
		{name: "test_extract_thousands", input: "1,234.56", code: "USD", expected: 123456},
		{name: "test_extract_text_around", input: "hello 2000 world", code: "USD", expected: 200000},
		{name: "test_extract_code_around", input: "USD 100", code: "USD", expected: 10000},
		{name: "test_extract_euro_marks", input: "1.234,56", code: "EUR", expected: 123456},
		{name: "test_extract_space_separator", input: "CZK 1 234,50", code: "CZK", expected: 123450},
		{name: "test_extract_apostrophe", input: "CHF 1'234.50", code: "CHF", expected: 123450},
		{name: "test_extract_negative_after_code", input: "USD -5", code: "USD", expected: -500},
		{name: "test_extract_fils", input: "1.005", code: "BHD", expected: 1005},
		{name: "test_extract_yen", input: "1,500", code: "JPY", expected: 1500},
		{name: "test_extract_yen_fraction", input: "100.5", code: "JPY", expected: 105},
		{name: "test_extract_ariary", input: "1.2", code: "MGA", expected: 7},
		{name: "test_extract_round_extra_digits", input: "1.999", code: "USD", expected: 200},
		{name: "test_extract_empty", input: "nothing", code: "USD", expected: 0},
		{name: "test_extract_leading_mark", input: ".5", code: "USD", expected: 50},
		{name: "test_extract_inner_minus", input: "1-000", code: "USD", err: ErrInvalidAmount},
		{name: "test_extract_double_minus", input: "--5", code: "USD", err: ErrInvalidAmount},
		{name: "test_extract_two_marks", input: "1.2.3", code: "USD", err: ErrInvalidAmount},
		{name: "test_extract_non_ascii_digits", input: "USD ١٠٠ 5", code: "USD", expected: 500},
		{name: "test_extract_fullwidth_digits", input: "１２ 34", code: "USD", expected: 3400},
		{name: "test_extract_max", input: "92233720368547758.07", code: "USD", expected: 9223372036854775807},
		{name: "test_extract_min", input: "-92233720368547758.08", code: "USD", expected: -9223372036854775808},
		{name: "test_extract_overflow_integer", input: "99999999999999999999", code: "USD", err: ErrInvalidAmount},
		{name: "test_extract_overflow_by_one", input: "92233720368547758.08", code: "USD", err: ErrInvalidAmount},
		{name: "test_extract_overflow_wraps_to_zero", input: "184467440737095516.16", code: "USD", err: ErrInvalidAmount},
		{name: "test_extract_overflow_negative", input: "-92233720368547758.09", code: "USD", err: ErrInvalidAmount},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractAmount(tc.input, mustFind(t, registry, tc.code))
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Errorf("expected %v, got %v", tc.err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("extract amount: %v", err)
			}

			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("mismatch (-want, +got): %s", diff)
			}
		})
	}
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	registry := testRegistry(t)
	b := bank.New()

	testCases := []struct {
		name   string
		opts   []ParserOption
		input  string
		hint   string
		amount int64
		code   string
		err    error
	}{
		{name: "test_parse_default_currency", input: "100", amount: 10000, code: "USD"},
		{name: "test_parse_code_prefix", input: "USD 100", amount: 10000, code: "USD"},
		{name: "test_parse_code_suffix", input: "100 USD", amount: 10000, code: "USD"},
		{name: "test_parse_trim", input: "   100 USD \n", amount: 10000, code: "USD"},
		{name: "test_parse_symbol_and_code", input: "$100 USD", amount: 10000, code: "USD"},
		{name: "test_parse_symbol_priority_dollar", input: "$100", opts: []ParserOption{WithSymbolPriority(true)}, amount: 10000, code: "USD"},
		{name: "test_parse_symbol_priority_euro", input: "€1.234,50", opts: []ParserOption{WithSymbolPriority(true)}, amount: 123450, code: "EUR"},
		{name: "test_parse_symbol_priority_pound", input: "£12.30", opts: []ParserOption{WithSymbolPriority(true)}, amount: 1230, code: "GBP"},
		{name: "test_parse_symbol_without_priority", input: "€100", amount: 10000, code: "USD"},
		{name: "test_parse_symbol_priority_beats_code", input: "$100 CAD", opts: []ParserOption{WithSymbolPriority(true)}, amount: 10000, code: "USD"},
		{name: "test_parse_hint", input: "100", hint: "EUR", amount: 10000, code: "EUR"},
		{name: "test_parse_hint_matches", input: "EUR 100", hint: "EUR", amount: 10000, code: "EUR"},
		{name: "test_parse_hint_case", input: "EUR 100", hint: "eur", amount: 10000, code: "EUR"},
		{name: "test_parse_default_option", input: "100", opts: []ParserOption{WithDefaultCurrency("CAD")}, amount: 10000, code: "CAD"},
		{name: "test_parse_embedded_text", input: "hello 2000 world", amount: 200000, code: "USD"},
		{name: "test_parse_bhd", input: "BHD 1.5", amount: 1500, code: "BHD"},
		{name: "test_parse_negative", input: "USD -12.50", amount: -1250, code: "USD"},
		{name: "test_parse_mismatch", input: "USD 2000", hint: "EUR", err: ErrCurrencyMismatch},
		{name: "test_parse_unknown", input: "XYZ 100", err: currency.ErrUnknownCurrency},
		{name: "test_parse_unknown_hint", input: "100", hint: "QQQ", err: currency.ErrUnknownCurrency},
		{name: "test_parse_invalid", input: "USD 1-00", err: ErrInvalidAmount},
		{name: "test_parse_out_of_range", input: "USD 99999999999999999999", err: ErrInvalidAmount},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := NewParser(registry, b, tc.opts...)
			got, err := p.Parse(tc.input, tc.hint)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Errorf("expected %v, got %v", tc.err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			if diff := cmp.Diff(tc.amount, got.Amount()); diff != "" {
				t.Errorf("bad amount (-want, +got): %s", diff)
			}

			if diff := cmp.Diff(tc.code, got.Currency().ISOCode); diff != "" {
				t.Errorf("bad currency (-want, +got): %s", diff)
			}

			if got.Bank() != b {
				t.Errorf("parsed money must be bound to the parser bank")
			}
		})
	}
}

func TestParser_ParseForms(t *testing.T) {
	t.Parallel()

	registry := testRegistry(t)
	p := NewParser(registry, bank.New(), WithSymbolPriority(true))

	var values []Money
	for _, input := range []string{"USD 100", "100 USD", "$100"} {
		m, err := p.Parse(input, "")
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		values = append(values, m)
	}

	for _, m := range values[1:] {
		if !m.Equal(values[0]) {
			t.Errorf("expected %s %s, got %s %s", values[0], values[0].Currency(), m, m.Currency())
		}
	}
}
