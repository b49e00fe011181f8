// Package gocy ties the currency registry, the exchange bank and the money parser together.
//
//	kit, err := gocy.New(gocy.WithDefaultCurrency("EUR"))
//	if err != nil {
//		return err
//	}
//	if _, err := kit.Seed(ctx, ecb.NewSource(snapshot, ecb.FormatXML)); err != nil {
//		return err
//	}
//	price, err := kit.Parse("$ 1,299.99", "")
package gocy

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/robotomize/gocy/bank"
	"github.com/robotomize/gocy/currency"
	"github.com/robotomize/gocy/internal/logging"
	"github.com/robotomize/gocy/money"
	"github.com/robotomize/gocy/rates"
	"github.com/sethvargo/go-retry"
)

var (
	ErrCurrencyNotFound = errors.New("currency is not supported")
	ErrMissingSource    = errors.New("missing rates source")
)

const (
	DefaultRetryNum      = 1
	DefaultRetryDuration = 5 * time.Second
)

type Option func(*Kit)

type Options struct {
	DefaultCurrency string
	SymbolPriority  bool
	RetryNum        uint64
	RetryDuration   time.Duration
}

// WithRegistry use the given registry instead of the embedded one
func WithRegistry(r *currency.Registry) Option {
	return func(k *Kit) {
		k.registry = r
	}
}

// WithBank share a bank between kits
func WithBank(b *bank.Bank) Option {
	return func(k *Kit) {
		k.bank = b
	}
}

// WithDefaultCurrency set the currency of Kit.Money and of parsed text without a currency
func WithDefaultCurrency(code string) Option {
	return func(k *Kit) {
		k.opts.DefaultCurrency = code
	}
}

// WithSymbolPriority let a leading $, € or £ decide the currency of parsed text
func WithSymbolPriority(enabled bool) Option {
	return func(k *Kit) {
		k.opts.SymbolPriority = enabled
	}
}

// WithRetryNum set number of repeated requests for data retrieval errors from the source
func WithRetryNum(n uint64) Option {
	return func(k *Kit) {
		k.opts.RetryNum = n
	}
}

// WithRetryDuration constant retry backoff
func WithRetryDuration(t time.Duration) Option {
	return func(k *Kit) {
		k.opts.RetryDuration = t
	}
}

func WithLogger(l *log.Logger) Option {
	return func(k *Kit) {
		k.logger = l
	}
}

// Kit is built once at startup and is safe for concurrent use afterwards
type Kit struct {
	opts Options

	registry *currency.Registry
	bank     *bank.Bank
	parser   *money.Parser
	ccy      currency.Currency
	logger   *log.Logger
}

// New return kit. Without options it uses the embedded currency data, a fresh bank and USD
func New(opts ...Option) (*Kit, error) {
	k := &Kit{
		opts: Options{
			DefaultCurrency: money.DefaultCurrencyCode,
			RetryNum:        DefaultRetryNum,
			RetryDuration:   DefaultRetryDuration,
		},
	}

	for _, opt := range opts {
		opt(k)
	}

	if k.registry == nil {
		registry, err := currency.Default()
		if err != nil {
			return nil, fmt.Errorf("default registry: %w", err)
		}
		k.registry = registry
	}

	if k.bank == nil {
		k.bank = bank.New()
	}

	ccy, err := k.registry.Wrap(k.opts.DefaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("default currency: %w", err)
	}
	k.ccy = ccy

	k.parser = money.NewParser(
		k.registry,
		k.bank,
		money.WithDefaultCurrency(ccy.ISOCode),
		money.WithSymbolPriority(k.opts.SymbolPriority),
	)

	return k, nil
}

func (k *Kit) Registry() *currency.Registry {
	return k.registry
}

func (k *Kit) Bank() *bank.Bank {
	return k.bank
}

func (k *Kit) Parser() *money.Parser {
	return k.parser
}

func (k *Kit) DefaultCurrency() currency.Currency {
	return k.ccy
}

// Money returns amount minor units of the default currency
func (k *Kit) Money(amount int64) money.Money {
	return money.New(amount, k.ccy, k.bank)
}

// MoneyIn returns amount minor units of the currency found by code, ISO code or symbol
func (k *Kit) MoneyIn(amount int64, code string) (money.Money, error) {
	ccy, ok := k.registry.Find(code)
	if !ok {
		return money.Money{}, fmt.Errorf("%w: %q", ErrCurrencyNotFound, code)
	}

	return money.New(amount, ccy, k.bank), nil
}

func (k *Kit) Empty() money.Money {
	return money.Empty(k.ccy, k.bank)
}

// USDollar returns amount cents of the US dollar
func (k *Kit) USDollar(amount int64) (money.Money, error) {
	return k.MoneyIn(amount, "USD")
}

// CADollar returns amount cents of the Canadian dollar
func (k *Kit) CADollar(amount int64) (money.Money, error) {
	return k.MoneyIn(amount, "CAD")
}

// Euro returns amount cents of the euro
func (k *Kit) Euro(amount int64) (money.Money, error) {
	return k.MoneyIn(amount, "EUR")
}

func (k *Kit) AsUSDollar(m money.Money) (money.Money, error) {
	return k.ExchangeTo(m, "USD")
}

func (k *Kit) AsCADollar(m money.Money) (money.Money, error) {
	return k.ExchangeTo(m, "CAD")
}

func (k *Kit) AsEuro(m money.Money) (money.Money, error) {
	return k.ExchangeTo(m, "EUR")
}

// ExchangeTo converts m into the currency named by code using the bank of the kit,
// whatever bank m is bound to
func (k *Kit) ExchangeTo(m money.Money, code string) (money.Money, error) {
	ccy, ok := k.registry.Find(code)
	if !ok {
		return money.Money{}, fmt.Errorf("%w: %q", ErrCurrencyNotFound, code)
	}

	return money.New(m.Amount(), m.Currency(), k.bank).ExchangeTo(ccy)
}

// Parse see money.Parser.Parse
func (k *Kit) Parse(text, hint string) (money.Money, error) {
	return k.parser.Parse(text, hint)
}

// SeedReport result of a single Kit.Seed
type SeedReport struct {
	Time    time.Time
	Added   int
	Skipped []string
	// Errors holds the reason of every skipped rate, nil when nothing was skipped
	Errors error
}

// Seed fetches the latest rates from src and registers them in the bank.
// Rates of unknown currencies are skipped and reported, a failed fetch is returned as an error
func (k *Kit) Seed(ctx context.Context, src rates.Source) (SeedReport, error) {
	var report SeedReport

	if src == nil {
		return report, ErrMissingSource
	}

	logger := k.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	b, err := retry.NewConstant(k.opts.RetryDuration)
	if err != nil {
		return report, fmt.Errorf("retry backoff: %w", err)
	}

	b = retry.WithMaxRetries(k.opts.RetryNum, b)

	var list []rates.ExchangeRate
	if err := retry.Do(ctx, b, func(ctx context.Context) error {
		fetched, err := src.FetchLatest(ctx)
		if err != nil {
			logger.Printf("fetch latest: %v", err)
			return retry.RetryableError(fmt.Errorf("fetch latest: %w", err))
		}

		list = fetched

		return nil
	}); err != nil {
		return report, err
	}

	var errs *multierror.Error
	for _, r := range list {
		if err := k.addRate(r); err != nil {
			report.Skipped = append(report.Skipped, r.From()+"/"+r.To())
			errs = multierror.Append(errs, err)
			continue
		}

		report.Added++
		if r.Time().After(report.Time) {
			report.Time = r.Time()
		}
	}

	report.Errors = errs.ErrorOrNil()

	logger.Printf("seeded %d rates, skipped %d", report.Added, len(report.Skipped))

	return report, nil
}

func (k *Kit) addRate(r rates.ExchangeRate) error {
	from, ok := k.registry.Find(r.From())
	if !ok {
		return fmt.Errorf("%w: %q", ErrCurrencyNotFound, r.From())
	}

	to, ok := k.registry.Find(r.To())
	if !ok {
		return fmt.Errorf("%w: %q", ErrCurrencyNotFound, r.To())
	}

	if _, err := k.bank.AddRate(from, to, r.Rate()); err != nil {
		return fmt.Errorf("%s/%s: %w", from.ISOCode, to.ISOCode, err)
	}

	return nil
}
