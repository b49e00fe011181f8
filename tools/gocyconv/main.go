package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/robotomize/gocy"
	"github.com/robotomize/gocy/internal/logging"
	"github.com/robotomize/gocy/internal/strutil"
	"github.com/robotomize/gocy/money"
	"github.com/robotomize/gocy/rates"
	"github.com/robotomize/gocy/rates/cae"
	"github.com/robotomize/gocy/rates/cbr"
	"github.com/robotomize/gocy/rates/ecb"
)

var (
	ErrMissingInput  = errors.New("missing amount")
	ErrUnknownSource = errors.New("unknown rates source")
)

const (
	sourceECB = "ecb"
	sourceCBR = "cbr"
	sourceCAE = "cae"
)

type config struct {
	ratesFile       string
	source          string
	to              string
	hint            string
	defaultCurrency string
	symbols         bool
	html            bool
	noCents         bool
	text            string
}

func parseFlags(args []string) (config, error) {
	var cfg config

	flagConv := flag.NewFlagSet("flagconv", flag.ContinueOnError)
	flagConv.SetOutput(io.Discard)
	flagConv.StringVar(&cfg.ratesFile, "rates", "", "path to a saved rates document")
	flagConv.StringVar(&cfg.source, "source", sourceECB, "publisher of the rates document, variants: ecb, cbr, cae")
	flagConv.StringVar(&cfg.to, "to", "", "currency to exchange the amount to, requires -rates")
	flagConv.StringVar(&cfg.hint, "hint", "", "expected currency of the amount")
	flagConv.StringVar(&cfg.defaultCurrency, "default", money.DefaultCurrencyCode, "currency of an amount without one")
	flagConv.BoolVar(&cfg.symbols, "symbols", false, "a leading $, € or £ decides the currency")
	flagConv.BoolVar(&cfg.html, "html", false, "wrap the currency code in a span")
	flagConv.BoolVar(&cfg.noCents, "no-cents", false, "drop the minor units")

	if err := flagConv.Parse(args); err != nil {
		return cfg, fmt.Errorf("flag parse: %w", err)
	}

	cfg.text = strutil.RemoveExtraSpaces(strings.Join(flagConv.Args(), " "))
	if cfg.text == "" {
		return cfg, ErrMissingInput
	}

	return cfg, nil
}

func main() {
	ctx := logging.WithLogger(context.Background(), logging.NewLogger("Gocyconv: ", log.Lmsgprefix))
	logger := logging.FromContext(ctx)

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		logger.Fatalf("%v, usage: gocyconv [-rates file] [-to code] <amount>", err)
	}

	if err := realMain(ctx, cfg, os.Stdout); err != nil {
		logger.Fatal(err)
	}
}

func realMain(ctx context.Context, cfg config, w io.Writer) error {
	kit, err := gocy.New(
		gocy.WithDefaultCurrency(cfg.defaultCurrency),
		gocy.WithSymbolPriority(cfg.symbols),
		gocy.WithRetryNum(0),
		gocy.WithLogger(logging.FromContext(ctx)),
	)
	if err != nil {
		return fmt.Errorf("new kit: %w", err)
	}

	if cfg.ratesFile != "" {
		src, err := newSource(cfg.source, cfg.ratesFile)
		if err != nil {
			return fmt.Errorf("rates source: %w", err)
		}

		report, err := kit.Seed(ctx, src)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		if report.Errors != nil {
			logging.FromContext(ctx).Printf("warning: %v", report.Errors)
		}
	}

	m, err := kit.Parse(cfg.text, cfg.hint)
	if err != nil {
		return fmt.Errorf("parse %q: %w", cfg.text, err)
	}

	if cfg.to != "" {
		ccy, err := kit.Registry().Wrap(cfg.to)
		if err != nil {
			return fmt.Errorf("target currency: %w", err)
		}

		converted, err := m.ExchangeTo(ccy)
		if err != nil {
			return fmt.Errorf("exchange: %w", err)
		}

		_, err = fmt.Fprintf(w, "%s = %s\n", m.Format(cfg.rules()...), converted.Format(cfg.rules()...))
		return err
	}

	_, err = fmt.Fprintln(w, m.Format(cfg.rules()...))
	return err
}

func newSource(name, fileName string) (rates.Source, error) {
	fsys := os.DirFS(filepath.Dir(fileName))
	base := filepath.Base(fileName)

	switch name {
	case sourceECB:
		src, err := ecb.NewFileSource(fsys, base)
		if err != nil {
			return nil, err
		}
		return src, nil
	case sourceCBR:
		return cbr.NewFileSource(fsys, base), nil
	case sourceCAE:
		return cae.NewFileSource(fsys, base), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
}

func (c config) rules() []money.FormatRule {
	rules := []money.FormatRule{money.WithCurrency}
	if c.html {
		rules = append(rules, money.HTML)
	}

	if c.noCents {
		rules = append(rules, money.NoCents)
	}

	return rules
}
