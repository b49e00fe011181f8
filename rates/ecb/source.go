// Package ecb decodes euro foreign exchange reference rates snapshots published by
// the European Central Bank. Snapshots are read from memory or a file system,
// the package never goes to the network.
package ecb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/robotomize/gocy/rates"
	"github.com/shopspring/decimal"
)

// euroCode is the base currency of every snapshot
const euroCode = "EUR"

var ErrUnknownFormat = errors.New("unknown snapshot format")

// Format of a reference rates snapshot
type Format uint8

const (
	// FormatXML eurofxref-daily.xml layout
	FormatXML Format = iota + 1
	// FormatCSV eurofxref.csv layout
	FormatCSV
)

// FormatOf guesses the snapshot format by the file extension
func FormatOf(fileName string) (Format, error) {
	switch strings.ToLower(path.Ext(fileName)) {
	case ".xml":
		return FormatXML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, fileName)
	}
}

var _ rates.Source = (*source)(nil)

type source struct {
	read   func() ([]byte, error)
	format Format
}

// NewSource returns a rates.Source over the snapshot held in b
func NewSource(b []byte, format Format) *source {
	return &source{
		read: func() ([]byte, error) {
			return b, nil
		},
		format: format,
	}
}

// NewFileSource returns a rates.Source that reads the snapshot file on every fetch,
// the format is taken from the file extension
func NewFileSource(fsys fs.FS, fileName string) (*source, error) {
	format, err := FormatOf(fileName)
	if err != nil {
		return nil, err
	}

	return &source{
		read: func() ([]byte, error) {
			return fs.ReadFile(fsys, fileName)
		},
		format: format,
	}, nil
}

func (s *source) FetchLatest(ctx context.Context) ([]rates.ExchangeRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ctx cancelled: %w", err)
	}

	b, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var decode decodeFunc
	switch s.format {
	case FormatXML:
		decode = decodeXML()
	case FormatCSV:
		decode = decodeCSV()
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, s.format)
	}

	list, err := s.decode(b, decode)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return list, nil
}

// decode keeps the most recent day of the snapshot and expands it into every directed cross rate
func (s *source) decode(b []byte, decode decodeFunc) ([]rates.ExchangeRate, error) {
	var latest *euroDailyRates

	if err := decode(b, func(r euroDailyRates) error {
		if latest == nil || r.time.After(latest.time) {
			latest = &r
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("%T decode func: %w", decode, err)
	}

	if latest == nil {
		return nil, nil
	}

	return expand(*latest), nil
}

func expand(daily euroDailyRates) []rates.ExchangeRate {
	one := decimal.NewFromInt(1)
	quotes := make([]rates.Quote, len(daily.rates))
	for i, r := range daily.rates {
		quotes[i] = rates.Quote{Code: r.code, Units: r.rate, Amount: one}
	}

	return rates.Cross(daily.time, euroCode, quotes)
}
