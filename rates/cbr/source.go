// Package cbr decodes the official ruble rates published by the Central Bank of Russia
// as the XML_daily document. The document is read from memory or a file system.
package cbr

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/robotomize/gocy/rates"
)

const rubleCode = "RUB"

var _ rates.Source = (*source)(nil)

type source struct {
	read func() ([]byte, error)
}

func NewSource(b []byte) *source {
	return &source{
		read: func() ([]byte, error) {
			return b, nil
		},
	}
}

// NewFileSource reads the document from fsys on every fetch
func NewFileSource(fsys fs.FS, fileName string) *source {
	return &source{
		read: func() ([]byte, error) {
			return fs.ReadFile(fsys, fileName)
		},
	}
}

func (s *source) FetchLatest(ctx context.Context) ([]rates.ExchangeRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ctx cancelled: %w", err)
	}

	b, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	list, err := s.decode(b)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return list, nil
}

func (s *source) decode(b []byte) ([]rates.ExchangeRate, error) {
	daily, err := decodeXML(b)
	if err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	if len(daily.rates) == 0 {
		return nil, nil
	}

	quotes := make([]rates.Quote, len(daily.rates))
	for i, r := range daily.rates {
		quotes[i] = rates.Quote{Code: r.code, Units: r.nominal, Amount: r.value}
	}

	return rates.Cross(daily.time, rubleCode, quotes), nil
}
