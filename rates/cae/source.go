// Package cae parses the dirham rates page of the Central Bank of the UAE saved as HTML.
package cae

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/robotomize/gocy/rates"
	"github.com/shopspring/decimal"
)

const dirhamCode = "AED"

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
		return nil, fmt.Errorf("read page: %w", err)
	}

	daily, err := parseHTML(b)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	if len(daily.rates) == 0 {
		return nil, nil
	}

	one := decimal.NewFromInt(1)
	quotes := make([]rates.Quote, len(daily.rates))
	for i, r := range daily.rates {
		quotes[i] = rates.Quote{Code: r.code, Units: one, Amount: r.rate}
	}

	return rates.Cross(daily.time, dirhamCode, quotes), nil
}
