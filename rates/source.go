// Package rates declares where exchange rates for the bank come from.
package rates

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Source gives back a batch of directed exchange rates, for example decoded from a
// reference rates snapshot
//
//go:generate mockgen -source source.go -destination mock_source.go -package rates
type Source interface {
	// FetchLatest returns the latest exchange rates known to the source
	FetchLatest(ctx context.Context) ([]ExchangeRate, error)
}

// ExchangeRate represents the exchange rate of a particular currency pair
type ExchangeRate interface {
	// Time - date on which the exchange rate was issued
	Time() time.Time
	// From USD to EUR => 1USD ~ 0.85EUR, codes are ISO codes
	From() string
	To() string
	Rate() decimal.Decimal
}
