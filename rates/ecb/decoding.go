package ecb

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrDecodeToken       = errors.New("decoding of the markup failed")
	ErrAttributeNotValid = errors.New("attr is not valid")
	errMissingIterFunc   = errors.New("missing iter function")
)

// decodeFunc for parsing data and processing it in streaming mode
type decodeFunc func([]byte, func(daily euroDailyRates) error) error

// euroDailyRates euro reference rates of a single day, each rate is the price of one euro
type euroDailyRates struct {
	time  time.Time
	rates []euroExchangeRate
}

type euroExchangeRate struct {
	code string
	rate decimal.Decimal
}

func parseRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrAttributeNotValid
	}

	if !rate.IsPositive() {
		return decimal.Decimal{}, ErrAttributeNotValid
	}

	return rate, nil
}
