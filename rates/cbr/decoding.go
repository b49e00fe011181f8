package cbr

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrDecodeToken       = errors.New("decoding of the markup failed")
	ErrAttributeNotValid = errors.New("attr is not valid")
)

// rubDailyRates official ruble rates of a single day
type rubDailyRates struct {
	time  time.Time
	rates []rubExchangeRate
}

// rubExchangeRate nominal units of code cost value rubles
type rubExchangeRate struct {
	code    string
	nominal decimal.Decimal
	value   decimal.Decimal
}
