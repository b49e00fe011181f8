package rates

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrossPrecision number of decimal places kept for a cross rate
const CrossPrecision = 16

// Quote says that Amount units of the base currency buy Units of Code
type Quote struct {
	Code   string
	Units  decimal.Decimal
	Amount decimal.Decimal
}

// Cross expands the quotes of a single base currency into every directed pair, base included.
// rate(A->B) = (Amount(A) * Units(B)) / (Units(A) * Amount(B)). Repeated codes keep the first quote
func Cross(t time.Time, base string, quotes []Quote) []ExchangeRate {
	one := decimal.NewFromInt(1)
	all := make([]Quote, 0, len(quotes)+1)
	seen := make(map[string]struct{}, len(quotes)+1)

	all = append(all, Quote{Code: base, Units: one, Amount: one})
	seen[base] = struct{}{}

	for _, q := range quotes {
		if _, ok := seen[q.Code]; ok {
			continue
		}
		seen[q.Code] = struct{}{}
		all = append(all, q)
	}

	list := make([]ExchangeRate, 0, len(all)*(len(all)-1))
	for _, from := range all {
		for _, to := range all {
			if from.Code == to.Code {
				continue
			}

			rate := from.Amount.Mul(to.Units).DivRound(from.Units.Mul(to.Amount), CrossPrecision)
			list = append(list, NewPair(t, from.Code, to.Code, rate))
		}
	}

	return list
}

var _ ExchangeRate = (*Pair)(nil)

// Pair is a plain ExchangeRate value
type Pair struct {
	time time.Time
	from string
	to   string
	rate decimal.Decimal
}

func NewPair(t time.Time, from, to string, rate decimal.Decimal) Pair {
	return Pair{time: t, from: from, to: to, rate: rate}
}

func (p Pair) Time() time.Time {
	return p.time
}

func (p Pair) From() string {
	return p.from
}

func (p Pair) To() string {
	return p.to
}

func (p Pair) Rate() decimal.Decimal {
	return p.rate
}
