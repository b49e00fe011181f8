package ecb

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/robotomize/gocy/rates"
)

const csvDateColumn = "Date"

func decodeCSV() decodeFunc {
	return func(b []byte, iterFunc func(daily euroDailyRates) error) error {
		if iterFunc == nil {
			return errMissingIterFunc
		}
		decoder := csv.NewReader(bytes.NewReader(b))
		var header []string
	TokenLoop:
		for {
			line, err := decoder.Read()
			if err != nil {
				if errors.Is(err, io.EOF) {
					break TokenLoop
				}

				var parseError *csv.ParseError
				if errors.As(err, &parseError) {
					return fmt.Errorf("%w: %v", ErrDecodeToken, parseError.Error())
				}

				return fmt.Errorf("csv decoder read: %w", err)
			}

			if header == nil {
				for n, column := range line {
					token := strings.Trim(column, " \t")
					if n == 0 && token != csvDateColumn {
						return fmt.Errorf("%w: first column %q", ErrAttributeNotValid, token)
					}
					header = append(header, token)
				}
				continue TokenLoop
			}

			var daily euroDailyRates

			for n, column := range line {
				token := strings.Trim(column, " \t")
				if token == "" || header[n] == "" {
					continue
				}

				if n == 0 {
					t, err := time.Parse("02 January 2006", token)
					if err != nil {
						return fmt.Errorf("%w: %v", ErrAttributeNotValid, err)
					}

					daily.time = t
					continue
				}

				code, err := rates.ParseCode(header[n])
				if err != nil {
					continue
				}

				rate, err := parseRate(token)
				if err != nil {
					return fmt.Errorf("%w: %s %q", err, code, token)
				}

				daily.rates = append(daily.rates, euroExchangeRate{code: code, rate: rate})
			}

			if err := iterFunc(daily); err != nil {
				return fmt.Errorf("handle func: %w", err)
			}
		}

		return nil
	}
}
