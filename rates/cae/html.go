package cae

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

var (
	ErrHTMLNotValid      = errors.New("html not valid")
	ErrAttributeNotValid = errors.New("attr is not valid")
)

const (
	dateSelector = "#ratesDatePicker > h3 > span > span"
	rowSelector  = "#ratesDateTable tbody tr"
	datePrefix   = "Date"
)

func parseHTML(b []byte) (aedDailyRates, error) {
	var daily aedDailyRates

	root, err := html.Parse(bytes.NewReader(b))
	if err != nil {
		return daily, fmt.Errorf("%w: html parse: %v", ErrHTMLNotValid, err)
	}

	doc := goquery.NewDocumentFromNode(root)

	date := strings.TrimSpace(doc.Find(dateSelector).First().Text())
	date = strings.TrimSpace(strings.TrimPrefix(date, datePrefix))

	t, err := time.Parse("02-01-2006", date)
	if err != nil {
		return daily, fmt.Errorf("%w: date %q", ErrAttributeNotValid, date)
	}
	daily.time = t

	var rowErr error
	doc.Find(rowSelector).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			rowErr = fmt.Errorf("%w: row has %d cells", ErrAttributeNotValid, cells.Length())
			return false
		}

		name := strings.TrimSpace(cells.Eq(0).Text())
		if name == "" {
			rowErr = fmt.Errorf("%w: empty currency name", ErrAttributeNotValid)
			return false
		}

		value := strings.TrimSpace(cells.Eq(1).Text())
		rate, err := decimal.NewFromString(value)
		if err != nil || !rate.IsPositive() {
			rowErr = fmt.Errorf("%w: %s rate %q", ErrAttributeNotValid, name, value)
			return false
		}

		code, ok := codeOf(name)
		if !ok {
			return true
		}

		daily.rates = append(daily.rates, aedExchangeRate{code: code, rate: rate})

		return true
	})

	if rowErr != nil {
		return aedDailyRates{}, rowErr
	}

	return daily, nil
}
