package ecb

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/robotomize/gocy/rates"
	"github.com/shopspring/decimal"
)

const xmlCubeElement = "Cube"

// decodeXML returns the decoding function. decodeXML parses xml in streaming mode and returns currency pairs by date
func decodeXML() decodeFunc {
	return func(b []byte, iterFunc func(daily euroDailyRates) error) error {
		if iterFunc == nil {
			return errMissingIterFunc
		}
		decoder := xml.NewDecoder(bytes.NewReader(b))
	TokenLoop:
		for {
			token, err := decoder.Token()
			if err != nil {
				if errors.Is(err, io.EOF) {
					break TokenLoop
				}

				var syntaxErr *xml.SyntaxError
				if errors.As(err, &syntaxErr) {
					return fmt.Errorf("%w: %v", ErrDecodeToken, syntaxErr.Error())
				}

				return fmt.Errorf("decode token: %w", err)
			}

			tp, ok := token.(xml.StartElement)
			if !ok || tp.Name.Local != xmlCubeElement || len(tp.Attr) == 0 {
				continue TokenLoop
			}

			// a Cube with a time attribute holds the rates of one day
			var node xmlNode
			if err := decoder.DecodeElement(&node, &tp); err != nil {
				var syntaxErr *xml.SyntaxError
				switch {
				case errors.As(err, &syntaxErr):
					return fmt.Errorf("%w: %v", ErrDecodeToken, syntaxErr.Error())
				case errors.Is(err, ErrAttributeNotValid):
					return ErrAttributeNotValid
				default:
					return fmt.Errorf("decode element: %w", err)
				}
			}

			daily := euroDailyRates{
				time:  time.Time(node.Time),
				rates: make([]euroExchangeRate, 0, len(node.Rates)),
			}

			for _, r := range node.Rates {
				code, err := rates.ParseCode(r.Currency)
				if err != nil {
					continue
				}

				daily.rates = append(daily.rates, euroExchangeRate{
					code: code,
					rate: decimal.Decimal(r.Rate),
				})
			}

			if err := iterFunc(daily); err != nil {
				return fmt.Errorf("handle func: %w", err)
			}
		}

		return nil
	}
}

var _ xml.UnmarshalerAttr = (*xmlAttrTime)(nil)

type xmlAttrTime time.Time

func (x *xmlAttrTime) UnmarshalXMLAttr(attr xml.Attr) error {
	t, err := time.Parse("2006-01-02", attr.Value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAttributeNotValid, err)
	}

	*x = xmlAttrTime(t)

	return nil
}

var _ xml.UnmarshalerAttr = (*xmlRateAttr)(nil)

type xmlRateAttr decimal.Decimal

func (i *xmlRateAttr) UnmarshalXMLAttr(attr xml.Attr) error {
	rate, err := parseRate(attr.Value)
	if err != nil {
		return fmt.Errorf("%w: %q", err, attr.Value)
	}

	*i = xmlRateAttr(rate)

	return nil
}

type xmlNode struct {
	Time  xmlAttrTime `xml:"time,attr"`
	Rates []struct {
		Currency string      `xml:"currency,attr"`
		Rate     xmlRateAttr `xml:"rate,attr"`
	} `xml:"Cube"`
}
