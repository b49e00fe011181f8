package cbr

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/robotomize/gocy/rates"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

const xmlRootElement = "ValCurs"

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "windows-1251", "cp1251":
		return charmap.Windows1251.NewDecoder().Reader(input), nil
	}

	return nil, fmt.Errorf("charset %q is not defined", charset)
}

// decodeXML parses the XML_daily document, currencies unknown to ISO 4217 are skipped
func decodeXML(b []byte) (rubDailyRates, error) {
	var daily rubDailyRates
	decoder := xml.NewDecoder(bytes.NewReader(b))
	decoder.CharsetReader = charsetReader

TokenLoop:
	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break TokenLoop
			}

			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return daily, fmt.Errorf("%w: %v", ErrDecodeToken, syntaxErr.Error())
			}

			return daily, fmt.Errorf("decode token: %w", err)
		}

		tp, ok := token.(xml.StartElement)
		if !ok || tp.Name.Local != xmlRootElement {
			continue TokenLoop
		}

		var node xmlNode
		if err := decoder.DecodeElement(&node, &tp); err != nil {
			var syntaxErr *xml.SyntaxError
			switch {
			case errors.As(err, &syntaxErr):
				return daily, fmt.Errorf("%w: %v", ErrDecodeToken, syntaxErr.Error())
			case errors.Is(err, ErrAttributeNotValid):
				return daily, err
			default:
				return daily, fmt.Errorf("decode element: %w", err)
			}
		}

		daily.time = time.Time(node.Time)
		daily.rates = make([]rubExchangeRate, 0, len(node.Rates))

		for _, r := range node.Rates {
			value, err := parsePositive(r.Value)
			if err != nil {
				return daily, fmt.Errorf("%w: %s value %q", err, r.Currency, r.Value)
			}

			nominal := decimal.NewFromInt(1)
			if strings.TrimSpace(r.Nominal) != "" {
				if nominal, err = parsePositive(r.Nominal); err != nil {
					return daily, fmt.Errorf("%w: %s nominal %q", err, r.Currency, r.Nominal)
				}
			}

			code, err := rates.ParseCode(strings.TrimSpace(r.Currency))
			if err != nil {
				continue
			}

			daily.rates = append(daily.rates, rubExchangeRate{
				code:    code,
				nominal: nominal,
				value:   value,
			})
		}
	}

	return daily, nil
}

// parsePositive accepts both comma and dot as the decimal mark
func parsePositive(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Decimal{}, ErrAttributeNotValid
	}

	if !d.IsPositive() {
		return decimal.Decimal{}, ErrAttributeNotValid
	}

	return d, nil
}

var _ xml.UnmarshalerAttr = (*xmlAttrTime)(nil)

type xmlAttrTime time.Time

func (x *xmlAttrTime) UnmarshalXMLAttr(attr xml.Attr) error {
	t, err := time.Parse("02.01.2006", attr.Value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAttributeNotValid, err)
	}

	*x = xmlAttrTime(t)

	return nil
}

type xmlCcyRate struct {
	Currency string `xml:"CharCode"`
	Nominal  string `xml:"Nominal"`
	Value    string `xml:"Value"`
}

type xmlNode struct {
	Time  xmlAttrTime  `xml:"Date,attr"`
	Rates []xmlCcyRate `xml:"Valute"`
}
