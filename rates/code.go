package rates

import (
	"errors"
	"fmt"

	"golang.org/x/text/currency"
)

var ErrUnknownCode = errors.New("unknown currency code")

// ParseCode accepts ISO 4217 codes only and returns them in upper case
func ParseCode(s string) (string, error) {
	unit, err := currency.ParseISO(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCode, s)
	}

	return unit.String(), nil
}
