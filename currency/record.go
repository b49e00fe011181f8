package currency

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// record is a raw currency definition as stored in the json sources
type record struct {
	Key                  *string  `json:"key,omitempty"`
	Priority             int      `json:"priority"`
	ISOCode              string   `json:"iso_code"`
	Name                 string   `json:"name"`
	Symbol               string   `json:"symbol"`
	AlternateSymbols     []string `json:"alternate_symbols"`
	Subunit              string   `json:"subunit"`
	SubunitToUnit        int64    `json:"subunit_to_unit"`
	SymbolFirst          bool     `json:"symbol_first"`
	HTMLEntity           string   `json:"html_entity"`
	DecimalMark          string   `json:"decimal_mark"`
	ThousandsSeparator   string   `json:"thousands_separator"`
	ISONumeric           string   `json:"iso_numeric"`
	SmallestDenomination int      `json:"smallest_denomination"`
}

// currency validates the record and turns it into a Currency with the given key
func (r record) currency(key string) (Currency, error) {
	if r.Key != nil && fold(*r.Key) != key {
		return Currency{}, fmt.Errorf("%w: has %q, want %q", ErrKeyConflict, *r.Key, key)
	}

	switch {
	case r.ISOCode == "":
		return Currency{}, fmt.Errorf("%w: %s: empty iso_code", ErrInvalidRecord, key)
	case r.SubunitToUnit < 1:
		return Currency{}, fmt.Errorf("%w: %s: subunit_to_unit %d < 1", ErrInvalidRecord, key, r.SubunitToUnit)
	case r.DecimalMark == "":
		return Currency{}, fmt.Errorf("%w: %s: empty decimal_mark", ErrInvalidRecord, key)
	case r.DecimalMark == r.ThousandsSeparator:
		return Currency{}, fmt.Errorf("%w: %s: decimal_mark equals thousands_separator", ErrInvalidRecord, key)
	}

	return Currency{
		Key:                  key,
		ISOCode:              r.ISOCode,
		Priority:             r.Priority,
		Name:                 r.Name,
		Symbol:               r.Symbol,
		AlternateSymbols:     r.AlternateSymbols,
		Subunit:              r.Subunit,
		SubunitToUnit:        r.SubunitToUnit,
		SymbolFirst:          r.SymbolFirst,
		HTMLEntity:           r.HTMLEntity,
		DecimalMark:          r.DecimalMark,
		ThousandsSeparator:   r.ThousandsSeparator,
		ISONumeric:           r.ISONumeric,
		SmallestDenomination: r.SmallestDenomination,
	}, nil
}

func readRecords(fsys fs.FS, fileName string) (map[string]record, error) {
	b, err := fs.ReadFile(fsys, fileName)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileName, err)
	}

	var records map[string]record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("json unmarshal %s: %w", fileName, err)
	}

	return records, nil
}

func readIDs(fsys fs.FS, fileName string) (map[string]int, error) {
	b, err := fs.ReadFile(fsys, fileName)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileName, err)
	}

	var ids map[string]int
	if err := json.Unmarshal(b, &ids); err != nil {
		return nil, fmt.Errorf("json unmarshal %s: %w", fileName, err)
	}

	return ids, nil
}
