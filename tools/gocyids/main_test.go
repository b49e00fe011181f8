package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/robotomize/gocy/currency"
	"github.com/robotomize/gocy/internal/hashio"
	"github.com/robotomize/gocy/internal/logging"
)

const testBaseJSON = `{
	"usd": {"priority": 1, "iso_code": "USD", "name": "United States Dollar", "symbol": "$",
		"subunit_to_unit": 100, "decimal_mark": ".", "thousands_separator": ","},
	"eur": {"priority": 2, "iso_code": "EUR", "name": "Euro", "symbol": "€",
		"subunit_to_unit": 100, "decimal_mark": ",", "thousands_separator": "."},
	"jpy": {"priority": 6, "iso_code": "JPY", "name": "Japanese Yen", "symbol": "¥",
		"subunit_to_unit": 1, "decimal_mark": ".", "thousands_separator": ","},
	"chf": {"priority": 7, "iso_code": "CHF", "name": "Swiss Franc", "symbol": "CHF",
		"subunit_to_unit": 100, "decimal_mark": ".", "thousands_separator": "'"}
}`

func writeAssets(t *testing.T, ids string) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		currency.BaseFile: testBaseJSON,
		currency.IDsFile:  ids,
	}

	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	return dir
}

func TestRealMain(t *testing.T) {
	t.Parallel()

	ctx := logging.WithLogger(context.Background(), logging.NewDiscardLogger())
	dir := writeAssets(t, `{"usd": 1, "eur": 5}`)

	if err := realMain(ctx, dir, hashio.MD5()); err != nil {
		t.Fatalf("real main: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, currency.IDsFile))
	if err != nil {
		t.Fatalf("read ids: %v", err)
	}

	expected := "{\n  \"usd\": 1,\n  \"eur\": 5,\n  \"chf\": 6,\n  \"jpy\": 7\n}\n"
	if diff := cmp.Diff(expected, string(b)); diff != "" {
		t.Errorf("mismatch (-want, +got): %s", diff)
	}

	if _, err := currency.Load(ctx, currency.WithFS(os.DirFS(dir))); err != nil {
		t.Errorf("assets must load without missing ids: %v", err)
	}

	if err := realMain(ctx, dir, hashio.SHA1()); !errors.Is(err, ErrHashingContentEqual) {
		t.Errorf("expected %v, got %v", ErrHashingContentEqual, err)
	}
}

func TestRealMain_InvalidAssets(t *testing.T) {
	t.Parallel()

	ctx := logging.WithLogger(context.Background(), logging.NewDiscardLogger())
	dir := writeAssets(t, `{"usd": 1, "xyz": 2}`)

	if err := realMain(ctx, dir, hashio.MD5()); !errors.Is(err, currency.ErrUnknownCurrency) {
		t.Errorf("expected %v, got %v", currency.ErrUnknownCurrency, err)
	}
}

func TestEncodeIDs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		entries  []idEntry
		expected string
	}{
		{
			name:     "test_empty",
			expected: "{\n}\n",
		},
		{
			name:     "test_single",
			entries:  []idEntry{{key: "usd", id: 1}},
			expected: "{\n  \"usd\": 1\n}\n",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b, err := encodeIDs(tc.entries)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			if diff := cmp.Diff(tc.expected, string(b)); diff != "" {
				t.Errorf("mismatch (-want, +got): %s", diff)
			}
		})
	}
}
