package cae

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const testPageFormat = `<!DOCTYPE html>
<html lang="en" dir="ltr">
<body class="path-fx-rates">
<main role="main" class="outer-wrapper">
    <div class="container">
        <div class="pb-4">
            <div class="dropdown" id="ratesDatePickerDropDown">
                <a href="#" id="ratesDatePicker" data-toggle="dropdown" aria-haspopup="true" aria-expanded="false">
                    <h3 class="m-0">
                        <span class="badge badge-light d-inline-flex align-items-center py-0">
                            <span>%s</span>
                            <i class="icon-arrow-down-2"></i>
                        </span>
                    </h3>
                </a>
            </div>
            <div class="text-muted"><small>Last updated <span class="dir-ltr">12 Aug 2021 6:00PM</span></small></div>
        </div>
        <table id="ratesDateTable" class="table table-striped table-bordered table-eibor text-center">
            <thead>
            <tr>
                <th>Currency</th>
                <th>Rate</th>
            </tr>
            </thead>
            <tbody>
            %s
            </tbody>
        </table>
    </div>
</main>
</body>
</html>
`

func testPage(date, rows string) []byte {
	return []byte(fmt.Sprintf(testPageFormat, date, rows))
}

const testRows = `
            <tr>
                <td>US Dollar</td>
                <td>3.672500</td>
            </tr>
            <tr>
                <td>Argentine   Peso</td>
                <td>0.037830</td>
            </tr>
            <tr>
                <td>Martian Credit</td>
                <td>12.5</td>
            </tr>
            <tr>
                <td>chf</td>
                <td>4.012</td>
            </tr>`

func TestParseHTML(t *testing.T) {
	t.Parallel()

	daily, err := parseHTML(testPage("Date12-08-2021", testRows))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if diff := cmp.Diff(time.Date(2021, 8, 12, 0, 0, 0, 0, time.UTC), daily.time); diff != "" {
		t.Errorf("bad time (-want, +got): %s", diff)
	}

	var got []string
	for _, r := range daily.rates {
		got = append(got, r.code+"="+r.rate.String())
	}

	if diff := cmp.Diff([]string{"USD=3.6725", "ARS=0.03783", "CHF=4.012"}, got); diff != "" {
		t.Errorf("mismatch (-want, +got): %s", diff)
	}
}

func TestParseHTML_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		html []byte
		err  error
	}{
		{
			name: "test_invalid_date",
			html: testPage("Datefds", testRows),
			err:  ErrAttributeNotValid,
		},
		{
			name: "test_missing_date",
			html: testPage("", testRows),
			err:  ErrAttributeNotValid,
		},
		{
			name: "test_invalid_rate",
			html: testPage("Date12-08-2021", `<tr><td>US Dollar</td><td>3,67</td></tr>`),
			err:  ErrAttributeNotValid,
		},
		{
			name: "test_negative_rate",
			html: testPage("Date12-08-2021", `<tr><td>US Dollar</td><td>-3.67</td></tr>`),
			err:  ErrAttributeNotValid,
		},
		{
			name: "test_empty_name",
			html: testPage("Date12-08-2021", `<tr><td> </td><td>3.67</td></tr>`),
			err:  ErrAttributeNotValid,
		},
		{
			name: "test_missing_rate_cell",
			html: testPage("Date12-08-2021", `<tr><td>US Dollar</td></tr>`),
			err:  ErrAttributeNotValid,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := parseHTML(tc.html); !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		cell     string
		expected string
		ok       bool
	}{
		{name: "test_name", cell: "Euro", expected: "EUR", ok: true},
		{name: "test_name_spaces", cell: " Japanese \n Yen ", expected: "JPY", ok: true},
		{name: "test_code", cell: "sek", expected: "SEK", ok: true},
		{name: "test_unknown", cell: "Gold Ounce"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			code, ok := codeOf(tc.cell)
			if diff := cmp.Diff(tc.ok, ok); diff != "" {
				t.Fatalf("bad ok (-want, +got): %s", diff)
			}

			if diff := cmp.Diff(tc.expected, code); diff != "" {
				t.Errorf("mismatch (-want, +got): %s", diff)
			}
		})
	}
}
