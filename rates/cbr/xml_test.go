package cbr

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"
)

const testDailyXML = `<?xml version="1.0" encoding="windows-1251"?>
<ValCurs Date="30.07.2021" name="Foreign Currency Market">
    <Valute ID="R01010">
        <NumCode>036</NumCode>
        <CharCode>AUD</CharCode>
        <Nominal>1</Nominal>
        <Name>Австралийский доллар</Name>
        <Value>54,1609</Value>
    </Valute>
    <Valute ID="R01820">
        <NumCode>392</NumCode>
        <CharCode>JPY</CharCode>
        <Nominal>100</Nominal>
        <Name>Японских иен</Name>
        <Value>66,4512</Value>
    </Valute>
    <Valute ID="R01589">
        <NumCode>960</NumCode>
        <CharCode>XYZ</CharCode>
        <Nominal>1</Nominal>
        <Name>СДР (специальные права заимствования)</Name>
        <Value>104,1502</Value>
    </Valute>
</ValCurs>`

func encodeWindows1251(t *testing.T, s string) []byte {
	t.Helper()

	b, err := charmap.Windows1251.NewEncoder().String(s)
	if err != nil {
		t.Fatalf("encode windows-1251: %v", err)
	}

	return []byte(b)
}

func TestDecodeXML(t *testing.T) {
	t.Parallel()

	daily, err := decodeXML(encodeWindows1251(t, testDailyXML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if diff := cmp.Diff(time.Date(2021, 7, 30, 0, 0, 0, 0, time.UTC), daily.time); diff != "" {
		t.Errorf("bad time (-want, +got): %s", diff)
	}

	var got []string
	for _, r := range daily.rates {
		got = append(got, r.nominal.String()+" "+r.code+"="+r.value.String())
	}

	if diff := cmp.Diff([]string{"1 AUD=54.1609", "100 JPY=66.4512"}, got); diff != "" {
		t.Errorf("mismatch (-want, +got): %s", diff)
	}
}

func TestDecodeXML_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		err   error
		bytes string
	}{
		{
			name: "test_invalid_rate_zero",
			err:  ErrAttributeNotValid,
			bytes: `<ValCurs Date="30.08.2021" name="Foreign Currency Market">
    <Valute ID="R01235">
        <CharCode>USD</CharCode>
        <Nominal>1</Nominal>
        <Value>0,0</Value>
    </Valute>
</ValCurs>`,
		},
		{
			name: "test_invalid_rate_negative",
			err:  ErrAttributeNotValid,
			bytes: `<ValCurs Date="30.08.2021" name="Foreign Currency Market">
    <Valute ID="R01235">
        <CharCode>USD</CharCode>
        <Nominal>1</Nominal>
        <Value>-1</Value>
    </Valute>
</ValCurs>`,
		},
		{
			name: "test_invalid_rate_text",
			err:  ErrAttributeNotValid,
			bytes: `<ValCurs Date="30.08.2021" name="Foreign Currency Market">
    <Valute ID="R01235">
        <CharCode>USD</CharCode>
        <Nominal>1</Nominal>
        <Value>dollar</Value>
    </Valute>
</ValCurs>`,
		},
		{
			name: "test_invalid_nominal",
			err:  ErrAttributeNotValid,
			bytes: `<ValCurs Date="30.08.2021" name="Foreign Currency Market">
    <Valute ID="R01235">
        <CharCode>USD</CharCode>
        <Nominal>0</Nominal>
        <Value>72,5</Value>
    </Valute>
</ValCurs>`,
		},
		{
			name: "test_invalid_date",
			err:  ErrAttributeNotValid,
			bytes: `<ValCurs Date="2021-08-30" name="Foreign Currency Market">
    <Valute ID="R01235">
        <CharCode>USD</CharCode>
        <Nominal>1</Nominal>
        <Value>72,5</Value>
    </Valute>
</ValCurs>`,
		},
		{
			name: "test_invalid_markup",
			err:  ErrDecodeToken,
			bytes: `<ValCurs Date="30.08.2021" name="Foreign Currency Market">
    <Valute ID="R01235">
        <CharCode>USD</CharCode>
</ValCurs>`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := decodeXML([]byte(tc.bytes)); !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}
