package cae

import (
	"strings"
	"time"

	"github.com/robotomize/gocy/internal/strutil"
	"github.com/robotomize/gocy/rates"
	"github.com/shopspring/decimal"
)

// aedDailyRates dirham rates of a single day
type aedDailyRates struct {
	time  time.Time
	rates []aedExchangeRate
}

// aedExchangeRate one unit of code costs rate dirhams
type aedExchangeRate struct {
	code string
	rate decimal.Decimal
}

// names of the currencies as the central bank spells them
var names = map[string]string{
	"us dollar":          "USD",
	"euro":               "EUR",
	"sterling pound":     "GBP",
	"british pound":      "GBP",
	"japanese yen":       "JPY",
	"swiss franc":        "CHF",
	"canadian dollar":    "CAD",
	"australian dollar":  "AUD",
	"new zealand dollar": "NZD",
	"chinese yuan":       "CNY",
	"hong kong dollar":   "HKD",
	"singapore dollar":   "SGD",
	"indian rupee":       "INR",
	"pakistani rupee":    "PKR",
	"bangladesh taka":    "BDT",
	"saudi riyal":        "SAR",
	"qatari riyal":       "QAR",
	"omani rial":         "OMR",
	"kuwaiti dinar":      "KWD",
	"bahrani dinar":      "BHD",
	"bahraini dinar":     "BHD",
	"jordanian dinar":    "JOD",
	"egyptian pound":     "EGP",
	"turkish lira":       "TRY",
	"russia rouble":      "RUB",
	"russian ruble":      "RUB",
	"swedish krona":      "SEK",
	"norwegian krone":    "NOK",
	"danish krone":       "DKK",
	"czech koruna":       "CZK",
	"polish zloty":       "PLN",
	"hungarian forint":   "HUF",
	"brazilian real":     "BRL",
	"mexican peso":       "MXN",
	"argentine peso":     "ARS",
	"south african rand": "ZAR",
	"thai baht":          "THB",
	"malaysian ringgit":  "MYR",
	"south korean won":   "KRW",
	"philippine peso":    "PHP",
	"indonesian rupiah":  "IDR",
}

// codeOf resolves a table cell to an ISO code, the cell holds either a name or the code itself
func codeOf(cell string) (string, bool) {
	name := strings.ToLower(strutil.RemoveExtraSpaces(cell))
	if code, ok := names[name]; ok {
		return code, true
	}

	code, err := rates.ParseCode(name)
	if err != nil {
		return "", false
	}

	return code, true
}
