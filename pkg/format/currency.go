// Package format renders amounts the way Argentine (es-AR) readers expect:
// "." as thousands separator and "," as decimal separator.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/poder-adquisitivo/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer carries the es-AR separators. Printers are safe to share; each
// call formats into its own buffer.
var printer = message.NewPrinter(language.MustParse(constants.Locale))

// Fixed returns the value rounded to the given number of decimals using
// plain "." notation without grouping (e.g. "150.00").
func Fixed(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "-"
	}
	if decimals < 0 {
		decimals = 0
	}
	s := decimal.NewFromFloat(value).StringFixed(int32(decimals))
	if isNegativeZero(s) {
		return s[1:]
	}
	return s
}

// Currency returns a currency string with a peso sign and es-AR separators
// (e.g., "-$1.234,56").
func Currency(amount float64) string {
	formatted := Number(math.Abs(amount), 2)
	if amount < 0 && formatted != Number(0, 2) {
		return "-$" + formatted
	}
	return "$" + formatted
}

// USD returns a dollar amount prefixed with "USD " (e.g., "USD 1.234,56").
func USD(amount float64) string {
	return "USD " + Number(amount, 2)
}

// Percent returns a percentage with es-AR separators (e.g., "150,00%").
func Percent(value float64, decimals int) string {
	return Number(value, decimals) + "%"
}

// Number returns the value rounded to decimals with es-AR thousands and
// decimal separators (e.g., "-1.234,56"). Values are rounded half away from
// zero in decimal before printing.
func Number(value float64, decimals int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "-"
	}
	if decimals < 0 {
		decimals = 0
	}
	rounded := decimal.NewFromFloat(value).Round(int32(decimals))
	if rounded.IsZero() {
		rounded = decimal.Zero
	}
	f, _ := rounded.Float64()
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), f)
}

func isNegativeZero(s string) bool {
	return strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == ""
}
