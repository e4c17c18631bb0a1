package core

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyPrinter = message.NewPrinter(language.Turkish)

// FormatCurrency renders an amount as whole lira with tr-TR digit
// grouping, e.g. FormatCurrency(149.3) == "150 ₺" and
// FormatCurrency(1234) == "1.234 ₺". NaN and infinities format as 0.
// Total function: it never fails.
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	whole := int64(math.Ceil(amount))
	return currencyPrinter.Sprintf("%v ₺", number.Decimal(whole))
}
