package export

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Amount formats money for display with the locale's digit grouping,
// e.g. ¥19,200.00.
func Amount(lang language.Tag, d decimal.Decimal) string {
	p := message.NewPrinter(lang)
	return "¥" + p.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}
