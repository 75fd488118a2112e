package analysis

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups digits the way the analysis output is displayed,
// e.g. "$45,000.00".
var printer = message.NewPrinter(language.English)

// money formats an amount for human-readable output.
func money(amount decimal.Decimal) string {
	return printer.Sprintf("$%.2f", amount.InexactFloat64())
}
