// Package money formats domestic-currency amounts for user-facing text.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale used for all user-facing amounts.
var Locale = language.Turkish

// Whole formats d rounded to an integer with locale grouping, e.g. "6.000".
func Whole(d decimal.Decimal) string {
	p := message.NewPrinter(Locale)
	return p.Sprintf("%d", d.Round(0).IntPart())
}

// Fixed2 formats d with two decimals in the locale, e.g. "17.060,00".
func Fixed2(d decimal.Decimal) string {
	p := message.NewPrinter(Locale)
	return p.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// TL appends the domestic currency suffix to a whole amount.
func TL(d decimal.Decimal) string {
	return Whole(d) + " TL"
}
