// Package format renders money, percentages and counts for reports and the terminal.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is the currency prefix used when none is configured.
const DefaultSymbol = "R$"

// Formatter formats numbers with thousands separators.
type Formatter struct {
	printer *message.Printer
	Symbol  string
}

// New creates a Formatter using symbol as currency prefix.
func New(symbol string) *Formatter {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return &Formatter{
		Symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

// Number formats d with 2 decimals and thousands separators, e.g. "1,234.56".
func (f *Formatter) Number(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	intPart, err := decimal.NewFromString(whole)
	if err != nil || !intPart.IsInteger() {
		return sign + fixed
	}
	return sign + f.printer.Sprintf("%d", intPart.IntPart()) + "." + frac
}

// Money formats d as "R$ 1,234.56".
func (f *Formatter) Money(d decimal.Decimal) string {
	return f.Symbol + " " + f.Number(d)
}

// Percent formats p with one decimal place, e.g. "12.3%".
func (f *Formatter) Percent(p float64) string {
	return f.printer.Sprintf("%.1f%%", p)
}

// Count formats n with thousands separators.
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}
