// Package money formats decimal amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatGBP renders amount as pounds with thousands separators and two
// decimal places: £1,234.56, -£12.00.
func FormatGBP(amount decimal.Decimal) string {
	return Format(amount, "£")
}

// Format renders amount with symbol, rounding half away from zero to pence
func Format(amount decimal.Decimal, symbol string) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + symbol + group(whole) + "." + frac
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
