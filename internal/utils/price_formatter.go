package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders a price with thousands separators and two decimals,
// e.g. 450000.5 -> "450,000.50". Zero renders as "-".
func FormatPrice(price decimal.Decimal) string {
	if price.IsZero() {
		return "-"
	}

	fixed := price.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if price.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
