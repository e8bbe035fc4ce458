package services

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD formats an amount as US currency with thousands separators and
// exactly two decimal places, e.g. 1234567.8 -> "$1,234,567.80".
func FormatUSD(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatWholeUSD formats an already-ceiled price field (final, mobilization
// fee, net terms) without decimal places.
func FormatWholeUSD(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}
	raw := fmt.Sprintf("%.0f", amount)
	result := "$" + groupThousands(raw)
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatHours renders an hours figure: whole values without decimals,
// fractional values with two.
func FormatHours(val float64) string {
	if val == math.Trunc(val) {
		return fmt.Sprintf("%.0f", val)
	}
	return fmt.Sprintf("%.2f", val)
}
