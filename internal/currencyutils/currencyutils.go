// Package currencyutils provides amount parsing for the currency formats
// found in Indian bank SMS, including lakh/crore digit grouping.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyMarkerRe = regexp.MustCompile(`(?i)(₹|Rs\.?|INR)`)

// ParseAmount parses a string representation of an amount into a decimal
// value rounded to exactly 2 fractional digits. It handles formats like
// "Rs.1,00,000.00", "INR 499", "₹ 1,234.5" and plain "1234.56".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, fmt.Errorf("empty amount string")
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount '%s'", amountStr)
	}

	return amount.Round(2), nil
}

// StandardizeAmount strips currency markers, whitespace and digit-group
// separators so the result can be parsed by decimal.NewFromString.
// Indian grouping (1,00,000.00) and western grouping (100,000.00) both
// reduce to the same canonical form.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyMarkerRe.ReplaceAllString(amountStr, "")
	amountStr = strings.TrimSpace(amountStr)
	amountStr = strings.ReplaceAll(amountStr, " ", "")

	// Commas in bank SMS are always group separators; the decimal
	// separator is a dot.
	amountStr = strings.ReplaceAll(amountStr, ",", "")

	// Trailing punctuation from sentence boundaries ("Rs.499.")
	amountStr = strings.TrimRight(amountStr, ".")
	if idx := strings.Index(amountStr, "."); idx != -1 {
		if second := strings.Index(amountStr[idx+1:], "."); second != -1 {
			// Keep only the first decimal point; the rest is trailing noise.
			amountStr = amountStr[:idx+1+second]
		}
	}

	return amountStr
}

// FormatAmount formats a decimal amount for display with the rupee marker
// and exactly 2 decimal places, e.g. "Rs.1234.56".
func FormatAmount(amount decimal.Decimal) string {
	return "Rs." + amount.StringFixed(2)
}
