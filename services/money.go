// Package services provides the pricing core and document generators for
// catalog quotes.
package services

import (
	"fmt"
	"strconv"
	"strings"
)

// CleanPrice converts a raw spreadsheet price cell like "$48.00" or
// "$1,500.00" into a float. It strips the currency symbol, thousands
// separators and surrounding whitespace. An empty or unparseable cell
// returns (0, false) — never zero-as-a-price.
func CleanPrice(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || strings.EqualFold(cleaned, "NA") || cleaned == "-" {
		return 0, false
	}
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CleanPercent converts a raw percentage cell like "7.5%" or "7.5" into a
// float. Same defensive rules as CleanPrice.
func CleanPercent(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(cleaned, "%")
	return CleanPrice(cleaned)
}

// FormatUSD formats an amount as "$1,234.56" with comma thousands grouping
// and exactly two decimal places.
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

	result := "$" + applyThousandsGrouping(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// applyThousandsGrouping inserts commas into an integer string every 3
// digits from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}
