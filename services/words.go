package services

import (
	"math"
	"strings"
)

// AmountToWords converts a dollar amount to English words for invoice and
// purchase order totals.
// Example: 1049.58 → "One Thousand Forty Nine Dollars and Fifty Eight Cents Only"
func AmountToWords(amount float64) string {
	if amount < 0 {
		return "Negative " + AmountToWords(-amount)
	}

	dollars := int64(amount)
	cents := int64(math.Round((amount - float64(dollars)) * 100))
	if cents == 100 {
		dollars++
		cents = 0
	}

	var b strings.Builder
	switch dollars {
	case 0:
		b.WriteString("Zero Dollars")
	case 1:
		b.WriteString("One Dollar")
	default:
		b.WriteString(convertToWords(dollars))
		b.WriteString(" Dollars")
	}
	if cents == 1 {
		b.WriteString(" and One Cent")
	} else if cents > 0 {
		b.WriteString(" and ")
		b.WriteString(convertUnder100(cents))
		b.WriteString(" Cents")
	}
	b.WriteString(" Only")
	return b.String()
}

func convertToWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string

	if n >= 1000000000 {
		parts = append(parts, convertUnder1000(n/1000000000)+" Billion")
		n %= 1000000000
	}
	if n >= 1000000 {
		parts = append(parts, convertUnder1000(n/1000000)+" Million")
		n %= 1000000
	}
	if n >= 1000 {
		parts = append(parts, convertUnder1000(n/1000)+" Thousand")
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, convertUnder1000(n))
	}

	return strings.Join(parts, " ")
}

func convertUnder1000(n int64) string {
	if n >= 100 {
		result := ones[n/100] + " Hundred"
		if n%100 != 0 {
			result += " " + convertUnder100(n%100)
		}
		return result
	}
	return convertUnder100(n)
}

func convertUnder100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
