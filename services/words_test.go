package services

import "testing"

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "Zero Dollars Only"},
		{1, "One Dollar Only"},
		{5, "Five Dollars Only"},
		{42, "Forty Two Dollars Only"},
		{100, "One Hundred Dollars Only"},
		{115, "One Hundred Fifteen Dollars Only"},
		{1049.58, "One Thousand Forty Nine Dollars and Fifty Eight Cents Only"},
		{1000000, "One Million Dollars Only"},
		{2500000.01, "Two Million Five Hundred Thousand Dollars and One Cent Only"},
		{0.25, "Zero Dollars and Twenty Five Cents Only"},
		{99.999, "One Hundred Dollars Only"},
	}
	for _, tt := range tests {
		if got := AmountToWords(tt.amount); got != tt.want {
			t.Errorf("AmountToWords(%f) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestAmountToWords_Negative(t *testing.T) {
	if got := AmountToWords(-5); got != "Negative Five Dollars Only" {
		t.Errorf("AmountToWords(-5) = %q", got)
	}
}
