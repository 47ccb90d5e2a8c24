package services

import (
	"math"
	"strconv"
	"strings"
)

// DefaultCCFeePercent is the credit card processing rate applied when the
// quote does not override it.
const DefaultCCFeePercent = 2.9

// QuoteSettings are the order-level knobs applied on top of the line items.
type QuoteSettings struct {
	ShippingCost        float64
	TariffCost          float64 // order-level flat tariff, added to per-item tariffs
	DiscountPercent     float64
	DiscountDescription string
	CCFeeEnabled        bool
	CCFeePercent        float64
	CharmRounding       bool
}

// QuoteTotals is the aggregated result for a whole quote. Each pipeline
// stage below fills in its own fields and leaves earlier ones untouched.
type QuoteTotals struct {
	ProductsSubtotal    float64
	DiscountPercent     float64
	DiscountDescription string
	DiscountAmount      float64
	ShippingCost        float64
	TariffTotal         float64
	TotalBeforeCCFee    float64
	CCFeePercent        float64
	CCFeeAmount         float64
	TotalQuote          float64
	TotalUnits          int
	AveragePerUnit      float64
}

// AggregateQuote folds the line items and order settings into the final
// quote total. The stage order is fixed and load-bearing:
// subtotal → discount → shipping/tariff → credit card fee → charm rounding.
func AggregateQuote(items []LineItemCalc, s QuoteSettings) QuoteTotals {
	t := sumProducts(items)
	t = applyDiscount(t, s)
	t = addShippingAndTariff(t, s, items)
	t = applyCreditCardFee(t, s)
	t = applyCharmRounding(t, s)

	if t.TotalUnits > 0 {
		t.AveragePerUnit = t.TotalQuote / float64(t.TotalUnits)
	}
	return t
}

// sumProducts fills ProductsSubtotal and TotalUnits from the line items.
func sumProducts(items []LineItemCalc) QuoteTotals {
	var t QuoteTotals
	for _, item := range items {
		t.ProductsSubtotal += item.ProductTotal
		t.TotalUnits += item.Quantity
	}
	return t
}

// applyDiscount computes DiscountAmount from ProductsSubtotal alone. The
// discount never touches shipping, tariff or the credit card fee base.
func applyDiscount(t QuoteTotals, s QuoteSettings) QuoteTotals {
	t.DiscountPercent = s.DiscountPercent
	t.DiscountDescription = s.DiscountDescription
	t.DiscountAmount = t.ProductsSubtotal * s.DiscountPercent / 100
	return t
}

// addShippingAndTariff fills ShippingCost, TariffTotal and TotalBeforeCCFee.
// TariffTotal is the order's flat tariff plus every line item's own
// per-product tariff amount.
func addShippingAndTariff(t QuoteTotals, s QuoteSettings, items []LineItemCalc) QuoteTotals {
	t.ShippingCost = s.ShippingCost
	t.TariffTotal = s.TariffCost
	for _, item := range items {
		t.TariffTotal += item.TariffAmount
	}
	t.TotalBeforeCCFee = (t.ProductsSubtotal - t.DiscountAmount) + t.ShippingCost + t.TariffTotal
	return t
}

// applyCreditCardFee computes the processing fee on TotalBeforeCCFee and
// fills TotalQuote.
func applyCreditCardFee(t QuoteTotals, s QuoteSettings) QuoteTotals {
	if s.CCFeeEnabled {
		t.CCFeePercent = s.CCFeePercent
		t.CCFeeAmount = t.TotalBeforeCCFee * s.CCFeePercent / 100
	}
	t.TotalQuote = t.TotalBeforeCCFee + t.CCFeeAmount
	return t
}

// applyCharmRounding knocks $1 off an exact whole-dollar total
// ($60.00 → $59.00). Anything with cents passes through unchanged, as do
// totals under $1 so an empty quote never goes negative. Runs last;
// nothing downstream may recompute TotalQuote.
func applyCharmRounding(t QuoteTotals, s QuoteSettings) QuoteTotals {
	if s.CharmRounding && t.TotalQuote >= 1 && isWholeDollar(t.TotalQuote) {
		t.TotalQuote -= 1
	}
	return t
}

func isWholeDollar(v float64) bool {
	return math.Abs(v-math.Round(v)) < 1e-9
}

// ParsePresetDiscount extracts the percentage from a preset discount label
// like "NGO Discount (5%)". Returns 0 when the label carries no percentage.
func ParsePresetDiscount(label string) float64 {
	_, after, ok := strings.Cut(label, "(")
	if !ok {
		return 0
	}
	percentStr, _, ok := strings.Cut(after, "%")
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(percentStr), 64)
	if err != nil {
		return 0
	}
	return v
}
