package services

import "testing"

func TestAggregateQuote_SubtotalAndUnits(t *testing.T) {
	items := []LineItemCalc{
		{ProductTotal: 960, Quantity: 10},
		{ProductTotal: 500, Quantity: 20},
	}
	got := AggregateQuote(items, QuoteSettings{})

	if !floatClose(got.ProductsSubtotal, 1460) {
		t.Errorf("ProductsSubtotal = %f, want 1460", got.ProductsSubtotal)
	}
	if got.TotalUnits != 30 {
		t.Errorf("TotalUnits = %d, want 30", got.TotalUnits)
	}
	if !floatClose(got.TotalQuote, 1460) {
		t.Errorf("TotalQuote = %f, want 1460", got.TotalQuote)
	}
}

func TestAggregateQuote_DiscountOnProductsOnly(t *testing.T) {
	items := []LineItemCalc{{ProductTotal: 1000, Quantity: 10}}
	got := AggregateQuote(items, QuoteSettings{
		DiscountPercent: 10,
		ShippingCost:    100,
	})

	// The discount comes off the products subtotal, never off shipping.
	if !floatClose(got.DiscountAmount, 100) {
		t.Errorf("DiscountAmount = %f, want 100", got.DiscountAmount)
	}
	if !floatClose(got.TotalQuote, 1000) {
		t.Errorf("TotalQuote = %f, want 1000", got.TotalQuote)
	}
}

func TestAggregateQuote_TariffCombinesOrderAndItems(t *testing.T) {
	items := []LineItemCalc{
		{ProductTotal: 500, Quantity: 5, TariffAmount: 50},
		{ProductTotal: 300, Quantity: 3, TariffAmount: 30},
	}
	got := AggregateQuote(items, QuoteSettings{TariffCost: 20})

	if !floatClose(got.TariffTotal, 100) {
		t.Errorf("TariffTotal = %f, want 100", got.TariffTotal)
	}
	if !floatClose(got.TotalQuote, 900) {
		t.Errorf("TotalQuote = %f, want 900", got.TotalQuote)
	}
}

func TestAggregateQuote_CreditCardFee(t *testing.T) {
	items := []LineItemCalc{{ProductTotal: 1000, Quantity: 10}}

	got := AggregateQuote(items, QuoteSettings{
		ShippingCost: 50,
		CCFeeEnabled: true,
		CCFeePercent: 2.9,
	})
	// Fee base is the running total after discount, shipping and tariff.
	if !floatClose(got.CCFeeAmount, 30.45) {
		t.Errorf("CCFeeAmount = %f, want 30.45", got.CCFeeAmount)
	}
	if !floatClose(got.TotalQuote, 1080.45) {
		t.Errorf("TotalQuote = %f, want 1080.45", got.TotalQuote)
	}

	disabled := AggregateQuote(items, QuoteSettings{ShippingCost: 50, CCFeePercent: 2.9})
	if !floatClose(disabled.CCFeeAmount, 0) {
		t.Errorf("CCFeeAmount = %f, want 0 when disabled", disabled.CCFeeAmount)
	}
}

func TestAggregateQuote_CharmRounding(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		enabled bool
		want    float64
	}{
		{"whole_dollar", 100, true, 99},
		{"with_cents", 100.50, true, 100.50},
		{"disabled", 100, false, 100},
		{"zero_total", 0, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []LineItemCalc{{ProductTotal: tt.total, Quantity: 1}}
			got := AggregateQuote(items, QuoteSettings{CharmRounding: tt.enabled})
			if !floatClose(got.TotalQuote, tt.want) {
				t.Errorf("TotalQuote = %f, want %f", got.TotalQuote, tt.want)
			}
		})
	}
}

func TestAggregateQuote_FullPipeline(t *testing.T) {
	items := []LineItemCalc{
		{ProductTotal: 960, Quantity: 10, TariffAmount: 96},
		{ProductTotal: 500, Quantity: 20},
	}
	got := AggregateQuote(items, QuoteSettings{
		ShippingCost:        85,
		TariffCost:          19,
		DiscountPercent:     5,
		DiscountDescription: "NGO Discount (5%)",
		CCFeeEnabled:        true,
		CCFeePercent:        2.9,
		CharmRounding:       true,
	})

	if !floatClose(got.DiscountAmount, 73) {
		t.Errorf("DiscountAmount = %f, want 73", got.DiscountAmount)
	}
	if !floatClose(got.TariffTotal, 115) {
		t.Errorf("TariffTotal = %f, want 115", got.TariffTotal)
	}
	if !floatClose(got.TotalBeforeCCFee, 1587) {
		t.Errorf("TotalBeforeCCFee = %f, want 1587", got.TotalBeforeCCFee)
	}
	if !floatClose(got.CCFeeAmount, 46.023) {
		t.Errorf("CCFeeAmount = %f, want 46.023", got.CCFeeAmount)
	}
	if !floatClose(got.TotalQuote, 1633.023) {
		t.Errorf("TotalQuote = %f, want 1633.023", got.TotalQuote)
	}
	if !floatClose(got.AveragePerUnit, 1633.023/30) {
		t.Errorf("AveragePerUnit = %f, want %f", got.AveragePerUnit, 1633.023/30)
	}
}

func TestAggregateQuote_EmptyWithCharmRounding(t *testing.T) {
	// An order with no items totals $0.00 and must stay there, never -$1.00.
	got := AggregateQuote(nil, QuoteSettings{CharmRounding: true})
	if !floatClose(got.TotalQuote, 0) {
		t.Errorf("TotalQuote = %f, want 0", got.TotalQuote)
	}
}

func TestAggregateQuote_Empty(t *testing.T) {
	got := AggregateQuote(nil, QuoteSettings{})
	if !floatClose(got.TotalQuote, 0) {
		t.Errorf("TotalQuote = %f, want 0", got.TotalQuote)
	}
	if !floatClose(got.AveragePerUnit, 0) {
		t.Errorf("AveragePerUnit = %f, want 0", got.AveragePerUnit)
	}
}

func TestParsePresetDiscount(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"NGO Discount (5%)", 5},
		{"Wholesale Partner (12.5%)", 12.5},
		{"No percent here", 0},
		{"Unclosed (5", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := ParsePresetDiscount(tt.label); !floatClose(got, tt.want) {
			t.Errorf("ParsePresetDiscount(%q) = %f, want %f", tt.label, got, tt.want)
		}
	}
}
