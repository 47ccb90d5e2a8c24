package services

import (
	"strings"
	"testing"
)

func documentItems() []LineItemCalc {
	return []LineItemCalc{
		{
			ProductName:             "Handwoven Cotton Tote",
			Partner:                 "Andes Textiles",
			ProductRef:              "REF-TOTE",
			Quantity:                40,
			TierRange:               "26-50",
			ProductSubtotal:         530,
			MarkupAmount:            530,
			CustomizationSetupTotal: 75,
			CustomizationUnitTotal:  75,
			CustomizationQty:        50,
			CustomizationPerUnit:    1.5,
			TariffAmount:            106,
			ProductTotal:            1210,
			TotalPerUnit:            30.25,
		},
		{
			ProductName:       "Rush Production",
			IsCustom:          true,
			CustomDescription: "Expedited run",
			Quantity:          1,
			ProductTotal:      500,
			TotalPerUnit:      500,
		},
	}
}

func TestBuildDocumentRows_SplitsFeeRows(t *testing.T) {
	rows := BuildDocumentRows(documentItems())

	kinds := make([]string, len(rows))
	for i, r := range rows {
		kinds[i] = r.Kind
	}
	want := []string{"product", "customization_setup", "customization", "tariff", "custom"}
	if len(kinds) != len(want) {
		t.Fatalf("got %d rows (%v), want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("row %d kind = %q, want %q", i, kinds[i], want[i])
		}
	}

	// The base product row carries subtotal plus markup, without the fees.
	if rows[0].Total != "$1,060.00" {
		t.Errorf("product Total = %q, want $1,060.00", rows[0].Total)
	}
	if rows[0].PerUnit != "$26.50" {
		t.Errorf("product PerUnit = %q, want $26.50", rows[0].PerUnit)
	}
	if rows[2].Quantity != "50" {
		t.Errorf("customization Quantity = %q, want the billable 50", rows[2].Quantity)
	}
	if rows[3].Total != "$106.00" {
		t.Errorf("tariff Total = %q, want $106.00", rows[3].Total)
	}
	if rows[4].TierRange != "Custom" {
		t.Errorf("custom TierRange = %q, want Custom", rows[4].TierRange)
	}
}

func TestBuildDocumentRows_NoFeeRowsWhenZero(t *testing.T) {
	rows := BuildDocumentRows([]LineItemCalc{{
		ProductName:     "Leather Keychain",
		Quantity:        100,
		ProductSubtotal: 375,
		MarkupAmount:    375,
		ProductTotal:    750,
	}})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestBuildTotalsRows_OptionalLines(t *testing.T) {
	bare := BuildTotalsRows(QuoteTotals{
		ProductsSubtotal: 1000,
		ShippingCost:     85,
		TariffTotal:      50,
		TotalQuote:       1135,
	})
	labels := make([]string, len(bare))
	for i, r := range bare {
		labels[i] = r.Label
	}
	want := []string{"Subtotal (Pre-Tax)", "Shipping", "Tariff", "Final Total"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}

	full := BuildTotalsRows(QuoteTotals{
		ProductsSubtotal:    1000,
		DiscountAmount:      50,
		DiscountDescription: "NGO Discount (5%)",
		ShippingCost:        85,
		TariffTotal:         50,
		CCFeePercent:        2.9,
		CCFeeAmount:         31.47,
		TotalQuote:          1116.47,
	})
	if len(full) != 6 {
		t.Fatalf("expected 6 rows with discount and fee, got %d", len(full))
	}
	if full[1].Label != "Discount (NGO Discount (5%))" {
		t.Errorf("discount label = %q", full[1].Label)
	}
	if full[1].Amount != "-$50.00" {
		t.Errorf("discount amount = %q, want -$50.00", full[1].Amount)
	}
	if !strings.Contains(full[4].Label, "Credit Card Fee (2.9%)") {
		t.Errorf("fee label = %q", full[4].Label)
	}
}

func TestQuantityBreakFeeNote(t *testing.T) {
	var nilBreak *QuantityBreak
	if got := nilBreak.FeeNote(); got != "" {
		t.Errorf("nil FeeNote = %q, want empty", got)
	}

	none := &QuantityBreak{}
	if got := none.FeeNote(); got != "No additional customization fees" {
		t.Errorf("FeeNote = %q", got)
	}

	both := &QuantityBreak{CustomizationSetupTotal: 75, CustomizationPerUnit: 1.5}
	want := "Customization Set-Up: $75.00; Customization: $1.50 per unit"
	if got := both.FeeNote(); got != want {
		t.Errorf("FeeNote = %q, want %q", got, want)
	}
}
