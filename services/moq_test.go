package services

import (
	"errors"
	"testing"
)

func TestCalcMOQ(t *testing.T) {
	tests := []struct {
		price float64
		want  int
	}{
		{40, 25},
		{13.25, 76},
		{1500, 1},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := CalcMOQ(tt.price); got != tt.want {
			t.Errorf("CalcMOQ(%f) = %d, want %d", tt.price, got, tt.want)
		}
	}
}

func TestBuildQuantityBreak_ReResolvesTierAtMOQ(t *testing.T) {
	p := parsedTierProduct()
	item := LineItemCalc{Quantity: 10, MarkupPercent: 100}

	qb, err := BuildQuantityBreak(p, ParsedTierResolver{}, item, 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// First pass estimates $29.00 loaded per unit at qty 10 (tier 1), which
	// back-solves MOQ 35. That quantity lands in tier 2, so the break must
	// use the tier 2 base price.
	if qb.MOQ != 35 {
		t.Errorf("MOQ = %d, want 35", qb.MOQ)
	}
	if qb.TierRange != "26-50" {
		t.Errorf("TierRange = %q, want 26-50", qb.TierRange)
	}
	if !floatClose(qb.BasePrice, 13.25) {
		t.Errorf("BasePrice = %f, want 13.25", qb.BasePrice)
	}
	if !floatClose(qb.PerUnit, 26.5) {
		t.Errorf("PerUnit = %f, want 26.5", qb.PerUnit)
	}
	if !floatClose(qb.OrderValue, 927.5) {
		t.Errorf("OrderValue = %f, want 927.5", qb.OrderValue)
	}
}

func TestBuildQuantityBreak_DiscountedPerUnit(t *testing.T) {
	p := &CatalogProduct{Name: "Flat", FlatPrice: "$50.00"}
	item := LineItemCalc{Quantity: 10, MarkupPercent: 0}

	qb, err := BuildQuantityBreak(p, ParsedTierResolver{}, item, 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if qb.MOQ != 20 {
		t.Errorf("MOQ = %d, want 20", qb.MOQ)
	}
	if !floatClose(qb.DiscountedPerUnit, 47.5) {
		t.Errorf("DiscountedPerUnit = %f, want 47.5", qb.DiscountedPerUnit)
	}
}

func TestBuildQuantityBreak_CustomizationFees(t *testing.T) {
	p := &CatalogProduct{
		Name:                  "Flat",
		FlatPrice:             "$10.00",
		CustomizationSetupFee: "$100.00",
		CustomizationUnitFee:  "$1.50",
	}
	item := LineItemCalc{Quantity: 10, MarkupPercent: 0, IncludeCustomization: true}

	qb, err := BuildQuantityBreak(p, ParsedTierResolver{}, item, 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Estimate amortizes the setup fee over 100 units: 10 + 1 + 1.50 = 12.50
	// per unit, so MOQ 80.
	if qb.MOQ != 80 {
		t.Errorf("MOQ = %d, want 80", qb.MOQ)
	}
	if !floatClose(qb.CustomizationSetupTotal, 100) {
		t.Errorf("CustomizationSetupTotal = %f, want 100", qb.CustomizationSetupTotal)
	}
	if !floatClose(qb.CustomizationPerUnit, 1.5) {
		t.Errorf("CustomizationPerUnit = %f, want 1.5", qb.CustomizationPerUnit)
	}
	// 80*10 + 100 + 80*1.50 = 1020 across 80 units.
	if !floatClose(qb.PerUnit, 12.75) {
		t.Errorf("PerUnit = %f, want 12.75", qb.PerUnit)
	}
	if !floatClose(qb.OrderValue, 1020) {
		t.Errorf("OrderValue = %f, want 1020", qb.OrderValue)
	}
}

func TestBuildQuantityBreak_FallbackMOQ(t *testing.T) {
	// The item's own tier has a blank price cell, so the estimate pass fails
	// and the fallback MOQ of 5 applies, which tier 1 can price.
	p := &CatalogProduct{
		Name:       "Sparse",
		HasTiers:   true,
		TierInfo:   "T1: 1-25, T2: 26+",
		TierPrices: [MaxParsedTiers]string{"$250.00", ""},
	}
	item := LineItemCalc{Quantity: 30, MarkupPercent: 0}

	qb, err := BuildQuantityBreak(p, ParsedTierResolver{}, item, 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if qb.MOQ != 5 {
		t.Errorf("MOQ = %d, want 5", qb.MOQ)
	}
	if !floatClose(qb.BasePrice, 250) {
		t.Errorf("BasePrice = %f, want 250", qb.BasePrice)
	}
}

func TestBuildQuantityBreak_Unpriceable(t *testing.T) {
	p := &CatalogProduct{Name: "No Price"}
	item := LineItemCalc{Quantity: 10, MarkupPercent: 100}

	_, err := BuildQuantityBreak(p, ParsedTierResolver{}, item, 0)
	if !errors.Is(err, ErrNoPricing) {
		t.Fatalf("expected ErrNoPricing, got %v", err)
	}
}
