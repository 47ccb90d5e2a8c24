package services

import (
	"errors"
	"testing"
)

func TestParseTierRanges(t *testing.T) {
	ranges := ParseTierRanges("T1: 1-25, T2: 26-50, T3: 51-100, T4: 101+")
	if len(ranges) != 4 {
		t.Fatalf("expected 4 ranges, got %d", len(ranges))
	}
	if r := ranges[2]; r.Min != 26 || r.Max != 50 || r.Open {
		t.Errorf("tier 2 = %+v, want 26-50 closed", r)
	}
	if r := ranges[4]; r.Min != 101 || !r.Open {
		t.Errorf("tier 4 = %+v, want 101+ open", r)
	}
}

func TestParseTierRanges_OpenOnly(t *testing.T) {
	ranges := ParseTierRanges("T3: 1000+")
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(ranges))
	}
	if r := ranges[3]; r.Min != 1000 || !r.Open {
		t.Errorf("tier 3 = %+v, want 1000+ open", r)
	}
}

func TestParseTierRanges_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"empty", "", 0},
		{"na", "NA", 0},
		{"no_colon", "1-25, 26-50", 0},
		{"partial_garbage", "T1: 1-25, T2: whatever", 1},
		{"non_numeric_tier", "TX: 1-25", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(ParseTierRanges(tt.raw)); got != tt.want {
				t.Errorf("ParseTierRanges(%q) yielded %d ranges, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTierRangeLabel(t *testing.T) {
	if got := (TierRange{Min: 26, Max: 50}).Label(); got != "26-50" {
		t.Errorf("Label() = %q, want 26-50", got)
	}
	if got := (TierRange{Min: 1000, Open: true}).Label(); got != "1000+" {
		t.Errorf("Label() = %q, want 1000+", got)
	}
}

func parsedTierProduct() *CatalogProduct {
	return &CatalogProduct{
		Name:       "Handwoven Cotton Tote",
		HasTiers:   true,
		TierInfo:   "T1: 1-25, T2: 26-50, T3: 51-100, T4: 101+",
		TierPrices: [MaxParsedTiers]string{"$14.50", "$13.25", "$12.00", "$10.75"},
	}
}

func TestParsedResolver_InRange(t *testing.T) {
	p := parsedTierProduct()
	got, err := ParsedTierResolver{}.ResolveUnitPrice(p, 40)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !floatClose(got.UnitPrice, 13.25) {
		t.Errorf("UnitPrice = %f, want 13.25", got.UnitPrice)
	}
	if got.TierRange != "26-50" {
		t.Errorf("TierRange = %q, want 26-50", got.TierRange)
	}
	if got.Source != "tier_price_2" {
		t.Errorf("Source = %q, want tier_price_2", got.Source)
	}
}

func TestParsedResolver_OpenRange(t *testing.T) {
	p := parsedTierProduct()
	got, err := ParsedTierResolver{}.ResolveUnitPrice(p, 5000)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !floatClose(got.UnitPrice, 10.75) {
		t.Errorf("UnitPrice = %f, want 10.75", got.UnitPrice)
	}
	if got.TierRange != "101+" {
		t.Errorf("TierRange = %q, want 101+", got.TierRange)
	}
}

func TestParsedResolver_AboveAllClosedRanges(t *testing.T) {
	p := &CatalogProduct{
		Name:       "Woven Table Runner",
		HasTiers:   true,
		TierInfo:   "T1: 1-25, T2: 26-50",
		TierPrices: [MaxParsedTiers]string{"$20.00", "$18.00"},
	}
	// 500 is above every defined range; the highest tier applies.
	got, err := ParsedTierResolver{}.ResolveUnitPrice(p, 500)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !floatClose(got.UnitPrice, 18) {
		t.Errorf("UnitPrice = %f, want 18", got.UnitPrice)
	}
}

func TestParsedResolver_BlankPriceCell(t *testing.T) {
	p := parsedTierProduct()
	p.TierPrices[1] = ""
	_, err := ParsedTierResolver{}.ResolveUnitPrice(p, 40)
	if !errors.Is(err, ErrNoPricing) {
		t.Fatalf("expected ErrNoPricing, got %v", err)
	}
}

func TestParsedResolver_MalformedTierInfo(t *testing.T) {
	p := parsedTierProduct()
	p.TierInfo = "NA"
	_, err := ParsedTierResolver{}.ResolveUnitPrice(p, 10)
	if !errors.Is(err, ErrNoPricing) {
		t.Fatalf("expected ErrNoPricing, got %v", err)
	}
}

func ladderProduct() *CatalogProduct {
	return &CatalogProduct{
		Name:         "Alpaca Throw Blanket",
		HasTiers:     true,
		LadderPrices: [LadderBands]string{"$48.00", "$45.00", "", "$40.00", "", "", "$34.00"},
	}
}

func TestLadderResolver_ExactBand(t *testing.T) {
	got, err := LadderTierResolver{}.ResolveUnitPrice(ladderProduct(), 30)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !floatClose(got.UnitPrice, 45) {
		t.Errorf("UnitPrice = %f, want 45", got.UnitPrice)
	}
	if got.TierRange != "26-50" {
		t.Errorf("TierRange = %q, want 26-50", got.TierRange)
	}
	if got.Source != "ladder_price_2" {
		t.Errorf("Source = %q, want ladder_price_2", got.Source)
	}
}

func TestLadderResolver_BlankBandFallsUpward(t *testing.T) {
	// Band 51-100 is blank; the next priced band above (101-250) applies.
	got, err := LadderTierResolver{}.ResolveUnitPrice(ladderProduct(), 75)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !floatClose(got.UnitPrice, 40) {
		t.Errorf("UnitPrice = %f, want 40", got.UnitPrice)
	}
	if got.TierRange != "101-250" {
		t.Errorf("TierRange = %q, want 101-250", got.TierRange)
	}
}

func TestLadderResolver_BlankBandFallsDownward(t *testing.T) {
	p := &CatalogProduct{
		Name:         "Ceramic Mug",
		HasTiers:     true,
		LadderPrices: [LadderBands]string{"$9.00", "$8.50", "", "", "", "", ""},
	}
	// Band 51-100 and everything above are blank; fall back to 26-50.
	got, err := LadderTierResolver{}.ResolveUnitPrice(p, 75)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !floatClose(got.UnitPrice, 8.5) {
		t.Errorf("UnitPrice = %f, want 8.5", got.UnitPrice)
	}
}

func TestLadderResolver_NoPrices(t *testing.T) {
	p := &CatalogProduct{Name: "Empty", HasTiers: true}
	_, err := LadderTierResolver{}.ResolveUnitPrice(p, 10)
	if !errors.Is(err, ErrNoPricing) {
		t.Fatalf("expected ErrNoPricing, got %v", err)
	}
}

func TestFlatPriceResolution(t *testing.T) {
	p := &CatalogProduct{Name: "Leather Keychain", FlatPrice: "$3.75"}

	for _, resolver := range []TierResolver{ParsedTierResolver{}, LadderTierResolver{}} {
		got, err := resolver.ResolveUnitPrice(p, 100)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if !floatClose(got.UnitPrice, 3.75) {
			t.Errorf("UnitPrice = %f, want 3.75", got.UnitPrice)
		}
		if got.TierRange != "No Tiers" {
			t.Errorf("TierRange = %q, want No Tiers", got.TierRange)
		}
		if got.Source != "flat_price" {
			t.Errorf("Source = %q, want flat_price", got.Source)
		}
	}
}

func TestFlatPriceMissing(t *testing.T) {
	p := &CatalogProduct{Name: "No Price"}
	_, err := ParsedTierResolver{}.ResolveUnitPrice(p, 10)
	if !errors.Is(err, ErrNoPricing) {
		t.Fatalf("expected ErrNoPricing, got %v", err)
	}
}

func TestResolverForSchema(t *testing.T) {
	if _, ok := ResolverForSchema("ladder").(LadderTierResolver); !ok {
		t.Error("expected ladder resolver for \"ladder\"")
	}
	if _, ok := ResolverForSchema("parsed").(ParsedTierResolver); !ok {
		t.Error("expected parsed resolver for \"parsed\"")
	}
	if _, ok := ResolverForSchema("").(ParsedTierResolver); !ok {
		t.Error("expected parsed resolver as default")
	}
}
