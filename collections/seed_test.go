package collections_test

import (
	"testing"

	"quotebuilder/collections"
	"quotebuilder/services"
	"quotebuilder/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	// Verify catalog was populated
	catalogCol, _ := app.FindCollectionByNameOrId("catalog_products")
	products, err := app.FindAllRecords(catalogCol)
	if err != nil {
		t.Fatalf("query catalog_products error: %v", err)
	}
	if len(products) != 8 {
		t.Fatalf("expected 8 catalog products, got %d", len(products))
	}

	// Verify sample quote was created with items
	quotesCol, _ := app.FindCollectionByNameOrId("quotes")
	quotes, _ := app.FindAllRecords(quotesCol)
	if len(quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(quotes))
	}
	if quotes[0].GetString("quote_number") != "QT-2026-001" {
		t.Errorf("quote_number = %q, want %q", quotes[0].GetString("quote_number"), "QT-2026-001")
	}

	itemsCol, _ := app.FindCollectionByNameOrId("quote_items")
	items, _ := app.FindAllRecords(itemsCol)
	if len(items) != 2 {
		t.Errorf("expected 2 quote items, got %d", len(items))
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	catalogCol, _ := app.FindCollectionByNameOrId("catalog_products")
	products, _ := app.FindAllRecords(catalogCol)
	if len(products) != 8 {
		t.Errorf("expected 8 catalog products after idempotent seed, got %d", len(products))
	}

	quotesCol, _ := app.FindCollectionByNameOrId("quotes")
	quotes, _ := app.FindAllRecords(quotesCol)
	if len(quotes) != 1 {
		t.Errorf("expected 1 quote after idempotent seed, got %d", len(quotes))
	}
}

func TestSeed_ProductDetails(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	catalogCol, _ := app.FindCollectionByNameOrId("catalog_products")
	products, _ := app.FindRecordsByFilter(
		catalogCol,
		"name = {:n}",
		"", 1, 0,
		map[string]any{"n": "Handwoven Cotton Tote"},
	)
	if len(products) == 0 {
		t.Fatal("tote product not found")
	}

	p := products[0]
	if !p.GetBool("has_tiers") {
		t.Error("tote: expected has_tiers=true")
	}
	if p.GetString("tier_info") != "T1: 1-25, T2: 26-50, T3: 51-100, T4: 101+" {
		t.Errorf("tier_info = %q", p.GetString("tier_info"))
	}
	if p.GetString("tier_price_2") != "$13.25" {
		t.Errorf("tier_price_2 = %q, want %q", p.GetString("tier_price_2"), "$13.25")
	}
	if p.GetString("customization_minimum") != "50" {
		t.Errorf("customization_minimum = %q, want %q", p.GetString("customization_minimum"), "50")
	}
}

func TestSeed_AllProductsResolvePricing(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	catalogCol, _ := app.FindCollectionByNameOrId("catalog_products")
	records, err := app.FindAllRecords(catalogCol)
	if err != nil {
		t.Fatalf("query catalog_products error: %v", err)
	}

	// Every seeded product must price under at least one schema, otherwise
	// adding it to a quote can never succeed.
	for _, r := range records {
		p := services.ProductFromRecord(r)
		if _, err := (services.ParsedTierResolver{}).ResolveUnitPrice(p, 10); err == nil {
			continue
		}
		if _, err := (services.LadderTierResolver{}).ResolveUnitPrice(p, 10); err != nil {
			t.Errorf("product %q resolves no price under either schema: %v", r.GetString("name"), err)
		}
	}
}

func TestSeed_LadderProductHasBlankBands(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	catalogCol, _ := app.FindCollectionByNameOrId("catalog_products")
	products, _ := app.FindRecordsByFilter(
		catalogCol,
		"name = {:n}",
		"", 1, 0,
		map[string]any{"n": "Alpaca Throw Blanket"},
	)
	if len(products) == 0 {
		t.Fatal("blanket product not found")
	}

	p := products[0]
	if p.GetString("ladder_price_1") != "$48.00" {
		t.Errorf("ladder_price_1 = %q, want %q", p.GetString("ladder_price_1"), "$48.00")
	}
	if p.GetString("ladder_price_3") != "" {
		t.Errorf("ladder_price_3 = %q, want blank", p.GetString("ladder_price_3"))
	}
}
