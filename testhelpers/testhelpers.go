// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// ProductOption mutates a catalog product record before it is saved.
type ProductOption func(r *core.Record)

// WithParsedTiers sets tier_info and the given tier price cells.
func WithParsedTiers(tierInfo string, prices ...string) ProductOption {
	return func(r *core.Record) {
		r.Set("has_tiers", true)
		r.Set("tier_info", tierInfo)
		for i, p := range prices {
			r.Set(tierPriceField(i+1), p)
		}
	}
}

// WithLadderPrices sets the fixed quantity-band price cells. Pass "" to
// leave a band blank.
func WithLadderPrices(prices ...string) ProductOption {
	return func(r *core.Record) {
		for i, p := range prices {
			r.Set(ladderPriceField(i+1), p)
		}
	}
}

// WithFlatPrice sets a single flat price with no tiers.
func WithFlatPrice(price string) ProductOption {
	return func(r *core.Record) {
		r.Set("has_tiers", false)
		r.Set("flat_price", price)
	}
}

// WithCustomization sets setup fee, per-unit fee, and minimum quantity.
func WithCustomization(setupFee, unitFee, minimum string) ProductOption {
	return func(r *core.Record) {
		r.Set("customization_setup_fee", setupFee)
		r.Set("customization_unit_fee", unitFee)
		r.Set("customization_minimum", minimum)
	}
}

// WithTariffRate sets the per-product tariff rate cell.
func WithTariffRate(rate string) ProductOption {
	return func(r *core.Record) {
		r.Set("tariff_rate", rate)
	}
}

// CreateTestProduct creates a catalog product record and returns it.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, partner, name string, opts ...ProductOption) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("catalog_products")
	if err != nil {
		t.Fatalf("failed to find catalog_products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("partner", partner)
	record.Set("name", name)
	record.Set("product_ref", "REF-"+name)

	for _, opt := range opts {
		opt(record)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestQuote creates a quote record with the given title and returns it.
func CreateTestQuote(t *testing.T, app *pocketbase.PocketBase, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("failed to find quotes collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("quote_number", "QT-2026-001")
	record.Set("discount_type", "none")
	record.Set("cc_fee_percent", 2.9)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// AddTestItem creates a computed quote item record linked to a quote.
// basePrice and markupPercent drive the stored derived fields the same way
// the add-item handler persists them.
func AddTestItem(t *testing.T, app *pocketbase.PocketBase, quoteID, productName string, quantity int, basePrice, markupPercent float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		t.Fatalf("failed to find quote_items collection: %v", err)
	}

	subtotal := basePrice * float64(quantity)
	markup := subtotal * markupPercent / 100

	record := core.NewRecord(col)
	record.Set("quote", quoteID)
	record.Set("sort_order", 1)
	record.Set("is_custom", false)
	record.Set("product_name", productName)
	record.Set("partner", "Test Partner")
	record.Set("product_ref", "REF-"+productName)
	record.Set("quantity", quantity)
	record.Set("markup_percent", markupPercent)
	record.Set("base_price", basePrice)
	record.Set("tier_range", "No Tiers")
	record.Set("price_source", "flat_price")
	record.Set("product_subtotal", subtotal)
	record.Set("subtotal_before_markup", subtotal)
	record.Set("markup_amount", markup)
	record.Set("product_total", subtotal+markup)
	record.Set("total_per_unit", (subtotal+markup)/float64(quantity))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote item: %v", err)
	}

	return record
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func tierPriceField(i int) string {
	return fmt.Sprintf("tier_price_%d", i)
}

func ladderPriceField(i int) string {
	return fmt.Sprintf("ladder_price_%d", i)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
