package collections_test

import (
	"testing"

	"quotebuilder/collections"
	"quotebuilder/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"catalog_products",
	"quotes",
	"quote_items",
	"quote_snapshots",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	// Collect IDs from first run
	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	// Run Setup() again
	collections.Setup(app)

	// IDs should not change
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_CatalogProductsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("catalog_products")

	requiredFields := []string{"partner", "name"}
	optionalFields := []string{
		"product_ref", "country_of_origin", "description", "customization_info",
		"has_tiers", "tier_info", "flat_price",
		"tier_price_1", "tier_price_2", "tier_price_3", "tier_price_4", "tier_price_5", "tier_price_6",
		"ladder_price_1", "ladder_price_2", "ladder_price_3", "ladder_price_4",
		"ladder_price_5", "ladder_price_6", "ladder_price_7",
		"customization_setup_fee", "customization_unit_fee", "customization_minimum",
		"tariff_rate", "created", "updated",
	}

	for _, f := range requiredFields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("catalog_products: missing required field %q", f)
		}
	}
	for _, f := range optionalFields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("catalog_products: missing field %q", f)
		}
	}

	// Price cells must be text fields so a blank cell stays distinct from zero.
	for _, f := range []string{"flat_price", "tier_price_1", "ladder_price_7"} {
		if _, ok := col.Fields.GetByName(f).(*core.TextField); !ok {
			t.Errorf("catalog_products.%s: expected TextField", f)
		}
	}
}

func TestSetup_QuotesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("quotes")

	fields := []string{
		"title", "quote_number", "shipping_cost", "tariff_cost",
		"discount_type", "discount_description", "discount_percent",
		"cc_fee_enabled", "cc_fee_percent", "charm_rounding", "round_to_five",
		"is_new_client", "client_company_name", "client_contact_name", "client_contact_email",
		"client_po", "billing_address", "shipping_type", "shipping_address",
		"payment_timeline", "payment_preference",
		"created", "updated",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("quotes: missing field %q", f)
		}
	}

	// Verify discount_type is a select field with expected values
	dtField := col.Fields.GetByName("discount_type")
	if sf, ok := dtField.(*core.SelectField); ok {
		expected := map[string]bool{"none": true, "preset": true, "custom": true}
		for _, v := range sf.Values {
			if !expected[v] {
				t.Errorf("unexpected discount_type value: %q", v)
			}
			delete(expected, v)
		}
		for v := range expected {
			t.Errorf("missing discount_type value: %q", v)
		}
	} else {
		t.Errorf("discount_type field is not a SelectField")
	}
}

func TestSetup_QuoteItemsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("quote_items")

	fields := []string{
		"quote", "sort_order", "is_custom", "product_id", "product_name",
		"partner", "product_ref", "custom_description",
		"quantity", "markup_percent", "include_customization",
		"base_price", "tier_range", "price_source",
		"customization_setup_fee", "customization_per_unit", "customization_qty", "customization_warning",
		"product_subtotal", "customization_setup_total", "customization_unit_total",
		"subtotal_before_markup", "markup_amount", "tariff_amount",
		"product_total", "total_per_unit",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("quote_items: missing field %q", f)
		}
	}

	// quote relation with cascade delete
	quoteField := col.Fields.GetByName("quote")
	if rf, ok := quoteField.(*core.RelationField); ok {
		if !rf.CascadeDelete {
			t.Error("quote_items.quote: expected CascadeDelete=true")
		}
	} else {
		t.Errorf("quote_items.quote is not a RelationField")
	}
}

func TestSetup_QuoteSnapshotsFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("quote_snapshots")

	fields := []string{"quote", "label", "payload", "created"}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("quote_snapshots: missing field %q", f)
		}
	}

	if _, ok := col.Fields.GetByName("payload").(*core.JSONField); !ok {
		t.Errorf("quote_snapshots.payload: expected JSONField")
	}

	quoteField := col.Fields.GetByName("quote")
	if rf, ok := quoteField.(*core.RelationField); ok {
		if !rf.CascadeDelete {
			t.Error("quote_snapshots.quote: expected CascadeDelete=true")
		}
	}
}

func TestSetup_ItemCascadeDeleteOnQuote(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	quote := testhelpers.CreateTestQuote(t, app, "Cascade Test")
	item := testhelpers.AddTestItem(t, app, quote.Id, "Ceramic Mug 12oz", 10, 11.00, 100)

	if err := app.Delete(quote); err != nil {
		t.Fatalf("failed to delete quote: %v", err)
	}

	_, err := app.FindRecordById("quote_items", item.Id)
	if err == nil {
		t.Error("quote_item should have been cascade-deleted with quote")
	}
}
