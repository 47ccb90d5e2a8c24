package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the catalog_products, quotes,
// quote_items and quote_snapshots collections exist.
//
// Price cells are stored as raw text exactly as they appear in the source
// spreadsheet. A blank cell means "no price", which is not the same as a
// price of zero, so numeric fields would lose that distinction.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "catalog_products", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "partner", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "product_ref", Required: false})
		c.Fields.Add(&core.TextField{Name: "country_of_origin", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.TextField{Name: "customization_info", Required: false})
		c.Fields.Add(&core.BoolField{Name: "has_tiers"})
		c.Fields.Add(&core.TextField{Name: "tier_info", Required: false})
		c.Fields.Add(&core.TextField{Name: "flat_price", Required: false})
		for i := 1; i <= 6; i++ {
			c.Fields.Add(&core.TextField{Name: fmt.Sprintf("tier_price_%d", i), Required: false})
		}
		for i := 1; i <= 7; i++ {
			c.Fields.Add(&core.TextField{Name: fmt.Sprintf("ladder_price_%d", i), Required: false})
		}
		c.Fields.Add(&core.TextField{Name: "customization_setup_fee", Required: false})
		c.Fields.Add(&core.TextField{Name: "customization_unit_fee", Required: false})
		c.Fields.Add(&core.TextField{Name: "customization_minimum", Required: false})
		c.Fields.Add(&core.TextField{Name: "tariff_rate", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	quotes := ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: false})
		c.Fields.Add(&core.NumberField{Name: "shipping_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tariff_cost", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "discount_type",
			Required:  false,
			Values:    []string{"none", "preset", "custom"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "discount_description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discount_percent", Required: false})
		c.Fields.Add(&core.BoolField{Name: "cc_fee_enabled"})
		c.Fields.Add(&core.NumberField{Name: "cc_fee_percent", Required: false})
		c.Fields.Add(&core.BoolField{Name: "charm_rounding"})
		c.Fields.Add(&core.BoolField{Name: "round_to_five"})
		c.Fields.Add(&core.BoolField{Name: "is_new_client"})
		c.Fields.Add(&core.TextField{Name: "client_company_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "client_contact_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "client_contact_email", Required: false})
		c.Fields.Add(&core.TextField{Name: "client_po", Required: false})
		c.Fields.Add(&core.TextField{Name: "billing_address", Required: false})
		c.Fields.Add(&core.TextField{Name: "shipping_type", Required: false})
		c.Fields.Add(&core.TextField{Name: "shipping_address", Required: false})
		c.Fields.Add(&core.TextField{Name: "payment_timeline", Required: false})
		c.Fields.Add(&core.TextField{Name: "payment_preference", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "quote_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quote",
			Required:      true,
			CollectionId:  quotes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_custom"})
		c.Fields.Add(&core.TextField{Name: "product_id", Required: false})
		c.Fields.Add(&core.TextField{Name: "product_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "partner", Required: false})
		c.Fields.Add(&core.TextField{Name: "product_ref", Required: false})
		c.Fields.Add(&core.TextField{Name: "custom_description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: true})
		c.Fields.Add(&core.NumberField{Name: "markup_percent", Required: false})
		c.Fields.Add(&core.BoolField{Name: "include_customization"})
		c.Fields.Add(&core.NumberField{Name: "base_price", Required: false})
		c.Fields.Add(&core.TextField{Name: "tier_range", Required: false})
		c.Fields.Add(&core.TextField{Name: "price_source", Required: false})
		c.Fields.Add(&core.NumberField{Name: "customization_setup_fee", Required: false})
		c.Fields.Add(&core.NumberField{Name: "customization_per_unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "customization_qty", Required: false})
		c.Fields.Add(&core.TextField{Name: "customization_warning", Required: false})
		c.Fields.Add(&core.NumberField{Name: "product_subtotal", Required: false})
		c.Fields.Add(&core.NumberField{Name: "customization_setup_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "customization_unit_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "subtotal_before_markup", Required: false})
		c.Fields.Add(&core.NumberField{Name: "markup_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tariff_amount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "product_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_per_unit", Required: false})
	})

	ensureCollection(app, "quote_snapshots", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "quote",
			Required:      true,
			CollectionId:  quotes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "label", Required: true})
		c.Fields.Add(&core.JSONField{Name: "payload", Required: true, MaxSize: 2 << 20})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
