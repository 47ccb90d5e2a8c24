package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type productDef struct {
	partner           string
	name              string
	productRef        string
	countryOfOrigin   string
	description       string
	customizationInfo string
	hasTiers          bool
	tierInfo          string
	flatPrice         string
	tierPrices        []string // parsed-tier schema, up to 6 cells
	ladderPrices      []string // fixed-ladder schema, up to 7 cells
	custSetupFee      string
	custUnitFee       string
	custMinimum       string
	tariffRate        string
}

type quoteItemDef struct {
	sortOrder     int
	productName   string
	partner       string
	productRef    string
	quantity      int
	markupPercent float64
	basePrice     float64
	tierRange     string
	priceSource   string
}

// Seed populates the catalog with a realistic partner product mix and one
// sample quote. It is safe to call on every startup because it returns
// early if any catalog records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if catalog already populated ───────────────
	catalogCol, err := app.FindCollectionByNameOrId("catalog_products")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_products collection: %w", err)
	}
	existing, err := app.FindAllRecords(catalogCol)
	if err != nil {
		return fmt.Errorf("seed: could not query catalog_products: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: catalog is empty – inserting seed data …")

	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("seed: could not find quotes collection: %w", err)
	}
	itemsCol, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return fmt.Errorf("seed: could not find quote_items collection: %w", err)
	}

	// ── helper: create catalog product ───────────────────────────────
	createProduct := func(d productDef) error {
		r := core.NewRecord(catalogCol)
		r.Set("partner", d.partner)
		r.Set("name", d.name)
		r.Set("product_ref", d.productRef)
		r.Set("country_of_origin", d.countryOfOrigin)
		r.Set("description", d.description)
		r.Set("customization_info", d.customizationInfo)
		r.Set("has_tiers", d.hasTiers)
		r.Set("tier_info", d.tierInfo)
		r.Set("flat_price", d.flatPrice)
		for i, p := range d.tierPrices {
			r.Set(fmt.Sprintf("tier_price_%d", i+1), p)
		}
		for i, p := range d.ladderPrices {
			r.Set(fmt.Sprintf("ladder_price_%d", i+1), p)
		}
		r.Set("customization_setup_fee", d.custSetupFee)
		r.Set("customization_unit_fee", d.custUnitFee)
		r.Set("customization_minimum", d.custMinimum)
		r.Set("tariff_rate", d.tariffRate)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save product %q: %w", d.name, err)
		}
		return nil
	}

	// ── catalog products ─────────────────────────────────────────────

	products := []productDef{
		{
			partner: "Maya Weavers Collective", name: "Handwoven Cotton Tote",
			productRef: "MW-TOTE-01", countryOfOrigin: "Guatemala",
			description:       "Handwoven cotton tote with leather handles, natural dyes.",
			customizationInfo: "Screen print up to 2 colors",
			hasTiers:          true,
			tierInfo:          "T1: 1-25, T2: 26-50, T3: 51-100, T4: 101+",
			tierPrices:        []string{"$14.50", "$13.25", "$12.00", "$10.75"},
			custSetupFee:      "$75",
			custUnitFee:       "$1.50",
			custMinimum:       "50",
			tariffRate:        "10%",
		},
		{
			partner: "Maya Weavers Collective", name: "Woven Coin Pouch",
			productRef: "MW-POUCH-03", countryOfOrigin: "Guatemala",
			description: "Small zippered pouch in assorted traditional patterns.",
			hasTiers:    true,
			tierInfo:    "T1: 1-50, T2: 51-200, T3: 201+",
			tierPrices:  []string{"$4.95", "$4.25", "$3.60"},
			tariffRate:  "10%",
		},
		{
			partner: "Artisan Clay Co", name: "Ceramic Mug 12oz",
			productRef: "AC-MUG-12", countryOfOrigin: "Mexico",
			description:       "Hand-thrown stoneware mug, glazed, dishwasher safe.",
			customizationInfo: "Logo engraving",
			hasTiers:          true,
			ladderPrices:      []string{"$11.00", "$10.25", "$9.50", "$8.75", "", "$7.50", "$7.00"},
			custSetupFee:      "$120",
			custUnitFee:       "$2.25",
			custMinimum:       "100",
		},
		{
			partner: "Artisan Clay Co", name: "Ceramic Planter 6in",
			productRef: "AC-PLNT-06", countryOfOrigin: "Mexico",
			description:  "Glazed terracotta planter with drainage dish.",
			hasTiers:     true,
			ladderPrices: []string{"$16.50", "$15.00", "$13.75", "$12.50", "$11.25", "$10.00", "$9.25"},
		},
		{
			partner: "Sahel Leatherworks", name: "Leather Journal Cover",
			productRef: "SL-JRNL-A5", countryOfOrigin: "Mali",
			description:       "Vegetable-tanned leather cover fits A5 notebooks.",
			customizationInfo: "Foil stamp or deboss",
			hasTiers:          true,
			tierInfo:          "T1: 1-25, T2: 26-100, T3: 101+",
			tierPrices:        []string{"$22.00", "$19.50", "$17.00"},
			custSetupFee:      "$95",
			custUnitFee:       "$3.00",
			custMinimum:       "25",
			tariffRate:        "8%",
		},
		{
			partner: "Sahel Leatherworks", name: "Leather Keychain",
			productRef: "SL-KEY-01", countryOfOrigin: "Mali",
			hasTiers:  false,
			flatPrice: "$3.75",
		},
		{
			partner: "Highland Textiles", name: "Alpaca Throw Blanket",
			productRef: "HT-THRW-L", countryOfOrigin: "Peru",
			description: "Oversized throw in baby alpaca blend, 50x70 in.",
			hasTiers:    true,
			// Blank mid-ladder cells exercise the fallback path.
			ladderPrices: []string{"$48.00", "$45.00", "", "$40.00", "", "", "$34.00"},
			tariffRate:   "5%",
		},
		{
			partner: "Highland Textiles", name: "Woven Table Runner",
			productRef: "HT-RUN-72", countryOfOrigin: "Peru",
			hasTiers:   true,
			tierInfo:   "T1: 1-20, T2: 21-60, T3: 1000+",
			tierPrices: []string{"$18.00", "$16.25", "$12.00"},
		},
	}

	for _, d := range products {
		if err := createProduct(d); err != nil {
			return err
		}
	}

	// ── sample quote ─────────────────────────────────────────────────

	q := core.NewRecord(quotesCol)
	q.Set("title", "Spring Wholesale Order — Fair Trade Market")
	q.Set("quote_number", "QT-2026-001")
	q.Set("shipping_cost", 85.0)
	q.Set("tariff_cost", 0.0)
	q.Set("discount_type", "none")
	q.Set("cc_fee_enabled", false)
	q.Set("cc_fee_percent", 2.9)
	q.Set("charm_rounding", true)
	if err := app.Save(q); err != nil {
		return fmt.Errorf("seed: save sample quote: %w", err)
	}

	items := []quoteItemDef{
		{sortOrder: 1, productName: "Handwoven Cotton Tote", partner: "Maya Weavers Collective", productRef: "MW-TOTE-01", quantity: 40, markupPercent: 100, basePrice: 13.25, tierRange: "26-50", priceSource: "tier_price_2"},
		{sortOrder: 2, productName: "Leather Keychain", partner: "Sahel Leatherworks", productRef: "SL-KEY-01", quantity: 100, markupPercent: 100, basePrice: 3.75, tierRange: "No Tiers", priceSource: "flat_price"},
	}

	for _, d := range items {
		subtotal := d.basePrice * float64(d.quantity)
		markup := subtotal * d.markupPercent / 100

		r := core.NewRecord(itemsCol)
		r.Set("quote", q.Id)
		r.Set("sort_order", d.sortOrder)
		r.Set("is_custom", false)
		r.Set("product_name", d.productName)
		r.Set("partner", d.partner)
		r.Set("product_ref", d.productRef)
		r.Set("quantity", d.quantity)
		r.Set("markup_percent", d.markupPercent)
		r.Set("include_customization", false)
		r.Set("base_price", d.basePrice)
		r.Set("tier_range", d.tierRange)
		r.Set("price_source", d.priceSource)
		r.Set("product_subtotal", subtotal)
		r.Set("subtotal_before_markup", subtotal)
		r.Set("markup_amount", markup)
		r.Set("product_total", subtotal+markup)
		r.Set("total_per_unit", (subtotal+markup)/float64(d.quantity))
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save quote item %q: %w", d.productName, err)
		}
	}

	log.Println("seed: all seed data inserted successfully (8 catalog products, 1 sample quote)")
	return nil
}
