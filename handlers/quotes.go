package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// itemFromRecord rebuilds the computed line item from its stored fields.
func itemFromRecord(r *core.Record) services.LineItemCalc {
	return services.LineItemCalc{
		ProductName:             r.GetString("product_name"),
		Partner:                 r.GetString("partner"),
		ProductRef:              r.GetString("product_ref"),
		IsCustom:                r.GetBool("is_custom"),
		CustomDescription:       r.GetString("custom_description"),
		Quantity:                r.GetInt("quantity"),
		MarkupPercent:           r.GetFloat("markup_percent"),
		IncludeCustomization:    r.GetBool("include_customization"),
		BasePrice:               r.GetFloat("base_price"),
		TierRange:               r.GetString("tier_range"),
		PriceSource:             r.GetString("price_source"),
		CustomizationSetupFee:   r.GetFloat("customization_setup_fee"),
		CustomizationPerUnit:    r.GetFloat("customization_per_unit"),
		CustomizationQty:        r.GetInt("customization_qty"),
		CustomizationWarning:    r.GetString("customization_warning"),
		ProductSubtotal:         r.GetFloat("product_subtotal"),
		CustomizationSetupTotal: r.GetFloat("customization_setup_total"),
		CustomizationUnitTotal:  r.GetFloat("customization_unit_total"),
		SubtotalBeforeMarkup:    r.GetFloat("subtotal_before_markup"),
		MarkupAmount:            r.GetFloat("markup_amount"),
		TariffAmount:            r.GetFloat("tariff_amount"),
		ProductTotal:            r.GetFloat("product_total"),
		TotalPerUnit:            r.GetFloat("total_per_unit"),
	}
}

// loadQuoteItems returns a quote's item records in display order plus their
// computed line items.
func loadQuoteItems(app *pocketbase.PocketBase, quoteID string) ([]*core.Record, []services.LineItemCalc, error) {
	col, err := app.FindCollectionByNameOrId("quote_items")
	if err != nil {
		return nil, nil, fmt.Errorf("quote_items collection not found: %w", err)
	}

	records, err := app.FindRecordsByFilter(col, "quote = {:quoteId}", "sort_order", 0, 0, map[string]any{"quoteId": quoteID})
	if err != nil {
		return nil, nil, fmt.Errorf("could not list quote items: %w", err)
	}

	items := make([]services.LineItemCalc, 0, len(records))
	for _, r := range records {
		items = append(items, itemFromRecord(r))
	}
	return records, items, nil
}

// settingsFromQuote reads the order-level settings off a quote record.
func settingsFromQuote(q *core.Record) services.QuoteSettings {
	ccPercent := q.GetFloat("cc_fee_percent")
	if ccPercent == 0 {
		ccPercent = services.DefaultCCFeePercent
	}
	return services.QuoteSettings{
		ShippingCost:        q.GetFloat("shipping_cost"),
		TariffCost:          q.GetFloat("tariff_cost"),
		DiscountPercent:     q.GetFloat("discount_percent"),
		DiscountDescription: q.GetString("discount_description"),
		CCFeeEnabled:        q.GetBool("cc_fee_enabled"),
		CCFeePercent:        ccPercent,
		CharmRounding:       q.GetBool("charm_rounding"),
	}
}

// quoteSummary is the JSON shape returned for a quote with computed totals.
func quoteSummary(q *core.Record, items []services.LineItemCalc, totals services.QuoteTotals) map[string]any {
	return map[string]any{
		"id":           q.Id,
		"title":        q.GetString("title"),
		"quote_number": q.GetString("quote_number"),
		"created":      q.GetDateTime("created"),
		"items":        items,
		"totals":       totals,
	}
}

// HandleQuoteCreate creates a new quote with a generated quote number.
func HandleQuoteCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		title := formString(e, "title")
		if title == "" {
			return apiError(e, http.StatusBadRequest, "Title is required")
		}

		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quotes: HandleQuoteCreate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("title", title)
		record.Set("quote_number", services.GenerateQuoteNumber(app, time.Now()))
		record.Set("discount_type", "none")
		record.Set("cc_fee_percent", services.DefaultCCFeePercent)
		record.Set("charm_rounding", true)

		if err := app.Save(record); err != nil {
			log.Printf("quotes: HandleQuoteCreate: save: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not create quote")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":           record.Id,
			"title":        record.GetString("title"),
			"quote_number": record.GetString("quote_number"),
		})
	}
}

// HandleQuoteList lists all quotes, newest first.
func HandleQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		col, err := app.FindCollectionByNameOrId("quotes")
		if err != nil {
			log.Printf("quotes: HandleQuoteList: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(col, "id != ''", "-created", 0, 0, nil)
		if err != nil {
			records = nil
		}

		quotes := make([]map[string]any, 0, len(records))
		for _, q := range records {
			quotes = append(quotes, map[string]any{
				"id":           q.Id,
				"title":        q.GetString("title"),
				"quote_number": q.GetString("quote_number"),
				"created":      q.GetDateTime("created"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"quotes": quotes})
	}
}

// HandleQuoteView returns one quote with its items and aggregated totals.
func HandleQuoteView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing quote ID")
		}

		quote, err := app.FindRecordById("quotes", id)
		if err != nil {
			log.Printf("quotes: HandleQuoteView: not found %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		_, items, err := loadQuoteItems(app, id)
		if err != nil {
			log.Printf("quotes: HandleQuoteView: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load quote items")
		}

		totals := services.AggregateQuote(items, settingsFromQuote(quote))
		return e.JSON(http.StatusOK, quoteSummary(quote, items, totals))
	}
}

// HandleQuoteDelete deletes a quote (cascade removes its items and snapshots).
func HandleQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing quote ID")
		}

		record, err := app.FindRecordById("quotes", id)
		if err != nil {
			log.Printf("quotes: HandleQuoteDelete: not found %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quotes: HandleQuoteDelete: delete %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not delete quote")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": id})
	}
}
