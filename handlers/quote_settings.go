package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// HandleQuoteSettings updates the order-level settings on a quote and
// returns the recomputed totals.
//
// For preset discounts the percent is parsed out of the label, e.g.
// "NGO Discount (5%)" yields 5. Custom discounts take the submitted percent
// as-is.
func HandleQuoteSettings(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", id)
		if err != nil {
			log.Printf("quote_settings: HandleQuoteSettings: not found %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		quote.Set("shipping_cost", formFloat(e, "shipping_cost", quote.GetFloat("shipping_cost")))
		quote.Set("tariff_cost", formFloat(e, "tariff_cost", quote.GetFloat("tariff_cost")))

		switch discountType := formString(e, "discount_type"); discountType {
		case "none":
			quote.Set("discount_type", "none")
			quote.Set("discount_description", "")
			quote.Set("discount_percent", 0.0)
		case "preset":
			label := formString(e, "discount_description")
			percent := services.ParsePresetDiscount(label)
			if percent == 0 {
				return apiError(e, http.StatusBadRequest, "Preset discount label must include a percent, e.g. (5%)")
			}
			quote.Set("discount_type", "preset")
			quote.Set("discount_description", label)
			quote.Set("discount_percent", percent)
		case "custom":
			percent := formFloat(e, "discount_percent", 0)
			if percent < 0 || percent > 100 {
				return apiError(e, http.StatusBadRequest, "Discount percent must be between 0 and 100")
			}
			quote.Set("discount_type", "custom")
			quote.Set("discount_description", formString(e, "discount_description"))
			quote.Set("discount_percent", percent)
		case "":
			// Discount untouched.
		default:
			return apiError(e, http.StatusBadRequest, "Unknown discount type")
		}

		if v := formString(e, "cc_fee_enabled"); v != "" {
			quote.Set("cc_fee_enabled", formBool(e, "cc_fee_enabled"))
		}
		if v := formString(e, "cc_fee_percent"); v != "" {
			quote.Set("cc_fee_percent", formFloat(e, "cc_fee_percent", services.DefaultCCFeePercent))
		}
		if v := formString(e, "charm_rounding"); v != "" {
			quote.Set("charm_rounding", formBool(e, "charm_rounding"))
		}
		if v := formString(e, "round_to_five"); v != "" {
			quote.Set("round_to_five", formBool(e, "round_to_five"))
		}

		// Client details, all optional.
		for _, field := range []string{
			"client_company_name", "client_contact_name", "client_contact_email",
			"client_po", "billing_address", "shipping_type", "shipping_address",
			"payment_timeline", "payment_preference",
		} {
			if v := formString(e, field); v != "" {
				quote.Set(field, v)
			}
		}
		if v := formString(e, "is_new_client"); v != "" {
			quote.Set("is_new_client", formBool(e, "is_new_client"))
		}

		if err := app.Save(quote); err != nil {
			log.Printf("quote_settings: HandleQuoteSettings: save %s: %v", id, err)
			return apiError(e, http.StatusInternalServerError, "Could not update settings")
		}

		_, items, err := loadQuoteItems(app, id)
		if err != nil {
			log.Printf("quote_settings: HandleQuoteSettings: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load quote items")
		}

		totals := services.AggregateQuote(items, settingsFromQuote(quote))
		return e.JSON(http.StatusOK, quoteSummary(quote, items, totals))
	}
}
