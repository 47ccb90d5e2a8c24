package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// setItemFields writes a composed line item onto a quote_items record.
func setItemFields(r *core.Record, item services.LineItemCalc) {
	r.Set("is_custom", item.IsCustom)
	r.Set("product_name", item.ProductName)
	r.Set("partner", item.Partner)
	r.Set("product_ref", item.ProductRef)
	r.Set("custom_description", item.CustomDescription)
	r.Set("quantity", item.Quantity)
	r.Set("markup_percent", item.MarkupPercent)
	r.Set("include_customization", item.IncludeCustomization)
	r.Set("base_price", item.BasePrice)
	r.Set("tier_range", item.TierRange)
	r.Set("price_source", item.PriceSource)
	r.Set("customization_setup_fee", item.CustomizationSetupFee)
	r.Set("customization_per_unit", item.CustomizationPerUnit)
	r.Set("customization_qty", item.CustomizationQty)
	r.Set("customization_warning", item.CustomizationWarning)
	r.Set("product_subtotal", item.ProductSubtotal)
	r.Set("customization_setup_total", item.CustomizationSetupTotal)
	r.Set("customization_unit_total", item.CustomizationUnitTotal)
	r.Set("subtotal_before_markup", item.SubtotalBeforeMarkup)
	r.Set("markup_amount", item.MarkupAmount)
	r.Set("tariff_amount", item.TariffAmount)
	r.Set("product_total", item.ProductTotal)
	r.Set("total_per_unit", item.TotalPerUnit)
}

// nextSortOrder returns the next free sort position for a quote.
func nextSortOrder(app *pocketbase.PocketBase, quoteID string) int {
	records, _, err := loadQuoteItems(app, quoteID)
	if err != nil {
		return 1
	}
	max := 0
	for _, r := range records {
		if so := r.GetInt("sort_order"); so > max {
			max = so
		}
	}
	return max + 1
}

// composeFromRequest resolves the product and composes the line item from
// the submitted form values.
func composeFromRequest(app *pocketbase.PocketBase, resolver services.TierResolver, quote *core.Record, e *core.RequestEvent) (services.LineItemCalc, string, error) {
	productID := formString(e, "product_id")
	if productID == "" {
		return services.LineItemCalc{}, "", errors.New("missing product_id")
	}

	record, err := app.FindRecordById("catalog_products", productID)
	if err != nil {
		return services.LineItemCalc{}, "", errors.New("product not found")
	}
	product := services.ProductFromRecord(record)

	in := services.LineItemInput{
		Quantity:             formInt(e, "quantity", 0),
		MarkupPercent:        formFloat(e, "markup_percent", 100),
		IncludeCustomization: formBool(e, "include_customization"),
		RoundToFive:          quote.GetBool("round_to_five"),
	}

	item, err := services.ComposeLineItem(product, resolver, in)
	if err != nil {
		return services.LineItemCalc{}, "", err
	}
	return item, productID, nil
}

// HandleItemPreview composes a line item without persisting it, so the form
// can show live pricing while the user adjusts quantity and markup.
func HandleItemPreview(app *pocketbase.PocketBase, resolver services.TierResolver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		item, _, err := composeFromRequest(app, resolver, quote, e)
		if err != nil {
			if errors.Is(err, services.ErrNoPricing) {
				return apiError(e, http.StatusUnprocessableEntity, "No pricing available for this quantity")
			}
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, item)
	}
}

// HandleItemAdd composes a line item from the form and persists it on the
// quote.
func HandleItemAdd(app *pocketbase.PocketBase, resolver services.TierResolver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			log.Printf("quote_items: HandleItemAdd: quote not found %s: %v", quoteID, err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		item, productID, err := composeFromRequest(app, resolver, quote, e)
		if err != nil {
			if errors.Is(err, services.ErrNoPricing) {
				return apiError(e, http.StatusUnprocessableEntity, "No pricing available for this quantity")
			}
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("quote_items")
		if err != nil {
			log.Printf("quote_items: HandleItemAdd: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("quote", quoteID)
		record.Set("sort_order", nextSortOrder(app, quoteID))
		record.Set("product_id", productID)
		setItemFields(record, item)

		if err := app.Save(record); err != nil {
			log.Printf("quote_items: HandleItemAdd: save: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not add item")
		}

		return e.JSON(http.StatusCreated, map[string]any{"id": record.Id, "item": item})
	}
}

// HandleCustomItemAdd persists a free-form line item that is not in the
// catalog.
func HandleCustomItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("quotes", quoteID); err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		name := formString(e, "name")
		if name == "" {
			return apiError(e, http.StatusBadRequest, "Name is required")
		}

		item, err := services.ComposeCustomLineItem(
			name,
			formString(e, "description"),
			formInt(e, "quantity", 0),
			formFloat(e, "total_price", 0),
		)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("quote_items")
		if err != nil {
			log.Printf("quote_items: HandleCustomItemAdd: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("quote", quoteID)
		record.Set("sort_order", nextSortOrder(app, quoteID))
		setItemFields(record, item)

		if err := app.Save(record); err != nil {
			log.Printf("quote_items: HandleCustomItemAdd: save: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not add item")
		}

		return e.JSON(http.StatusCreated, map[string]any{"id": record.Id, "item": item})
	}
}

// HandleItemUpdate recomposes an existing line item wholesale from the
// submitted form. Only quantity, markup and customization can change; the
// product link stays fixed and sort order is preserved.
func HandleItemUpdate(app *pocketbase.PocketBase, resolver services.TierResolver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		record, err := app.FindRecordById("quote_items", itemID)
		if err != nil || record.GetString("quote") != quoteID {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		if record.GetBool("is_custom") {
			description := formString(e, "description")
			if description == "" {
				description = record.GetString("custom_description")
			}
			item, err := services.ComposeCustomLineItem(
				record.GetString("product_name"),
				description,
				formInt(e, "quantity", record.GetInt("quantity")),
				formFloat(e, "total_price", record.GetFloat("product_total")),
			)
			if err != nil {
				return apiError(e, http.StatusBadRequest, err.Error())
			}
			setItemFields(record, item)
		} else {
			productRecord, err := app.FindRecordById("catalog_products", record.GetString("product_id"))
			if err != nil {
				log.Printf("quote_items: HandleItemUpdate: product gone %s: %v", record.GetString("product_id"), err)
				return apiError(e, http.StatusConflict, "Catalog product no longer exists")
			}
			product := services.ProductFromRecord(productRecord)

			in := services.LineItemInput{
				Quantity:             formInt(e, "quantity", record.GetInt("quantity")),
				MarkupPercent:        formFloat(e, "markup_percent", record.GetFloat("markup_percent")),
				IncludeCustomization: formBool(e, "include_customization"),
				RoundToFive:          quote.GetBool("round_to_five"),
			}

			item, err := services.ComposeLineItem(product, resolver, in)
			if err != nil {
				if errors.Is(err, services.ErrNoPricing) {
					return apiError(e, http.StatusUnprocessableEntity, "No pricing available for this quantity")
				}
				return apiError(e, http.StatusBadRequest, err.Error())
			}
			setItemFields(record, item)
		}

		if err := app.Save(record); err != nil {
			log.Printf("quote_items: HandleItemUpdate: save %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Could not update item")
		}

		return e.JSON(http.StatusOK, map[string]any{"id": record.Id, "item": itemFromRecord(record)})
	}
}

// HandleItemDelete removes one line item from a quote.
func HandleItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		itemID := e.Request.PathValue("itemId")

		record, err := app.FindRecordById("quote_items", itemID)
		if err != nil || record.GetString("quote") != quoteID {
			return apiError(e, http.StatusNotFound, "Item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("quote_items: HandleItemDelete: delete %s: %v", itemID, err)
			return apiError(e, http.StatusInternalServerError, "Could not delete item")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": itemID})
	}
}

// HandleItemsClear removes every line item from a quote.
func HandleItemsClear(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("quotes", quoteID); err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		records, _, err := loadQuoteItems(app, quoteID)
		if err != nil {
			log.Printf("quote_items: HandleItemsClear: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		for _, r := range records {
			if err := app.Delete(r); err != nil {
				log.Printf("quote_items: HandleItemsClear: delete %s: %v", r.Id, err)
				return apiError(e, http.StatusInternalServerError, "Could not clear items")
			}
		}

		return e.JSON(http.StatusOK, map[string]any{"cleared": len(records)})
	}
}
