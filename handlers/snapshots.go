package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// snapshotPayload is the deep copy of a quote's state stored in a snapshot.
// Restoring replaces the quote's settings and items wholesale with it.
type snapshotPayload struct {
	Settings map[string]any          `json:"settings"`
	Items    []services.LineItemCalc `json:"items"`
	ItemMeta []snapshotItemMeta      `json:"item_meta"`
}

type snapshotItemMeta struct {
	SortOrder int    `json:"sort_order"`
	ProductID string `json:"product_id"`
}

// settingsFields are the quote columns captured in a snapshot payload.
var settingsFields = []string{
	"shipping_cost", "tariff_cost",
	"discount_type", "discount_description", "discount_percent",
	"cc_fee_enabled", "cc_fee_percent", "charm_rounding", "round_to_five",
	"is_new_client", "client_company_name", "client_contact_name", "client_contact_email",
	"client_po", "billing_address", "shipping_type", "shipping_address",
	"payment_timeline", "payment_preference",
}

// HandleSnapshotSave captures the quote's current settings and items as a
// named snapshot.
func HandleSnapshotSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		label := formString(e, "label")
		if label == "" {
			return apiError(e, http.StatusBadRequest, "Label is required")
		}

		records, items, err := loadQuoteItems(app, quoteID)
		if err != nil {
			log.Printf("snapshots: HandleSnapshotSave: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load quote items")
		}

		payload := snapshotPayload{
			Settings: make(map[string]any, len(settingsFields)),
			Items:    items,
		}
		for _, f := range settingsFields {
			payload.Settings[f] = quote.Get(f)
		}
		for _, r := range records {
			payload.ItemMeta = append(payload.ItemMeta, snapshotItemMeta{
				SortOrder: r.GetInt("sort_order"),
				ProductID: r.GetString("product_id"),
			})
		}

		raw, err := json.Marshal(payload)
		if err != nil {
			log.Printf("snapshots: HandleSnapshotSave: marshal: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not serialize snapshot")
		}

		col, err := app.FindCollectionByNameOrId("quote_snapshots")
		if err != nil {
			log.Printf("snapshots: HandleSnapshotSave: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(col)
		record.Set("quote", quoteID)
		record.Set("label", label)
		record.Set("payload", string(raw))

		if err := app.Save(record); err != nil {
			log.Printf("snapshots: HandleSnapshotSave: save: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not save snapshot")
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":    record.Id,
			"label": label,
			"items": len(items),
		})
	}
}

// HandleSnapshotList lists a quote's snapshots, newest first.
func HandleSnapshotList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		if _, err := app.FindRecordById("quotes", quoteID); err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		col, err := app.FindCollectionByNameOrId("quote_snapshots")
		if err != nil {
			log.Printf("snapshots: HandleSnapshotList: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(col, "quote = {:quoteId}", "-created", 0, 0, map[string]any{"quoteId": quoteID})
		if err != nil {
			records = nil
		}

		snapshots := make([]map[string]any, 0, len(records))
		for _, r := range records {
			snapshots = append(snapshots, map[string]any{
				"id":      r.Id,
				"label":   r.GetString("label"),
				"created": r.GetDateTime("created"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"snapshots": snapshots})
	}
}

// HandleSnapshotRestore replaces the quote's settings and items with the
// snapshot payload. Current unsaved state is discarded.
func HandleSnapshotRestore(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		snapshotID := e.Request.PathValue("snapshotId")

		quote, err := app.FindRecordById("quotes", quoteID)
		if err != nil {
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		snapshot, err := app.FindRecordById("quote_snapshots", snapshotID)
		if err != nil || snapshot.GetString("quote") != quoteID {
			return apiError(e, http.StatusNotFound, "Snapshot not found")
		}

		var payload snapshotPayload
		if err := json.Unmarshal([]byte(snapshot.GetString("payload")), &payload); err != nil {
			log.Printf("snapshots: HandleSnapshotRestore: unmarshal %s: %v", snapshotID, err)
			return apiError(e, http.StatusInternalServerError, "Snapshot payload is corrupt")
		}

		for _, f := range settingsFields {
			if v, ok := payload.Settings[f]; ok {
				quote.Set(f, v)
			}
		}
		if err := app.Save(quote); err != nil {
			log.Printf("snapshots: HandleSnapshotRestore: save quote %s: %v", quoteID, err)
			return apiError(e, http.StatusInternalServerError, "Could not restore settings")
		}

		// Replace items wholesale.
		records, _, err := loadQuoteItems(app, quoteID)
		if err != nil {
			log.Printf("snapshots: HandleSnapshotRestore: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load quote items")
		}
		for _, r := range records {
			if err := app.Delete(r); err != nil {
				log.Printf("snapshots: HandleSnapshotRestore: delete item %s: %v", r.Id, err)
				return apiError(e, http.StatusInternalServerError, "Could not restore items")
			}
		}

		itemsCol, err := app.FindCollectionByNameOrId("quote_items")
		if err != nil {
			log.Printf("snapshots: HandleSnapshotRestore: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		for i, item := range payload.Items {
			record := core.NewRecord(itemsCol)
			record.Set("quote", quoteID)

			sortOrder := i + 1
			productID := ""
			if i < len(payload.ItemMeta) {
				sortOrder = payload.ItemMeta[i].SortOrder
				productID = payload.ItemMeta[i].ProductID
			}
			record.Set("sort_order", sortOrder)
			record.Set("product_id", productID)
			setItemFields(record, item)

			if err := app.Save(record); err != nil {
				log.Printf("snapshots: HandleSnapshotRestore: save item %q: %v", item.ProductName, err)
				return apiError(e, http.StatusInternalServerError, "Could not restore items")
			}
		}

		_, items, err := loadQuoteItems(app, quoteID)
		if err != nil {
			log.Printf("snapshots: HandleSnapshotRestore: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load restored items")
		}

		totals := services.AggregateQuote(items, settingsFromQuote(quote))
		return e.JSON(http.StatusOK, quoteSummary(quote, items, totals))
	}
}

// HandleSnapshotDelete removes one snapshot.
func HandleSnapshotDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		snapshotID := e.Request.PathValue("snapshotId")

		record, err := app.FindRecordById("quote_snapshots", snapshotID)
		if err != nil || record.GetString("quote") != quoteID {
			return apiError(e, http.StatusNotFound, "Snapshot not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("snapshots: HandleSnapshotDelete: delete %s: %v", snapshotID, err)
			return apiError(e, http.StatusInternalServerError, "Could not delete snapshot")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": snapshotID})
	}
}
