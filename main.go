package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/collections"
	"quotebuilder/handlers"
	"quotebuilder/services"
)

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Printf("main: no .env file loaded: %v", err)
	}

	catalogFile := os.Getenv("CATALOG_FILE")
	catalogTTL := 10 * time.Minute
	if raw := os.Getenv("CATALOG_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			catalogTTL = time.Duration(minutes) * time.Minute
		}
	}

	// "parsed" reads tier ranges out of the pricing-tiers-info cell;
	// "ladder" uses the fixed quantity-band columns.
	resolver := services.ResolverForSchema(os.Getenv("PRICING_SCHEMA"))
	cache := services.NewCatalogCache(catalogTTL)

	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Catalog ──────────────────────────────────────────────
		se.Router.GET("/api/catalog", handlers.HandleCatalogList(app, cache, catalogFile))
		se.Router.POST("/api/catalog/refresh", handlers.HandleCatalogRefresh(app, cache, catalogFile))
		se.Router.POST("/api/catalog/import", handlers.HandleCatalogImport(app, cache))
		se.Router.GET("/api/catalog/export/csv", handlers.HandleCatalogExportCSV(app))
		se.Router.GET("/api/catalog/{id}", handlers.HandleCatalogGet(app))

		// ── Quote CRUD ───────────────────────────────────────────
		se.Router.GET("/api/quotes", handlers.HandleQuoteList(app))
		se.Router.POST("/api/quotes", handlers.HandleQuoteCreate(app))
		se.Router.GET("/api/quotes/{id}", handlers.HandleQuoteView(app))
		se.Router.DELETE("/api/quotes/{id}", handlers.HandleQuoteDelete(app))
		se.Router.POST("/api/quotes/{id}/settings", handlers.HandleQuoteSettings(app))

		// ── Line items ───────────────────────────────────────────
		se.Router.POST("/api/quotes/{id}/items/preview", handlers.HandleItemPreview(app, resolver))
		se.Router.POST("/api/quotes/{id}/items", handlers.HandleItemAdd(app, resolver))
		se.Router.POST("/api/quotes/{id}/items/custom", handlers.HandleCustomItemAdd(app))
		se.Router.PATCH("/api/quotes/{id}/items/{itemId}", handlers.HandleItemUpdate(app, resolver))
		se.Router.DELETE("/api/quotes/{id}/items/{itemId}", handlers.HandleItemDelete(app))
		se.Router.DELETE("/api/quotes/{id}/items", handlers.HandleItemsClear(app))

		// ── Snapshots ────────────────────────────────────────────
		se.Router.POST("/api/quotes/{id}/snapshots", handlers.HandleSnapshotSave(app))
		se.Router.GET("/api/quotes/{id}/snapshots", handlers.HandleSnapshotList(app))
		se.Router.POST("/api/quotes/{id}/snapshots/{snapshotId}/restore", handlers.HandleSnapshotRestore(app))
		se.Router.DELETE("/api/quotes/{id}/snapshots/{snapshotId}", handlers.HandleSnapshotDelete(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/api/quotes/{id}/export/summary/csv", handlers.HandleExportSummaryCSV(app))
		se.Router.GET("/api/quotes/{id}/export/proposal/csv", handlers.HandleExportProposalCSV(app, resolver))
		se.Router.GET("/api/quotes/{id}/export/invoice/csv", handlers.HandleExportInvoiceCSV(app))
		se.Router.GET("/api/quotes/{id}/export/invoice/xlsx", handlers.HandleExportInvoiceExcel(app))
		se.Router.GET("/api/quotes/{id}/export/invoice/pdf", handlers.HandleExportInvoicePDF(app))
		se.Router.GET("/api/quotes/{id}/export/po/csv", handlers.HandleExportPOCSV(app))
		se.Router.GET("/api/quotes/{id}/export/po/pdf", handlers.HandleExportPOPDF(app))

		// Redirect home to the quote list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/api/quotes")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
