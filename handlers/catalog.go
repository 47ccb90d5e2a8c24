package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// loadCatalog returns catalog products as typed records, sorted by partner
// then name. A non-empty partner narrows the list to that partner.
func loadCatalog(app *pocketbase.PocketBase, partner string) ([]*services.CatalogProduct, error) {
	col, err := app.FindCollectionByNameOrId("catalog_products")
	if err != nil {
		return nil, fmt.Errorf("catalog_products collection not found: %w", err)
	}

	filter := "id != ''"
	params := map[string]any{}
	if partner != "" {
		filter = "partner = {:partner}"
		params["partner"] = partner
	}

	records, err := app.FindRecordsByFilter(col, filter, "partner,name", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("could not list catalog: %w", err)
	}

	products := make([]*services.CatalogProduct, 0, len(records))
	for _, r := range records {
		products = append(products, services.ProductFromRecord(r))
	}
	return products, nil
}

// refreshCatalogFromFile re-imports the catalog from the configured source
// file and marks the cache as loaded.
func refreshCatalogFromFile(app *pocketbase.PocketBase, cache *services.CatalogCache, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("could not open catalog file %q: %w", path, err)
	}
	defer f.Close()

	result, err := services.ValidateCatalogFile(f, path)
	if err != nil {
		return 0, err
	}

	imported, err := services.ImportCatalog(app, result)
	if err != nil {
		return imported, err
	}

	cache.MarkLoaded(time.Now())
	return imported, nil
}

// HandleCatalogList lists all catalog products. If a source file is
// configured and the cache TTL has lapsed, the catalog is refreshed first.
func HandleCatalogList(app *pocketbase.PocketBase, cache *services.CatalogCache, catalogFile string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if catalogFile != "" && cache.Stale(time.Now()) {
			if _, err := refreshCatalogFromFile(app, cache, catalogFile); err != nil {
				// Stale data beats no data: log and serve what is stored.
				log.Printf("catalog: HandleCatalogList: refresh failed: %v", err)
			}
		}

		products, err := loadCatalog(app, e.Request.URL.Query().Get("partner"))
		if err != nil {
			log.Printf("catalog: HandleCatalogList: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load catalog")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"products":  products,
			"loaded_at": cache.LoadedAt(),
		})
	}
}

// HandleCatalogGet returns one catalog product by id.
func HandleCatalogGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return apiError(e, http.StatusBadRequest, "Missing product ID")
		}

		record, err := app.FindRecordById("catalog_products", id)
		if err != nil {
			log.Printf("catalog: HandleCatalogGet: not found %s: %v", id, err)
			return apiError(e, http.StatusNotFound, "Product not found")
		}

		return e.JSON(http.StatusOK, services.ProductFromRecord(record))
	}
}

// HandleCatalogRefresh forces a re-import from the configured source file.
func HandleCatalogRefresh(app *pocketbase.PocketBase, cache *services.CatalogCache, catalogFile string) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if catalogFile == "" {
			return apiError(e, http.StatusBadRequest, "No catalog source file configured")
		}

		imported, err := refreshCatalogFromFile(app, cache, catalogFile)
		if err != nil {
			log.Printf("catalog: HandleCatalogRefresh: %v", err)
			return apiError(e, http.StatusInternalServerError, "Catalog refresh failed")
		}

		return e.JSON(http.StatusOK, map[string]any{"imported": imported})
	}
}

// HandleCatalogImport validates an uploaded catalog spreadsheet and, when it
// contains usable rows, replaces the stored catalog with it.
func HandleCatalogImport(app *pocketbase.PocketBase, cache *services.CatalogCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Missing uploaded file")
		}
		defer file.Close()

		result, err := services.ValidateCatalogFile(file, header.Filename)
		if err != nil {
			log.Printf("catalog: HandleCatalogImport: validation: %v", err)
			return apiError(e, http.StatusUnprocessableEntity, err.Error())
		}

		imported, err := services.ImportCatalog(app, result)
		if err != nil {
			log.Printf("catalog: HandleCatalogImport: import: %v", err)
			return apiError(e, http.StatusInternalServerError, "Catalog import failed")
		}

		cache.MarkLoaded(time.Now())

		return e.JSON(http.StatusOK, map[string]any{
			"imported":   imported,
			"validation": result,
		})
	}
}

// HandleCatalogExportCSV downloads the stored catalog as a CSV in the
// template column layout.
func HandleCatalogExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		products, err := loadCatalog(app, "")
		if err != nil {
			log.Printf("catalog: HandleCatalogExportCSV: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load catalog")
		}

		body, err := services.GenerateCatalogCSV(products)
		if err != nil {
			log.Printf("catalog: HandleCatalogExportCSV: generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not generate catalog CSV")
		}

		filename := fmt.Sprintf("catalog_%s.csv", time.Now().Format("20060102"))
		return writeDownload(e, "text/csv", filename, body)
	}
}
