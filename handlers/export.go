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

const (
	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

// clientFromQuote reads the client block off a quote record.
func clientFromQuote(q *core.Record) services.ClientInfo {
	return services.ClientInfo{
		IsNewClient:       q.GetBool("is_new_client"),
		CompanyName:       q.GetString("client_company_name"),
		ContactName:       q.GetString("client_contact_name"),
		ContactEmail:      q.GetString("client_contact_email"),
		ClientPO:          q.GetString("client_po"),
		BillingAddress:    q.GetString("billing_address"),
		ShippingType:      q.GetString("shipping_type"),
		ShippingAddress:   q.GetString("shipping_address"),
		PaymentTimeline:   q.GetString("payment_timeline"),
		PaymentPreference: q.GetString("payment_preference"),
	}
}

// loadQuoteForExport fetches the quote, its items, and the aggregated totals.
func loadQuoteForExport(app *pocketbase.PocketBase, quoteID string) (*core.Record, []services.LineItemCalc, services.QuoteTotals, error) {
	quote, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return nil, nil, services.QuoteTotals{}, fmt.Errorf("quote not found: %w", err)
	}

	_, items, err := loadQuoteItems(app, quoteID)
	if err != nil {
		return nil, nil, services.QuoteTotals{}, err
	}

	totals := services.AggregateQuote(items, settingsFromQuote(quote))
	return quote, items, totals, nil
}

// buildInvoiceData assembles everything the invoice renderers need.
func buildInvoiceData(app *pocketbase.PocketBase, quoteID string) (services.InvoiceData, error) {
	quote, items, totals, err := loadQuoteForExport(app, quoteID)
	if err != nil {
		return services.InvoiceData{}, err
	}

	return services.InvoiceData{
		QuoteTitle:  quote.GetString("title"),
		QuoteNumber: quote.GetString("quote_number"),
		InvoiceDate: time.Now().Format("January 2, 2006"),
		Client:      clientFromQuote(quote),
		Rows:        services.BuildDocumentRows(items),
		TotalsRows:  services.BuildTotalsRows(totals),
		Totals:      totals,
	}, nil
}

// buildPOData assembles everything the purchase order renderers need.
func buildPOData(app *pocketbase.PocketBase, quoteID string) (services.POData, error) {
	quote, items, totals, err := loadQuoteForExport(app, quoteID)
	if err != nil {
		return services.POData{}, err
	}

	now := time.Now()
	return services.POData{
		PONumber:      services.GeneratePONumber(now),
		PODate:        now.Format("January 2, 2006"),
		TotalUnits:    totals.TotalUnits,
		Client:        clientFromQuote(quote),
		Rows:          services.BuildDocumentRows(items),
		TotalsRows:    services.BuildTotalsRows(totals),
		Totals:        totals,
		AmountInWords: services.AmountToWords(totals.TotalQuote),
	}, nil
}

// buildProposalData assembles the per-product MOQ quantity breaks for the
// proposal export. Products whose MOQ tier cannot be priced are flagged
// rather than dropped.
func buildProposalData(app *pocketbase.PocketBase, resolver services.TierResolver, quoteID string) (services.ProposalData, error) {
	quote, err := app.FindRecordById("quotes", quoteID)
	if err != nil {
		return services.ProposalData{}, fmt.Errorf("quote not found: %w", err)
	}

	records, items, err := loadQuoteItems(app, quoteID)
	if err != nil {
		return services.ProposalData{}, err
	}

	data := services.ProposalData{
		QuoteTitle:          quote.GetString("title"),
		QuoteNumber:         quote.GetString("quote_number"),
		CreatedDate:         time.Now().Format("January 2, 2006"),
		DiscountPercent:     quote.GetFloat("discount_percent"),
		DiscountDescription: quote.GetString("discount_description"),
	}

	for i, item := range items {
		pp := services.ProposalProduct{
			Name:              item.ProductName,
			IsCustom:          item.IsCustom,
			CustomDescription: item.CustomDescription,
			Quantity:          item.Quantity,
			PerUnit:           item.TotalPerUnit,
			Total:             item.ProductTotal,
		}

		if !item.IsCustom {
			productID := records[i].GetString("product_id")
			productRecord, err := app.FindRecordById("catalog_products", productID)
			if err != nil {
				pp.Unpriceable = true
			} else {
				product := services.ProductFromRecord(productRecord)
				qb, err := services.BuildQuantityBreak(product, resolver, item, data.DiscountPercent)
				if err != nil {
					pp.Unpriceable = true
				} else {
					pp.Break = &qb
					pp.FeeNote = qb.FeeNote()
				}
			}
		}

		data.Products = append(data.Products, pp)
	}

	return data, nil
}

// HandleExportSummaryCSV downloads the order summary CSV.
func HandleExportSummaryCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		quote, items, totals, err := loadQuoteForExport(app, quoteID)
		if err != nil {
			log.Printf("export: HandleExportSummaryCSV: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		body, err := services.GenerateSummaryCSV(items, totals)
		if err != nil {
			log.Printf("export: HandleExportSummaryCSV: generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate summary CSV")
		}

		filename := fmt.Sprintf("Summary_%s.csv", sanitizeFilename(quote.GetString("title")))
		return writeDownload(e, csvContentType, filename, body)
	}
}

// HandleExportProposalCSV downloads the MOQ proposal CSV.
func HandleExportProposalCSV(app *pocketbase.PocketBase, resolver services.TierResolver) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		data, err := buildProposalData(app, resolver, quoteID)
		if err != nil {
			log.Printf("export: HandleExportProposalCSV: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		body, err := services.GenerateProposalCSV(data)
		if err != nil {
			log.Printf("export: HandleExportProposalCSV: generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate proposal CSV")
		}

		filename := fmt.Sprintf("Proposal_%s.csv", sanitizeFilename(data.QuoteTitle))
		return writeDownload(e, csvContentType, filename, body)
	}
}

// HandleExportInvoiceCSV downloads the invoice as CSV.
func HandleExportInvoiceCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		data, err := buildInvoiceData(app, quoteID)
		if err != nil {
			log.Printf("export: HandleExportInvoiceCSV: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		body, err := services.GenerateInvoiceCSV(data)
		if err != nil {
			log.Printf("export: HandleExportInvoiceCSV: generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate invoice CSV")
		}

		filename := fmt.Sprintf("Invoice_%s.csv", sanitizeFilename(data.QuoteTitle))
		return writeDownload(e, csvContentType, filename, body)
	}
}

// HandleExportInvoiceExcel downloads the invoice as an xlsx workbook.
func HandleExportInvoiceExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		data, err := buildInvoiceData(app, quoteID)
		if err != nil {
			log.Printf("export: HandleExportInvoiceExcel: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		body, err := services.GenerateInvoiceExcel(data)
		if err != nil {
			log.Printf("export: HandleExportInvoiceExcel: generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate invoice Excel file")
		}

		filename := fmt.Sprintf("Invoice_%s_%d.xlsx", sanitizeFilename(data.QuoteTitle), time.Now().Year())
		return writeDownload(e, xlsxContentType, filename, body)
	}
}

// HandleExportInvoicePDF downloads the invoice as a PDF.
func HandleExportInvoicePDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		data, err := buildInvoiceData(app, quoteID)
		if err != nil {
			log.Printf("export: HandleExportInvoicePDF: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		body, err := services.GenerateInvoicePDF(data)
		if err != nil {
			log.Printf("export: HandleExportInvoicePDF: generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate invoice PDF")
		}

		filename := fmt.Sprintf("Invoice_%s_%d.pdf", sanitizeFilename(data.QuoteTitle), time.Now().Year())
		return writeDownload(e, pdfContentType, filename, body)
	}
}

// HandleExportPOCSV downloads the purchase order as CSV.
func HandleExportPOCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		data, err := buildPOData(app, quoteID)
		if err != nil {
			log.Printf("export: HandleExportPOCSV: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		body, err := services.GeneratePOCSV(data)
		if err != nil {
			log.Printf("export: HandleExportPOCSV: generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PO CSV")
		}

		filename := fmt.Sprintf("%s.csv", data.PONumber)
		return writeDownload(e, csvContentType, filename, body)
	}
}

// HandleExportPOPDF downloads the purchase order as a PDF.
func HandleExportPOPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		data, err := buildPOData(app, quoteID)
		if err != nil {
			log.Printf("export: HandleExportPOPDF: %v", err)
			return apiError(e, http.StatusNotFound, "Quote not found")
		}

		body, err := services.GeneratePOPDF(data)
		if err != nil {
			log.Printf("export: HandleExportPOPDF: generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PO PDF")
		}

		filename := fmt.Sprintf("%s.pdf", data.PONumber)
		return writeDownload(e, pdfContentType, filename, body)
	}
}
