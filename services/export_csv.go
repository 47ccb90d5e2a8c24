package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// GenerateSummaryCSV serializes the order summary: one row per line item
// followed by the totals block.
func GenerateSummaryCSV(items []LineItemCalc, t QuoteTotals) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Product", "Quantity", "Per Unit", "Total"})
	for _, item := range items {
		w.Write([]string{
			item.ProductName,
			fmt.Sprintf("%d", item.Quantity),
			FormatUSD(item.TotalPerUnit),
			FormatUSD(item.ProductTotal),
		})
	}

	w.Write([]string{"Products Subtotal", "", "", FormatUSD(t.ProductsSubtotal)})
	if t.DiscountAmount > 0 {
		label := t.DiscountDescription
		if label == "" {
			label = fmt.Sprintf("%.1f%%", t.DiscountPercent)
		}
		w.Write([]string{fmt.Sprintf("Discount (%s)", label), "", "", "-" + FormatUSD(t.DiscountAmount)})
	}
	w.Write([]string{"Shipping", "", "", FormatUSD(t.ShippingCost)})
	w.Write([]string{"Tariff", "", "", FormatUSD(t.TariffTotal)})
	if t.CCFeeAmount > 0 {
		w.Write([]string{fmt.Sprintf("Credit Card Fee (%.1f%%)", t.CCFeePercent), "", "", FormatUSD(t.CCFeeAmount)})
	}
	w.Write([]string{"TOTAL QUOTE", fmt.Sprintf("%d total units", t.TotalUnits), "", FormatUSD(t.TotalQuote)})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write summary csv: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateInvoiceCSV serializes the invoice: line items (with customization
// and tariff as their own rows), a blank spacer, then the totals block in
// the last column.
func GenerateInvoiceCSV(data InvoiceData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Product/Service Name", "Description", "Quantity", "Pricing Tier", "Price (Per-Unit)", "Total (Per-Item)"})
	for _, r := range data.Rows {
		w.Write([]string{r.Name, r.Description, r.Quantity, r.TierRange, r.PerUnit, r.Total})
	}

	w.Write([]string{"", "", "", "", "", ""})
	for _, tr := range data.TotalsRows {
		w.Write([]string{tr.Label, "", "", "", "", tr.Amount})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write invoice csv: %w", err)
	}
	return buf.Bytes(), nil
}

// GeneratePOCSV serializes the purchase order with the PO column set.
func GeneratePOCSV(data POData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Partner", "Product/Service", "Product Ref", "Quantity", "Unit Cost", "Total", "Notes"})
	for _, r := range data.Rows {
		notes := r.Description
		if r.Kind == "product" {
			notes = "Tier: " + r.TierRange
		}
		w.Write([]string{r.Partner, r.Name, r.ProductRef, r.Quantity, r.PerUnit, r.Total, notes})
	}

	w.Write([]string{"", "", "", "", "", "", ""})
	for _, tr := range data.TotalsRows {
		w.Write([]string{tr.Label, "", "", "", "", tr.Amount, ""})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write po csv: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateProposalCSV serializes the proposal quantity-break tables, one
// section per product.
func GenerateProposalCSV(data ProposalData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	discountCol := "Price Ea (No Discount)"
	if data.DiscountPercent > 0 {
		discountCol = "Price Ea " + data.DiscountDescription
	}

	for i, p := range data.Products {
		w.Write([]string{fmt.Sprintf("Product %d: %s", i+1, p.Name)})

		switch {
		case p.IsCustom:
			w.Write([]string{"Description", "Quantity", "Unit Price", "Total"})
			w.Write([]string{
				p.CustomDescription,
				fmt.Sprintf("%d", p.Quantity),
				FormatUSD(p.PerUnit),
				FormatUSD(p.Total),
			})
		case p.Unpriceable:
			w.Write([]string{"No MOQ pricing available"})
		default:
			qb := p.Break
			w.Write([]string{"MOQ", fmt.Sprintf("Price Ea (@ Qty %d)", qb.MOQ), discountCol, "Delivery"})
			w.Write([]string{
				fmt.Sprintf("%d", qb.MOQ),
				FormatUSD(qb.PerUnit),
				FormatUSD(qb.DiscountedPerUnit),
				"",
			})
			w.Write([]string{fmt.Sprintf("MOQ %d units = %s at $1,000 minimum order value", qb.MOQ, FormatUSD(qb.OrderValue))})
			if p.FeeNote != "" {
				w.Write([]string{p.FeeNote})
			}
		}

		w.Write([]string{""})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write proposal csv: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateCatalogCSV serializes the full catalog with the template column
// set, for the "download pricing data" operation.
func GenerateCatalogCSV(products []*CatalogProduct) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	fields := CatalogTemplateFields()
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Label
	}
	w.Write(header)

	for _, p := range products {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = catalogFieldValue(p, f.Key)
		}
		w.Write(row)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write catalog csv: %w", err)
	}
	return buf.Bytes(), nil
}

func catalogFieldValue(p *CatalogProduct, key string) string {
	switch key {
	case "partner":
		return p.Partner
	case "name":
		return p.Name
	case "product_ref":
		return p.ProductRef
	case "country_of_origin":
		return p.CountryOfOrigin
	case "description":
		return p.Description
	case "customization_info":
		return p.CustomizationInfo
	case "has_tiers":
		if p.HasTiers {
			return "Y"
		}
		return "N"
	case "tier_info":
		return p.TierInfo
	case "flat_price":
		return p.FlatPrice
	case "customization_setup_fee":
		return p.CustomizationSetupFee
	case "customization_unit_fee":
		return p.CustomizationUnitFee
	case "customization_minimum":
		return p.CustomizationMinimum
	case "tariff_rate":
		return p.TariffRate
	}
	for i := 1; i <= MaxParsedTiers; i++ {
		if key == tierPriceField(i) {
			return p.TierPriceField(i)
		}
	}
	for i := 1; i <= LadderBands; i++ {
		if key == ladderPriceField(i) {
			return p.LadderPriceField(i)
		}
	}
	return ""
}
