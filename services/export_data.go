package services

import "fmt"

// ClientInfo is the client block rendered on invoices and purchase orders.
type ClientInfo struct {
	IsNewClient       bool
	CompanyName       string
	ContactName       string
	ContactEmail      string
	ClientPO          string
	BillingAddress    string
	ShippingType      string
	ShippingAddress   string
	PaymentTimeline   string
	PaymentPreference string
}

// DocumentRow is one line of an invoice or purchase order table.
// Customization and tariff get their own rows; they are never folded into
// the base product row.
type DocumentRow struct {
	Kind        string // "product", "custom", "customization_setup", "customization", "tariff"
	Partner     string
	Name        string
	ProductRef  string
	Description string
	Quantity    string
	TierRange   string
	PerUnit     string
	Total       string
}

// TotalsRow is one line of a document's totals block, already formatted.
type TotalsRow struct {
	Label  string
	Amount string
}

// InvoiceData holds everything needed to render an invoice in any format.
type InvoiceData struct {
	QuoteTitle  string
	QuoteNumber string
	InvoiceDate string
	Client      ClientInfo
	Rows        []DocumentRow
	TotalsRows  []TotalsRow
	Totals      QuoteTotals
}

// POData holds everything needed to render a purchase order.
type POData struct {
	PONumber   string
	PODate     string
	TotalUnits int
	Client     ClientInfo
	Rows       []DocumentRow
	TotalsRows []TotalsRow
	Totals     QuoteTotals

	AmountInWords string
}

// ProposalProduct is one product section of a proposal: the MOQ quantity
// break plus its customization fee note.
type ProposalProduct struct {
	Name              string
	IsCustom          bool
	CustomDescription string
	Quantity          int
	PerUnit           float64
	Total             float64

	Break       *QuantityBreak // nil for custom items or failed resolution
	FeeNote     string
	Unpriceable bool
}

// ProposalData holds the per-product proposal sections.
type ProposalData struct {
	QuoteTitle          string
	QuoteNumber         string
	CreatedDate         string
	DiscountPercent     float64
	DiscountDescription string
	Products            []ProposalProduct
}

// BuildDocumentRows expands line items into document rows, splitting
// customization and per-product tariff out of each base product row.
// The base product row carries the product subtotal plus markup.
func BuildDocumentRows(items []LineItemCalc) []DocumentRow {
	var rows []DocumentRow

	for _, item := range items {
		if item.IsCustom {
			rows = append(rows, DocumentRow{
				Kind:        "custom",
				Partner:     "Custom",
				Name:        item.ProductName,
				ProductRef:  "N/A",
				Description: item.CustomDescription,
				Quantity:    fmt.Sprintf("%d", item.Quantity),
				TierRange:   "Custom",
				PerUnit:     FormatUSD(item.TotalPerUnit),
				Total:       FormatUSD(item.ProductTotal),
			})
			continue
		}

		productTotal := item.ProductSubtotal + item.MarkupAmount
		rows = append(rows, DocumentRow{
			Kind:        "product",
			Partner:     item.Partner,
			Name:        item.ProductName,
			ProductRef:  item.ProductRef,
			Description: fmt.Sprintf("Product Ref: %s, Partner: %s", item.ProductRef, item.Partner),
			Quantity:    fmt.Sprintf("%d", item.Quantity),
			TierRange:   item.TierRange,
			PerUnit:     FormatUSD(productTotal / float64(item.Quantity)),
			Total:       FormatUSD(productTotal),
		})

		if item.CustomizationSetupTotal > 0 {
			rows = append(rows, DocumentRow{
				Kind:        "customization_setup",
				Name:        "Customization Set-Up",
				Description: fmt.Sprintf("One-time setup for %s", item.ProductName),
				Total:       FormatUSD(item.CustomizationSetupTotal),
			})
		}
		if item.CustomizationUnitTotal > 0 {
			rows = append(rows, DocumentRow{
				Kind: "customization",
				Name: "Customization",
				Description: fmt.Sprintf("%d units @ %s for %s",
					item.CustomizationQty, FormatUSD(item.CustomizationPerUnit), item.ProductName),
				Quantity: fmt.Sprintf("%d", item.CustomizationQty),
				PerUnit:  FormatUSD(item.CustomizationPerUnit),
				Total:    FormatUSD(item.CustomizationUnitTotal),
			})
		}
		if item.TariffAmount > 0 {
			rows = append(rows, DocumentRow{
				Kind:        "tariff",
				Name:        "Tariff",
				Description: fmt.Sprintf("Import duty for %s", item.ProductName),
				Total:       FormatUSD(item.TariffAmount),
			})
		}
	}

	return rows
}

// BuildTotalsRows renders the aggregated totals into the document totals
// block. Optional lines (discount, credit card fee) appear only when
// non-zero.
func BuildTotalsRows(t QuoteTotals) []TotalsRow {
	rows := []TotalsRow{
		{Label: "Subtotal (Pre-Tax)", Amount: FormatUSD(t.ProductsSubtotal)},
	}

	if t.DiscountAmount > 0 {
		label := t.DiscountDescription
		if label == "" {
			label = fmt.Sprintf("%.1f%%", t.DiscountPercent)
		}
		rows = append(rows, TotalsRow{
			Label:  fmt.Sprintf("Discount (%s)", label),
			Amount: "-" + FormatUSD(t.DiscountAmount),
		})
	}

	rows = append(rows,
		TotalsRow{Label: "Shipping", Amount: FormatUSD(t.ShippingCost)},
		TotalsRow{Label: "Tariff", Amount: FormatUSD(t.TariffTotal)},
	)

	if t.CCFeeAmount > 0 {
		rows = append(rows, TotalsRow{
			Label:  fmt.Sprintf("Credit Card Fee (%.1f%%)", t.CCFeePercent),
			Amount: FormatUSD(t.CCFeeAmount),
		})
	}

	rows = append(rows, TotalsRow{Label: "Final Total", Amount: FormatUSD(t.TotalQuote)})
	return rows
}

// FeeNote renders the proposal customization fee caption for a quantity
// break.
func (qb *QuantityBreak) FeeNote() string {
	if qb == nil {
		return ""
	}
	note := ""
	if qb.CustomizationSetupTotal > 0 {
		note = fmt.Sprintf("Customization Set-Up: %s", FormatUSD(qb.CustomizationSetupTotal))
	}
	if qb.CustomizationPerUnit > 0 {
		if note != "" {
			note += "; "
		}
		note += fmt.Sprintf("Customization: %s per unit", FormatUSD(qb.CustomizationPerUnit))
	}
	if note == "" {
		return "No additional customization fees"
	}
	return note
}
