package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateInvoicePDF creates an invoice PDF using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateInvoicePDF(data InvoiceData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addInvoiceHeader(m, data)
	addInvoiceClientBlock(m, data.Client)
	addInvoiceTableHeader(m)
	for _, r := range data.Rows {
		addInvoiceTableRow(m, r)
	}
	addTotalsBlock(m, data.TotalsRows)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addInvoiceHeader adds the title, quote number, and date.
func addInvoiceHeader(m core.Maroto, data InvoiceData) {
	title := data.QuoteTitle
	if title == "" {
		title = "Invoice"
	}

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Quote: %s", data.QuoteNumber), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Invoice Date: %s", data.InvoiceDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addInvoiceClientBlock adds the bill-to details when client info is present.
func addInvoiceClientBlock(m core.Maroto, c ClientInfo) {
	if c.CompanyName == "" && c.ContactName == "" {
		return
	}

	sectionLabel := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("BILL TO", sectionLabel)),
		),
	)

	if c.CompanyName != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(c.CompanyName, props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Left,
				})),
			),
		)
	}

	contactParts := []string{}
	if c.ContactName != "" {
		contactParts = append(contactParts, c.ContactName)
	}
	if c.ContactEmail != "" {
		contactParts = append(contactParts, c.ContactEmail)
	}
	if len(contactParts) > 0 {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(joinNonEmpty(contactParts, " | "), valueStyle)),
			),
		)
	}

	if c.BillingAddress != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(c.BillingAddress, valueStyle)),
			),
		)
	}

	if c.ClientPO != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(fmt.Sprintf("Client PO: %s", c.ClientPO), valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addInvoiceTableHeader adds the column header row for the invoice table.
func addInvoiceTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(
				text.New("Product/Service Name", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(3).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Pricing Tier", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Per-Unit", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Total", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addInvoiceTableRow adds a single data row, styled by row kind.
func addInvoiceTableRow(m core.Maroto, r DocumentRow) {
	var cellStyle *props.Cell
	var textStyle fontstyle.Type = fontstyle.Normal
	var textSize float64 = 7
	namePrefix := ""

	switch r.Kind {
	case "product", "custom":
		textStyle = fontstyle.Bold
		textSize = 8
	default:
		// Component rows (customization, tariff) indent under their product.
		namePrefix = "  "
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	baseText := props.Text{
		Size:  textSize,
		Style: textStyle,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	colName := col.New(3).Add(text.New(namePrefix+r.Name, leftText))
	colDesc := col.New(3).Add(text.New(r.Description, leftText))
	colQty := col.New(1).Add(text.New(r.Quantity, rightText))
	colTier := col.New(2).Add(text.New(r.TierRange, baseText))
	colPerUnit := col.New(1).Add(text.New(r.PerUnit, rightText))
	colTotal := col.New(2).Add(text.New(r.Total, rightText))

	if cellStyle != nil {
		colName = colName.WithStyle(cellStyle)
		colDesc = colDesc.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colTier = colTier.WithStyle(cellStyle)
		colPerUnit = colPerUnit.WithStyle(cellStyle)
		colTotal = colTotal.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colName, colDesc, colQty, colTier, colPerUnit, colTotal,
		),
	)
}

// addTotalsBlock adds right-aligned totals rows shared by invoice and PO
// documents. The final row gets the dark grand-total treatment.
func addTotalsBlock(m core.Maroto, totals []TotalsRow) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	grandBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	grandCell := &props.Cell{BackgroundColor: grandBg}
	grandLabelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	grandValueStyle := grandLabelStyle

	for i, tr := range totals {
		label := labelStyle
		value := valueStyle
		cell := summaryCell
		height := 7.0
		if i == len(totals)-1 {
			label = grandLabelStyle
			value = grandValueStyle
			cell = grandCell
			height = 8.0
		}
		m.AddRows(
			row.New(height).Add(
				col.New(9).Add(text.New(tr.Label, label)).WithStyle(cell),
				col.New(3).Add(text.New(tr.Amount, value)).WithStyle(cell),
			),
		)
	}
}

// GeneratePOPDF creates a purchase order PDF using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePOPDF(data POData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPOHeader(m, data)
	addPOShippingBlock(m, data.Client)
	addPOTableHeader(m)
	for _, r := range data.Rows {
		addPOTableRow(m, r)
	}
	addTotalsBlock(m, data.TotalsRows)
	addPOAmountInWords(m, data)
	addPOSignatures(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PO PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addPOHeader adds the "PURCHASE ORDER" title, PO number, date, and unit count.
func addPOHeader(m core.Maroto, data POData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New("PURCHASE ORDER", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("PO #: %s", data.PONumber), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Order Date: %s", data.PODate), props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Total Units: %d", data.TotalUnits), props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addPOShippingBlock adds the ship-to details when present.
func addPOShippingBlock(m core.Maroto, c ClientInfo) {
	if c.ShippingAddress == "" && c.CompanyName == "" {
		return
	}

	sectionLabel := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("SHIP TO", sectionLabel)),
		),
	)

	if c.CompanyName != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(c.CompanyName, props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Left,
				})),
			),
		)
	}

	if c.ShippingAddress != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(c.ShippingAddress, valueStyle)),
			),
		)
	}

	if c.ShippingType != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(fmt.Sprintf("Shipping: %s", c.ShippingType), valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addPOTableHeader adds the column header row for the PO line items table.
func addPOTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(2).Add(text.New("Partner", headerTextLeft)).WithStyle(&headerCell),
			col.New(3).Add(text.New("Product/Service", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Product Ref", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit Cost", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)
}

// addPOTableRow adds a single PO line, with alternating treatment for
// component rows.
func addPOTableRow(m core.Maroto, r DocumentRow) {
	var cellStyle *props.Cell
	var textStyle fontstyle.Type = fontstyle.Normal
	namePrefix := ""

	switch r.Kind {
	case "product", "custom":
		textStyle = fontstyle.Bold
	default:
		namePrefix = "  "
		bg := &props.Color{Red: 248, Green: 249, Blue: 250}
		cellStyle = &props.Cell{BackgroundColor: bg}
	}

	bodyText := props.Text{Size: 7, Style: textStyle, Align: align.Center}
	bodyTextLeft := props.Text{Size: 7, Style: textStyle, Align: align.Left}
	bodyTextRight := props.Text{Size: 7, Style: textStyle, Align: align.Right}

	colPartner := col.New(2).Add(text.New(r.Partner, bodyTextLeft))
	colName := col.New(3).Add(text.New(namePrefix+r.Name, bodyTextLeft))
	colRef := col.New(2).Add(text.New(r.ProductRef, bodyText))
	colQty := col.New(1).Add(text.New(r.Quantity, bodyTextRight))
	colUnit := col.New(2).Add(text.New(r.PerUnit, bodyTextRight))
	colTotal := col.New(2).Add(text.New(r.Total, bodyTextRight))

	if cellStyle != nil {
		colPartner = colPartner.WithStyle(cellStyle)
		colName = colName.WithStyle(cellStyle)
		colRef = colRef.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUnit = colUnit.WithStyle(cellStyle)
		colTotal = colTotal.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colPartner, colName, colRef, colQty, colUnit, colTotal,
		),
	)
}

// addPOAmountInWords adds the amount in words row.
func addPOAmountInWords(m core.Maroto, data POData) {
	if data.AmountInWords == "" {
		return
	}

	m.AddRows(row.New(3))
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Amount in Words: %s", data.AmountInWords), props.Text{
					Size:  8,
					Style: fontstyle.BoldItalic,
					Align: align.Left,
				}),
			),
		),
	)
}

// addPOSignatures adds the signature section at the bottom.
func addPOSignatures(m core.Maroto) {
	m.AddRows(row.New(10))

	lineStyle := props.Text{
		Size:  8,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("____________________________", lineStyle)),
			col.New(6).Add(text.New("____________________________", lineStyle)),
		),
	)

	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("Supplier Signature", labelStyle)),
			col.New(6).Add(text.New("Authorized Signatory / Purchasing", labelStyle)),
		),
	)
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	result := ""
	for i, p := range nonEmpty {
		if i > 0 {
			result += sep
		}
		result += p
	}
	return result
}
