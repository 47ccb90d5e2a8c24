package services

import (
	"fmt"
	"math"
)

// LineItemInput carries the user-configured knobs for one line item.
type LineItemInput struct {
	Quantity             int
	MarkupPercent        float64
	IncludeCustomization bool
	// RoundToFive rounds the per-unit total to the nearest multiple of 5
	// (standard half-up) and recomputes the product total from it. The same
	// path runs for previews and committed items.
	RoundToFive bool
}

// LineItemCalc holds one fully composed line item: configuration, resolved
// price and every derived monetary field.
type LineItemCalc struct {
	ProductName string
	Partner     string
	ProductRef  string

	IsCustom          bool
	CustomDescription string

	Quantity             int
	MarkupPercent        float64
	IncludeCustomization bool

	BasePrice   float64
	TierRange   string
	PriceSource string

	CustomizationSetupFee float64
	CustomizationPerUnit  float64
	CustomizationQty      int    // effective billable quantity (after minimum)
	CustomizationWarning  string // set when the minimum exceeds the ordered quantity

	ProductSubtotal         float64
	CustomizationSetupTotal float64
	CustomizationUnitTotal  float64
	SubtotalBeforeMarkup    float64
	MarkupAmount            float64
	TariffAmount            float64
	ProductTotal            float64
	TotalPerUnit            float64
}

// ComposeLineItem resolves the unit price for the requested quantity and
// derives all monetary fields.
//
// Markup applies to the product subtotal only — never to customization,
// shipping or tariff. The per-product tariff base is product subtotal plus
// markup, excluding customization.
func ComposeLineItem(p *CatalogProduct, resolver TierResolver, in LineItemInput) (LineItemCalc, error) {
	if in.Quantity < 1 {
		return LineItemCalc{}, fmt.Errorf("quantity must be at least 1, got %d", in.Quantity)
	}

	resolved, err := resolver.ResolveUnitPrice(p, in.Quantity)
	if err != nil {
		return LineItemCalc{}, err
	}

	item := LineItemCalc{
		ProductName:          p.Name,
		Partner:              p.Partner,
		ProductRef:           p.ProductRef,
		Quantity:             in.Quantity,
		MarkupPercent:        in.MarkupPercent,
		IncludeCustomization: in.IncludeCustomization,
		BasePrice:            resolved.UnitPrice,
		TierRange:            resolved.TierRange,
		PriceSource:          resolved.Source,
	}

	item.ProductSubtotal = resolved.UnitPrice * float64(in.Quantity)

	if in.IncludeCustomization {
		item.CustomizationSetupFee = p.SetupFee()
		item.CustomizationPerUnit = p.UnitFee()

		item.CustomizationQty = in.Quantity
		if minQty := p.MinimumCustomizationQty(); minQty > in.Quantity {
			item.CustomizationQty = minQty
			item.CustomizationWarning = fmt.Sprintf(
				"Minimum %d units required for customization. Charging for %d units even though ordering %d.",
				minQty, minQty, in.Quantity)
		}

		item.CustomizationSetupTotal = item.CustomizationSetupFee
		item.CustomizationUnitTotal = item.CustomizationPerUnit * float64(item.CustomizationQty)
	}

	item.SubtotalBeforeMarkup = item.ProductSubtotal + item.CustomizationSetupTotal + item.CustomizationUnitTotal
	item.MarkupAmount = item.ProductSubtotal * in.MarkupPercent / 100
	item.TariffAmount = p.TariffRatePercent() * (item.ProductSubtotal + item.MarkupAmount) / 100

	item.ProductTotal = item.SubtotalBeforeMarkup + item.MarkupAmount
	item.TotalPerUnit = item.ProductTotal / float64(in.Quantity)

	if in.RoundToFive {
		item.TotalPerUnit = RoundToNearestFive(item.TotalPerUnit)
		item.ProductTotal = item.TotalPerUnit * float64(in.Quantity)
	}

	return item, nil
}

// ComposeCustomLineItem builds a free-form line item with no catalog link.
// The caller supplies the total price directly; no markup, customization or
// tariff applies.
func ComposeCustomLineItem(name, description string, quantity int, totalPrice float64) (LineItemCalc, error) {
	if quantity < 1 {
		return LineItemCalc{}, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}
	if totalPrice <= 0 {
		return LineItemCalc{}, fmt.Errorf("total price must be greater than zero")
	}
	if description == "" {
		description = "Custom line item"
	}

	perUnit := totalPrice / float64(quantity)
	return LineItemCalc{
		ProductName:          name,
		Partner:              "Custom",
		ProductRef:           "CUSTOM",
		IsCustom:             true,
		CustomDescription:    description,
		Quantity:             quantity,
		BasePrice:            perUnit,
		TierRange:            "N/A",
		PriceSource:          "N/A",
		ProductSubtotal:      totalPrice,
		SubtotalBeforeMarkup: totalPrice,
		ProductTotal:         totalPrice,
		TotalPerUnit:         perUnit,
	}, nil
}

// RoundToNearestFive rounds to the nearest multiple of 5 using standard
// half-up rounding (2.5 away from zero).
func RoundToNearestFive(v float64) float64 {
	return math.Round(v/5) * 5
}
