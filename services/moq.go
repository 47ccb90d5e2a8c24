package services

import "math"

// MinimumOrderValue is the order value a recommended MOQ must reach.
const MinimumOrderValue = 1000.0

// fallbackMOQ is used when no unit price can be estimated for a product.
const fallbackMOQ = 5

// CalcMOQ back-solves the minimum order quantity that meets the minimum
// order value: ceil(1000 / unit price). Returns 0 for a non-positive price.
func CalcMOQ(unitPrice float64) int {
	if unitPrice <= 0 {
		return 0
	}
	return int(math.Ceil(MinimumOrderValue / unitPrice))
}

// QuantityBreak is the MOQ-based pricing row shown on proposals.
type QuantityBreak struct {
	MOQ               int
	TierRange         string
	BasePrice         float64
	PerUnit           float64 // markup + customization included, at MOQ
	DiscountedPerUnit float64
	OrderValue        float64 // MOQ * PerUnit

	CustomizationSetupTotal float64
	CustomizationPerUnit    float64
}

// BuildQuantityBreak computes the proposal quantity break for one line item
// in two passes: first estimate a fully loaded unit price at the item's
// current quantity to back-solve the MOQ, then re-resolve the tier at that
// MOQ and recompose the per-unit price there so the break reflects the
// MOQ's own tier.
func BuildQuantityBreak(p *CatalogProduct, resolver TierResolver, item LineItemCalc, discountPercent float64) (QuantityBreak, error) {
	moq := fallbackMOQ

	if prelim, err := resolver.ResolveUnitPrice(p, item.Quantity); err == nil {
		customizationPerUnit := 0.0
		if item.IncludeCustomization {
			// Amortize the setup fee over a 100-unit baseline for the estimate.
			customizationPerUnit = p.SetupFee()/100 + p.UnitFee()
		}
		markupMultiplier := 1 + item.MarkupPercent/100
		estimated := (prelim.UnitPrice + customizationPerUnit) * markupMultiplier

		if m := CalcMOQ(estimated); m > 0 {
			moq = m
		}
	}

	resolved, err := resolver.ResolveUnitPrice(p, moq)
	if err != nil {
		return QuantityBreak{}, err
	}

	qb := QuantityBreak{
		MOQ:       moq,
		TierRange: resolved.TierRange,
		BasePrice: resolved.UnitPrice,
	}

	productCost := resolved.UnitPrice * float64(moq)
	if item.IncludeCustomization {
		qb.CustomizationSetupTotal = p.SetupFee()
		qb.CustomizationPerUnit = p.UnitFee()
	}
	subtotal := productCost + qb.CustomizationSetupTotal + qb.CustomizationPerUnit*float64(moq)

	markupAmount := productCost * item.MarkupPercent / 100
	total := subtotal + markupAmount

	qb.PerUnit = total / float64(moq)
	qb.DiscountedPerUnit = qb.PerUnit * (1 - discountPercent/100)
	qb.OrderValue = float64(moq) * qb.PerUnit

	return qb, nil
}
