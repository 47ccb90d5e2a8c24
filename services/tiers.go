package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrNoPricing is the terminal "no pricing available" condition: the product
// has no usable price cell for the requested quantity. Callers must stop
// forming the line item rather than substitute a default.
var ErrNoPricing = errors.New("no pricing available")

// TierRange is one quantity band. Open means the band has no upper bound
// ("1000+").
type TierRange struct {
	Min  int
	Max  int
	Open bool
}

// Contains reports whether qty falls inside the band.
func (t TierRange) Contains(qty int) bool {
	if qty < t.Min {
		return false
	}
	return t.Open || qty <= t.Max
}

// Label renders the band for display: "26-50" or "1000+".
func (t TierRange) Label() string {
	if t.Open {
		return fmt.Sprintf("%d+", t.Min)
	}
	return fmt.Sprintf("%d-%d", t.Min, t.Max)
}

// ResolvedPrice is the result of tier resolution for one product+quantity.
type ResolvedPrice struct {
	UnitPrice float64
	TierRange string // display label of the matched band, or "No Tiers"
	Source    string // catalog field the price came from
}

// TierResolver selects the applicable unit price for a quantity. Two
// catalog schemas coexist: one describes each product's bands in a
// "T1: 1-25, T2: 26-50, ..." cell, the other uses a fixed ladder of seven
// quantity bands with one price column per band. The resolver is chosen per
// catalog schema version, never inferred from column presence.
type TierResolver interface {
	ResolveUnitPrice(p *CatalogProduct, quantity int) (ResolvedPrice, error)
}

// ResolverForSchema maps a catalog schema version to its resolver.
// Unknown versions fall back to the parsed-description resolver.
func ResolverForSchema(schema string) TierResolver {
	if schema == "ladder" {
		return LadderTierResolver{}
	}
	return ParsedTierResolver{}
}

// ParseTierRanges parses "T1: 1-25, T2: 26-50, T3: 1000+" into tier-number
// keyed ranges. Malformed parts are skipped; an empty or "NA" cell yields no
// ranges.
func ParseTierRanges(tierInfo string) map[int]TierRange {
	tierInfo = strings.TrimSpace(tierInfo)
	if tierInfo == "" || strings.EqualFold(tierInfo, "NA") {
		return nil
	}

	ranges := make(map[int]TierRange)
	for _, part := range strings.Split(tierInfo, ",") {
		label, rangeStr, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}

		numStr := strings.TrimSpace(label)
		numStr = strings.TrimPrefix(strings.ToUpper(numStr), "T")
		tierNum, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}

		rangeStr = strings.TrimSpace(rangeStr)
		switch {
		case strings.Contains(rangeStr, "-"):
			minStr, maxStr, _ := strings.Cut(rangeStr, "-")
			minQty, errMin := strconv.Atoi(strings.TrimSpace(minStr))
			maxQty, errMax := strconv.Atoi(strings.TrimSpace(maxStr))
			if errMin != nil || errMax != nil {
				continue
			}
			ranges[tierNum] = TierRange{Min: minQty, Max: maxQty}
		case strings.Contains(rangeStr, "+"):
			minQty, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(rangeStr, "+")))
			if err != nil {
				continue
			}
			ranges[tierNum] = TierRange{Min: minQty, Open: true}
		}
	}

	if len(ranges) == 0 {
		return nil
	}
	return ranges
}

// ParsedTierResolver resolves prices from each product's own tier-range
// description cell.
type ParsedTierResolver struct{}

func (ParsedTierResolver) ResolveUnitPrice(p *CatalogProduct, quantity int) (ResolvedPrice, error) {
	if !p.HasTiers {
		return resolveFlatPrice(p)
	}

	ranges := ParseTierRanges(p.TierInfo)
	if ranges == nil {
		return ResolvedPrice{}, fmt.Errorf("%s: empty or malformed tier description: %w", p.Name, ErrNoPricing)
	}

	tierNums := make([]int, 0, len(ranges))
	for n := range ranges {
		tierNums = append(tierNums, n)
	}
	sort.Ints(tierNums)

	tierNum := 0
	for _, n := range tierNums {
		if ranges[n].Contains(quantity) {
			tierNum = n
			break
		}
	}
	if tierNum == 0 {
		// Above every defined range: fall back to the highest tier.
		tierNum = tierNums[len(tierNums)-1]
	}

	price, ok := CleanPrice(p.TierPriceField(tierNum))
	if !ok {
		return ResolvedPrice{}, fmt.Errorf("%s: blank price cell for tier %d: %w", p.Name, tierNum, ErrNoPricing)
	}

	return ResolvedPrice{
		UnitPrice: price,
		TierRange: ranges[tierNum].Label(),
		Source:    tierPriceField(tierNum),
	}, nil
}

// ladderRanges is the fixed quantity ladder used by the older catalog
// schema, one price column per band.
var ladderRanges = [LadderBands]TierRange{
	{Min: 1, Max: 25},
	{Min: 26, Max: 50},
	{Min: 51, Max: 100},
	{Min: 101, Max: 250},
	{Min: 251, Max: 500},
	{Min: 501, Max: 1000},
	{Min: 1001, Open: true},
}

// LadderTierResolver resolves prices from the fixed seven-band ladder. When
// the exact band's price cell is blank it searches higher bands first, then
// lower bands.
type LadderTierResolver struct{}

func (LadderTierResolver) ResolveUnitPrice(p *CatalogProduct, quantity int) (ResolvedPrice, error) {
	if !p.HasTiers {
		return resolveFlatPrice(p)
	}

	band := -1
	for i, r := range ladderRanges {
		if r.Contains(quantity) {
			band = i
			break
		}
	}
	if band == -1 {
		return ResolvedPrice{}, fmt.Errorf("%s: quantity %d below ladder: %w", p.Name, quantity, ErrNoPricing)
	}

	if rp, ok := ladderPriceAt(p, band); ok {
		return rp, nil
	}
	for i := band + 1; i < LadderBands; i++ {
		if rp, ok := ladderPriceAt(p, i); ok {
			return rp, nil
		}
	}
	for i := band - 1; i >= 0; i-- {
		if rp, ok := ladderPriceAt(p, i); ok {
			return rp, nil
		}
	}

	return ResolvedPrice{}, fmt.Errorf("%s: no price in any ladder band: %w", p.Name, ErrNoPricing)
}

func ladderPriceAt(p *CatalogProduct, band int) (ResolvedPrice, bool) {
	price, ok := CleanPrice(p.LadderPriceField(band + 1))
	if !ok {
		return ResolvedPrice{}, false
	}
	return ResolvedPrice{
		UnitPrice: price,
		TierRange: ladderRanges[band].Label(),
		Source:    ladderPriceField(band + 1),
	}, true
}

func resolveFlatPrice(p *CatalogProduct) (ResolvedPrice, error) {
	price, ok := CleanPrice(p.FlatPrice)
	if !ok {
		return ResolvedPrice{}, fmt.Errorf("%s: no flat price: %w", p.Name, ErrNoPricing)
	}
	return ResolvedPrice{UnitPrice: price, TierRange: "No Tiers", Source: "flat_price"}, nil
}
