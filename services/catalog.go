package services

import (
	"sync"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
)

// Catalog price columns per schema. The parsed-description schema carries up
// to six tier price cells; the ladder schema carries seven fixed bands.
const (
	MaxParsedTiers = 6
	LadderBands    = 7
)

// CatalogProduct is one selectable catalog row, converted from its record
// once per use instead of reading loose keys at every access site. Price
// cells stay raw strings exactly as they appear in the source spreadsheet
// ("$1,500.00", blank, "NA"); CleanPrice interprets them on demand.
type CatalogProduct struct {
	ID                string
	Partner           string
	Name              string
	ProductRef        string
	CountryOfOrigin   string
	Description       string
	CustomizationInfo string

	HasTiers bool
	TierInfo string

	FlatPrice    string
	TierPrices   [MaxParsedTiers]string
	LadderPrices [LadderBands]string

	CustomizationSetupFee string
	CustomizationUnitFee  string
	CustomizationMinimum  string
	TariffRate            string
}

// ProductFromRecord converts a catalog_products record into a typed product.
func ProductFromRecord(r *core.Record) *CatalogProduct {
	p := &CatalogProduct{
		ID:                r.Id,
		Partner:           r.GetString("partner"),
		Name:              r.GetString("name"),
		ProductRef:        r.GetString("product_ref"),
		CountryOfOrigin:   r.GetString("country_of_origin"),
		Description:       r.GetString("description"),
		CustomizationInfo: r.GetString("customization_info"),

		HasTiers: r.GetBool("has_tiers"),
		TierInfo: r.GetString("tier_info"),

		FlatPrice: r.GetString("flat_price"),

		CustomizationSetupFee: r.GetString("customization_setup_fee"),
		CustomizationUnitFee:  r.GetString("customization_unit_fee"),
		CustomizationMinimum:  r.GetString("customization_minimum"),
		TariffRate:            r.GetString("tariff_rate"),
	}

	for i := 0; i < MaxParsedTiers; i++ {
		p.TierPrices[i] = r.GetString(tierPriceField(i + 1))
	}
	for i := 0; i < LadderBands; i++ {
		p.LadderPrices[i] = r.GetString(ladderPriceField(i + 1))
	}

	return p
}

// TierPriceField returns the raw price cell for a 1-based parsed-schema tier
// number, or "" when the tier number is out of range.
func (p *CatalogProduct) TierPriceField(tier int) string {
	if tier < 1 || tier > MaxParsedTiers {
		return ""
	}
	return p.TierPrices[tier-1]
}

// LadderPriceField returns the raw price cell for a 1-based ladder band
// number, or "" when the band number is out of range.
func (p *CatalogProduct) LadderPriceField(band int) string {
	if band < 1 || band > LadderBands {
		return ""
	}
	return p.LadderPrices[band-1]
}

// SetupFee returns the customization setup fee, defaulting to zero when the
// cell is missing or unparseable.
func (p *CatalogProduct) SetupFee() float64 {
	v, _ := CleanPrice(p.CustomizationSetupFee)
	return v
}

// UnitFee returns the per-unit customization fee, defaulting to zero.
func (p *CatalogProduct) UnitFee() float64 {
	v, _ := CleanPrice(p.CustomizationUnitFee)
	return v
}

// MinimumCustomizationQty returns the minimum billable customization
// quantity, or 0 when no minimum applies.
func (p *CatalogProduct) MinimumCustomizationQty() int {
	v, ok := CleanPrice(p.CustomizationMinimum)
	if !ok {
		return 0
	}
	return cast.ToInt(v)
}

// TariffRatePercent returns the per-product tariff rate in percent, or 0
// when the product carries none.
func (p *CatalogProduct) TariffRatePercent() float64 {
	v, _ := CleanPercent(p.TariffRate)
	return v
}

func tierPriceField(tier int) string {
	return "tier_price_" + cast.ToString(tier)
}

func ladderPriceField(band int) string {
	return "ladder_price_" + cast.ToString(band)
}

// CatalogCache tracks when the catalog was last imported so callers can
// refresh it after the TTL elapses. A refresh replaces the stored catalog
// wholesale, so the read is idempotent and safe to retry.
type CatalogCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	loadedAt time.Time
}

// NewCatalogCache creates a cache with the given TTL. A non-positive TTL
// disables staleness (manual refresh only).
func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{ttl: ttl}
}

// Stale reports whether the catalog should be re-imported.
func (c *CatalogCache) Stale(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loadedAt.IsZero() {
		return true
	}
	if c.ttl <= 0 {
		return false
	}
	return now.Sub(c.loadedAt) > c.ttl
}

// MarkLoaded records a successful import.
func (c *CatalogCache) MarkLoaded(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadedAt = now
}

// LoadedAt returns the time of the last successful import, zero if never.
func (c *CatalogCache) LoadedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadedAt
}
