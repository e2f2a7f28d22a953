// Package plan defines the static catalog of subscription tiers and the
// entitlement limits attached to each tier. The catalog is pure data: every
// consumer (webhook reconciliation, listing quota gates, admin tooling, the
// public plans endpoint) resolves limits through this single table instead of
// re-deriving them locally.
package plan

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Type identifies a subscription tier. Paid tiers are named after their
// monthly price.
type Type string

const (
	TypeBasic    Type = "basic"
	TypeTier100  Type = "tier_100"
	TypeTier300  Type = "tier_300"
	TypeTier500  Type = "tier_500"
	TypeTier1000 Type = "tier_1000"
	TypeTier3000 Type = "tier_3000"
)

// String returns the string representation of the plan type.
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the plan type exists in the catalog.
func (t Type) IsValid() bool {
	_, ok := catalog[t]
	return ok
}

// IsPaid reports whether the tier requires payment.
func (t Type) IsPaid() bool {
	return t.IsValid() && t != TypeBasic
}

// Plan holds the entitlement limits and visuals granted by a tier.
// Limits are copied onto the entitlement record at assignment time; admins may
// override the copies later without affecting the catalog.
type Plan struct {
	Type          Type
	Name          string
	PriceCents    int64
	MaxListings   int
	MaxPhotos     int
	FeaturedQuota int
	Badge         string
	Highlighted   bool
}

var catalog = map[Type]Plan{
	TypeBasic: {
		Type:          TypeBasic,
		Name:          "Basic",
		PriceCents:    0,
		MaxListings:   1,
		MaxPhotos:     5,
		FeaturedQuota: 0,
		Badge:         "",
		Highlighted:   false,
	},
	TypeTier100: {
		Type:          TypeTier100,
		Name:          "Starter",
		PriceCents:    100_00,
		MaxListings:   3,
		MaxPhotos:     10,
		FeaturedQuota: 0,
		Badge:         "bronze",
		Highlighted:   false,
	},
	TypeTier300: {
		Type:          TypeTier300,
		Name:          "Plus",
		PriceCents:    300_00,
		MaxListings:   10,
		MaxPhotos:     10,
		FeaturedQuota: 1,
		Badge:         "silver",
		Highlighted:   false,
	},
	TypeTier500: {
		Type:          TypeTier500,
		Name:          "Pro",
		PriceCents:    500_00,
		MaxListings:   15,
		MaxPhotos:     15,
		FeaturedQuota: 3,
		Badge:         "gold",
		Highlighted:   true,
	},
	TypeTier1000: {
		Type:          TypeTier1000,
		Name:          "Premium",
		PriceCents:    1000_00,
		MaxListings:   30,
		MaxPhotos:     20,
		FeaturedQuota: 5,
		Badge:         "platinum",
		Highlighted:   true,
	},
	TypeTier3000: {
		Type:          TypeTier3000,
		Name:          "Enterprise",
		PriceCents:    3000_00,
		MaxListings:   100,
		MaxPhotos:     20,
		FeaturedQuota: 15,
		Badge:         "diamond",
		Highlighted:   true,
	},
}

// ordered is the display order of the catalog, cheapest first.
var ordered = []Type{
	TypeBasic,
	TypeTier100,
	TypeTier300,
	TypeTier500,
	TypeTier1000,
	TypeTier3000,
}

// ByType looks up a plan in the catalog.
func ByType(t Type) (Plan, bool) {
	p, ok := catalog[t]
	return p, ok
}

// Basic returns the implicit default tier applied to users without any
// entitlement record.
func Basic() Plan {
	return catalog[TypeBasic]
}

// All returns the catalog ordered by price, cheapest first.
func All() []Plan {
	plans := make([]Plan, 0, len(ordered))
	for _, t := range ordered {
		plans = append(plans, catalog[t])
	}
	return plans
}

// DisplayPrice formats the plan price with the currency symbol for the given
// ISO 4217 code, e.g. "$ 1,000.00".
func (p Plan) DisplayPrice(code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %.2f", code, float64(p.PriceCents)/100)
	}
	printer := message.NewPrinter(language.English)
	return printer.Sprint(currency.Symbol(unit.Amount(float64(p.PriceCents) / 100)))
}
