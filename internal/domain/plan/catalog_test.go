package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByType_KnownTiers(t *testing.T) {
	tests := []struct {
		name        string
		planType    Type
		maxListings int
	}{
		{"basic tier", TypeBasic, 1},
		{"tier 100", TypeTier100, 3},
		{"tier 300", TypeTier300, 10},
		{"tier 500", TypeTier500, 15},
		{"tier 1000", TypeTier1000, 30},
		{"tier 3000", TypeTier3000, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := ByType(tc.planType)
			require.True(t, ok)
			assert.Equal(t, tc.planType, p.Type)
			assert.Equal(t, tc.maxListings, p.MaxListings)
		})
	}
}

func TestByType_UnknownTier(t *testing.T) {
	_, ok := ByType(Type("tier_9000"))
	assert.False(t, ok)
}

func TestBasic_IsImplicitDefault(t *testing.T) {
	p := Basic()

	assert.Equal(t, TypeBasic, p.Type)
	assert.Equal(t, 1, p.MaxListings)
	assert.Equal(t, 0, p.FeaturedQuota)
	assert.EqualValues(t, 0, p.PriceCents)
}

func TestType_IsPaid(t *testing.T) {
	assert.False(t, TypeBasic.IsPaid())
	assert.True(t, TypeTier100.IsPaid())
	assert.True(t, TypeTier3000.IsPaid())
	assert.False(t, Type("garbage").IsPaid())
}

func TestAll_OrderedByPrice(t *testing.T) {
	plans := All()

	require.Len(t, plans, 6)
	for i := 1; i < len(plans); i++ {
		assert.Greater(t, plans[i].PriceCents, plans[i-1].PriceCents,
			"catalog must be ordered cheapest first")
	}
}

func TestDisplayPrice(t *testing.T) {
	p, ok := ByType(TypeTier1000)
	require.True(t, ok)

	formatted := p.DisplayPrice("USD")
	assert.Contains(t, formatted, "1,000")

	// Unknown currency codes fall back to a plain prefix format.
	fallback := p.DisplayPrice("???")
	assert.Contains(t, fallback, "???")
}
