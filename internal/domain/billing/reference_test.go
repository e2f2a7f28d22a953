package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habita/internal/domain/plan"
)

func TestBuildExternalReference(t *testing.T) {
	issued := time.UnixMilli(1700000000000).UTC()

	ref := BuildExternalReference("usr_abc123", plan.TypeTier1000, issued)

	assert.Equal(t, "usr_abc123-tier_1000-1700000000000", ref)
}

func TestParseExternalReference_RoundTrip(t *testing.T) {
	issued := time.UnixMilli(1700000000000).UTC()
	ref := BuildExternalReference("usr_abc123", plan.TypeTier300, issued)

	parsed, err := ParseExternalReference(ref)

	require.NoError(t, err)
	assert.Equal(t, "usr_abc123", parsed.UserSID)
	assert.Equal(t, plan.TypeTier300, parsed.PlanType)
	assert.Equal(t, issued, parsed.IssuedAt)
}

func TestParseExternalReference_TimestampOptional(t *testing.T) {
	parsed, err := ParseExternalReference("usr_abc123-tier_100")

	require.NoError(t, err)
	assert.Equal(t, "usr_abc123", parsed.UserSID)
	assert.Equal(t, plan.TypeTier100, parsed.PlanType)
	assert.True(t, parsed.IssuedAt.IsZero())
}

func TestParseExternalReference_Malformed(t *testing.T) {
	cases := []string{
		"",
		"justoneword",
		"-tier_100-123",
		"usr_abc123--123",
	}

	for _, ref := range cases {
		_, err := ParseExternalReference(ref)
		assert.Error(t, err, "ref %q should be rejected", ref)
	}
}

func TestParseExternalReference_UnknownPlanPassesThrough(t *testing.T) {
	// Plan validity is the caller's concern; the parser only checks shape.
	parsed, err := ParseExternalReference("usr_abc123-tier_9000-1")

	require.NoError(t, err)
	assert.False(t, parsed.PlanType.IsValid())
}
