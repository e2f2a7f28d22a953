package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habita/internal/domain/plan"
)

func newPendingSession(t *testing.T) *CheckoutSession {
	t.Helper()
	p, ok := plan.ByType(plan.TypeTier500)
	require.True(t, ok)

	s, err := NewCheckoutSession("ord_1", 7, p, "USD", "usr_a-tier_500-1", 30*time.Minute)
	require.NoError(t, err)
	return s
}

func TestNewCheckoutSession(t *testing.T) {
	s := newPendingSession(t)

	assert.Equal(t, CheckoutStatusPending, s.Status())
	assert.Equal(t, plan.TypeTier500, s.PlanType())
	assert.EqualValues(t, 500_00, s.AmountCents())
	assert.Nil(t, s.PreferenceID())
	assert.Nil(t, s.CompletedAt())
}

func TestNewCheckoutSession_RejectsFreePlan(t *testing.T) {
	_, err := NewCheckoutSession("ord_1", 7, plan.Basic(), "USD", "ref", time.Minute)
	assert.Error(t, err)
}

func TestCheckoutSession_AttachPreference(t *testing.T) {
	s := newPendingSession(t)

	require.NoError(t, s.AttachPreference("pref_9", "https://pay.example/p/9"))
	require.NotNil(t, s.PreferenceID())
	assert.Equal(t, "pref_9", *s.PreferenceID())

	require.NoError(t, s.MarkCompleted())
	err := s.AttachPreference("pref_10", "https://pay.example/p/10")
	assert.Error(t, err, "completed sessions are immutable")
}

func TestCheckoutSession_MarkCompleted_Idempotent(t *testing.T) {
	s := newPendingSession(t)

	require.NoError(t, s.MarkCompleted())
	require.NotNil(t, s.CompletedAt())
	version := s.Version()

	require.NoError(t, s.MarkCompleted())
	assert.Equal(t, version, s.Version(), "repeat completion must be a no-op")
}

func TestCheckoutSession_Expiry(t *testing.T) {
	s := newPendingSession(t)

	assert.False(t, s.IsExpired(time.Now()))
	assert.True(t, s.IsExpired(time.Now().Add(time.Hour)))

	require.NoError(t, s.MarkExpired())
	assert.Equal(t, CheckoutStatusExpired, s.Status())

	err := s.MarkCompleted()
	assert.Error(t, err, "expired sessions cannot complete")
}
