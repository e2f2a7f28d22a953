package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habita/internal/domain/plan"
)

func paidPlan(t *testing.T) plan.Plan {
	t.Helper()
	p, ok := plan.ByType(plan.TypeTier1000)
	require.True(t, ok)
	return p
}

func TestNewFromPlan_CopiesCatalogLimits(t *testing.T) {
	ref := "p123"
	e, err := NewFromPlan(1, paidPlan(t), 30*24*time.Hour, &ref)

	require.NoError(t, err)
	assert.Equal(t, StatusActive, e.Status())
	assert.Equal(t, plan.TypeTier1000, e.PlanType())
	assert.Equal(t, 30, e.MaxListings())
	assert.Equal(t, 20, e.MaxPhotos())
	assert.Equal(t, 5, e.FeaturedQuota())
	require.NotNil(t, e.ExternalPaymentRef())
	assert.Equal(t, "p123", *e.ExternalPaymentRef())
	assert.WithinDuration(t, e.StartsAt().Add(30*24*time.Hour), e.EndsAt(), time.Second)
	assert.Equal(t, 1, e.Version())
}

func TestNewFromPlan_Validation(t *testing.T) {
	_, err := NewFromPlan(0, paidPlan(t), time.Hour, nil)
	assert.Error(t, err)

	_, err = NewFromPlan(1, plan.Plan{Type: "bogus"}, time.Hour, nil)
	assert.Error(t, err)

	_, err = NewFromPlan(1, paidPlan(t), 0, nil)
	assert.Error(t, err)
}

func TestEntitlement_IsActive(t *testing.T) {
	e, err := NewFromPlan(1, paidPlan(t), time.Hour, nil)
	require.NoError(t, err)

	now := time.Now()
	assert.True(t, e.IsActive(now))
	assert.False(t, e.IsActive(now.Add(2*time.Hour)), "outside validity window")

	e.Deactivate()
	assert.False(t, e.IsActive(now))
}

func TestEntitlement_Deactivate_Idempotent(t *testing.T) {
	e, err := NewFromPlan(1, paidPlan(t), time.Hour, nil)
	require.NoError(t, err)

	e.Deactivate()
	require.Equal(t, StatusInactive, e.Status())
	versionAfterFirst := e.Version()

	e.Deactivate()
	assert.Equal(t, StatusInactive, e.Status())
	assert.Equal(t, versionAfterFirst, e.Version(), "second deactivate must be a no-op")
}

func TestEntitlement_MarkExpired(t *testing.T) {
	e, err := NewFromPlan(1, paidPlan(t), time.Hour, nil)
	require.NoError(t, err)

	require.NoError(t, e.MarkExpired())
	assert.Equal(t, StatusExpired, e.Status())

	err = e.MarkExpired()
	assert.Error(t, err, "only active entitlements can expire")
}

func TestEntitlement_OverrideLimits(t *testing.T) {
	e, err := NewFromPlan(1, paidPlan(t), time.Hour, nil)
	require.NoError(t, err)

	require.NoError(t, e.OverrideLimits(50, 25, 10))
	assert.Equal(t, 50, e.MaxListings())
	assert.Equal(t, 25, e.MaxPhotos())
	assert.Equal(t, 10, e.FeaturedQuota())

	assert.Error(t, e.OverrideLimits(-1, 5, 0))
}

func TestEntitlement_ExtendValidity(t *testing.T) {
	e, err := NewFromPlan(1, paidPlan(t), time.Hour, nil)
	require.NoError(t, err)

	before := e.EndsAt()
	require.NoError(t, e.ExtendValidity(15))
	assert.Equal(t, before.AddDate(0, 0, 15), e.EndsAt())

	assert.Error(t, e.ExtendValidity(0))
	assert.Error(t, e.ExtendValidity(-3))
}

func TestEntitlement_ChangePlan(t *testing.T) {
	e, err := NewFromPlan(1, paidPlan(t), time.Hour, nil)
	require.NoError(t, err)

	p, ok := plan.ByType(plan.TypeTier300)
	require.True(t, ok)

	require.NoError(t, e.ChangePlan(p))
	assert.Equal(t, plan.TypeTier300, e.PlanType())
	assert.Equal(t, 10, e.MaxListings())
	assert.Equal(t, 1, e.FeaturedQuota())
}

func TestReconstruct_Validation(t *testing.T) {
	now := time.Now()

	_, err := Reconstruct(0, "ent_x", 1, plan.TypeBasic, StatusActive, 1, 5, 0, now, now.Add(time.Hour), nil, nil, 1, now, now)
	assert.Error(t, err, "zero ID")

	_, err = Reconstruct(1, "ent_x", 1, plan.TypeBasic, Status("weird"), 1, 5, 0, now, now.Add(time.Hour), nil, nil, 1, now, now)
	assert.Error(t, err, "invalid status")

	_, err = Reconstruct(1, "ent_x", 1, plan.TypeBasic, StatusActive, 1, 5, 0, now, now.Add(-time.Hour), nil, nil, 1, now, now)
	assert.Error(t, err, "window end before start")

	e, err := Reconstruct(1, "ent_x", 1, plan.TypeBasic, StatusActive, 1, 5, 0, now, now.Add(time.Hour), nil, nil, 3, now, now)
	require.NoError(t, err)
	assert.NotNil(t, e.Metadata(), "nil metadata normalizes to empty map")
	assert.Equal(t, 3, e.Version())
}
