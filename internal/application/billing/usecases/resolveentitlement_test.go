package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habita/internal/domain/entitlement"
	"habita/internal/domain/plan"
)

func TestResolveEntitlement_DefaultsToBasicPlan(t *testing.T) {
	f := newWebhookFixture(t)
	uc := NewResolveEntitlementUseCase(f.entitlementRepo, testLogger())

	view, err := uc.Execute(context.Background(), f.buyer.ID())
	require.NoError(t, err)

	basic := plan.Basic()
	assert.Equal(t, plan.TypeBasic, view.PlanType)
	assert.Equal(t, basic.MaxListings, view.MaxListings)
	assert.Equal(t, basic.MaxPhotos, view.MaxPhotos)
	assert.Equal(t, basic.FeaturedQuota, view.FeaturedQuota)
	assert.True(t, view.Implicit)
	assert.Nil(t, view.EndsAt)
}

func TestResolveEntitlement_ReturnsActiveGrant(t *testing.T) {
	f := newWebhookFixture(t)
	uc := NewResolveEntitlementUseCase(f.entitlementRepo, testLogger())

	pro, _ := plan.ByType(plan.TypeTier500)
	paymentRef := "p900"
	grant, err := entitlement.NewFromPlan(f.buyer.ID(), pro, 30*24*time.Hour, &paymentRef)
	require.NoError(t, err)
	require.NoError(t, f.entitlementRepo.Create(context.Background(), grant))

	view, err := uc.Execute(context.Background(), f.buyer.ID())
	require.NoError(t, err)

	assert.Equal(t, plan.TypeTier500, view.PlanType)
	assert.Equal(t, pro.MaxListings, view.MaxListings)
	assert.False(t, view.Implicit)
	require.NotNil(t, view.EndsAt)
}

func TestResolveEntitlement_LazilyExpiresStaleGrant(t *testing.T) {
	f := newWebhookFixture(t)
	uc := NewResolveEntitlementUseCase(f.entitlementRepo, testLogger())

	pro, _ := plan.ByType(plan.TypeTier500)
	grant, err := entitlement.NewFromPlan(f.buyer.ID(), pro, time.Nanosecond, nil)
	require.NoError(t, err)
	require.NoError(t, f.entitlementRepo.Create(context.Background(), grant))

	time.Sleep(10 * time.Millisecond)

	view, err := uc.Execute(context.Background(), f.buyer.ID())
	require.NoError(t, err)

	assert.Equal(t, plan.TypeBasic, view.PlanType)
	assert.True(t, view.Implicit)

	// The stale record must now be stored as expired.
	history, err := f.entitlementRepo.ListByUserID(context.Background(), f.buyer.ID())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entitlement.StatusExpired, history[0].Status())
}
