package usecases

import (
	"context"
	"fmt"
	"time"

	"habita/internal/domain/entitlement"
	"habita/internal/domain/plan"
	"habita/internal/shared/logger"
)

// EntitlementView is the effective entitlement a client should act on. When
// no active record exists the basic plan is synthesized; Implicit marks that
// case so clients can distinguish it from a stored grant.
type EntitlementView struct {
	PlanType      plan.Type
	PlanName      string
	Status        entitlement.Status
	MaxListings   int
	MaxPhotos     int
	FeaturedQuota int
	StartsAt      *time.Time
	EndsAt        *time.Time
	Implicit      bool
}

// ResolveEntitlementUseCase answers "what can this user do right now".
// Every quota gate and the client read surface go through it so the implicit
// basic default is defined exactly once.
type ResolveEntitlementUseCase struct {
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

func NewResolveEntitlementUseCase(
	entitlementRepo entitlement.Repository,
	logger logger.Interface,
) *ResolveEntitlementUseCase {
	return &ResolveEntitlementUseCase{
		entitlementRepo: entitlementRepo,
		logger:          logger,
	}
}

func (uc *ResolveEntitlementUseCase) Execute(ctx context.Context, userID uint) (*EntitlementView, error) {
	active, err := uc.entitlementRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve entitlement: %w", err)
	}

	now := time.Now()

	// Lazily expire a record whose window passed before the sweep ran.
	if active != nil && active.IsExpiredAt(now) {
		if err := active.MarkExpired(); err == nil {
			if err := uc.entitlementRepo.Update(ctx, active); err != nil {
				uc.logger.Warnw("failed to persist lazy expiry",
					"entitlement_id", active.ID(),
					"error", err)
			}
		}
		active = nil
	}

	if active == nil {
		basic := plan.Basic()
		return &EntitlementView{
			PlanType:      basic.Type,
			PlanName:      basic.Name,
			Status:        entitlement.StatusActive,
			MaxListings:   basic.MaxListings,
			MaxPhotos:     basic.MaxPhotos,
			FeaturedQuota: basic.FeaturedQuota,
			Implicit:      true,
		}, nil
	}

	startsAt := active.StartsAt()
	endsAt := active.EndsAt()
	planName := active.PlanType().String()
	if p, ok := plan.ByType(active.PlanType()); ok {
		planName = p.Name
	}

	return &EntitlementView{
		PlanType:      active.PlanType(),
		PlanName:      planName,
		Status:        active.Status(),
		MaxListings:   active.MaxListings(),
		MaxPhotos:     active.MaxPhotos(),
		FeaturedQuota: active.FeaturedQuota(),
		StartsAt:      &startsAt,
		EndsAt:        &endsAt,
		Implicit:      false,
	}, nil
}
