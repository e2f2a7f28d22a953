package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/entitlement"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

// AdjustEntitlementCommand applies targeted overrides to an existing
// entitlement. Nil fields are left untouched.
type AdjustEntitlementCommand struct {
	EntitlementSID string
	MaxListings    *int
	MaxPhotos      *int
	FeaturedQuota  *int
	Status         *string
	ExtendDays     *int
}

type AdjustEntitlementUseCase struct {
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

func NewAdjustEntitlementUseCase(
	entitlementRepo entitlement.Repository,
	logger logger.Interface,
) *AdjustEntitlementUseCase {
	return &AdjustEntitlementUseCase{
		entitlementRepo: entitlementRepo,
		logger:          logger,
	}
}

func (uc *AdjustEntitlementUseCase) Execute(ctx context.Context, cmd AdjustEntitlementCommand) (*entitlement.Entitlement, error) {
	ent, err := uc.entitlementRepo.GetBySID(ctx, cmd.EntitlementSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	if ent == nil {
		return nil, apperrors.NewNotFoundError("entitlement not found")
	}

	if cmd.MaxListings != nil || cmd.MaxPhotos != nil || cmd.FeaturedQuota != nil {
		maxListings := ent.MaxListings()
		maxPhotos := ent.MaxPhotos()
		featuredQuota := ent.FeaturedQuota()
		if cmd.MaxListings != nil {
			maxListings = *cmd.MaxListings
		}
		if cmd.MaxPhotos != nil {
			maxPhotos = *cmd.MaxPhotos
		}
		if cmd.FeaturedQuota != nil {
			featuredQuota = *cmd.FeaturedQuota
		}
		if err := ent.OverrideLimits(maxListings, maxPhotos, featuredQuota); err != nil {
			return nil, err
		}
	}

	if cmd.Status != nil {
		if err := ent.OverrideStatus(entitlement.Status(*cmd.Status)); err != nil {
			return nil, err
		}
	}

	if cmd.ExtendDays != nil {
		if err := ent.ExtendValidity(*cmd.ExtendDays); err != nil {
			return nil, err
		}
	}

	if err := uc.entitlementRepo.Update(ctx, ent); err != nil {
		return nil, fmt.Errorf("failed to update entitlement: %w", err)
	}

	uc.logger.Infow("entitlement adjusted",
		"entitlement_sid", cmd.EntitlementSID,
		"user_id", ent.UserID())

	return ent, nil
}
