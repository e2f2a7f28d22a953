package usecases

import (
	"context"
	"fmt"

	billingusecases "habita/internal/application/billing/usecases"
	"habita/internal/domain/listing"
	"habita/internal/shared/authorization"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type SetFeaturedCommand struct {
	ListingSID string
	ActorID    uint
	ActorRole  authorization.UserRole
	Featured   bool
}

// SetFeaturedUseCase toggles a listing's featured slot. Turning it on checks
// the owner's featured quota; turning it off always succeeds.
type SetFeaturedUseCase struct {
	listingRepo listing.Repository
	resolve     *billingusecases.ResolveEntitlementUseCase
	logger      logger.Interface
}

func NewSetFeaturedUseCase(
	listingRepo listing.Repository,
	resolve *billingusecases.ResolveEntitlementUseCase,
	logger logger.Interface,
) *SetFeaturedUseCase {
	return &SetFeaturedUseCase{
		listingRepo: listingRepo,
		resolve:     resolve,
		logger:      logger,
	}
}

func (uc *SetFeaturedUseCase) Execute(ctx context.Context, cmd SetFeaturedCommand) (*listing.Listing, error) {
	l, err := uc.listingRepo.GetBySID(ctx, cmd.ListingSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if l == nil {
		return nil, apperrors.NewNotFoundError("listing not found")
	}
	if !authorization.CanAccessResourceByOwnerID(cmd.ActorID, cmd.ActorRole, l.OwnerID()) {
		return nil, apperrors.NewForbiddenError("not the listing owner")
	}

	// Admins may force the flag past the owner's quota.
	if cmd.Featured && !l.Featured() && !cmd.ActorRole.IsAdmin() {
		view, err := uc.resolve.Execute(ctx, l.OwnerID())
		if err != nil {
			return nil, err
		}
		count, err := uc.listingRepo.CountFeaturedByOwnerID(ctx, l.OwnerID())
		if err != nil {
			return nil, fmt.Errorf("failed to count featured listings: %w", err)
		}
		if count >= int64(view.FeaturedQuota) {
			return nil, apperrors.NewQuotaExceededError(
				fmt.Sprintf("featured quota reached (%d on the %s plan)", view.FeaturedQuota, view.PlanName))
		}
	}

	if err := l.SetFeatured(cmd.Featured); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.listingRepo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	uc.logger.Infow("listing featured flag changed",
		"listing_id", l.ID(),
		"featured", cmd.Featured)
	return l, nil
}
