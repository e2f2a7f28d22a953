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

type AddListingImageCommand struct {
	ListingSID string
	ActorID    uint
	ActorRole  authorization.UserRole
	URL        string
	Position   int
}

type AddListingImageUseCase struct {
	listingRepo listing.Repository
	resolve     *billingusecases.ResolveEntitlementUseCase
	logger      logger.Interface
}

func NewAddListingImageUseCase(
	listingRepo listing.Repository,
	resolve *billingusecases.ResolveEntitlementUseCase,
	logger logger.Interface,
) *AddListingImageUseCase {
	return &AddListingImageUseCase{
		listingRepo: listingRepo,
		resolve:     resolve,
		logger:      logger,
	}
}

func (uc *AddListingImageUseCase) Execute(ctx context.Context, cmd AddListingImageCommand) (*listing.Image, error) {
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

	view, err := uc.resolve.Execute(ctx, l.OwnerID())
	if err != nil {
		return nil, err
	}
	count, err := uc.listingRepo.CountImages(ctx, l.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to count images: %w", err)
	}
	if count >= int64(view.MaxPhotos) {
		return nil, apperrors.NewQuotaExceededError(
			fmt.Sprintf("photo quota reached (%d on the %s plan)", view.MaxPhotos, view.PlanName))
	}

	img, err := listing.NewImage(cmd.URL, cmd.Position)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.listingRepo.AddImage(ctx, l.ID(), img); err != nil {
		return nil, fmt.Errorf("failed to add image: %w", err)
	}

	uc.logger.Infow("listing image added",
		"listing_id", l.ID(),
		"image_id", img.ID())
	return img, nil
}
