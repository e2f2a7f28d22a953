package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/listing"
	"habita/internal/shared/authorization"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type RemoveListingImageCommand struct {
	ListingSID string
	ImageID    uint
	ActorID    uint
	ActorRole  authorization.UserRole
}

type RemoveListingImageUseCase struct {
	listingRepo listing.Repository
	logger      logger.Interface
}

func NewRemoveListingImageUseCase(listingRepo listing.Repository, logger logger.Interface) *RemoveListingImageUseCase {
	return &RemoveListingImageUseCase{listingRepo: listingRepo, logger: logger}
}

func (uc *RemoveListingImageUseCase) Execute(ctx context.Context, cmd RemoveListingImageCommand) error {
	l, err := uc.listingRepo.GetBySID(ctx, cmd.ListingSID)
	if err != nil {
		return fmt.Errorf("failed to get listing: %w", err)
	}
	if l == nil {
		return apperrors.NewNotFoundError("listing not found")
	}
	if !authorization.CanAccessResourceByOwnerID(cmd.ActorID, cmd.ActorRole, l.OwnerID()) {
		return apperrors.NewForbiddenError("not the listing owner")
	}

	if err := uc.listingRepo.RemoveImage(ctx, l.ID(), cmd.ImageID); err != nil {
		return fmt.Errorf("failed to remove image: %w", err)
	}

	uc.logger.Infow("listing image removed",
		"listing_id", l.ID(),
		"image_id", cmd.ImageID)
	return nil
}
