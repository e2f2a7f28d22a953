package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/listing"
	"habita/internal/shared/authorization"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type PublishListingCommand struct {
	ListingSID string
	ActorID    uint
	ActorRole  authorization.UserRole
}

type PublishListingUseCase struct {
	listingRepo listing.Repository
	logger      logger.Interface
}

func NewPublishListingUseCase(listingRepo listing.Repository, logger logger.Interface) *PublishListingUseCase {
	return &PublishListingUseCase{listingRepo: listingRepo, logger: logger}
}

func (uc *PublishListingUseCase) Execute(ctx context.Context, cmd PublishListingCommand) (*listing.Listing, error) {
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

	if err := l.Publish(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.listingRepo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	uc.logger.Infow("listing published", "listing_id", l.ID())
	return l, nil
}
