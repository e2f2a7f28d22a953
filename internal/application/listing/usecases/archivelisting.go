package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/listing"
	"habita/internal/shared/authorization"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type ArchiveListingCommand struct {
	ListingSID string
	ActorID    uint
	ActorRole  authorization.UserRole
}

type ArchiveListingUseCase struct {
	listingRepo listing.Repository
	logger      logger.Interface
}

func NewArchiveListingUseCase(listingRepo listing.Repository, logger logger.Interface) *ArchiveListingUseCase {
	return &ArchiveListingUseCase{listingRepo: listingRepo, logger: logger}
}

func (uc *ArchiveListingUseCase) Execute(ctx context.Context, cmd ArchiveListingCommand) error {
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

	l.Archive()
	if err := uc.listingRepo.Update(ctx, l); err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	uc.logger.Infow("listing archived", "listing_id", l.ID())
	return nil
}
