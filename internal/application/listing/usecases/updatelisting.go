package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/listing"
	"habita/internal/shared/authorization"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
	"habita/internal/shared/services/markdown"
)

type UpdateListingCommand struct {
	ListingSID  string
	ActorID     uint
	ActorRole   authorization.UserRole
	Title       string
	Description string
	PriceCents  int64
	City        string
	State       string
	Address     string
	Bedrooms    int
	Bathrooms   int
	AreaM2      float64
}

type UpdateListingUseCase struct {
	listingRepo listing.Repository
	markdown    markdown.Service
	logger      logger.Interface
}

func NewUpdateListingUseCase(
	listingRepo listing.Repository,
	markdownSvc markdown.Service,
	logger logger.Interface,
) *UpdateListingUseCase {
	return &UpdateListingUseCase{
		listingRepo: listingRepo,
		markdown:    markdownSvc,
		logger:      logger,
	}
}

func (uc *UpdateListingUseCase) Execute(ctx context.Context, cmd UpdateListingCommand) (*listing.Listing, error) {
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

	descriptionHTML, err := uc.markdown.ToHTMLSanitized(cmd.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to render description: %w", err)
	}

	if err := l.UpdateDetails(
		cmd.Title, cmd.Description, descriptionHTML,
		cmd.PriceCents,
		cmd.City, cmd.State, cmd.Address,
		cmd.Bedrooms, cmd.Bathrooms,
		cmd.AreaM2,
	); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.listingRepo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	uc.logger.Infow("listing updated", "listing_id", l.ID())
	return l, nil
}
