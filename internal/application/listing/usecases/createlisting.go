package usecases

import (
	"context"
	"fmt"

	billingusecases "habita/internal/application/billing/usecases"
	"habita/internal/domain/listing"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
	"habita/internal/shared/services/markdown"
)

type CreateListingCommand struct {
	OwnerID      uint
	Title        string
	Description  string
	PropertyType string
	OfferType    string
	PriceCents   int64
	Currency     string
	City         string
	State        string
	Address      string
	Bedrooms     int
	Bathrooms    int
	AreaM2       float64
}

// CreateListingUseCase creates a draft listing after checking the owner's
// listing quota against their effective entitlement.
type CreateListingUseCase struct {
	listingRepo listing.Repository
	resolve     *billingusecases.ResolveEntitlementUseCase
	markdown    markdown.Service
	logger      logger.Interface
}

func NewCreateListingUseCase(
	listingRepo listing.Repository,
	resolve *billingusecases.ResolveEntitlementUseCase,
	markdownSvc markdown.Service,
	logger logger.Interface,
) *CreateListingUseCase {
	return &CreateListingUseCase{
		listingRepo: listingRepo,
		resolve:     resolve,
		markdown:    markdownSvc,
		logger:      logger,
	}
}

func (uc *CreateListingUseCase) Execute(ctx context.Context, cmd CreateListingCommand) (*listing.Listing, error) {
	view, err := uc.resolve.Execute(ctx, cmd.OwnerID)
	if err != nil {
		return nil, err
	}

	// Archived listings do not count against the quota.
	count, err := uc.listingRepo.CountActiveByOwnerID(ctx, cmd.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	if count >= int64(view.MaxListings) {
		return nil, apperrors.NewQuotaExceededError(
			fmt.Sprintf("listing quota reached (%d on the %s plan)", view.MaxListings, view.PlanName))
	}

	descriptionHTML, err := uc.markdown.ToHTMLSanitized(cmd.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to render description: %w", err)
	}

	currency := cmd.Currency
	if currency == "" {
		currency = "USD"
	}

	l, err := listing.NewListing(
		cmd.OwnerID,
		cmd.Title, cmd.Description, descriptionHTML,
		listing.PropertyType(cmd.PropertyType),
		listing.OfferType(cmd.OfferType),
		cmd.PriceCents,
		currency, cmd.City, cmd.State, cmd.Address,
		cmd.Bedrooms, cmd.Bathrooms,
		cmd.AreaM2,
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.listingRepo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	uc.logger.Infow("listing created",
		"listing_id", l.ID(),
		"owner_id", cmd.OwnerID,
		"city", l.City())

	return l, nil
}
