package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/listing"
	"habita/internal/shared/authorization"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type GetListingQuery struct {
	ListingSID string

	// ActorID is zero for anonymous reads. Drafts and archived listings are
	// visible only to the owner and admins.
	ActorID   uint
	ActorRole authorization.UserRole
}

type GetListingUseCase struct {
	listingRepo listing.Repository
	logger      logger.Interface
}

func NewGetListingUseCase(listingRepo listing.Repository, logger logger.Interface) *GetListingUseCase {
	return &GetListingUseCase{listingRepo: listingRepo, logger: logger}
}

func (uc *GetListingUseCase) Execute(ctx context.Context, q GetListingQuery) (*listing.Listing, error) {
	l, err := uc.listingRepo.GetBySID(ctx, q.ListingSID)
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if l == nil {
		return nil, apperrors.NewNotFoundError("listing not found")
	}

	if l.Status() != listing.StatusPublished {
		if !authorization.CanAccessResourceByOwnerID(q.ActorID, q.ActorRole, l.OwnerID()) {
			return nil, apperrors.NewNotFoundError("listing not found")
		}
	}

	return l, nil
}
