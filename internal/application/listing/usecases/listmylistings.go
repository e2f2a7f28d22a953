package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/listing"
	"habita/internal/shared/logger"
	"habita/internal/shared/utils"
)

type ListMyListingsQuery struct {
	OwnerID  uint
	Status   string
	Page     int
	PageSize int
}

type ListMyListingsResult struct {
	Listings   []*listing.Listing
	Total      int64
	Pagination utils.Pagination
}

// ListMyListingsUseCase returns the owner's listings in every status,
// drafts and archived included.
type ListMyListingsUseCase struct {
	listingRepo listing.Repository
	logger      logger.Interface
}

func NewListMyListingsUseCase(listingRepo listing.Repository, logger logger.Interface) *ListMyListingsUseCase {
	return &ListMyListingsUseCase{listingRepo: listingRepo, logger: logger}
}

func (uc *ListMyListingsUseCase) Execute(ctx context.Context, q ListMyListingsQuery) (*ListMyListingsResult, error) {
	p := utils.ValidatePagination(q.Page, q.PageSize)

	ownerID := q.OwnerID
	filter := listing.Filter{
		OwnerID:  &ownerID,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if q.Status != "" {
		status := listing.Status(q.Status)
		filter.Status = &status
	}

	items, total, err := uc.listingRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	return &ListMyListingsResult{
		Listings:   items,
		Total:      total,
		Pagination: p,
	}, nil
}
