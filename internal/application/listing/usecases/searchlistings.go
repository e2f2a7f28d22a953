package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/listing"
	"habita/internal/shared/logger"
	"habita/internal/shared/utils"
)

type SearchListingsQuery struct {
	City         string
	State        string
	PropertyType string
	OfferType    string
	MinPrice     *int64
	MaxPrice     *int64
	FeaturedOnly bool
	Page         int
	PageSize     int
	SortBy       string
	SortDesc     bool
}

type SearchListingsResult struct {
	Listings   []*listing.Listing
	Total      int64
	Pagination utils.Pagination
}

// SearchListingsUseCase is the public browse surface. Only published listings
// are returned regardless of the filter supplied.
type SearchListingsUseCase struct {
	listingRepo listing.Repository
	logger      logger.Interface
}

func NewSearchListingsUseCase(listingRepo listing.Repository, logger logger.Interface) *SearchListingsUseCase {
	return &SearchListingsUseCase{listingRepo: listingRepo, logger: logger}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, q SearchListingsQuery) (*SearchListingsResult, error) {
	p := utils.ValidatePagination(q.Page, q.PageSize)

	published := listing.StatusPublished
	filter := listing.Filter{
		City:         q.City,
		State:        q.State,
		Status:       &published,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		FeaturedOnly: q.FeaturedOnly,
		Page:         p.Page,
		PageSize:     p.PageSize,
		SortBy:       q.SortBy,
		SortDesc:     q.SortDesc,
	}
	if q.PropertyType != "" {
		pt := listing.PropertyType(q.PropertyType)
		filter.PropertyType = &pt
	}
	if q.OfferType != "" {
		ot := listing.OfferType(q.OfferType)
		filter.OfferType = &ot
	}

	items, total, err := uc.listingRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	return &SearchListingsResult{
		Listings:   items,
		Total:      total,
		Pagination: p,
	}, nil
}
