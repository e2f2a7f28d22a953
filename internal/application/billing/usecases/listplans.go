package usecases

import (
	"context"

	"habita/internal/domain/plan"
	"habita/internal/shared/logger"
)

// PlanView is the catalog entry shape returned to clients.
type PlanView struct {
	Type          plan.Type
	Name          string
	PriceCents    int64
	DisplayPrice  string
	MaxListings   int
	MaxPhotos     int
	FeaturedQuota int
	Badge         string
	Highlighted   bool
}

type ListPlansUseCase struct {
	currency string
	logger   logger.Interface
}

func NewListPlansUseCase(currency string, logger logger.Interface) *ListPlansUseCase {
	if currency == "" {
		currency = "USD"
	}
	return &ListPlansUseCase{currency: currency, logger: logger}
}

// Execute returns the full catalog in display order, free plan first.
func (uc *ListPlansUseCase) Execute(_ context.Context) []PlanView {
	catalog := plan.All()
	views := make([]PlanView, 0, len(catalog))
	for _, p := range catalog {
		views = append(views, PlanView{
			Type:          p.Type,
			Name:          p.Name,
			PriceCents:    p.PriceCents,
			DisplayPrice:  p.DisplayPrice(uc.currency),
			MaxListings:   p.MaxListings,
			MaxPhotos:     p.MaxPhotos,
			FeaturedQuota: p.FeaturedQuota,
			Badge:         p.Badge,
			Highlighted:   p.Highlighted,
		})
	}
	return views
}
