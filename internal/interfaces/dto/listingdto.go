package dto

import (
	"time"

	"habita/internal/domain/listing"
)

type ListingImageDTO struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type ListingDTO struct {
	SID             string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	DescriptionHTML string            `json:"description_html"`
	PropertyType    string            `json:"property_type"`
	OfferType       string            `json:"offer_type"`
	PriceCents      int64             `json:"price_cents"`
	Currency        string            `json:"currency"`
	City            string            `json:"city"`
	State           string            `json:"state,omitempty"`
	Address         string            `json:"address,omitempty"`
	Bedrooms        int               `json:"bedrooms"`
	Bathrooms       int               `json:"bathrooms"`
	AreaM2          float64           `json:"area_m2"`
	Status          string            `json:"status"`
	Featured        bool              `json:"featured"`
	Images          []ListingImageDTO `json:"images"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func FromListing(l *listing.Listing) ListingDTO {
	images := make([]ListingImageDTO, 0, len(l.Images()))
	for _, img := range l.Images() {
		images = append(images, ListingImageDTO{
			ID:       img.ID(),
			URL:      img.URL(),
			Position: img.Position(),
		})
	}

	return ListingDTO{
		SID:             l.SID(),
		Title:           l.Title(),
		Description:     l.Description(),
		DescriptionHTML: l.DescriptionHTML(),
		PropertyType:    string(l.PropertyType()),
		OfferType:       string(l.OfferType()),
		PriceCents:      l.PriceCents(),
		Currency:        l.Currency(),
		City:            l.City(),
		State:           l.State(),
		Address:         l.Address(),
		Bedrooms:        l.Bedrooms(),
		Bathrooms:       l.Bathrooms(),
		AreaM2:          l.AreaM2(),
		Status:          string(l.Status()),
		Featured:        l.Featured(),
		Images:          images,
		CreatedAt:       l.CreatedAt(),
		UpdatedAt:       l.UpdatedAt(),
	}
}

func FromListings(items []*listing.Listing) []ListingDTO {
	result := make([]ListingDTO, 0, len(items))
	for _, l := range items {
		result = append(result, FromListing(l))
	}
	return result
}
