package listing

import "context"

// Filter narrows listing queries. Nil pointer fields mean "any".
type Filter struct {
	OwnerID      *uint
	City         string
	State        string
	PropertyType *PropertyType
	OfferType    *OfferType
	Status       *Status
	MinPrice     *int64
	MaxPrice     *int64
	FeaturedOnly bool
	Page         int
	PageSize     int
	SortBy       string
	SortDesc     bool
}

// Repository defines the persistence operations for listings.
type Repository interface {
	Create(ctx context.Context, l *Listing) error
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Listing, error)
	GetBySID(ctx context.Context, sid string) (*Listing, error)
	List(ctx context.Context, filter Filter) ([]*Listing, int64, error)

	// CountActiveByOwnerID counts the owner's non-archived listings for
	// quota enforcement.
	CountActiveByOwnerID(ctx context.Context, ownerID uint) (int64, error)

	// CountFeaturedByOwnerID counts the owner's currently featured listings.
	CountFeaturedByOwnerID(ctx context.Context, ownerID uint) (int64, error)

	AddImage(ctx context.Context, listingID uint, img *Image) error
	RemoveImage(ctx context.Context, listingID, imageID uint) error
	CountImages(ctx context.Context, listingID uint) (int64, error)
}
