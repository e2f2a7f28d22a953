package listing

import (
	"fmt"
	"strings"
	"time"
)

// Image is a photo attached to a listing
type Image struct {
	id        uint
	listingID uint
	url       string
	position  int
	createdAt time.Time
}

// NewImage creates a listing image
func NewImage(url string, position int) (*Image, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("image URL must be absolute")
	}
	if position < 0 {
		return nil, fmt.Errorf("position cannot be negative")
	}

	return &Image{
		url:       url,
		position:  position,
		createdAt: time.Now(),
	}, nil
}

// ReconstructImage reconstructs an image from persistence
func ReconstructImage(id, listingID uint, url string, position int, createdAt time.Time) (*Image, error) {
	if id == 0 {
		return nil, fmt.Errorf("image ID cannot be zero")
	}

	return &Image{
		id:        id,
		listingID: listingID,
		url:       url,
		position:  position,
		createdAt: createdAt,
	}, nil
}

// ID returns the image ID
func (i *Image) ID() uint {
	return i.id
}

// SetID sets the image ID (for persistence layer)
func (i *Image) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("image ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("image ID cannot be zero")
	}
	i.id = id
	return nil
}

// ListingID returns the owning listing ID
func (i *Image) ListingID() uint {
	return i.listingID
}

// SetListingID sets the owning listing ID (for persistence layer)
func (i *Image) SetListingID(listingID uint) {
	i.listingID = listingID
}

// URL returns the image URL
func (i *Image) URL() string {
	return i.url
}

// Position returns the display position
func (i *Image) Position() int {
	return i.position
}

// CreatedAt returns the creation timestamp
func (i *Image) CreatedAt() time.Time {
	return i.createdAt
}
