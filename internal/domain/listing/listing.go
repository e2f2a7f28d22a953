package listing

import (
	"fmt"
	"time"
)

// PropertyType classifies the property being advertised
type PropertyType string

const (
	PropertyHouse      PropertyType = "house"
	PropertyApartment  PropertyType = "apartment"
	PropertyLand       PropertyType = "land"
	PropertyCommercial PropertyType = "commercial"
)

// IsValid checks if the property type is valid
func (p PropertyType) IsValid() bool {
	switch p {
	case PropertyHouse, PropertyApartment, PropertyLand, PropertyCommercial:
		return true
	default:
		return false
	}
}

// OfferType distinguishes sale from rental listings
type OfferType string

const (
	OfferSale OfferType = "sale"
	OfferRent OfferType = "rent"
)

// IsValid checks if the offer type is valid
func (o OfferType) IsValid() bool {
	return o == OfferSale || o == OfferRent
}

// Status represents the publication state of a listing
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

// Listing represents the property listing aggregate root. Description is
// stored as markdown alongside its sanitized HTML rendering; quota checks
// (listing count, photo count, featured slots) are enforced by the
// application layer against the owner's entitlement.
type Listing struct {
	id              uint
	sid             string
	ownerID         uint
	title           string
	description     string
	descriptionHTML string
	propertyType    PropertyType
	offerType       OfferType
	priceCents      int64
	currency        string
	city            string
	state           string
	address         string
	bedrooms        int
	bathrooms       int
	areaM2          float64
	status          Status
	featured        bool
	images          []*Image
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

// NewListing creates a draft listing.
func NewListing(
	ownerID uint,
	title, description, descriptionHTML string,
	propertyType PropertyType,
	offerType OfferType,
	priceCents int64,
	currency, city, state, address string,
	bedrooms, bathrooms int,
	areaM2 float64,
) (*Listing, error) {
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !propertyType.IsValid() {
		return nil, fmt.Errorf("invalid property type: %s", propertyType)
	}
	if !offerType.IsValid() {
		return nil, fmt.Errorf("invalid offer type: %s", offerType)
	}
	if priceCents < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if city == "" {
		return nil, fmt.Errorf("city is required")
	}

	now := time.Now()
	return &Listing{
		ownerID:         ownerID,
		title:           title,
		description:     description,
		descriptionHTML: descriptionHTML,
		propertyType:    propertyType,
		offerType:       offerType,
		priceCents:      priceCents,
		currency:        currency,
		city:            city,
		state:           state,
		address:         address,
		bedrooms:        bedrooms,
		bathrooms:       bathrooms,
		areaM2:          areaM2,
		status:          StatusDraft,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct reconstructs a listing from persistence
func Reconstruct(
	id uint,
	sid string,
	ownerID uint,
	title, description, descriptionHTML string,
	propertyType PropertyType,
	offerType OfferType,
	priceCents int64,
	currency, city, state, address string,
	bedrooms, bathrooms int,
	areaM2 float64,
	status Status,
	featured bool,
	images []*Image,
	version int,
	createdAt, updatedAt time.Time,
) (*Listing, error) {
	if id == 0 {
		return nil, fmt.Errorf("listing ID cannot be zero")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("owner ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid listing status: %s", status)
	}

	return &Listing{
		id:              id,
		sid:             sid,
		ownerID:         ownerID,
		title:           title,
		description:     description,
		descriptionHTML: descriptionHTML,
		propertyType:    propertyType,
		offerType:       offerType,
		priceCents:      priceCents,
		currency:        currency,
		city:            city,
		state:           state,
		address:         address,
		bedrooms:        bedrooms,
		bathrooms:       bathrooms,
		areaM2:          areaM2,
		status:          status,
		featured:        featured,
		images:          images,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// ID returns the listing ID
func (l *Listing) ID() uint {
	return l.id
}

// SetID sets the listing ID (for persistence layer)
func (l *Listing) SetID(id uint) error {
	if l.id != 0 {
		return fmt.Errorf("listing ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("listing ID cannot be zero")
	}
	l.id = id
	return nil
}

// SID returns the short public identifier
func (l *Listing) SID() string {
	return l.sid
}

// SetSID sets the short public identifier (for persistence layer)
func (l *Listing) SetSID(sid string) {
	l.sid = sid
}

// OwnerID returns the owning user ID
func (l *Listing) OwnerID() uint {
	return l.ownerID
}

// Title returns the listing title
func (l *Listing) Title() string {
	return l.title
}

// Description returns the raw markdown description
func (l *Listing) Description() string {
	return l.description
}

// DescriptionHTML returns the sanitized HTML rendering of the description
func (l *Listing) DescriptionHTML() string {
	return l.descriptionHTML
}

// PropertyType returns the property type
func (l *Listing) PropertyType() PropertyType {
	return l.propertyType
}

// OfferType returns the offer type
func (l *Listing) OfferType() OfferType {
	return l.offerType
}

// PriceCents returns the price in cents
func (l *Listing) PriceCents() int64 {
	return l.priceCents
}

// Currency returns the ISO 4217 currency code
func (l *Listing) Currency() string {
	return l.currency
}

// City returns the city
func (l *Listing) City() string {
	return l.city
}

// State returns the state or region
func (l *Listing) State() string {
	return l.state
}

// Address returns the street address
func (l *Listing) Address() string {
	return l.address
}

// Bedrooms returns the bedroom count
func (l *Listing) Bedrooms() int {
	return l.bedrooms
}

// Bathrooms returns the bathroom count
func (l *Listing) Bathrooms() int {
	return l.bathrooms
}

// AreaM2 returns the area in square meters
func (l *Listing) AreaM2() float64 {
	return l.areaM2
}

// Status returns the publication status
func (l *Listing) Status() Status {
	return l.status
}

// Featured reports whether the listing occupies a featured slot
func (l *Listing) Featured() bool {
	return l.featured
}

// Images returns the attached images ordered by position
func (l *Listing) Images() []*Image {
	return l.images
}

// Version returns the aggregate version for optimistic locking
func (l *Listing) Version() int {
	return l.version
}

// CreatedAt returns when the listing was created
func (l *Listing) CreatedAt() time.Time {
	return l.createdAt
}

// UpdatedAt returns when the listing was last updated
func (l *Listing) UpdatedAt() time.Time {
	return l.updatedAt
}

// UpdateDetails replaces the editable listing fields.
func (l *Listing) UpdateDetails(
	title, description, descriptionHTML string,
	priceCents int64,
	city, state, address string,
	bedrooms, bathrooms int,
	areaM2 float64,
) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if priceCents < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if city == "" {
		return fmt.Errorf("city is required")
	}
	l.title = title
	l.description = description
	l.descriptionHTML = descriptionHTML
	l.priceCents = priceCents
	l.city = city
	l.state = state
	l.address = address
	l.bedrooms = bedrooms
	l.bathrooms = bathrooms
	l.areaM2 = areaM2
	l.touch()
	return nil
}

// Publish makes a draft listing publicly visible.
func (l *Listing) Publish() error {
	if l.status == StatusPublished {
		return nil
	}
	if l.status == StatusArchived {
		return fmt.Errorf("archived listings cannot be republished directly")
	}
	l.status = StatusPublished
	l.touch()
	return nil
}

// Archive withdraws the listing from public view and releases its featured
// slot.
func (l *Listing) Archive() {
	if l.status == StatusArchived {
		return
	}
	l.status = StatusArchived
	l.featured = false
	l.touch()
}

// SetFeatured toggles the featured flag. Only published listings can be
// featured; the caller checks the owner's featured quota.
func (l *Listing) SetFeatured(featured bool) error {
	if featured && l.status != StatusPublished {
		return fmt.Errorf("only published listings can be featured")
	}
	if l.featured == featured {
		return nil
	}
	l.featured = featured
	l.touch()
	return nil
}

// AddImage appends an image. The photo quota is checked by the caller against
// the owner's entitlement.
func (l *Listing) AddImage(img *Image) error {
	if img == nil {
		return fmt.Errorf("image is required")
	}
	l.images = append(l.images, img)
	l.touch()
	return nil
}

// RemoveImage detaches an image by its ID.
func (l *Listing) RemoveImage(imageID uint) error {
	for i, img := range l.images {
		if img.ID() == imageID {
			l.images = append(l.images[:i], l.images[i+1:]...)
			l.touch()
			return nil
		}
	}
	return fmt.Errorf("image %d not found on listing", imageID)
}

func (l *Listing) touch() {
	l.updatedAt = time.Now()
	l.version++
}
