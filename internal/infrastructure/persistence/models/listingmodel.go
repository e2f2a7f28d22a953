package models

import (
	"time"

	"gorm.io/gorm"

	"habita/internal/shared/constants"
)

// ListingModel represents the database persistence model for listings
type ListingModel struct {
	ID              uint   `gorm:"primarykey"`
	SID             string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: lst_xxx"`
	OwnerID         uint   `gorm:"not null;index:idx_owner_listing"`
	Title           string `gorm:"not null;size:200"`
	Description     string `gorm:"type:text"`
	DescriptionHTML string `gorm:"type:text"`
	PropertyType    string `gorm:"not null;size:20;index:idx_property_type"`
	OfferType       string `gorm:"not null;size:10;index:idx_offer_type"`
	PriceCents      int64  `gorm:"not null;index:idx_price"`
	Currency        string `gorm:"not null;size:3"`
	City            string `gorm:"not null;size:100;index:idx_city"`
	State           string `gorm:"size:100"`
	Address         string `gorm:"size:255"`
	Bedrooms        int
	Bathrooms       int
	AreaM2          float64
	Status          string `gorm:"not null;size:20;index:idx_listing_status"`
	Featured        bool   `gorm:"not null;default:false;index:idx_featured"`
	Images          []ListingImageModel `gorm:"foreignKey:ListingID"`
	Version         int    `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ListingModel) TableName() string {
	return constants.TableListings
}

// BeforeCreate hook for GORM
func (l *ListingModel) BeforeCreate(tx *gorm.DB) error {
	if l.Version == 0 {
		l.Version = 1
	}
	return nil
}

// ListingImageModel represents a photo attached to a listing
type ListingImageModel struct {
	ID        uint   `gorm:"primarykey"`
	ListingID uint   `gorm:"not null;index:idx_listing_image"`
	URL       string `gorm:"not null;size:500"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (ListingImageModel) TableName() string {
	return constants.TableListingImages
}
