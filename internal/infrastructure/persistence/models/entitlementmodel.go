package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"habita/internal/shared/constants"
)

// EntitlementModel represents the database persistence model for entitlements
// This is the anti-corruption layer between domain and database
type EntitlementModel struct {
	ID                 uint    `gorm:"primarykey"`
	SID                string  `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: ent_xxx"`
	UserID             uint    `gorm:"not null;index:idx_user_entitlement,priority:1"`
	PlanType           string  `gorm:"not null;size:20"`
	Status             string  `gorm:"not null;size:20;index:idx_user_entitlement,priority:2"`
	MaxListings        int     `gorm:"not null"`
	MaxPhotos          int     `gorm:"not null"`
	FeaturedQuota      int     `gorm:"not null"`
	StartsAt           time.Time `gorm:"not null"`
	EndsAt             time.Time `gorm:"not null;index:idx_ends_at"`
	ExternalPaymentRef *string `gorm:"size:100;index:idx_external_payment_ref"`
	Metadata           datatypes.JSON
	Version            int `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (EntitlementModel) TableName() string {
	return constants.TableEntitlements
}

// BeforeCreate hook for GORM
func (e *EntitlementModel) BeforeCreate(tx *gorm.DB) error {
	if e.Version == 0 {
		e.Version = 1
	}
	return nil
}
