package models

import (
	"time"

	"gorm.io/gorm"

	"habita/internal/shared/constants"
)

// CheckoutSessionModel represents the database persistence model for checkout sessions
type CheckoutSessionModel struct {
	ID                uint   `gorm:"primarykey"`
	OrderNo           string `gorm:"uniqueIndex;not null;size:50;comment:Stripe-style ID: ord_xxx"`
	UserID            uint   `gorm:"not null;index:idx_user_checkout"`
	PlanType          string `gorm:"not null;size:20"`
	AmountCents       int64  `gorm:"not null"`
	Currency          string `gorm:"not null;size:3"`
	Status            string `gorm:"not null;size:20;index:idx_checkout_status"`
	ExternalReference string `gorm:"not null;size:150;index:idx_external_reference"`
	PreferenceID      *string `gorm:"size:100"`
	CheckoutURL       *string `gorm:"size:500"`
	CompletedAt       *time.Time
	ExpiresAt         time.Time `gorm:"not null;index:idx_expires_at"`
	Version           int       `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (CheckoutSessionModel) TableName() string {
	return constants.TableCheckoutSessions
}

// BeforeCreate hook for GORM
func (c *CheckoutSessionModel) BeforeCreate(tx *gorm.DB) error {
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}
