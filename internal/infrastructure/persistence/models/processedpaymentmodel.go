package models

import (
	"time"

	"habita/internal/shared/constants"
)

// ProcessedPaymentModel records provider payment IDs that were already
// reconciled. The unique index on PaymentID is what makes webhook
// redeliveries idempotent.
type ProcessedPaymentModel struct {
	ID          uint   `gorm:"primarykey"`
	PaymentID   string `gorm:"uniqueIndex;not null;size:100"`
	UserID      uint   `gorm:"not null;index"`
	PlanType    string `gorm:"not null;size:20"`
	ProcessedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (ProcessedPaymentModel) TableName() string {
	return constants.TableProcessedPayments
}
