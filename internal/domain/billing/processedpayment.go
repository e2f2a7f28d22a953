package billing

import (
	"fmt"
	"time"

	"habita/internal/domain/plan"
)

// ProcessedPayment records a provider payment ID that has already been
// reconciled. Inserting it inside the reconciliation transaction, backed by a
// unique index on the payment ID, makes webhook redeliveries idempotent.
type ProcessedPayment struct {
	id          uint
	paymentID   string
	userID      uint
	planType    plan.Type
	processedAt time.Time
}

// NewProcessedPayment creates a processed payment record
func NewProcessedPayment(paymentID string, userID uint, planType plan.Type) (*ProcessedPayment, error) {
	if paymentID == "" {
		return nil, fmt.Errorf("payment ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &ProcessedPayment{
		paymentID:   paymentID,
		userID:      userID,
		planType:    planType,
		processedAt: time.Now(),
	}, nil
}

// ReconstructProcessedPayment reconstructs a processed payment from persistence
func ReconstructProcessedPayment(id uint, paymentID string, userID uint, planType plan.Type, processedAt time.Time) (*ProcessedPayment, error) {
	if id == 0 {
		return nil, fmt.Errorf("processed payment ID cannot be zero")
	}
	if paymentID == "" {
		return nil, fmt.Errorf("payment ID is required")
	}

	return &ProcessedPayment{
		id:          id,
		paymentID:   paymentID,
		userID:      userID,
		planType:    planType,
		processedAt: processedAt,
	}, nil
}

// ID returns the record ID
func (p *ProcessedPayment) ID() uint {
	return p.id
}

// SetID sets the record ID (for persistence layer)
func (p *ProcessedPayment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("processed payment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("processed payment ID cannot be zero")
	}
	p.id = id
	return nil
}

// PaymentID returns the provider payment ID
func (p *ProcessedPayment) PaymentID() string {
	return p.paymentID
}

// UserID returns the user the payment was reconciled for
func (p *ProcessedPayment) UserID() uint {
	return p.userID
}

// PlanType returns the plan the payment purchased
func (p *ProcessedPayment) PlanType() plan.Type {
	return p.planType
}

// ProcessedAt returns when reconciliation happened
func (p *ProcessedPayment) ProcessedAt() time.Time {
	return p.processedAt
}
