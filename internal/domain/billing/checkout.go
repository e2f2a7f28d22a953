package billing

import (
	"fmt"
	"time"

	"habita/internal/domain/plan"
)

// CheckoutStatus represents the lifecycle state of a checkout session
type CheckoutStatus string

const (
	CheckoutStatusPending   CheckoutStatus = "pending"
	CheckoutStatusCompleted CheckoutStatus = "completed"
	CheckoutStatusExpired   CheckoutStatus = "expired"
)

// IsValid checks if the checkout status is valid
func (s CheckoutStatus) IsValid() bool {
	switch s {
	case CheckoutStatusPending, CheckoutStatusCompleted, CheckoutStatusExpired:
		return true
	default:
		return false
	}
}

// String returns the string representation of the checkout status
func (s CheckoutStatus) String() string {
	return string(s)
}

// CheckoutSession represents a checkout started against the payment provider.
// It exists for audit and for correlating provider callbacks; the entitlement
// grant itself is driven by the webhook, not by the session state.
type CheckoutSession struct {
	id                uint
	orderNo           string
	userID            uint
	planType          plan.Type
	amountCents       int64
	currency          string
	status            CheckoutStatus
	externalReference string
	preferenceID      *string
	checkoutURL       *string
	completedAt       *time.Time
	expiresAt         time.Time
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewCheckoutSession creates a pending checkout session for a paid plan.
func NewCheckoutSession(orderNo string, userID uint, p plan.Plan, currency, externalReference string, ttl time.Duration) (*CheckoutSession, error) {
	if orderNo == "" {
		return nil, fmt.Errorf("order number is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !p.Type.IsPaid() {
		return nil, fmt.Errorf("plan %s is not purchasable", p.Type)
	}
	if externalReference == "" {
		return nil, fmt.Errorf("external reference is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("checkout TTL must be positive")
	}

	now := time.Now()
	return &CheckoutSession{
		orderNo:           orderNo,
		userID:            userID,
		planType:          p.Type,
		amountCents:       p.PriceCents,
		currency:          currency,
		status:            CheckoutStatusPending,
		externalReference: externalReference,
		expiresAt:         now.Add(ttl),
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructCheckoutSession reconstructs a checkout session from persistence
func ReconstructCheckoutSession(
	id uint,
	orderNo string,
	userID uint,
	planType plan.Type,
	amountCents int64,
	currency string,
	status CheckoutStatus,
	externalReference string,
	preferenceID, checkoutURL *string,
	completedAt *time.Time,
	expiresAt time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*CheckoutSession, error) {
	if id == 0 {
		return nil, fmt.Errorf("checkout session ID cannot be zero")
	}
	if orderNo == "" {
		return nil, fmt.Errorf("order number is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid checkout status: %s", status)
	}

	return &CheckoutSession{
		id:                id,
		orderNo:           orderNo,
		userID:            userID,
		planType:          planType,
		amountCents:       amountCents,
		currency:          currency,
		status:            status,
		externalReference: externalReference,
		preferenceID:      preferenceID,
		checkoutURL:       checkoutURL,
		completedAt:       completedAt,
		expiresAt:         expiresAt,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

// ID returns the session ID
func (c *CheckoutSession) ID() uint {
	return c.id
}

// SetID sets the session ID (for persistence layer)
func (c *CheckoutSession) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("checkout session ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("checkout session ID cannot be zero")
	}
	c.id = id
	return nil
}

// OrderNo returns the public order number
func (c *CheckoutSession) OrderNo() string {
	return c.orderNo
}

// UserID returns the buying user ID
func (c *CheckoutSession) UserID() uint {
	return c.userID
}

// PlanType returns the plan being purchased
func (c *CheckoutSession) PlanType() plan.Type {
	return c.planType
}

// AmountCents returns the charge amount in cents
func (c *CheckoutSession) AmountCents() int64 {
	return c.amountCents
}

// Currency returns the ISO 4217 currency code
func (c *CheckoutSession) Currency() string {
	return c.currency
}

// Status returns the session status
func (c *CheckoutSession) Status() CheckoutStatus {
	return c.status
}

// ExternalReference returns the correlation token sent to the provider
func (c *CheckoutSession) ExternalReference() string {
	return c.externalReference
}

// PreferenceID returns the provider preference ID, nil before AttachPreference
func (c *CheckoutSession) PreferenceID() *string {
	return c.preferenceID
}

// CheckoutURL returns the provider-hosted payment page URL
func (c *CheckoutSession) CheckoutURL() *string {
	return c.checkoutURL
}

// CompletedAt returns when the session completed, nil while pending
func (c *CheckoutSession) CompletedAt() *time.Time {
	return c.completedAt
}

// ExpiresAt returns when a pending session stops being payable
func (c *CheckoutSession) ExpiresAt() time.Time {
	return c.expiresAt
}

// Version returns the aggregate version for optimistic locking
func (c *CheckoutSession) Version() int {
	return c.version
}

// CreatedAt returns when the session was created
func (c *CheckoutSession) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns when the session was last updated
func (c *CheckoutSession) UpdatedAt() time.Time {
	return c.updatedAt
}

// AttachPreference stores the provider preference created for this session.
func (c *CheckoutSession) AttachPreference(preferenceID, checkoutURL string) error {
	if c.status != CheckoutStatusPending {
		return fmt.Errorf("cannot attach preference to %s session", c.status)
	}
	if preferenceID == "" || checkoutURL == "" {
		return fmt.Errorf("preference ID and checkout URL are required")
	}
	c.preferenceID = &preferenceID
	c.checkoutURL = &checkoutURL
	c.touch()
	return nil
}

// MarkCompleted transitions the session after its payment was reconciled.
// Completing an already completed session is a no-op.
func (c *CheckoutSession) MarkCompleted() error {
	if c.status == CheckoutStatusCompleted {
		return nil
	}
	if c.status == CheckoutStatusExpired {
		return fmt.Errorf("cannot complete an expired session")
	}
	now := time.Now()
	c.status = CheckoutStatusCompleted
	c.completedAt = &now
	c.touch()
	return nil
}

// MarkExpired transitions a pending session past its TTL.
func (c *CheckoutSession) MarkExpired() error {
	if c.status != CheckoutStatusPending {
		return fmt.Errorf("cannot expire %s session", c.status)
	}
	c.status = CheckoutStatusExpired
	c.touch()
	return nil
}

// IsExpired reports whether a pending session is past its TTL.
func (c *CheckoutSession) IsExpired(at time.Time) bool {
	return c.status == CheckoutStatusPending && !at.Before(c.expiresAt)
}

func (c *CheckoutSession) touch() {
	c.updatedAt = time.Now()
	c.version++
}
