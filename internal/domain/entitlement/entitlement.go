package entitlement

import (
	"fmt"
	"time"

	"habita/internal/domain/plan"
)

// Status represents the lifecycle state of an entitlement record
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusExpired  Status = "expired"
)

// ValidStatuses is the set of statuses accepted from persistence
var ValidStatuses = map[Status]bool{
	StatusActive:   true,
	StatusInactive: true,
	StatusExpired:  true,
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	return ValidStatuses[s]
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Entitlement represents the entitlement aggregate root. It is a per-user
// record of plan limits copied from the catalog at assignment time. At most
// one active record per user is meaningful; readers pick the most recent one.
type Entitlement struct {
	id                 uint
	sid                string
	userID             uint
	planType           plan.Type
	status             Status
	maxListings        int
	maxPhotos          int
	featuredQuota      int
	startsAt           time.Time
	endsAt             time.Time
	externalPaymentRef *string
	metadata           map[string]interface{}
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

// NewFromPlan creates an active entitlement for a user by copying limits from
// the catalog plan. The record is valid from now until now plus validFor.
// externalPaymentRef links the record to the provider payment that granted it
// and is nil for free or admin-granted entitlements.
func NewFromPlan(userID uint, p plan.Plan, validFor time.Duration, externalPaymentRef *string) (*Entitlement, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !p.Type.IsValid() {
		return nil, fmt.Errorf("invalid plan type: %s", p.Type)
	}
	if validFor <= 0 {
		return nil, fmt.Errorf("validity duration must be positive")
	}

	now := time.Now()
	return &Entitlement{
		userID:             userID,
		planType:           p.Type,
		status:             StatusActive,
		maxListings:        p.MaxListings,
		maxPhotos:          p.MaxPhotos,
		featuredQuota:      p.FeaturedQuota,
		startsAt:           now,
		endsAt:             now.Add(validFor),
		externalPaymentRef: externalPaymentRef,
		metadata:           make(map[string]interface{}),
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// Reconstruct reconstructs an entitlement from persistence
func Reconstruct(
	id uint,
	sid string,
	userID uint,
	planType plan.Type,
	status Status,
	maxListings, maxPhotos, featuredQuota int,
	startsAt, endsAt time.Time,
	externalPaymentRef *string,
	metadata map[string]interface{},
	version int,
	createdAt, updatedAt time.Time,
) (*Entitlement, error) {
	if id == 0 {
		return nil, fmt.Errorf("entitlement ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid entitlement status: %s", status)
	}
	if endsAt.Before(startsAt) {
		return nil, fmt.Errorf("ends at must not precede starts at")
	}

	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Entitlement{
		id:                 id,
		sid:                sid,
		userID:             userID,
		planType:           planType,
		status:             status,
		maxListings:        maxListings,
		maxPhotos:          maxPhotos,
		featuredQuota:      featuredQuota,
		startsAt:           startsAt,
		endsAt:             endsAt,
		externalPaymentRef: externalPaymentRef,
		metadata:           metadata,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

// ID returns the entitlement ID
func (e *Entitlement) ID() uint {
	return e.id
}

// SetID sets the entitlement ID (for persistence layer)
func (e *Entitlement) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("entitlement ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("entitlement ID cannot be zero")
	}
	e.id = id
	return nil
}

// SID returns the short public identifier
func (e *Entitlement) SID() string {
	return e.sid
}

// SetSID sets the short public identifier (for persistence layer)
func (e *Entitlement) SetSID(sid string) {
	e.sid = sid
}

// UserID returns the owning user ID
func (e *Entitlement) UserID() uint {
	return e.userID
}

// PlanType returns the catalog plan this entitlement was derived from
func (e *Entitlement) PlanType() plan.Type {
	return e.planType
}

// Status returns the entitlement status
func (e *Entitlement) Status() Status {
	return e.status
}

// MaxListings returns the listing quota
func (e *Entitlement) MaxListings() int {
	return e.maxListings
}

// MaxPhotos returns the per-listing photo quota
func (e *Entitlement) MaxPhotos() int {
	return e.maxPhotos
}

// FeaturedQuota returns how many listings may be featured
func (e *Entitlement) FeaturedQuota() int {
	return e.featuredQuota
}

// StartsAt returns the validity window start
func (e *Entitlement) StartsAt() time.Time {
	return e.startsAt
}

// EndsAt returns the validity window end
func (e *Entitlement) EndsAt() time.Time {
	return e.endsAt
}

// ExternalPaymentRef returns the provider payment ID that granted this
// entitlement, or nil for free or admin-granted records
func (e *Entitlement) ExternalPaymentRef() *string {
	return e.externalPaymentRef
}

// Metadata returns the entitlement metadata
func (e *Entitlement) Metadata() map[string]interface{} {
	return e.metadata
}

// Version returns the aggregate version for optimistic locking
func (e *Entitlement) Version() int {
	return e.version
}

// CreatedAt returns when the entitlement was created
func (e *Entitlement) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns when the entitlement was last updated
func (e *Entitlement) UpdatedAt() time.Time {
	return e.updatedAt
}

// IsActive reports whether the entitlement is active and inside its validity
// window at the given instant.
func (e *Entitlement) IsActive(at time.Time) bool {
	return e.status == StatusActive && !at.Before(e.startsAt) && at.Before(e.endsAt)
}

// IsExpiredAt reports whether the validity window has passed.
func (e *Entitlement) IsExpiredAt(at time.Time) bool {
	return !at.Before(e.endsAt)
}

// Deactivate marks the entitlement inactive. Deactivating an already inactive
// or expired record is a no-op so reconciliation sweeps stay idempotent.
func (e *Entitlement) Deactivate() {
	if e.status != StatusActive {
		return
	}
	e.status = StatusInactive
	e.touch()
}

// MarkExpired transitions an active entitlement whose window has passed.
func (e *Entitlement) MarkExpired() error {
	if e.status != StatusActive {
		return fmt.Errorf("cannot expire entitlement in status %s", e.status)
	}
	e.status = StatusExpired
	e.touch()
	return nil
}

// OverrideLimits replaces the copied quota values. Used by admin adjustments;
// the catalog itself is never mutated.
func (e *Entitlement) OverrideLimits(maxListings, maxPhotos, featuredQuota int) error {
	if maxListings < 0 || maxPhotos < 0 || featuredQuota < 0 {
		return fmt.Errorf("limits cannot be negative")
	}
	e.maxListings = maxListings
	e.maxPhotos = maxPhotos
	e.featuredQuota = featuredQuota
	e.touch()
	return nil
}

// OverrideStatus forces a status transition regardless of the current state.
func (e *Entitlement) OverrideStatus(status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid entitlement status: %s", status)
	}
	e.status = status
	e.touch()
	return nil
}

// ExtendValidity pushes the window end forward by the given number of days.
func (e *Entitlement) ExtendValidity(days int) error {
	if days <= 0 {
		return fmt.Errorf("extension days must be positive")
	}
	e.endsAt = e.endsAt.AddDate(0, 0, days)
	e.touch()
	return nil
}

// ChangePlan re-derives the entitlement limits from a different catalog plan.
func (e *Entitlement) ChangePlan(p plan.Plan) error {
	if !p.Type.IsValid() {
		return fmt.Errorf("invalid plan type: %s", p.Type)
	}
	e.planType = p.Type
	e.maxListings = p.MaxListings
	e.maxPhotos = p.MaxPhotos
	e.featuredQuota = p.FeaturedQuota
	e.touch()
	return nil
}

// SetMetadata replaces a metadata entry
func (e *Entitlement) SetMetadata(key string, value interface{}) {
	e.metadata[key] = value
	e.touch()
}

func (e *Entitlement) touch() {
	e.updatedAt = time.Now()
	e.version++
}
