package entitlement

import "context"

// Repository defines the persistence operations for entitlements.
// Implementations must honor a transaction carried in the context so the
// webhook reconciliation can deactivate and insert atomically.
type Repository interface {
	Create(ctx context.Context, e *Entitlement) error
	Update(ctx context.Context, e *Entitlement) error
	GetByID(ctx context.Context, id uint) (*Entitlement, error)
	GetBySID(ctx context.Context, sid string) (*Entitlement, error)

	// GetActiveByUserID returns the most recently created active entitlement
	// for the user, or nil when none exists.
	GetActiveByUserID(ctx context.Context, userID uint) (*Entitlement, error)

	// ListByUserID returns all entitlement records for a user, newest first.
	ListByUserID(ctx context.Context, userID uint) ([]*Entitlement, error)

	// DeactivateAllByUserID marks every active entitlement of the user
	// inactive in a single statement.
	DeactivateAllByUserID(ctx context.Context, userID uint) error

	// ExpireDue marks active entitlements whose window has passed as expired
	// and returns how many rows changed.
	ExpireDue(ctx context.Context) (int64, error)
}
