package billing

import "context"

// CheckoutSessionRepository defines persistence for checkout sessions.
type CheckoutSessionRepository interface {
	Create(ctx context.Context, session *CheckoutSession) error
	Update(ctx context.Context, session *CheckoutSession) error
	GetByOrderNo(ctx context.Context, orderNo string) (*CheckoutSession, error)
	GetByExternalReference(ctx context.Context, ref string) (*CheckoutSession, error)
	ListByUserID(ctx context.Context, userID uint) ([]*CheckoutSession, error)

	// ExpirePending marks pending sessions past their TTL as expired and
	// returns how many rows changed.
	ExpirePending(ctx context.Context) (int64, error)
}

// ProcessedPaymentRepository defines persistence for the idempotency ledger.
// Create must fail with a duplicate error when the payment ID was already
// recorded; callers rely on the unique index for exactly-once reconciliation.
type ProcessedPaymentRepository interface {
	Create(ctx context.Context, record *ProcessedPayment) error
	Exists(ctx context.Context, paymentID string) (bool, error)
}
