// Package gateway defines the outbound payment provider port used by the
// billing use cases. The infrastructure layer provides the HTTP
// implementation.
package gateway

import "context"

// PreferenceRequest describes the hosted checkout to create at the provider.
type PreferenceRequest struct {
	Title             string
	AmountCents       int64
	Currency          string
	ExternalReference string
	NotificationURL   string
	SuccessURL        string
	FailureURL        string
	PendingURL        string
}

// Preference is the provider-hosted checkout created for a session.
type Preference struct {
	ID          string
	CheckoutURL string
}

// Payment is the provider's authoritative view of a payment. Webhook
// reconciliation trusts these fields, never the webhook body.
type Payment struct {
	ID                string
	Status            string
	ExternalReference string
	TransactionAmount float64
	CurrencyID        string
}

// Approved reports whether the provider settled the payment.
func (p *Payment) Approved() bool {
	return p.Status == "approved"
}

// PaymentGateway is the outbound port to the payment provider.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}
