package dto

import (
	"time"

	billingusecases "habita/internal/application/billing/usecases"
	"habita/internal/domain/entitlement"
)

type PlanDTO struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"price_cents"`
	DisplayPrice  string `json:"display_price"`
	MaxListings   int    `json:"max_listings"`
	MaxPhotos     int    `json:"max_photos"`
	FeaturedQuota int    `json:"featured_quota"`
	Badge         string `json:"badge,omitempty"`
	Highlighted   bool   `json:"highlighted"`
}

func FromPlanView(v billingusecases.PlanView) PlanDTO {
	return PlanDTO{
		Type:          string(v.Type),
		Name:          v.Name,
		PriceCents:    v.PriceCents,
		DisplayPrice:  v.DisplayPrice,
		MaxListings:   v.MaxListings,
		MaxPhotos:     v.MaxPhotos,
		FeaturedQuota: v.FeaturedQuota,
		Badge:         v.Badge,
		Highlighted:   v.Highlighted,
	}
}

type EntitlementDTO struct {
	PlanType      string     `json:"plan_type"`
	PlanName      string     `json:"plan_name"`
	Status        string     `json:"status"`
	MaxListings   int        `json:"max_listings"`
	MaxPhotos     int        `json:"max_photos"`
	FeaturedQuota int        `json:"featured_quota"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	Implicit      bool       `json:"implicit"`
}

func FromEntitlementView(v *billingusecases.EntitlementView) EntitlementDTO {
	return EntitlementDTO{
		PlanType:      string(v.PlanType),
		PlanName:      v.PlanName,
		Status:        string(v.Status),
		MaxListings:   v.MaxListings,
		MaxPhotos:     v.MaxPhotos,
		FeaturedQuota: v.FeaturedQuota,
		StartsAt:      v.StartsAt,
		EndsAt:        v.EndsAt,
		Implicit:      v.Implicit,
	}
}

type EntitlementRecordDTO struct {
	SID                string    `json:"id"`
	PlanType           string    `json:"plan_type"`
	Status             string    `json:"status"`
	MaxListings        int       `json:"max_listings"`
	MaxPhotos          int       `json:"max_photos"`
	FeaturedQuota      int       `json:"featured_quota"`
	StartsAt           time.Time `json:"starts_at"`
	EndsAt             time.Time `json:"ends_at"`
	ExternalPaymentRef *string   `json:"external_payment_ref,omitempty"`
}

func FromEntitlement(e *entitlement.Entitlement) EntitlementRecordDTO {
	return EntitlementRecordDTO{
		SID:                e.SID(),
		PlanType:           string(e.PlanType()),
		Status:             string(e.Status()),
		MaxListings:        e.MaxListings(),
		MaxPhotos:          e.MaxPhotos(),
		FeaturedQuota:      e.FeaturedQuota(),
		StartsAt:           e.StartsAt(),
		EndsAt:             e.EndsAt(),
		ExternalPaymentRef: e.ExternalPaymentRef(),
	}
}

type CheckoutDTO struct {
	OrderNo     string    `json:"order_no"`
	CheckoutURL string    `json:"checkout_url"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func FromCheckoutResult(r *billingusecases.InitiateCheckoutResult) CheckoutDTO {
	return CheckoutDTO{
		OrderNo:     r.OrderNo,
		CheckoutURL: r.CheckoutURL,
		AmountCents: r.AmountCents,
		Currency:    r.Currency,
		ExpiresAt:   r.ExpiresAt,
	}
}
