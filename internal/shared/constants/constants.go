// Package constants defines shared constant values used across layers.
package constants

// Pagination defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Gin context keys.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserSID  = "user_sid"
	ContextKeyUserRole = "user_role"
)

// Database table names.
const (
	TableUsers             = "users"
	TableEntitlements      = "entitlements"
	TableProcessedPayments = "processed_payments"
	TableCheckoutSessions  = "checkout_sessions"
	TableListings          = "listings"
	TableListingImages     = "listing_images"
)
