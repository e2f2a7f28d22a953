// Package billing holds the payment-side domain: checkout sessions created
// against the provider, the external reference that ties a provider payment
// back to a user and plan, and the record of already processed payment IDs.
package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"habita/internal/domain/plan"
)

// ExternalReference is the correlation token carried through the payment
// provider. It is built at checkout time and parsed back out of the approved
// payment during webhook reconciliation. Wire format is
// "{userSID}-{planType}-{unixMillis}"; neither the user SID (base62) nor the
// plan type contains a hyphen, so splitting on '-' is unambiguous.
type ExternalReference struct {
	UserSID  string
	PlanType plan.Type
	IssuedAt time.Time
}

// BuildExternalReference encodes the reference string for a checkout.
func BuildExternalReference(userSID string, planType plan.Type, issuedAt time.Time) string {
	return fmt.Sprintf("%s-%s-%d", userSID, planType, issuedAt.UnixMilli())
}

// ParseExternalReference decodes a reference string received from the
// provider. The user SID and plan type segments are required; the timestamp
// segment is informational and tolerated when absent or unparseable, since
// older checkouts omitted it.
func ParseExternalReference(ref string) (ExternalReference, error) {
	parts := strings.Split(ref, "-")
	if len(parts) < 2 {
		return ExternalReference{}, fmt.Errorf("malformed external reference: %q", ref)
	}
	if parts[0] == "" || parts[1] == "" {
		return ExternalReference{}, fmt.Errorf("malformed external reference: %q", ref)
	}

	out := ExternalReference{
		UserSID:  parts[0],
		PlanType: plan.Type(parts[1]),
	}

	if len(parts) >= 3 {
		if ms, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			out.IssuedAt = time.UnixMilli(ms).UTC()
		}
	}

	return out, nil
}
