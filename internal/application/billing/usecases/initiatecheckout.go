package usecases

import (
	"context"
	"fmt"
	"time"

	"habita/internal/application/billing/gateway"
	"habita/internal/domain/billing"
	"habita/internal/domain/plan"
	"habita/internal/domain/user"
	"habita/internal/shared/biztime"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/id"
	"habita/internal/shared/logger"
)

type InitiateCheckoutCommand struct {
	UserID   uint
	PlanType string
}

type InitiateCheckoutResult struct {
	OrderNo     string
	CheckoutURL string
	AmountCents int64
	Currency    string
	ExpiresAt   time.Time
}

// CheckoutURLs groups the callback endpoints sent to the provider.
type CheckoutURLs struct {
	NotificationURL string
	SuccessURL      string
	FailureURL      string
	PendingURL      string
}

// InitiateCheckoutUseCase creates a checkout session for a paid plan and a
// matching hosted preference at the payment provider.
type InitiateCheckoutUseCase struct {
	userRepo     user.Repository
	checkoutRepo billing.CheckoutSessionRepository
	gateway      gateway.PaymentGateway
	urls         CheckoutURLs
	currency     string
	checkoutTTL  time.Duration
	logger       logger.Interface
}

func NewInitiateCheckoutUseCase(
	userRepo user.Repository,
	checkoutRepo billing.CheckoutSessionRepository,
	paymentGateway gateway.PaymentGateway,
	urls CheckoutURLs,
	currency string,
	checkoutTTL time.Duration,
	logger logger.Interface,
) *InitiateCheckoutUseCase {
	if currency == "" {
		currency = "USD"
	}
	if checkoutTTL <= 0 {
		checkoutTTL = time.Hour
	}
	return &InitiateCheckoutUseCase{
		userRepo:     userRepo,
		checkoutRepo: checkoutRepo,
		gateway:      paymentGateway,
		urls:         urls,
		currency:     currency,
		checkoutTTL:  checkoutTTL,
		logger:       logger,
	}
}

func (uc *InitiateCheckoutUseCase) Execute(ctx context.Context, cmd InitiateCheckoutCommand) (*InitiateCheckoutResult, error) {
	planType := plan.Type(cmd.PlanType)
	selected, ok := plan.ByType(planType)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown plan: %s", cmd.PlanType))
	}
	if !planType.IsPaid() {
		return nil, apperrors.NewValidationError("the basic plan does not require checkout")
	}

	buyer, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if buyer == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	externalRef := billing.BuildExternalReference(buyer.SID(), planType, biztime.NowUTC())

	orderNo, err := id.NewOrderNo()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	session, err := billing.NewCheckoutSession(orderNo, buyer.ID(), selected, uc.currency, externalRef, uc.checkoutTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	if err := uc.checkoutRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist checkout session: %w", err)
	}

	// The plan rides along on the back URLs so the frontend can show the
	// purchased tier without another round trip.
	planQuery := "?plan=" + string(planType)

	pref, err := uc.gateway.CreatePreference(ctx, gateway.PreferenceRequest{
		Title:             fmt.Sprintf("%s plan (monthly)", selected.Name),
		AmountCents:       selected.PriceCents,
		Currency:          uc.currency,
		ExternalReference: externalRef,
		NotificationURL:   uc.urls.NotificationURL,
		SuccessURL:        uc.urls.SuccessURL + planQuery,
		FailureURL:        uc.urls.FailureURL + planQuery,
		PendingURL:        uc.urls.PendingURL + planQuery,
	})
	if err != nil {
		uc.logger.Errorw("failed to create provider preference",
			"order_no", orderNo,
			"error", err)
		return nil, fmt.Errorf("failed to create provider preference: %w", err)
	}

	if err := session.AttachPreference(pref.ID, pref.CheckoutURL); err != nil {
		return nil, fmt.Errorf("failed to attach preference: %w", err)
	}
	if err := uc.checkoutRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update checkout session: %w", err)
	}

	uc.logger.Infow("checkout initiated",
		"order_no", orderNo,
		"user_id", buyer.ID(),
		"plan_type", planType,
		"amount_cents", selected.PriceCents)

	return &InitiateCheckoutResult{
		OrderNo:     session.OrderNo(),
		CheckoutURL: pref.CheckoutURL,
		AmountCents: session.AmountCents(),
		Currency:    session.Currency(),
		ExpiresAt:   session.ExpiresAt(),
	}, nil
}
