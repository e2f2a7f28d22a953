package usecases

import (
	"context"
	"fmt"
	"time"

	"habita/internal/application/billing/gateway"
	"habita/internal/domain/billing"
	"habita/internal/domain/entitlement"
	"habita/internal/domain/plan"
	"habita/internal/domain/user"
	"habita/internal/infrastructure/email"
	"habita/internal/shared/db"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/goroutine"
	"habita/internal/shared/logger"
)

// HandlePaymentWebhookCommand carries the fields extracted from the provider
// notification body. Everything else about the payment is fetched from the
// provider directly.
type HandlePaymentWebhookCommand struct {
	EventType string
	PaymentID string
}

// HandlePaymentWebhookUseCase reconciles an approved provider payment into an
// entitlement. The webhook body is treated as a hint only; the provider API is
// the source of truth. A nil return means the event is acknowledged (200), an
// error means the provider should redeliver (500).
type HandlePaymentWebhookUseCase struct {
	gateway         gateway.PaymentGateway
	userRepo        user.Repository
	entitlementRepo entitlement.Repository
	processedRepo   billing.ProcessedPaymentRepository
	checkoutRepo    billing.CheckoutSessionRepository
	txManager       *db.TransactionManager
	notifier        email.Notifier
	entitlementDays int
	currency        string
	logger          logger.Interface
}

func NewHandlePaymentWebhookUseCase(
	paymentGateway gateway.PaymentGateway,
	userRepo user.Repository,
	entitlementRepo entitlement.Repository,
	processedRepo billing.ProcessedPaymentRepository,
	checkoutRepo billing.CheckoutSessionRepository,
	txManager *db.TransactionManager,
	notifier email.Notifier,
	entitlementDays int,
	currency string,
	logger logger.Interface,
) *HandlePaymentWebhookUseCase {
	if entitlementDays <= 0 {
		entitlementDays = 30
	}
	if currency == "" {
		currency = "USD"
	}
	return &HandlePaymentWebhookUseCase{
		gateway:         paymentGateway,
		userRepo:        userRepo,
		entitlementRepo: entitlementRepo,
		processedRepo:   processedRepo,
		checkoutRepo:    checkoutRepo,
		txManager:       txManager,
		notifier:        notifier,
		entitlementDays: entitlementDays,
		currency:        currency,
		logger:          logger,
	}
}

func (uc *HandlePaymentWebhookUseCase) Execute(ctx context.Context, cmd HandlePaymentWebhookCommand) error {
	// Non-payment events are acknowledged without action so the provider
	// stops redelivering them.
	if cmd.EventType != "payment" {
		uc.logger.Debugw("ignoring non-payment webhook event", "type", cmd.EventType)
		return nil
	}

	if cmd.PaymentID == "" {
		uc.logger.Warnw("payment webhook missing payment ID")
		return nil
	}

	// Fetch the authoritative payment state. Failure here must surface as an
	// error so the provider redelivers once we can reach it again.
	payment, err := uc.gateway.GetPayment(ctx, cmd.PaymentID)
	if err != nil {
		uc.logger.Errorw("failed to fetch payment from provider",
			"payment_id", cmd.PaymentID,
			"error", err)
		return fmt.Errorf("failed to fetch payment: %w", err)
	}

	if !payment.Approved() {
		uc.logger.Infow("ignoring payment in non-approved status",
			"payment_id", payment.ID,
			"status", payment.Status)
		return nil
	}

	// Fast path for redeliveries; the unique index inside the transaction
	// still backstops concurrent deliveries.
	alreadyProcessed, err := uc.processedRepo.Exists(ctx, payment.ID)
	if err != nil {
		return fmt.Errorf("failed to check processed payments: %w", err)
	}
	if alreadyProcessed {
		uc.logger.Infow("payment already reconciled, acknowledging redelivery",
			"payment_id", payment.ID)
		return nil
	}

	ref, err := billing.ParseExternalReference(payment.ExternalReference)
	if err != nil {
		// The payment is real but we cannot attribute it. Acknowledge so the
		// provider stops retrying; the log line is the operator's lead.
		uc.logger.Warnw("approved payment with malformed external reference",
			"payment_id", payment.ID,
			"external_reference", payment.ExternalReference)
		return nil
	}

	purchasedPlan, ok := plan.ByType(ref.PlanType)
	if !ok {
		uc.logger.Warnw("approved payment references unknown plan",
			"payment_id", payment.ID,
			"plan_type", ref.PlanType)
		return nil
	}

	buyer, err := uc.userRepo.GetBySID(ctx, ref.UserSID)
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}
	if buyer == nil {
		uc.logger.Warnw("approved payment references unknown user",
			"payment_id", payment.ID,
			"user_sid", ref.UserSID)
		return nil
	}

	validFor := time.Duration(uc.entitlementDays) * 24 * time.Hour

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.entitlementRepo.DeactivateAllByUserID(txCtx, buyer.ID()); err != nil {
			return err
		}

		paymentRef := payment.ID
		grant, err := entitlement.NewFromPlan(buyer.ID(), purchasedPlan, validFor, &paymentRef)
		if err != nil {
			return fmt.Errorf("failed to build entitlement: %w", err)
		}
		if err := uc.entitlementRepo.Create(txCtx, grant); err != nil {
			return err
		}

		record, err := billing.NewProcessedPayment(payment.ID, buyer.ID(), purchasedPlan.Type)
		if err != nil {
			return fmt.Errorf("failed to build processed payment record: %w", err)
		}
		if err := uc.processedRepo.Create(txCtx, record); err != nil {
			return err
		}

		// Closing the checkout session is bookkeeping; a missing session
		// (payment initiated elsewhere) is not an error.
		session, err := uc.checkoutRepo.GetByExternalReference(txCtx, payment.ExternalReference)
		if err != nil {
			return err
		}
		if session != nil {
			if err := session.MarkCompleted(); err == nil {
				if err := uc.checkoutRepo.Update(txCtx, session); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		// A concurrent delivery won the race on the unique payment index.
		// The entitlement is granted, so acknowledge.
		if apperrors.IsConflictError(err) {
			uc.logger.Infow("payment reconciled concurrently, acknowledging",
				"payment_id", payment.ID)
			return nil
		}
		uc.logger.Errorw("entitlement reconciliation failed",
			"payment_id", payment.ID,
			"user_id", buyer.ID(),
			"error", err)
		return fmt.Errorf("failed to reconcile entitlement: %w", err)
	}

	uc.logger.Infow("entitlement granted from payment",
		"payment_id", payment.ID,
		"user_id", buyer.ID(),
		"plan_type", purchasedPlan.Type,
		"valid_days", uc.entitlementDays)

	uc.sendReceipt(buyer, purchasedPlan, validFor)

	return nil
}

// sendReceipt mails the purchase confirmation outside the webhook's fate.
func (uc *HandlePaymentWebhookUseCase) sendReceipt(buyer *user.User, purchased plan.Plan, validFor time.Duration) {
	if uc.notifier == nil {
		return
	}

	to := buyer.Email()
	endsAt := time.Now().Add(validFor).Format("January 2, 2006")
	goroutine.SafeGo(uc.logger, "billing.receipt", func() {
		if err := uc.notifier.SendPurchaseReceipt(to, purchased.Name, purchased.DisplayPrice(uc.currency), endsAt); err != nil {
			uc.logger.Warnw("failed to send purchase receipt",
				"email", to,
				"error", err)
		}
	})
}
