package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"habita/internal/domain/billing"
	"habita/internal/infrastructure/persistence/mappers"
	"habita/internal/infrastructure/persistence/models"
	"habita/internal/shared/db"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type CheckoutSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.CheckoutSessionMapper
	logger logger.Interface
}

func NewCheckoutSessionRepository(
	db *gorm.DB,
	logger logger.Interface,
) billing.CheckoutSessionRepository {
	return &CheckoutSessionRepositoryImpl{
		db:     db,
		mapper: mappers.NewCheckoutSessionMapper(),
		logger: logger,
	}
}

func (r *CheckoutSessionRepositoryImpl) Create(ctx context.Context, session *billing.CheckoutSession) error {
	model, err := r.mapper.ToModel(session)
	if err != nil {
		return fmt.Errorf("failed to map checkout session entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create checkout session", "error", err)
		return fmt.Errorf("failed to create checkout session: %w", err)
	}

	if err := session.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set checkout session ID: %w", err)
	}

	r.logger.Infow("checkout session created",
		"order_no", model.OrderNo,
		"user_id", model.UserID,
		"plan_type", model.PlanType)
	return nil
}

func (r *CheckoutSessionRepositoryImpl) Update(ctx context.Context, session *billing.CheckoutSession) error {
	model, err := r.mapper.ToModel(session)
	if err != nil {
		return fmt.Errorf("failed to map checkout session entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.CheckoutSessionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"status":        model.Status,
			"preference_id": model.PreferenceID,
			"checkout_url":  model.CheckoutURL,
			"completed_at":  model.CompletedAt,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update checkout session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("checkout session %d not found", model.ID)
	}

	return nil
}

func (r *CheckoutSessionRepositoryImpl) GetByOrderNo(ctx context.Context, orderNo string) (*billing.CheckoutSession, error) {
	var model models.CheckoutSessionModel

	if err := db.GetTxFromContext(ctx, r.db).Where("order_no = ?", orderNo).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *CheckoutSessionRepositoryImpl) GetByExternalReference(ctx context.Context, ref string) (*billing.CheckoutSession, error) {
	var model models.CheckoutSessionModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("external_reference = ?", ref).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get checkout session by reference: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *CheckoutSessionRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*billing.CheckoutSession, error) {
	var modelList []*models.CheckoutSessionModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list checkout sessions: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *CheckoutSessionRepositoryImpl) ExpirePending(ctx context.Context) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.CheckoutSessionModel{}).
		Where("status = ? AND expires_at <= ?", billing.CheckoutStatusPending.String(), time.Now()).
		Updates(map[string]interface{}{
			"status":     billing.CheckoutStatusExpired.String(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire checkout sessions: %w", result.Error)
	}

	return result.RowsAffected, nil
}

type ProcessedPaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ProcessedPaymentMapper
	logger logger.Interface
}

func NewProcessedPaymentRepository(
	db *gorm.DB,
	logger logger.Interface,
) billing.ProcessedPaymentRepository {
	return &ProcessedPaymentRepositoryImpl{
		db:     db,
		mapper: mappers.NewProcessedPaymentMapper(),
		logger: logger,
	}
}

// Create inserts the idempotency record. A duplicate payment ID surfaces as a
// conflict error so the caller can distinguish redelivery from real failures.
func (r *ProcessedPaymentRepositoryImpl) Create(ctx context.Context, record *billing.ProcessedPayment) error {
	model, err := r.mapper.ToModel(record)
	if err != nil {
		return fmt.Errorf("failed to map processed payment entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError(fmt.Sprintf("payment %s already processed", model.PaymentID))
		}
		r.logger.Errorw("failed to record processed payment", "payment_id", model.PaymentID, "error", err)
		return fmt.Errorf("failed to record processed payment: %w", err)
	}

	if err := record.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set processed payment ID: %w", err)
	}

	return nil
}

func (r *ProcessedPaymentRepositoryImpl) Exists(ctx context.Context, paymentID string) (bool, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ProcessedPaymentModel{}).
		Where("payment_id = ?", paymentID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check processed payment: %w", err)
	}

	return count > 0, nil
}
