package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"habita/internal/domain/entitlement"
	"habita/internal/infrastructure/persistence/mappers"
	"habita/internal/infrastructure/persistence/models"
	"habita/internal/shared/db"
	"habita/internal/shared/id"
	"habita/internal/shared/logger"
)

type EntitlementRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EntitlementMapper
	logger logger.Interface
}

func NewEntitlementRepository(
	db *gorm.DB,
	logger logger.Interface,
) entitlement.Repository {
	return &EntitlementRepositoryImpl{
		db:     db,
		mapper: mappers.NewEntitlementMapper(),
		logger: logger,
	}
}

func (r *EntitlementRepositoryImpl) Create(ctx context.Context, entity *entitlement.Entitlement) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map entitlement entity to model", "error", err)
		return fmt.Errorf("failed to map entitlement entity: %w", err)
	}

	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixEntitlement, id.DefaultLength)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create entitlement in database", "error", err)
		return fmt.Errorf("failed to create entitlement: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set entitlement ID: %w", err)
	}
	entity.SetSID(model.SID)

	r.logger.Infow("entitlement created",
		"id", model.ID,
		"user_id", model.UserID,
		"plan_type", model.PlanType)
	return nil
}

func (r *EntitlementRepositoryImpl) Update(ctx context.Context, entity *entitlement.Entitlement) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map entitlement entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.EntitlementModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"plan_type":            model.PlanType,
			"status":               model.Status,
			"max_listings":         model.MaxListings,
			"max_photos":           model.MaxPhotos,
			"featured_quota":       model.FeaturedQuota,
			"starts_at":            model.StartsAt,
			"ends_at":              model.EndsAt,
			"external_payment_ref": model.ExternalPaymentRef,
			"metadata":             model.Metadata,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update entitlement", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update entitlement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("entitlement %d not found", model.ID)
	}

	return nil
}

func (r *EntitlementRepositoryImpl) GetByID(ctx context.Context, entitlementID uint) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, entitlementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *EntitlementRepositoryImpl) GetBySID(ctx context.Context, sid string) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entitlement by SID: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetActiveByUserID returns the most recently created active entitlement,
// or nil when the user has none.
func (r *EntitlementRepositoryImpl) GetActiveByUserID(ctx context.Context, userID uint) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND status = ?", userID, entitlement.StatusActive.String()).
		Order("created_at DESC, id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get active entitlement", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get active entitlement: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *EntitlementRepositoryImpl) ListByUserID(ctx context.Context, userID uint) ([]*entitlement.Entitlement, error) {
	var modelList []*models.EntitlementModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

// DeactivateAllByUserID flips every active row of the user in one statement
// so the single-active invariant holds inside the reconciliation transaction.
func (r *EntitlementRepositoryImpl) DeactivateAllByUserID(ctx context.Context, userID uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.EntitlementModel{}).
		Where("user_id = ? AND status = ?", userID, entitlement.StatusActive.String()).
		Updates(map[string]interface{}{
			"status":     entitlement.StatusInactive.String(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to deactivate entitlements", "user_id", userID, "error", result.Error)
		return fmt.Errorf("failed to deactivate entitlements: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		r.logger.Debugw("deactivated previous entitlements",
			"user_id", userID,
			"count", result.RowsAffected)
	}
	return nil
}

func (r *EntitlementRepositoryImpl) ExpireDue(ctx context.Context) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.EntitlementModel{}).
		Where("status = ? AND ends_at <= ?", entitlement.StatusActive.String(), time.Now()).
		Updates(map[string]interface{}{
			"status":     entitlement.StatusExpired.String(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire entitlements: %w", result.Error)
	}

	return result.RowsAffected, nil
}
