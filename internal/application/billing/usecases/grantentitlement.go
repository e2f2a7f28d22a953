package usecases

import (
	"context"
	"fmt"
	"time"

	"habita/internal/domain/entitlement"
	"habita/internal/domain/plan"
	"habita/internal/domain/user"
	"habita/internal/shared/db"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

// GrantEntitlementCommand grants a plan to a user without a payment, for
// support cases and promotions. ValidDays of zero uses the default window.
type GrantEntitlementCommand struct {
	UserID    uint
	PlanType  string
	ValidDays int
}

type GrantEntitlementUseCase struct {
	userRepo        user.Repository
	entitlementRepo entitlement.Repository
	txManager       *db.TransactionManager
	entitlementDays int
	logger          logger.Interface
}

func NewGrantEntitlementUseCase(
	userRepo user.Repository,
	entitlementRepo entitlement.Repository,
	txManager *db.TransactionManager,
	entitlementDays int,
	logger logger.Interface,
) *GrantEntitlementUseCase {
	if entitlementDays <= 0 {
		entitlementDays = 30
	}
	return &GrantEntitlementUseCase{
		userRepo:        userRepo,
		entitlementRepo: entitlementRepo,
		txManager:       txManager,
		entitlementDays: entitlementDays,
		logger:          logger,
	}
}

func (uc *GrantEntitlementUseCase) Execute(ctx context.Context, cmd GrantEntitlementCommand) (*entitlement.Entitlement, error) {
	granted, ok := plan.ByType(plan.Type(cmd.PlanType))
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown plan: %s", cmd.PlanType))
	}

	target, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if target == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	days := cmd.ValidDays
	if days <= 0 {
		days = uc.entitlementDays
	}
	validFor := time.Duration(days) * 24 * time.Hour

	var grant *entitlement.Entitlement
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.entitlementRepo.DeactivateAllByUserID(txCtx, target.ID()); err != nil {
			return err
		}
		// No payment backs a manual grant, so no external reference.
		grant, err = entitlement.NewFromPlan(target.ID(), granted, validFor, nil)
		if err != nil {
			return fmt.Errorf("failed to build entitlement: %w", err)
		}
		return uc.entitlementRepo.Create(txCtx, grant)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to grant entitlement: %w", err)
	}

	uc.logger.Infow("entitlement granted manually",
		"user_id", target.ID(),
		"plan_type", granted.Type,
		"valid_days", days)

	return grant, nil
}
