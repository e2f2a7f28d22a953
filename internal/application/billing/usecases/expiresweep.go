package usecases

import (
	"context"
	"fmt"
	"time"

	"habita/internal/domain/billing"
	"habita/internal/domain/entitlement"
	"habita/internal/shared/logger"
)

// ExpireSweepResult reports how many records the sweep touched.
type ExpireSweepResult struct {
	ExpiredEntitlements int64
	ExpiredCheckouts    int64
	Elapsed             time.Duration
}

// ExpireSweepUseCase marks entitlements past their window as expired and
// closes checkout sessions the buyer abandoned. Reads resolve stale records
// lazily as well; the sweep keeps the tables honest between reads.
type ExpireSweepUseCase struct {
	entitlementRepo entitlement.Repository
	checkoutRepo    billing.CheckoutSessionRepository
	logger          logger.Interface
}

func NewExpireSweepUseCase(
	entitlementRepo entitlement.Repository,
	checkoutRepo billing.CheckoutSessionRepository,
	logger logger.Interface,
) *ExpireSweepUseCase {
	return &ExpireSweepUseCase{
		entitlementRepo: entitlementRepo,
		checkoutRepo:    checkoutRepo,
		logger:          logger,
	}
}

func (uc *ExpireSweepUseCase) Execute(ctx context.Context) (*ExpireSweepResult, error) {
	start := time.Now()

	expiredEnts, err := uc.entitlementRepo.ExpireDue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to expire entitlements: %w", err)
	}

	expiredSessions, err := uc.checkoutRepo.ExpirePending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to expire checkout sessions: %w", err)
	}

	result := &ExpireSweepResult{
		ExpiredEntitlements: expiredEnts,
		ExpiredCheckouts:    expiredSessions,
		Elapsed:             time.Since(start),
	}

	if expiredEnts > 0 || expiredSessions > 0 {
		uc.logger.Infow("expiry sweep completed",
			"expired_entitlements", expiredEnts,
			"expired_checkouts", expiredSessions,
			"elapsed", result.Elapsed)
	}

	return result, nil
}
