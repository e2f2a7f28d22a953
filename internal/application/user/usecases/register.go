package usecases

import (
	"context"
	"fmt"
	"time"

	"habita/internal/domain/entitlement"
	"habita/internal/domain/plan"
	"habita/internal/domain/user"
	"habita/internal/infrastructure/email"
	"habita/internal/shared/db"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/goroutine"
	"habita/internal/shared/logger"
)

type RegisterCommand struct {
	Email    string
	Name     string
	Phone    string
	Password string
}

// PasswordHasher is the hashing port. The infrastructure layer provides the
// bcrypt implementation.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// RegisterUseCase creates an account and seeds the free plan entitlement so
// every quota check reads a stored record from day one.
type RegisterUseCase struct {
	userRepo        user.Repository
	entitlementRepo entitlement.Repository
	hasher          PasswordHasher
	txManager       *db.TransactionManager
	notifier        email.Notifier
	logger          logger.Interface
}

func NewRegisterUseCase(
	userRepo user.Repository,
	entitlementRepo entitlement.Repository,
	hasher PasswordHasher,
	txManager *db.TransactionManager,
	notifier email.Notifier,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:        userRepo,
		entitlementRepo: entitlementRepo,
		hasher:          hasher,
		txManager:       txManager,
		notifier:        notifier,
		logger:          logger,
	}
}

// basicSeedValidity keeps the seeded free entitlement far enough out that it
// never expires in practice. The free plan has no renewal to anchor a real
// window to.
const basicSeedValidity = 100 * 365 * 24 * time.Hour

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*user.User, error) {
	if len(cmd.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("email already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := user.NewUser(cmd.Email, cmd.Name, cmd.Phone, hash)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, newUser); err != nil {
			return err
		}
		seed, err := entitlement.NewFromPlan(newUser.ID(), plan.Basic(), basicSeedValidity, nil)
		if err != nil {
			return fmt.Errorf("failed to build basic entitlement: %w", err)
		}
		return uc.entitlementRepo.Create(txCtx, seed)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("user registered",
		"user_id", newUser.ID(),
		"email", newUser.Email())

	uc.sendWelcome(newUser)

	return newUser, nil
}

func (uc *RegisterUseCase) sendWelcome(newUser *user.User) {
	if uc.notifier == nil {
		return
	}
	to := newUser.Email()
	name := newUser.Name()
	goroutine.SafeGo(uc.logger, "user.welcome", func() {
		if err := uc.notifier.SendWelcome(to, name); err != nil {
			uc.logger.Warnw("failed to send welcome email",
				"email", to,
				"error", err)
		}
	})
}
