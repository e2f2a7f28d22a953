package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/user"
	"habita/internal/infrastructure/auth"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User   *user.User
	Tokens *auth.TokenPair
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	jwt      *auth.JWTService
	logger   logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	jwt *auth.JWTService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		jwt:      jwt,
		logger:   logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	account, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// The same error for a missing account and a wrong password keeps the
	// response from leaking which emails exist.
	if account == nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	if err := uc.hasher.Verify(cmd.Password, account.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "email", cmd.Email)
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	if !account.IsActive() {
		return nil, apperrors.NewForbiddenError("account is suspended")
	}

	tokens, err := uc.jwt.Generate(account.SID(), account.Role())
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", account.ID())

	return &LoginResult{User: account, Tokens: tokens}, nil
}
