package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/user"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type GetProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetProfileUseCase(userRepo user.Repository, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*user.User, error) {
	account, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return account, nil
}
