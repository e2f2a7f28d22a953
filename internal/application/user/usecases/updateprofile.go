package usecases

import (
	"context"
	"fmt"

	"habita/internal/domain/user"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type UpdateProfileCommand struct {
	UserID uint
	Name   string
	Phone  string
}

type UpdateProfileUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.Repository, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo, logger: logger}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*user.User, error) {
	account, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if account == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	if err := account.UpdateProfile(cmd.Name, cmd.Phone); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("profile updated", "user_id", account.ID())
	return account, nil
}
