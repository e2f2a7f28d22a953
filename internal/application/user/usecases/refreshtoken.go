package usecases

import (
	"habita/internal/infrastructure/auth"
	apperrors "habita/internal/shared/errors"
	"habita/internal/shared/logger"
)

type RefreshTokenUseCase struct {
	jwt    *auth.JWTService
	logger logger.Interface
}

func NewRefreshTokenUseCase(jwt *auth.JWTService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwt: jwt, logger: logger}
}

func (uc *RefreshTokenUseCase) Execute(refreshToken string) (*auth.TokenPair, error) {
	tokens, err := uc.jwt.Refresh(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	return tokens, nil
}
