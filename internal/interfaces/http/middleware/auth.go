package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"habita/internal/domain/user"
	"habita/internal/infrastructure/auth"
	"habita/internal/shared/constants"
	"habita/internal/shared/logger"
	"habita/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   user.Repository
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, userRepo user.Repository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and loads the account so downstream
// handlers see the numeric user ID, SID and role in the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		account, err := m.userRepo.GetBySID(c.Request.Context(), claims.UserSID)
		if err != nil {
			m.logger.Errorw("failed to load user for token", "user_sid", claims.UserSID, "error", err)
			utils.ErrorResponse(c, http.StatusInternalServerError, "failed to authenticate")
			c.Abort()
			return
		}
		if account == nil || !account.IsActive() {
			utils.ErrorResponse(c, http.StatusUnauthorized, "account not available")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, account.ID())
		c.Set(constants.ContextKeyUserSID, account.SID())
		c.Set(constants.ContextKeyUserRole, string(account.Role()))

		c.Next()
	}
}

// OptionalAuth resolves the user when a valid token is present and stays
// silent otherwise. Public reads use it to show owners their own drafts.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.Next()
			return
		}

		account, err := m.userRepo.GetBySID(c.Request.Context(), claims.UserSID)
		if err != nil || account == nil || !account.IsActive() {
			c.Next()
			return
		}

		c.Set(constants.ContextKeyUserID, account.ID())
		c.Set(constants.ContextKeyUserSID, account.SID())
		c.Set(constants.ContextKeyUserRole, string(account.Role()))

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
