package handlers

import (
	"github.com/gin-gonic/gin"

	"habita/internal/shared/authorization"
	"habita/internal/shared/constants"
)

// currentUserID returns the authenticated user's numeric ID, zero when the
// request is anonymous.
func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get(constants.ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func currentUserRole(c *gin.Context) authorization.UserRole {
	return authorization.UserRole(c.GetString(constants.ContextKeyUserRole))
}
