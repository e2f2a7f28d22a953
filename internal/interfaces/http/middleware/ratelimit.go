package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"habita/internal/infrastructure/ratelimit"
	"habita/internal/shared/logger"
	"habita/internal/shared/utils"
)

// RateLimit enforces a per-IP limit on the wrapped routes. A limiter failure
// lets the request through; throttling must not take the API down with it.
func RateLimit(limiter ratelimit.RateLimiter, scope string, cfg ratelimit.RateLimitConfig, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", scope, c.ClientIP())

		allowed, err := limiter.Allow(key, cfg)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
