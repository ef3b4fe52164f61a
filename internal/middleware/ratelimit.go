package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goldenhair/storefront/internal/ratelimit"
)

// RateLimit throttles an endpoint with its own limiter and key prefix.
// Rejections are 429 with Retry-After; they are throttling, not errors, so
// they log at warn without a stack of detail.
func RateLimit(l *ratelimit.Limiter, prefix, message string, logger *zap.Logger, onReject func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ClientID(c, prefix)
		res := l.Check(id)
		if !res.Allowed {
			if logger != nil {
				logger.Warn("rate limit exceeded", zap.String("client", id))
			}
			if onReject != nil {
				onReject()
			}
			c.Header("Retry-After", strconv.Itoa(ratelimit.RetryAfter(res, time.Now())))
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Next()
	}
}

// AdminAuth guards staff endpoints with a shared-secret header. An empty
// configured token disables the whole admin surface.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" || c.GetHeader("X-Admin-Token") != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
