package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientID derives the rate-limit key for a request: the first forwarded
// IP when present, otherwise a composite of origin and user-agent prefix.
// The prefix keeps counters for different endpoints independent even when
// they share a limiter key space.
func ClientID(c *gin.Context, prefix string) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return prefix + "-" + strings.TrimSpace(first)
	}
	if realIP := c.GetHeader("X-Real-Ip"); realIP != "" {
		return prefix + "-" + realIP
	}

	ua := c.GetHeader("User-Agent")
	if ua == "" {
		ua = "unknown"
	}
	if len(ua) > 50 {
		ua = ua[:50]
	}
	origin := c.GetHeader("Origin")
	if origin == "" {
		origin = "unknown"
	}
	return prefix + "-" + origin + "-" + ua
}
