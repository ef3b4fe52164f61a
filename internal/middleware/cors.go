package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSPolicy is an explicit origin allow-list plus suffix patterns for
// preview-deployment subdomains.
type CORSPolicy struct {
	AllowedOrigins  []string
	PreviewSuffixes []string
}

func (p CORSPolicy) isAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, o := range p.AllowedOrigins {
		if origin == o {
			return true
		}
	}
	for _, suffix := range p.PreviewSuffixes {
		if strings.HasSuffix(origin, suffix) {
			return true
		}
	}
	return false
}

// CORS writes the cross-origin headers on every response and answers
// preflight requests with an empty body. An unrecognized origin falls back
// to the first allow-listed origin rather than being rejected, matching the
// deployed clients; the browser still blocks the response for them.
func CORS(policy CORSPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := origin
		if !policy.isAllowed(origin) && len(policy.AllowedOrigins) > 0 {
			allowed = policy.AllowedOrigins[0]
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowed)
		h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
