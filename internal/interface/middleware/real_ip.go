package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ctxRealIPKey is where the resolved client address lives in the request
// context; the rate limiter keys on it.
const ctxRealIPKey = "real_ip"

// RealIP resolves the client address once per request and stores it in the
// context. Proxy headers win over the socket address: CF-Connecting-IP
// first, then the left-most X-Forwarded-For hop, then gin's ClientIP.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxRealIPKey, resolveClientIP(c))
		c.Next()
	}
}

func resolveClientIP(c *gin.Context) string {
	if ip := parseIP(c.GetHeader("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := parseIP(first); ip != "" {
			return ip
		}
	}
	return c.ClientIP()
}

// parseIP returns the canonical form of raw, or "" when it is not an IP.
func parseIP(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return ""
	}
	return ip.String()
}
