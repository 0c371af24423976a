package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

var baseHeaders = [][2]string{
	{"Strict-Transport-Security", "max-age=63072000; includeSubDomains"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()"},
}

const (
	apiCSP = "default-src 'none'; frame-ancestors 'none'"
	// uploaded files are user content; never let them run script
	downloadCSP = "default-src 'none'; img-src 'self'; style-src 'unsafe-inline'; sandbox"
)

// SecurityHeadersMiddleware adds baseline security headers to all responses.
// Downloads get a sandboxing policy and may be embedded by the frontend.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range baseHeaders {
			c.Header(h[0], h[1])
		}

		path := c.Request.URL.Path
		switch {
		case strings.Contains(path, "/swagger/"):
			// swagger UI ships its own scripts and styles
		case strings.Contains(path, "/files/download/"):
			c.Header("Content-Security-Policy", downloadCSP)
			c.Header("Cross-Origin-Resource-Policy", "cross-origin")
		default:
			c.Header("Content-Security-Policy", apiCSP)
		}

		if c.GetHeader("Authorization") != "" {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, private")
			c.Header("Pragma", "no-cache")
		}

		c.Next()
	}
}
