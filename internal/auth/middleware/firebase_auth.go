package middleware

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/auth"
)

const bearerPrefix = "Bearer "

// Gate verifies an optional bearer token and attaches the caller's email.
// It never rejects: a missing or unverifiable token leaves the request
// unauthenticated and handlers decide whether that is acceptable.
func Gate(verifier auth.Verifier, debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		email, err := verifier.VerifyEmail(c.Request.Context(), token)
		if err != nil {
			if debug {
				log.Printf("[auth] id=%s token rejected: %v", c.GetString("request_id"), err)
			}
			c.Next()
			return
		}

		auth.WithIdentity(c, auth.Identity{Email: email})
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > len(bearerPrefix) && strings.HasPrefix(bearerToken, bearerPrefix) {
		return strings.TrimSpace(bearerToken[len(bearerPrefix):])
	}
	return ""
}
