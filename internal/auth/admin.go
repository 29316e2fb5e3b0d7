package auth

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ForbiddenMessage = "You do not have the access to request"

// AdminChecker reports whether the user with the given email holds the admin role.
type AdminChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Forbid aborts with the standard 403 payload.
func Forbid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": ForbiddenMessage})
}

// RequireIdentity rejects requests the gate could not authenticate.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			Forbid(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose identity is absent or not an admin.
// It must run after the gate.
func RequireAdmin(checker AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			Forbid(c)
			return
		}

		admin, err := checker.IsAdmin(c.Request.Context(), id.Email)
		if err != nil {
			log.Printf("[auth] id=%s admin check for %s failed: %v", c.GetString("request_id"), id.Email, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "admin check failed"})
			return
		}
		if !admin {
			Forbid(c)
			return
		}

		c.Next()
	}
}
