package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	CtxIdentity = "identity"
)

type identityKey struct{}

// Identity is the optional caller identity attached by the gate. The zero
// value means the request is unauthenticated.
type Identity struct {
	Email string
}

func (i Identity) Present() bool { return i.Email != "" }

// WithIdentity stores id on both the Gin context and the request context.
func WithIdentity(c *gin.Context, id Identity) {
	c.Set(CtxIdentity, id)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), identityKey{}, id))
}

// IdentityFrom returns the identity set by the gate, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	if !ok || !id.Present() {
		return Identity{}, false
	}
	return id, true
}

// IdentityFromContext is IdentityFrom for code that only has a context.Context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	if !ok || !id.Present() {
		return Identity{}, false
	}
	return id, true
}
