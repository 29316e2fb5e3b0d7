package http

import "github.com/gin-gonic/gin"

// Register mounts the payment routes. Extra middleware, typically a rate
// limiter, runs before the handler.
func (h *Handler) Register(r gin.IRouter, mw ...gin.HandlerFunc) {
	r.POST("/create-payment-intent", append(mw, h.CreateIntent)...)
}
