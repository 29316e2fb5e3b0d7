package http

import (
	"github.com/gin-gonic/gin"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/auth"
)

// Register expects the auth gate to already run on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/reviews", h.ListReviews)
	r.POST("/addreview", auth.RequireIdentity(), h.AddReview)
}
