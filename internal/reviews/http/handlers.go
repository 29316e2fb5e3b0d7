package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/api/http"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

func (h *Handler) ListReviews(c *gin.Context) {
	items, err := h.reviews.Find(c.Request.Context(), store.All(), 0)
	if err != nil {
		httpapi.ServerError(c, "list reviews", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddReview stores a review from an authenticated visitor as given.
func (h *Handler) AddReview(c *gin.Context) {
	doc, ok := httpapi.BindDocument(c)
	if !ok {
		return
	}

	res, err := h.reviews.InsertOne(c.Request.Context(), doc)
	if err != nil {
		httpapi.ServerError(c, "add review", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
