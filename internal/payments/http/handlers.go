package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	httpapi "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/api/http"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/payments"
)

func (h *Handler) CreateIntent(c *gin.Context) {
	var req intentReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Price == nil {
		httpapi.BadRequest(c, payments.ErrInvalidPrice.Error())
		return
	}

	key := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
	secret, err := h.payments.CreateIntent(c.Request.Context(), *req.Price, key)
	switch {
	case errors.Is(err, payments.ErrInvalidPrice):
		httpapi.BadRequest(c, err.Error())
		return
	case errors.Is(err, payments.ErrIdempotencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, payments.ErrGatewayDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case err != nil:
		httpapi.ServerError(c, "create payment intent", err)
		return
	}

	c.JSON(http.StatusOK, intentResp{ClientSecret: secret})
}
