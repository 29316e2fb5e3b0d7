package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/api/http"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/auth"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/users"
)

// GrantAdmin gives the admin role to the user named in the body. The
// requester must be an admin themselves.
func (h *Handler) GrantAdmin(c *gin.Context) {
	requester, ok := auth.IdentityFrom(c)
	if !ok {
		auth.Forbid(c)
		return
	}

	var req grantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "invalid request body")
		return
	}

	res, err := h.users.GrantAdmin(c.Request.Context(), requester.Email, req.Email)
	switch {
	case errors.Is(err, users.ErrNotAdmin):
		auth.Forbid(c)
		return
	case errors.Is(err, users.ErrEmailRequired):
		httpapi.BadRequest(c, err.Error())
		return
	case err != nil:
		httpapi.ServerError(c, "grant admin", err)
		return
	}

	log.Printf("[admin] id=%s %s granted admin to %s (matched=%d)", c.GetString("request_id"), requester.Email, req.Email, res.MatchedCount)
	c.JSON(http.StatusOK, res)
}
