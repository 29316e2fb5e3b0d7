package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/api/http"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/users"
)

// AdminStatus reports whether the user with the given email is an admin.
func (h *Handler) AdminStatus(c *gin.Context) {
	admin, err := h.users.IsAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		httpapi.ServerError(c, "user lookup", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// CreateUser stores a user registered through the sign-up form.
func (h *Handler) CreateUser(c *gin.Context) {
	doc, ok := httpapi.BindDocument(c)
	if !ok {
		return
	}

	res, err := h.users.Register(c.Request.Context(), doc)
	if err != nil {
		httpapi.ServerError(c, "create user", err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// SaveUser upserts a user by email, used after provider sign-in.
func (h *Handler) SaveUser(c *gin.Context) {
	doc, ok := httpapi.BindDocument(c)
	if !ok {
		return
	}

	res, err := h.users.Save(c.Request.Context(), doc)
	if errors.Is(err, users.ErrEmailRequired) {
		httpapi.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		httpapi.ServerError(c, "save user", err)
		return
	}

	c.JSON(http.StatusOK, res)
}
