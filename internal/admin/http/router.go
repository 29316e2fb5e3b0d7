package http

import "github.com/gin-gonic/gin"

// Register registers admin-role management; callers guard the group.
func (h *Handler) Register(rg gin.IRouter) {
	rg.PUT("/addadmin", h.GrantAdmin)
}
