package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/user/:email", h.AdminStatus)
	r.POST("/adduser", h.CreateUser)
	r.PUT("/adduser", h.SaveUser)
}
