package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/products", h.ListProducts)
	r.GET("/product/:id", h.GetProduct)
	r.POST("/cart/products", h.CartProducts)
}

// RegisterAdmin registers catalog writes; callers guard the group.
func (h *Handler) RegisterAdmin(rg gin.IRouter) {
	rg.POST("/addproduct", h.AddProduct)
}
