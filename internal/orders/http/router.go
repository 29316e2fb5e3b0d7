package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(r gin.IRouter) {
	r.GET("/myorders/:uid", h.MyOrders)
	r.GET("/order/:id", h.GetOrder)
	r.POST("/order", h.PlaceOrder)
	r.POST("/placeorder", h.PlaceOrder)
	r.PUT("/order/:id", h.UpdateOrder)
}

// RegisterAdmin registers order management; callers guard the group.
func (h *Handler) RegisterAdmin(rg gin.IRouter) {
	rg.GET("/orders", h.AllOrders)
	rg.PUT("/status/:id", h.SetStatus)
	rg.DELETE("/order/:id", h.DeleteOrder)
}
