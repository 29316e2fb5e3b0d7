package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/api/http"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

// MyOrders lists the orders owned by a user id.
func (h *Handler) MyOrders(c *gin.Context) {
	items, err := h.orders.ListByOwner(c.Request.Context(), c.Param("uid"))
	if err != nil {
		httpapi.ServerError(c, "list orders", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetOrder returns one order, or null when it does not exist.
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		httpapi.ServerError(c, "get order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	doc, ok := httpapi.BindDocument(c)
	if !ok {
		return
	}

	res, err := h.orders.Place(c.Request.Context(), doc)
	if err != nil {
		httpapi.ServerError(c, "place order", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpdateOrder merges the body into the order, e.g. payment confirmation.
func (h *Handler) UpdateOrder(c *gin.Context) {
	doc, ok := httpapi.BindDocument(c)
	if !ok {
		return
	}

	res, err := h.orders.Update(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		httpapi.ServerError(c, "update order", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) AllOrders(c *gin.Context) {
	items, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		httpapi.ServerError(c, "list orders", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) SetStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.BadRequest(c, "status is required")
		return
	}

	res, err := h.orders.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httpapi.ServerError(c, "update status", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	res, err := h.orders.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.ServerError(c, "delete order", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
