package http

import "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/orders"

type Handler struct {
	orders *orders.Service
}

func New(svc *orders.Service) *Handler {
	return &Handler{orders: svc}
}

type statusReq struct {
	Status string `json:"status" binding:"required"`
}
