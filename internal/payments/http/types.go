package http

import "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/payments"

const IdempotencyHeader = "Idempotency-Key"

type Handler struct {
	payments *payments.Service
}

func New(svc *payments.Service) *Handler {
	return &Handler{payments: svc}
}

type intentReq struct {
	Price *float64 `json:"price"`
}

type intentResp struct {
	ClientSecret string `json:"clientSecret"`
}
