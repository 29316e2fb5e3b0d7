package http

import "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/users"

type Handler struct {
	users *users.Service
}

func New(svc *users.Service) *Handler {
	return &Handler{users: svc}
}

type grantReq struct {
	Email string `json:"email"`
}
