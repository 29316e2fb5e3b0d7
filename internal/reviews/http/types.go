package http

import "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"

type Handler struct {
	reviews store.Collection
}

func New(s store.Store) *Handler {
	return &Handler{reviews: store.Reviews(s)}
}
