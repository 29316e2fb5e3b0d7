package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const LivenessMessage = "Server is running fine"

// Pinger is anything whose reachability the health check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Cache     string    `json:"cache,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	cache       Pinger
}

// NewHealthHandler builds the health handler. db and cache may be nil and
// are then reported as disabled.
func NewHealthHandler(serviceName, version string, db, cache Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		cache:       cache,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        pingStatus(c.Request.Context(), h.db),
		Cache:     pingStatus(c.Request.Context(), h.cache),
	})
}

// Liveness answers the plain-text root health check.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, LivenessMessage)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Liveness)
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}

func pingStatus(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}

	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := p.Ping(pingCtx); err != nil {
		return "down"
	}
	return "up"
}
