package bootstrap

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/config"
	httpapi "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/api/http"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/api/http/middleware"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/auth"
	authmw "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/auth/middleware"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/orders"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/payments"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/users"

	adminhttp "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/admin/http"
	ordershttp "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/orders/http"
	paymentshttp "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/payments/http"
	productshttp "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/products/http"
	reviewshttp "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/reviews/http"
	usershttp "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/users/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Config      *config.Config
	Store       store.Store
	Verifier    auth.Verifier
	Gateway     payments.Gateway
	// Cache and CachePing are nil when Redis is not configured.
	Cache     payments.IntentCache
	CachePing httpapi.Pinger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Printf("[router] invalid trusted proxies %v, trusting none: %v", cfg.Server.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	r.Use(authmw.Gate(dep.Verifier, cfg.App.LogLevel == "debug"))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.CachePing)
	healthHandler.RegisterRoutes(r)

	usersSvc := users.NewService(dep.Store, cfg.Users.UpsertOnCreate)
	ordersSvc := orders.NewService(dep.Store)
	paymentsSvc := payments.NewService(dep.Gateway, dep.Cache, cfg.Payment.Currency)

	productsHandler := productshttp.New(dep.Store)
	ordersHandler := ordershttp.New(ordersSvc)

	usershttp.New(usersSvc).Register(r)
	productsHandler.Register(r)
	ordersHandler.Register(r)
	reviewshttp.New(dep.Store).Register(r)

	limiter := middleware.NewRateLimiter(cfg.Payment.RateLimit, cfg.Payment.RateBurst)
	paymentshttp.New(paymentsSvc).Register(r, limiter.Middleware())

	admin := r.Group("/admin")
	admin.Use(auth.RequireAdmin(usersSvc))
	productsHandler.RegisterAdmin(admin)
	ordersHandler.RegisterAdmin(admin)
	adminhttp.New(usersSvc).Register(admin)

	return r
}

// corsConfig allows every origin without credentials for "*", otherwise
// only the listed origins with credentials.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", paymentshttp.IdempotencyHeader, middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}

	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
