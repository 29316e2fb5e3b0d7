package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/config"
	httpapi "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/api/http"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/auth"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/bootstrap"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/payments"
)

const serviceName = "eyeside-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	st, err := bootstrap.OpenStore(ctx, &cfg.Database, bootstrap.DBOptions{})
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	verifier, err := auth.NewVerifier(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	deps := bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Config:      cfg,
		Store:       st,
		Verifier:    verifier,
		Gateway:     payments.NewGateway(&cfg.Payment),
	}
	if rdb != nil {
		deps.Cache = payments.NewRedisCache(rdb)
		deps.CachePing = httpapi.PingerFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Printf("[payments] idempotency cache enabled at %s", cfg.Redis.Addr)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("%s listening on :%s (env=%s)", serviceName, cfg.Server.Port, cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		log.Printf("store close: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Printf("redis close: %v", err)
		}
	}
}
