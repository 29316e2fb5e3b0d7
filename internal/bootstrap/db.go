package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/config"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store/mongostore"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store/pgstore"
)

type DBOptions struct {
	ConnectTO time.Duration
	PingTO    time.Duration
}

// OpenStore connects the document store selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg *config.DatabaseConfig, opt DBOptions) (store.Store, error) {
	switch cfg.Driver {
	case config.StoreDriverMongo:
		s, err := mongostore.Open(ctx, mongostore.Options{
			URI:       mongostore.URI(cfg),
			Database:  cfg.Name,
			ConnectTO: opt.ConnectTO,
			PingTO:    opt.PingTO,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("[store] connected to mongo database %s", cfg.Name)
		return s, nil

	case config.StoreDriverPostgres:
		s, err := pgstore.Open(ctx, pgstore.Options{
			DSN:       cfg.PostgresDSN,
			ConnectTO: opt.ConnectTO,
			PingTO:    opt.PingTO,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("[store] connected to postgres document store")
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
