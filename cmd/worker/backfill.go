package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/config"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/bootstrap"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/orders"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

// RunBackfillOrderOwners copies the legacy nested owner of every order to
// the top-level owner field.
func RunBackfillOrderOwners(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("backfill-order-owners takes no arguments, got %v", args)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	st, err := bootstrap.OpenStore(ctx, &cfg.Database, bootstrap.DBOptions{})
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Printf("store close: %v", err)
		}
	}()

	return backfillOrderOwners(ctx, st)
}

func backfillOrderOwners(ctx context.Context, st store.Store) error {
	n, err := orders.NewService(st).BackfillOwners(ctx)
	if err != nil {
		return fmt.Errorf("backfill failed after %d orders: %w", n, err)
	}
	log.Printf("backfilled owner on %d orders", n)
	return nil
}
