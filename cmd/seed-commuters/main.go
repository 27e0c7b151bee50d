package main

import (
	"context"
	"log"
	"math/rand/v2"
	"os/signal"
	"syscall"

	"ipara-seeder/internal/app"
	"ipara-seeder/internal/catalog"
	"ipara-seeder/internal/config"
	"ipara-seeder/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = app.Run(ctx, cfg, "seed-commuters", func(cfg *config.Config, cat *catalog.Catalog, rng *rand.Rand) (seed.Job, error) {
		return seed.CommutersJob(rng, cat.CommuterRoutes, cfg.CommutersPerRoute)
	})
	if err != nil {
		log.Fatalf("seed commuters: %v", err)
	}
}
