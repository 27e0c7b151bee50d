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

	err = app.Run(ctx, cfg, "seed-drivers", func(cfg *config.Config, cat *catalog.Catalog, rng *rand.Rand) (seed.Job, error) {
		log.Printf("seeding %d drivers per route for %v", cfg.DriversPerRoute, catalog.PUVTypes(cat.DriverRoutes))
		return seed.DriversJob(rng, cat.DriverRoutes, cfg.DriversPerRoute)
	})
	if err != nil {
		log.Fatalf("seed drivers: %v", err)
	}
}
