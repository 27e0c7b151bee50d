package main

import (
	"context"
	"encoding/json"
	"log"
	"math/rand/v2"
	"os"
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

	err = app.Run(ctx, cfg, "seed-routes", func(cfg *config.Config, cat *catalog.Catalog, _ *rand.Rand) (seed.Job, error) {
		if cfg.RoutesGeoJSON != "" {
			if err := writeGeoJSON(cfg.RoutesGeoJSON, cat.Routes); err != nil {
				return seed.Job{}, err
			}
			log.Printf("wrote %d route lines to %s", len(cat.Routes), cfg.RoutesGeoJSON)
		}
		return seed.RoutesJob(cat.Routes), nil
	})
	if err != nil {
		log.Fatalf("seed routes: %v", err)
	}
}

func writeGeoJSON(path string, routes []catalog.Route) error {
	b, err := json.MarshalIndent(catalog.FeatureCollection(routes), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
