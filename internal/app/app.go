// Package app wires configuration, store, metrics and publisher around a
// single seed job.
package app

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"ipara-seeder/internal/catalog"
	"ipara-seeder/internal/config"
	"ipara-seeder/internal/metrics"
	"ipara-seeder/internal/publisher"
	"ipara-seeder/internal/seed"
	"ipara-seeder/internal/store"
)

// BuildFunc produces the job to run from the loaded catalogue.
type BuildFunc func(cfg *config.Config, cat *catalog.Catalog, rng *rand.Rand) (seed.Job, error)

// Run builds and executes one job. The store is opened once and closed on
// return; metrics are pushed whether or not the job succeeded.
func Run(ctx context.Context, cfg *config.Config, name string, build BuildFunc) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	job, err := build(cfg, cat, NewRand(cfg.RandomSeed))
	if err != nil {
		return fmt.Errorf("build job: %w", err)
	}

	st, err := store.Open(ctx, store.Options{
		Driver:          cfg.StoreDriver,
		ProjectID:       cfg.ProjectID,
		CredentialsFile: cfg.CredentialsFile,
		DatabaseURL:     cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("init %s store: %w", cfg.StoreDriver, err)
	}
	defer st.Close()
	log.Printf("%s store ready", cfg.StoreDriver)

	mcol := metrics.NewCollector()
	if cfg.PushgatewayURL != "" {
		defer func() {
			if err := mcol.Push(context.WithoutCancel(ctx), cfg.PushgatewayURL, name); err != nil {
				log.Printf("metrics push error: %v", err)
			}
		}()
	}

	var pub seed.Publisher
	if cfg.NATSURL != "" {
		np, err := publisher.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, cfg.LogNATSSubjects, wrapPublisherMetrics(mcol))
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer np.Close()
		pub = np
	}

	_, err = seed.NewRunner(st, pub, mcol).Run(ctx, job)
	return err
}

// NewRand returns a PCG source, reproducible when seed is set.
func NewRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), uint64(time.Now().UnixNano())))
}

// wrapPublisherMetrics adapts our Collector to the PublisherMetrics interface.
func wrapPublisherMetrics(c *metrics.Collector) publisher.PublisherMetrics {
	if c == nil {
		return nil
	}
	return &pubMetrics{c: c}
}

type pubMetrics struct{ c *metrics.Collector }

func (p *pubMetrics) NATSPublishedInc()              { p.c.NATSPublished.Inc() }
func (p *pubMetrics) NATSPublishErrInc()             { p.c.NATSPublishErrs.Inc() }
func (p *pubMetrics) PublishObserve(d time.Duration) { p.c.PublishDuration.Observe(d.Seconds()) }
func (p *pubMetrics) NATSSetConnected(b bool) {
	if b {
		p.c.NATSConnected.Set(1)
	} else {
		p.c.NATSConnected.Set(0)
	}
}
