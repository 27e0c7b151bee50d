package app

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipara-seeder/internal/catalog"
	"ipara-seeder/internal/config"
	"ipara-seeder/internal/metrics"
	"ipara-seeder/internal/seed"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StoreDriver:       "memory",
		CommutersPerRoute: 2,
		DriversPerRoute:   2,
		NATSSubject:       "ipara.seed",
	}
}

func TestRun_Memory(t *testing.T) {
	var built int
	err := Run(context.Background(), memoryConfig(), "seed-drivers", func(cfg *config.Config, cat *catalog.Catalog, rng *rand.Rand) (seed.Job, error) {
		built++
		return seed.DriversJob(rng, cat.DriverRoutes, cfg.DriversPerRoute)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, built)
}

func TestRun_BuildError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(context.Background(), memoryConfig(), "seed-routes", func(*config.Config, *catalog.Catalog, *rand.Rand) (seed.Job, error) {
		return seed.Job{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "build job")
}

func TestRun_UnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.StoreDriver = "mongo"
	err := Run(context.Background(), cfg, "seed-routes", func(_ *config.Config, cat *catalog.Catalog, _ *rand.Rand) (seed.Job, error) {
		return seed.RoutesJob(cat.Routes), nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `init mongo store`)
}

func TestNewRand(t *testing.T) {
	s := uint64(42)
	a, b := NewRand(&s), NewRand(&s)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotNil(t, NewRand(nil))
}

func TestPublisherMetricsAdapter(t *testing.T) {
	assert.Nil(t, wrapPublisherMetrics(nil))

	c := metrics.NewCollector()
	pm := wrapPublisherMetrics(c)
	pm.NATSPublishedInc()
	pm.NATSPublishErrInc()
	pm.NATSSetConnected(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.NATSPublished))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.NATSPublishErrs))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.NATSConnected))
	pm.NATSSetConnected(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.NATSConnected))
}
