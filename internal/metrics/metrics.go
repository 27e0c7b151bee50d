package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

type Collector struct {
	reg *prometheus.Registry

	DocumentsWritten *prometheus.CounterVec // collection label
	DocumentsDeleted *prometheus.CounterVec // collection label
	StoreErrors      *prometheus.CounterVec // op label: delete|upsert

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge

	UpsertDuration  prometheus.Histogram
	PublishDuration prometheus.Histogram

	RunDuration prometheus.Gauge // seconds
	LastSuccess prometheus.Gauge // unix seconds
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		DocumentsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seeder_documents_written_total",
			Help: "Documents upserted, by collection.",
		}, []string{"collection"}),
		DocumentsDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seeder_documents_deleted_total",
			Help: "Documents removed before seeding, by collection.",
		}, []string{"collection"}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seeder_store_errors_total",
			Help: "Rejected store calls.",
		}, []string{"op"}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seeder_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seeder_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "seeder_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		UpsertDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "seeder_upsert_duration_seconds",
			Help:    "Duration of a single document upsert.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "seeder_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "seeder_run_duration_seconds",
			Help: "Wall time of the last seed run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "seeder_last_success_timestamp_seconds",
			Help: "Unix time of the last successful seed run.",
		}),
	}

	reg.MustRegister(
		c.DocumentsWritten, c.DocumentsDeleted, c.StoreErrors,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
		c.UpsertDuration, c.PublishDuration,
		c.RunDuration, c.LastSuccess,
	)
	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

func (c *Collector) Gatherer() prometheus.Gatherer { return c.reg }

// Push sends the registry to a Pushgateway under the given job name.
// Batch jobs exit before any scrape could reach them.
func (c *Collector) Push(ctx context.Context, url, job string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return push.New(url, job).Gatherer(c.reg).PushContext(ctx)
}
