package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"ipara-seeder/internal/metrics"
	"ipara-seeder/internal/publisher"
	"ipara-seeder/internal/store"
)

// Publisher announces written documents. Failures are logged, never fatal.
type Publisher interface {
	PublishDocument(msg publisher.DocumentMessage) error
}

type Summary struct {
	Deleted int
	Written int
}

// Runner executes a job against a store one call at a time.
type Runner struct {
	store   store.Store
	pub     Publisher
	metrics *metrics.Collector
	now     func() time.Time
}

// NewRunner wires the collaborators; pub and m may be nil.
func NewRunner(s store.Store, pub Publisher, m *metrics.Collector) *Runner {
	return &Runner{store: s, pub: pub, metrics: m, now: time.Now}
}

// Run purges then writes every record in order. The first store failure
// stops the run; documents written before it are left in place.
func (r *Runner) Run(ctx context.Context, job Job) (Summary, error) {
	var sum Summary
	start := r.now()

	for _, p := range job.Purges {
		n, err := r.store.DeleteWhere(ctx, p.Collection, p.Filters...)
		if err != nil {
			r.storeErr("delete")
			return sum, fmt.Errorf("purge %s: %w", p.Collection, err)
		}
		log.Printf("removed %d existing documents from %s%s", n, p.Collection, describeFilters(p.Filters))
		sum.Deleted += n
		if r.metrics != nil {
			r.metrics.DocumentsDeleted.WithLabelValues(p.Collection).Add(float64(n))
		}
	}

	for _, b := range job.Batches {
		log.Printf("creating %s", b.Label)
		for _, rec := range b.Records {
			t0 := time.Now()
			if err := r.store.Upsert(ctx, rec.Collection, rec.ID, rec.Doc); err != nil {
				r.storeErr("upsert")
				return sum, fmt.Errorf("write %s/%s: %w", rec.Collection, rec.ID, err)
			}
			sum.Written++
			if r.metrics != nil {
				r.metrics.UpsertDuration.Observe(time.Since(t0).Seconds())
				r.metrics.DocumentsWritten.WithLabelValues(rec.Collection).Inc()
			}
			r.announce(rec)
		}
	}

	if r.metrics != nil {
		r.metrics.RunDuration.Set(r.now().Sub(start).Seconds())
		r.metrics.LastSuccess.Set(float64(r.now().Unix()))
	}
	log.Printf("%s: wrote %d documents (removed %d)", job.Name, sum.Written, sum.Deleted)
	return sum, nil
}

func (r *Runner) announce(rec Record) {
	if r.pub == nil {
		return
	}
	now := r.now().UTC()
	msg := publisher.DocumentMessage{
		Collection: rec.Collection,
		ID:         rec.ID,
		Timestamp:  now,
		Fields:     store.Resolve(rec.Doc, now),
	}
	if err := r.pub.PublishDocument(msg); err != nil {
		log.Printf("publish error for %s/%s: %v", rec.Collection, rec.ID, err)
	}
}

func (r *Runner) storeErr(op string) {
	if r.metrics != nil {
		r.metrics.StoreErrors.WithLabelValues(op).Inc()
	}
}

func describeFilters(fs []store.Filter) string {
	if len(fs) == 0 {
		return ""
	}
	s := " where"
	for i, f := range fs {
		if i > 0 {
			s += " and"
		}
		s += fmt.Sprintf(" %s=%v", f.Field, f.Value)
	}
	return s
}
