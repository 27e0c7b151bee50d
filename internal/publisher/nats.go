// Package publisher announces seeded documents over NATS.
package publisher

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

const flushTimeout = 5 * time.Second

type NATSPublisher struct {
	nc          *nats.Conn
	prefix      string
	logSubjects bool
	metrics     PublisherMetrics
}

// PublisherMetrics is the subset of the collector the publisher reports to.
type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
	PublishObserve(d time.Duration)
	NATSSetConnected(connected bool)
}

// NewNATSPublisher connects to url. Subjects are rooted at prefix.
func NewNATSPublisher(url, prefix string, logSubjects bool, m PublisherMetrics) (*NATSPublisher, error) {
	connected := func(up bool) {
		if m != nil {
			m.NATSSetConnected(up)
		}
	}
	nc, err := nats.Connect(url,
		nats.Name("ipara-seeder"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			connected(false)
			log.Printf("nats disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			connected(true)
			log.Printf("nats reconnected to %s", c.ConnectedUrlRedacted())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			connected(false)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}
	connected(true)
	return &NATSPublisher{nc: nc, prefix: prefix, logSubjects: logSubjects, metrics: m}, nil
}

// Close flushes buffered announcements before closing the connection.
func (p *NATSPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.FlushTimeout(flushTimeout); err != nil {
		log.Printf("nats flush: %v", err)
	}
	p.nc.Close()
}

// DocumentMessage announces a seeded document.
type DocumentMessage struct {
	Collection string         `json:"collection"`
	ID         string         `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Fields     map[string]any `json:"fields"`
}

func (p *NATSPublisher) PublishDocument(msg DocumentMessage) error {
	subject := Subject(p.prefix, msg.Collection, msg.ID)
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", msg.Collection, msg.ID, err)
	}
	if p.logSubjects {
		log.Printf("nats publish subject=%s bytes=%d", subject, len(payload))
	}

	start := time.Now()
	err = p.nc.Publish(subject, payload)
	p.observe(time.Since(start), err)
	return err
}

func (p *NATSPublisher) observe(d time.Duration, err error) {
	if p.metrics == nil {
		return
	}
	p.metrics.PublishObserve(d)
	if err != nil {
		p.metrics.NATSPublishErrInc()
		return
	}
	p.metrics.NATSPublishedInc()
}

// Subject builds "<prefix>.<collection>.<id>" with unsafe tokens replaced.
func Subject(prefix, collection, id string) string {
	return fmt.Sprintf("%s.%s.%s", strings.Trim(prefix, "."), subjectToken(collection), subjectToken(id))
}

var tokenReplacer = strings.NewReplacer(" ", "_", "\t", "_", ".", "_", "/", "_", "*", "_", ">", "_")

// subjectToken makes s usable as a single NATS subject token.
func subjectToken(s string) string {
	s = tokenReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return "_"
	}
	return s
}
