package store

import (
	"context"
	"maps"
	"reflect"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Store used for dry runs and tests.
type Memory struct {
	mu   sync.Mutex
	cols map[string]map[string]Document
	now  func() time.Time
}

func NewMemory() *Memory {
	return &Memory{cols: make(map[string]map[string]Document), now: time.Now}
}

func (m *Memory) DeleteWhere(ctx context.Context, collection string, filters ...Filter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, &OpError{Op: "delete", Collection: collection, Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, doc := range m.cols[collection] {
		if matches(doc, filters) {
			delete(m.cols[collection], id)
			n++
		}
	}
	return n, nil
}

func (m *Memory) Upsert(ctx context.Context, collection, id string, doc Document) error {
	if err := ctx.Err(); err != nil {
		return &OpError{Op: "upsert", Collection: collection, ID: id, Err: err}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.cols[collection]
	if !ok {
		col = make(map[string]Document)
		m.cols[collection] = col
	}
	cur, ok := col[id]
	if !ok {
		cur = make(Document, len(doc))
		col[id] = cur
	}
	maps.Copy(cur, Resolve(doc, m.now().UTC()))
	return nil
}

func (m *Memory) Close() error { return nil }

// Get returns a copy of the stored document.
func (m *Memory) Get(collection, id string) (Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.cols[collection][id]
	if !ok {
		return nil, false
	}
	return maps.Clone(doc), true
}

// IDs lists document ids in collection in sorted order.
func (m *Memory) IDs(collection string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.cols[collection]))
	for id := range m.cols[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func matches(doc Document, filters []Filter) bool {
	for _, f := range filters {
		v, ok := doc[f.Field]
		if !ok || !reflect.DeepEqual(v, f.Value) {
			return false
		}
	}
	return true
}
