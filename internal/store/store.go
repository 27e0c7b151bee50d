// Package store is the document-store collaborator the seed jobs write to.
// Documents are field maps keyed by a caller-chosen id within a collection.
package store

import (
	"context"
	"fmt"
	"time"
)

type Document map[string]any

// Filter matches documents whose Field equals Value.
type Filter struct {
	Field string
	Value any
}

func Eq(field string, value any) Filter { return Filter{Field: field, Value: value} }

// GeoPoint is stored natively by stores that support geo values.
type GeoPoint struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

type serverTimestamp struct{}

// ServerTimestamp asks the store to record its own write time in the field.
var ServerTimestamp = serverTimestamp{}

type Store interface {
	// DeleteWhere removes every document in collection matching all filters
	// and reports how many were removed. No filters clears the collection.
	DeleteWhere(ctx context.Context, collection string, filters ...Filter) (int, error)
	// Upsert creates the document or merges doc's fields into it.
	Upsert(ctx context.Context, collection, id string, doc Document) error
	Close() error
}

// OpError is a rejected store call.
type OpError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *OpError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Resolve replaces sentinels with plain values for stores without native
// support for them.
func Resolve(doc Document, now time.Time) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		switch v.(type) {
		case serverTimestamp:
			out[k] = now
		default:
			out[k] = v
		}
	}
	return out
}
