package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const createDocuments = `
CREATE TABLE IF NOT EXISTS documents (
  collection text        NOT NULL,
  id         text        NOT NULL,
  data       jsonb       NOT NULL DEFAULT '{}'::jsonb,
  updated_at timestamptz NOT NULL DEFAULT now(),
  PRIMARY KEY (collection, id)
)`

// Fields named in $4 receive the server's now() instead of a client value.
const upsertDocument = `
INSERT INTO documents (collection, id, data, updated_at)
VALUES ($1, $2,
        $3::jsonb || (SELECT COALESCE(jsonb_object_agg(k, to_jsonb(now())), '{}'::jsonb) FROM unnest($4::text[]) AS k),
        now())
ON CONFLICT (collection, id) DO UPDATE
SET data = documents.data || EXCLUDED.data,
    updated_at = EXCLUDED.updated_at`

const deleteDocuments = `DELETE FROM documents WHERE collection = $1 AND data @> $2::jsonb`

// Postgres keeps documents as jsonb rows in a single table.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects, pings and ensures the documents table exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := ping(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, createDocuments); err != nil {
		db.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	return &Postgres{db: db}, nil
}

func ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

func (p *Postgres) DeleteWhere(ctx context.Context, collection string, filters ...Filter) (int, error) {
	match, err := filterJSON(filters)
	if err != nil {
		return 0, &OpError{Op: "delete", Collection: collection, Err: err}
	}
	res, err := p.db.ExecContext(ctx, deleteDocuments, collection, match)
	if err != nil {
		return 0, &OpError{Op: "delete", Collection: collection, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &OpError{Op: "delete", Collection: collection, Err: err}
	}
	return int(n), nil
}

func (p *Postgres) Upsert(ctx context.Context, collection, id string, doc Document) error {
	data, stamped, err := encodeDocument(doc)
	if err != nil {
		return &OpError{Op: "upsert", Collection: collection, ID: id, Err: err}
	}
	if _, err := p.db.ExecContext(ctx, upsertDocument, collection, id, data, stamped); err != nil {
		return &OpError{Op: "upsert", Collection: collection, ID: id, Err: err}
	}
	return nil
}

func (p *Postgres) Close() error { return p.db.Close() }

// encodeDocument splits out server-timestamp fields and JSON-encodes the rest.
func encodeDocument(doc Document) (string, []string, error) {
	plain := make(Document, len(doc))
	stamped := []string{}
	for k, v := range doc {
		if _, ok := v.(serverTimestamp); ok {
			stamped = append(stamped, k)
			continue
		}
		plain[k] = v
	}
	b, err := json.Marshal(plain)
	if err != nil {
		return "", nil, err
	}
	return string(b), stamped, nil
}

func filterJSON(filters []Filter) (string, error) {
	m := make(map[string]any, len(filters))
	for _, f := range filters {
		m[f.Field] = f.Value
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
