package store

import (
	"context"
	"fmt"
)

const (
	DriverFirestore = "firestore"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
)

type Options struct {
	Driver          string
	ProjectID       string
	CredentialsFile string
	DatabaseURL     string
}

// Open initializes the store selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverFirestore:
		fs, err := OpenFirestore(ctx, opts.ProjectID, opts.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case DriverPostgres:
		pg, err := OpenPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
