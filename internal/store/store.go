// Package store caches raw catalog snapshots for offline browsing.
// Only raw listings are persisted; every derived value stays ephemeral
// and is recomputed by the engine on each use.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/exitbase/listing-engine/internal/config"
	"github.com/exitbase/listing-engine/internal/model"
)

// Snapshot is one stored copy of a catalog source.
type Snapshot struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	Listings  []model.Listing `json:"listings"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Store defines the snapshot cache interface.
type Store interface {
	SaveSnapshot(ctx context.Context, source string, listings []model.Listing) (*Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	LatestSnapshot(ctx context.Context, source string) (*Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}

// New creates a Store for the configured driver.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.Path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
