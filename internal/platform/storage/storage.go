// Package storage opens the configured document store and, when enabled, the
// listing cache, and reports their health.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/docstore"
	"github.com/p-n-ai/taleem/internal/platform/cache"
	"github.com/p-n-ai/taleem/internal/platform/config"
	"github.com/p-n-ai/taleem/internal/platform/database"
)

// CheckTimeout bounds a single readiness probe.
const CheckTimeout = 2 * time.Second

// Storage bundles the open backends.
type Storage struct {
	Store docstore.Store
	DB    *database.DB // nil unless the postgres driver is used
	Cache *cache.Cache // nil unless the cache is enabled
}

// Open connects to the backends selected by cfg. A cache that cannot be
// reached is logged and left disabled.
func Open(ctx context.Context, cfg *config.Config) (*Storage, error) {
	s := &Storage{}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		s.Store = docstore.NewMemoryStore()
	case config.DriverFile:
		fs, err := docstore.NewFileStore(cfg.Store.ContentPath)
		if err != nil {
			return nil, fmt.Errorf("opening file store: %w", err)
		}
		s.Store = fs
	case config.DriverPostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		if err := db.EnsureSchema(ctx, docstore.Schema); err != nil {
			db.Close()
			return nil, err
		}
		ps, err := docstore.NewPostgresStore(db.Pool)
		if err != nil {
			db.Close()
			return nil, err
		}
		s.DB = db
		s.Store = ps
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Cache.Enabled {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Warn("listing cache unavailable, continuing without it", "error", err)
		} else {
			s.Cache = c
		}
	}

	slog.Info("storage opened", "driver", cfg.Store.Driver, "cache", s.Cache != nil)
	return s, nil
}

// Repository returns a concept repository over the store, cached when a cache is open.
func (s *Storage) Repository(cfg *config.Config) *concept.Repository {
	opts := []concept.Option{concept.WithCollection(cfg.Store.Collection)}
	if s.Cache != nil {
		opts = append(opts, concept.WithListingCache(s.Cache, cfg.Cache.ListingTTLDuration()))
	}
	return concept.NewRepository(s.Store, opts...)
}

// Check is a named readiness probe.
type Check struct {
	Name  string
	Check func(ctx context.Context) error
}

// Checks returns a readiness probe for every network backend in use.
func (s *Storage) Checks() []Check {
	var checks []Check
	if s.DB != nil {
		checks = append(checks, Check{Name: "database", Check: s.DB.HealthCheck})
	}
	if s.Cache != nil {
		checks = append(checks, Check{Name: "cache", Check: s.Cache.HealthCheck})
	}
	return checks
}

// Close releases every open backend.
func (s *Storage) Close() {
	if s.Cache != nil {
		if err := s.Cache.Close(); err != nil {
			slog.Warn("closing cache", "error", err)
		}
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
