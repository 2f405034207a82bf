// Package store owns the Postgres connection shared by the answers service
// and the dataset loader
package store

import (
	"context"

	"videobot/internal/platform/logger"
)

// Store holds the opened backends. PG stays nil when postgres is disabled,
// which is how the loader's compile subcommand runs without a database.
type Store struct {
	Log logger.Logger
	PG  TxRunner
}

// Option configures a Store before its backends are opened
type Option func(*Store) error

func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// Open applies opts and connects every enabled backend
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Named("store")}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if !cfg.PG.Enabled {
		return s, nil
	}
	a, err := openPG(ctx, cfg, s.Log)
	if err != nil {
		return nil, err
	}
	s.PG = a
	return s, nil
}

// Close releases the pool; safe on a nil or empty Store
func (s *Store) Close(context.Context) error {
	if s == nil || s.PG == nil {
		return nil
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
