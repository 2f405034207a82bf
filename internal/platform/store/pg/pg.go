// Package pg opens the pgx pool behind the store
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	URL      string
	MaxConns int32
	// SlowQuery flags traced statements that run at least this long; zero disables
	SlowQuery time.Duration
	// AppName is reported as application_name in pg_stat_activity
	AppName string
}

// PG is an opened pool plus the tracing settings the store adapter reads
type PG struct {
	Pool      *pgxpool.Pool
	Tracer    QueryTracer
	SlowQuery time.Duration
}

// Option adjusts Open
type Option func(*opener)

type opener struct {
	tracer QueryTracer
	tune   []func(*pgxpool.Config)
}

// WithTracer reports every statement run through the store adapter to t
func WithTracer(t QueryTracer) Option {
	return func(o *opener) { o.tracer = t }
}

// WithPoolConfig edits the parsed pool config before the pool is built
func WithPoolConfig(fn func(*pgxpool.Config)) Option {
	return func(o *opener) { o.tune = append(o.tune, fn) }
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and builds the pool. No connection is made until the
// first acquire, so callers ping before use.
func Open(ctx context.Context, cfg Config, opts ...Option) (*PG, error) {
	var o opener
	for _, opt := range opts {
		opt(&o)
	}

	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		params := pc.ConnConfig.RuntimeParams
		if params == nil {
			params = make(map[string]string, 1)
			pc.ConnConfig.RuntimeParams = params
		}
		params["application_name"] = cfg.AppName
	}
	for _, fn := range o.tune {
		fn(pc)
	}

	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return &PG{Pool: pool, Tracer: o.tracer, SlowQuery: cfg.SlowQuery}, nil
}

// Close is safe on nil
func (p *PG) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}
