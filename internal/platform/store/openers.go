package store

import (
	"context"
	"fmt"
	"time"

	"videobot/internal/platform/logger"
	"videobot/internal/platform/store/pg"
)

// first wait between pings; doubles up to maxPingWait
const (
	firstPingWait = 150 * time.Millisecond
	maxPingWait   = 2 * time.Second
)

// wait pauses between ping attempts; tests swap it out
var wait = func(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// openPG builds the pool and pings it until postgres answers or the retries run
// out; compose starts the bot next to a database that may still be booting
func openPG(ctx context.Context, cfg Config, log logger.Logger) (*pgAdapter, error) {
	var opts []pg.Option
	if cfg.PG.LogSQL {
		opts = append(opts, pg.WithTracer(pg.NewLogTracer(log)))
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:       cfg.PG.URL,
		MaxConns:  cfg.PG.MaxConns,
		SlowQuery: cfg.PG.SlowQuery,
		AppName:   cfg.AppName,
	}, opts...)
	if err != nil {
		return nil, err
	}

	if err := waitReady(ctx, p, cfg.PG, log); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

func waitReady(ctx context.Context, p *pg.PG, cfg PGConfig, log logger.Logger) error {
	attempts := cfg.ConnectRetries
	if attempts <= 0 {
		attempts = DefaultConnectRetries
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}

	var err error
	pause := firstPingWait
	for n := 1; n <= attempts; n++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = p.Pool.Ping(pctx)
		cancel()
		switch {
		case err == nil:
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		}

		log.Warn().Err(err).Int("attempt", n).Int("attempts", attempts).Msg("postgres not ready")
		wait(ctx, pause)
		pause = min(pause*2, maxPingWait)
	}
	return fmt.Errorf("postgres: no answer after %d pings: %w", attempts, err)
}
