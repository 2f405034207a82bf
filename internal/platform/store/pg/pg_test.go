package pg

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"videobot/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const dsn = "postgres://bot:secret@db:5432/video_analytics?sslmode=disable"

// capturePool swaps the pool constructor and hands back the config it receives
func capturePool(t *testing.T) **pgxpool.Config {
	t.Helper()
	testkit.Serial(t)
	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return &pgxpool.Pool{}, nil
	})
	return &seen
}

func TestOpen_BadURL(t *testing.T) {
	_, err := Open(context.Background(), Config{URL: "://bad"})
	if err == nil || !strings.Contains(err.Error(), "pg: parse url") {
		t.Fatalf("err = %v", err)
	}
}

func TestOpen_PoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("too many clients")
	})

	if _, err := Open(context.Background(), Config{URL: dsn}); err == nil || !strings.Contains(err.Error(), "too many clients") {
		t.Fatalf("err = %v", err)
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	captured := capturePool(t)

	p, err := Open(context.Background(), Config{
		URL:       dsn,
		MaxConns:  3,
		SlowQuery: 250 * time.Millisecond,
		AppName:   "videobot-loader",
	})
	if err != nil {
		t.Fatal(err)
	}
	seen := *captured
	if seen.MaxConns != 3 {
		t.Fatalf("MaxConns = %d", seen.MaxConns)
	}
	if got := seen.ConnConfig.RuntimeParams["application_name"]; got != "videobot-loader" {
		t.Fatalf("application_name = %q", got)
	}
	if p.SlowQuery != 250*time.Millisecond || p.Tracer != nil {
		t.Fatalf("PG = %+v", p)
	}
}

func TestOpen_Options(t *testing.T) {
	captured := capturePool(t)
	tr := NewLogTracer(zerolog.Nop())

	p, err := Open(context.Background(), Config{URL: dsn},
		WithTracer(tr),
		WithPoolConfig(func(pc *pgxpool.Config) { pc.MinConns = 1 }),
		WithPoolConfig(func(pc *pgxpool.Config) { pc.MaxConnIdleTime = time.Minute }),
	)
	if err != nil {
		t.Fatal(err)
	}
	seen := *captured
	if p.Tracer != tr {
		t.Fatal("tracer not kept")
	}
	if seen.MinConns != 1 || seen.MaxConnIdleTime != time.Minute {
		t.Fatalf("pool tweaks lost: min=%d idle=%v", seen.MinConns, seen.MaxConnIdleTime)
	}
}

func TestClose_Nil(t *testing.T) {
	var p *PG
	p.Close()
	(&PG{}).Close()
}
