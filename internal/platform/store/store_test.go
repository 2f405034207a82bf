package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"videobot/internal/platform/config"

	"github.com/rs/zerolog"
)

// TestOpen_PGEnabled_BadURL_BubblesError covers the PG error path
func TestOpen_PGEnabled_BadURL_BubblesError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := Config{
		PG: PGConfig{
			Enabled:  true,
			URL:      "://bad", // parse error inside pg.Open
			MaxConns: 1,
		},
	}

	s, err := Open(ctx, cfg)
	if err == nil {
		t.Fatalf("expected Open error for bad PG URL, got store=%#v", s)
	}
	if s != nil {
		t.Fatalf("expected nil store on error, got %#v", s)
	}
}

// TestOpen_Disabled_LeavesPGNil keeps the loader's compile subcommand database free
func TestOpen_Disabled_LeavesPGNil(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if s.PG != nil {
		t.Fatalf("unexpected PG seam %T", s.PG)
	}
	if e := s.Close(context.Background()); e != nil {
		t.Fatalf("Close on empty store returned error: %v", e)
	}
}

func TestOpen_Options(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s, err := Open(context.Background(), Config{}, WithLogger(zerolog.New(&buf)))
	if err != nil {
		t.Fatal(err)
	}
	s.Log.Info().Msg("store ready")
	if !strings.Contains(buf.String(), "store ready") {
		t.Fatalf("logger not applied: %q", buf.String())
	}

	bad := errors.New("bad option")
	if _, err := Open(context.Background(), Config{}, func(*Store) error { return bad }); !errors.Is(err, bad) {
		t.Fatalf("err = %v", err)
	}
}

func TestClose_NilStore(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("nil store close: %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	for _, k := range []string{"DATABASE_DSN", "POSTGRES_DSN", "DATABASE_URL"} {
		t.Setenv(k, "")
	}
	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://u:p@h:5432/db")
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "4")
	t.Setenv("SERVICE_PGSQL_LOG_SQL", "true")
	t.Setenv("SERVICE_PGSQL_CONNECT_RETRIES", "")
	t.Setenv("SERVICE_PGSQL_PING_TIMEOUT", "1s")
	t.Setenv("SERVICE_PGSQL_SLOW_MS", "")

	cfg := ConfigFromEnv("videobot-test", config.New())
	if !cfg.PG.Enabled || cfg.PG.URL != "postgres://u:p@h:5432/db" {
		t.Fatalf("unexpected pg config: %+v", cfg.PG)
	}
	if cfg.PG.MaxConns != 4 || !cfg.PG.LogSQL || cfg.PG.SlowQuery != 500*time.Millisecond {
		t.Fatalf("knobs not read: %+v", cfg.PG)
	}
	if cfg.PG.ConnectRetries != DefaultConnectRetries || cfg.PG.PingTimeout != time.Second {
		t.Fatalf("guard knobs mismatch: %+v", cfg.PG)
	}
	if cfg.AppName != "videobot-test" {
		t.Fatalf("app name = %q", cfg.AppName)
	}
}
