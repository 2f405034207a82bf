package store

import (
	"context"
	"errors"
	"testing"
	"time"

	kit "videobot/internal/platform/testkit"

	"github.com/rs/zerolog"
)

const unreachable = "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1"

func TestOpenPG_StopsAfterRetries(t *testing.T) {
	kit.Serial(t)

	var pauses []time.Duration
	kit.Swap(t, &wait, func(_ context.Context, d time.Duration) { pauses = append(pauses, d) })

	cfg := Config{PG: PGConfig{URL: unreachable, MaxConns: 1, ConnectRetries: 6, PingTimeout: 200 * time.Millisecond}}
	a, err := openPG(context.Background(), cfg, zerolog.Nop())
	if err == nil || a != nil {
		t.Fatalf("openPG = %v, %v; want failure", a, err)
	}
	want := []time.Duration{
		150 * time.Millisecond, 300 * time.Millisecond, 600 * time.Millisecond,
		1200 * time.Millisecond, 2 * time.Second, 2 * time.Second,
	}
	if len(pauses) != len(want) {
		t.Fatalf("pauses = %v", pauses)
	}
	for i := range want {
		if pauses[i] != want[i] {
			t.Fatalf("pause %d = %v, want %v", i, pauses[i], want[i])
		}
	}
}

func TestOpenPG_CancelledParent(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &wait, func(context.Context, time.Duration) { t.Fatal("no pause after cancel") })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{PG: PGConfig{URL: unreachable, ConnectRetries: 5}}
	if _, err := openPG(ctx, cfg, zerolog.Nop()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
