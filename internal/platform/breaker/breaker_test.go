package breaker

import (
	"context"
	"errors"
	"testing"
	"time"

	perr "videobot/internal/platform/errors"

	"github.com/rs/zerolog"
)

func fail(err error) func() (int, error) { return func() (int, error) { return 0, err } }

func TestBreaker_OpensOnInfrastructureFailures(t *testing.T) {
	b := New[int](Config{Name: "pg", Failures: 2, OpenFor: time.Hour}, zerolog.Nop())

	down := perr.Wrap(errors.New("dial tcp"), perr.ErrorCodeUnavailable, "db down")
	for i := 0; i < 2; i++ {
		if _, err := b.Execute(fail(down)); !errors.Is(err, down) {
			t.Fatalf("call %d: got %v, want the original error", i, err)
		}
	}
	if b.State() != "open" {
		t.Fatalf("state = %s, want open", b.State())
	}

	_, err := b.Execute(func() (int, error) { return 1, nil })
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("open breaker: got %v, want unavailable", err)
	}
}

func TestBreaker_IgnoresCallerErrors(t *testing.T) {
	b := New[int](Config{Failures: 1, OpenFor: time.Hour}, zerolog.Nop())

	for _, err := range []error{
		perr.InvalidArgf("bad"),
		perr.Validationf("blank"),
		context.Canceled,
	} {
		_, _ = b.Execute(fail(err))
	}
	if b.State() != "closed" {
		t.Fatalf("state = %s, want closed", b.State())
	}

	v, err := b.Execute(func() (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Fatalf("got %d %v", v, err)
	}
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	b := New[int](Config{Failures: 1, OpenFor: 20 * time.Millisecond}, zerolog.Nop())
	_, _ = b.Execute(fail(perr.DBf("boom")))
	if b.State() != "open" {
		t.Fatalf("state = %s, want open", b.State())
	}

	time.Sleep(40 * time.Millisecond)
	if v, err := b.Execute(func() (int, error) { return 3, nil }); err != nil || v != 3 {
		t.Fatalf("probe: %d %v", v, err)
	}
	if b.State() != "closed" {
		t.Fatalf("state = %s, want closed", b.State())
	}
}

func TestConfig_Defaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.Failures != DefaultFailures || c.OpenFor != DefaultOpenFor || c.HalfOpenMax != 1 || c.Name == "" {
		t.Fatalf("defaults = %+v", c)
	}
}
