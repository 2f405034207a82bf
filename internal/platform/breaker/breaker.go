// Package breaker wraps sony/gobreaker with the project's error taxonomy:
// only infrastructure failures trip it, and a rejected call surfaces as
// ErrorCodeUnavailable
package breaker

import (
	"errors"
	"time"

	perr "videobot/internal/platform/errors"
	"videobot/internal/platform/logger"

	gobreaker "github.com/sony/gobreaker/v2"
)

// Defaults mirror CORE_ANSWERS_BREAKER_*
const (
	DefaultFailures    uint32 = 5
	DefaultOpenFor            = 30 * time.Second
	DefaultHalfOpenMax uint32 = 1
)

// Config tunes one breaker
type Config struct {
	Name string
	// Failures is the consecutive infrastructure failures that open the breaker
	Failures uint32
	// OpenFor is how long the breaker rejects calls before probing again
	OpenFor time.Duration
	// HalfOpenMax is the number of probe calls let through while half open
	HalfOpenMax uint32
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "breaker"
	}
	if c.Failures == 0 {
		c.Failures = DefaultFailures
	}
	if c.OpenFor <= 0 {
		c.OpenFor = DefaultOpenFor
	}
	if c.HalfOpenMax == 0 {
		c.HalfOpenMax = DefaultHalfOpenMax
	}
	return c
}

// Breaker guards calls returning T
type Breaker[T any] struct {
	name string
	cb   *gobreaker.CircuitBreaker[T]
}

// New builds a breaker; state changes are logged at warn on log
func New[T any](cfg Config, log logger.Logger) *Breaker[T] {
	cfg = cfg.withDefaults()
	st := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenMax,
		Timeout:     cfg.OpenFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= cfg.Failures
		},
		// a bad question or a cancelled caller says nothing about database health
		IsSuccessful: func(err error) bool { return !perr.IsInfrastructure(err) },
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("breaker state changed")
		},
	}
	return &Breaker[T]{name: cfg.Name, cb: gobreaker.NewCircuitBreaker[T](st)}
}

// Execute runs fn unless the breaker is open
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	v, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return v, perr.Wrap(err, perr.ErrorCodeUnavailable, b.name+" unavailable")
	}
	return v, err
}

// State names the current state: closed, half-open or open
func (b *Breaker[T]) State() string { return b.cb.State().String() }
