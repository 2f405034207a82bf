package module

import (
	"videobot/internal/core/querycompiler"
	"videobot/internal/platform/breaker"
	"videobot/internal/platform/config"
	"videobot/internal/services/answers/service"
)

// DefaultMaxInFlight matches the default pool size
const DefaultMaxInFlight = 10

// Options holds configuration settings for the answers module
type Options struct {
	Compiler querycompiler.Config
	Service  service.Config
	// MaxInFlight caps concurrent HTTP questions; zero leaves them unbounded
	MaxInFlight int
}

// FromConfig reads CORE_QUERY_* and CORE_ANSWERS_* settings
func FromConfig(cfg config.Conf) Options {
	q := cfg.Prefix("CORE_QUERY_")
	a := cfg.Prefix("CORE_ANSWERS_")
	return Options{
		MaxInFlight: a.MayInt("MAX_IN_FLIGHT", DefaultMaxInFlight),
		Compiler: querycompiler.Config{
			PublishedAtColumn:    q.MayString("PUBLISHED_AT_COL", querycompiler.DefaultPublishedAtColumn),
			DefaultViewThreshold: q.MayInt64("DEFAULT_VIEW_THRESHOLD", querycompiler.DefaultViewThreshold),
		},
		Service: service.Config{
			QueryTimeout: a.MayDuration("QUERY_TIMEOUT", service.DefaultQueryTimeout),
			Breaker: breaker.Config{
				Name:     "answers-pg",
				Failures: uint32(a.MayInt("BREAKER_FAILURES", int(breaker.DefaultFailures))),
				OpenFor:  a.MayDuration("BREAKER_OPEN_FOR", breaker.DefaultOpenFor),
			},
		},
	}
}

// keeps the zero value meaningful for tests that skip FromConfig
func (o Options) withDefaults() Options {
	if o.Compiler == (querycompiler.Config{}) {
		o.Compiler = querycompiler.DefaultConfig()
	}
	if o.Service.QueryTimeout <= 0 {
		o.Service.QueryTimeout = service.DefaultQueryTimeout
	}
	return o
}
