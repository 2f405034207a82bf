// Package config handles application configuration via environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"videobot/internal/platform/logger"
)

// Conf is a namespaced view over environment variables (e.g., "CORE_BOT_", "SERVICE_PGSQL_")
// Use New() for global access, or Prefix("CORE_") for module scopes.
type Conf struct{ prefix string }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("CORE_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key composes the fully-qualified env var name
func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(key string) string { return strings.TrimSpace(os.Getenv(c.key(key))) }

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// MustInt panics if the given key is missing, empty, or not an int
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayList splits a comma separated value, dropping blanks; nil when unset
func (c Conf) MayList(key string) []string {
	var out []string
	for _, part := range strings.Split(c.lookup(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MayFirst returns the first non-empty value among keys, else def
// keys are tried in order, each under this Conf's prefix
func (c Conf) MayFirst(def string, keys ...string) string {
	for _, k := range keys {
		if v := c.lookup(k); v != "" {
			return v
		}
	}
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayInt64 is MayInt for 64 bit values like view thresholds
func (c Conf) MayInt64(key string, def int64) int64 {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int64("default", def).Msg("invalid int64; using default")
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayPort returns a net/http addr like ":4000"; accepts "4000" or ":4000"
// panics on a present but out of range port so a typo never binds a random one
func (c Conf) MayPort(key, def string) string {
	s := strings.TrimPrefix(c.lookup(key), ":")
	if s == "" {
		return def
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + s
}
