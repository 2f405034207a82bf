package store

import (
	"time"

	"videobot/internal/platform/config"
)

// defaults for the postgres connection guard
const (
	DefaultConnectRetries = 30
	DefaultPingTimeout    = 3 * time.Second
	DefaultMaxConns       = 10
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQuery   time.Duration

	// connect guard
	ConnectRetries int           // default 30; the database may still be starting next to us
	PingTimeout    time.Duration // default 3s
}

// ConfigFromEnv reads SERVICE_PGSQL_* knobs and resolves the DSN through the
// fallback chain in config.PostgresDSN
func ConfigFromEnv(appName string, root config.Conf) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        true,
			URL:            root.PostgresDSN(),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", DefaultMaxConns)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQuery:      time.Duration(pg.MayInt("SLOW_MS", 500)) * time.Millisecond,
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", DefaultConnectRetries),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", DefaultPingTimeout),
		},
	}
}
