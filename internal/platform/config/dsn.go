package config

import (
	"net"
	"net/url"
)

// Postgres connection defaults used when no DSN variable is set
const (
	DefaultPGHost     = "db"
	DefaultPGPort     = "5432"
	DefaultPGUser     = "postgres"
	DefaultPGPassword = "postgres"
	DefaultPGDatabase = "video_analytics"
)

// PostgresDSN resolves the database URL in precedence order:
// SERVICE_PGSQL_DBURL, DATABASE_DSN, POSTGRES_DSN, DATABASE_URL, then a URL
// assembled from POSTGRES_HOST|DB_HOST, POSTGRES_PORT|DB_PORT, POSTGRES_USER,
// POSTGRES_PASSWORD and POSTGRES_DB with defaults
func (c Conf) PostgresDSN() string {
	if dsn := c.MayFirst("", "SERVICE_PGSQL_DBURL", "DATABASE_DSN", "POSTGRES_DSN", "DATABASE_URL"); dsn != "" {
		return dsn
	}

	host := c.MayFirst(DefaultPGHost, "POSTGRES_HOST", "DB_HOST")
	port := c.MayFirst(DefaultPGPort, "POSTGRES_PORT", "DB_PORT")
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.MayString("POSTGRES_USER", DefaultPGUser), c.MayString("POSTGRES_PASSWORD", DefaultPGPassword)),
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + c.MayString("POSTGRES_DB", DefaultPGDatabase),
	}
	return u.String()
}
