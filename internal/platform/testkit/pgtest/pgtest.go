//go:build integration_pg

// Package pgtest runs a throwaway Postgres container for integration suites
package pgtest

import (
	"context"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	Image    = "postgres:16-alpine"
	database = "video_analytics"
)

// Start runs a fresh server for t and returns its DSN. The server logs its
// ready line twice, once for the init pass and once for real.
func Start(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.Run(ctx, Image,
		tc.WithExposedPorts("5432/tcp"),
		tc.WithEnv(map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       database,
		}),
		tc.WithWaitStrategyAndDeadline(2*time.Minute,
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	tc.CleanupContainer(t, c)
	if err != nil {
		t.Fatalf("pgtest: start %s: %v", Image, err)
	}

	endpoint, err := c.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		t.Fatalf("pgtest: endpoint: %v", err)
	}
	return "postgres://postgres:postgres@" + endpoint + "/" + database + "?sslmode=disable"
}
