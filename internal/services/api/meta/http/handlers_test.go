package http

import (
	stdctx "context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"videobot/internal/modkit/httpkit"
	phttp "videobot/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(stdctx.Context) error

func (f pingFunc) Ping(ctx stdctx.Context) error { return f(ctx) }

var (
	started = time.Date(2025, time.November, 28, 10, 0, 0, 0, time.UTC)
	now     = started.Add(5 * time.Minute)
)

func mount(pg Pinger) httpkit.Router {
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, Deps{
		ServiceName: "videobot-api",
		StartedAt:   started,
		PG:          pg,
		Modules:     func() []string { return []string{"answers", "meta"} },
		Now:         func() time.Time { return now },
	})
	return r
}

func get[T any](t *testing.T, r httpkit.Router, path string) (int, T) {
	t.Helper()
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr.Code, env.Data
}

func TestHealth(t *testing.T) {
	code, body := get[HealthResponse](t, mount(nil), "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, body.OK)
	assert.Equal(t, "videobot-api", body.Service)
	assert.Equal(t, "2025-11-28T10:05:00Z", body.Now)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		pg     Pinger
		code   int
		status string
		check  string
	}{
		{"no database", nil, http.StatusOK, "degraded", "skipped"},
		{"ping ok", pingFunc(func(stdctx.Context) error { return nil }), http.StatusOK, "ok", "ok"},
		{"ping fails", pingFunc(func(stdctx.Context) error { return errors.New("refused") }), http.StatusServiceUnavailable, "fail", "fail"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, body := get[ReadyResponse](t, mount(tc.pg), "/ready")
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.status, body.Status)
			require.Len(t, body.Checks, 1)
			assert.Equal(t, "pg", body.Checks[0].Name)
			assert.Equal(t, tc.check, body.Checks[0].Status)
		})
	}
}

func TestReady_PingHasDeadline(t *testing.T) {
	var hadDeadline bool
	pg := pingFunc(func(ctx stdctx.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})
	get[ReadyResponse](t, mount(pg), "/ready")
	assert.True(t, hadDeadline)
}

func TestVersionAndService(t *testing.T) {
	r := mount(nil)

	_, v := get[map[string]string](t, r, "/version")
	assert.Equal(t, "videobot-api", v["service"])
	assert.NotEmpty(t, v["version"])

	_, s := get[ServiceResponse](t, r, "/service")
	assert.Equal(t, int64(300), s.Uptime)
	assert.Equal(t, "2025-11-28T10:00:00Z", s.Started)
	assert.Equal(t, []string{"answers", "meta"}, s.Modules)
}
