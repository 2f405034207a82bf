package module

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"videobot/internal/core/querycompiler"
	"videobot/internal/modkit"
	"videobot/internal/modkit/module"
	"videobot/internal/modkit/repokit"
	"videobot/internal/platform/config"
	phttp "videobot/internal/platform/net/http"
	"videobot/internal/services/answers/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type oneRow struct{ v any }

func (r oneRow) Scan(dest ...any) error { *(dest[0].(*any)) = r.v; return nil }

type constDB struct{ v any }

func (d constDB) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, errors.New("not used")
}
func (d constDB) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, errors.New("not used")
}
func (d constDB) QueryRow(context.Context, string, ...any) repokit.Row { return oneRow(d) }
func (d constDB) Tx(_ context.Context, fn func(repokit.Queryer) error) error {
	return fn(d)
}
func (d constDB) ReadTx(_ context.Context, _ time.Duration, fn func(repokit.Queryer) error) error {
	return fn(d)
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_QUERY_PUBLISHED_AT_COL", "published_at")
	t.Setenv("CORE_ANSWERS_QUERY_TIMEOUT", "750ms")
	t.Setenv("CORE_ANSWERS_BREAKER_FAILURES", "9")
	t.Setenv("CORE_ANSWERS_BREAKER_OPEN_FOR", "1m")

	o := FromConfig(config.New())
	assert.Equal(t, "published_at", o.Compiler.PublishedAtColumn)
	assert.Equal(t, querycompiler.DefaultViewThreshold, o.Compiler.DefaultViewThreshold)
	assert.Equal(t, 750*time.Millisecond, o.Service.QueryTimeout)
	assert.Equal(t, uint32(9), o.Service.Breaker.Failures)
	assert.Equal(t, time.Minute, o.Service.Breaker.OpenFor)
	assert.Equal(t, DefaultMaxInFlight, o.MaxInFlight)
}

// gateDB blocks every query until release is closed
type gateDB struct {
	constDB
	entered chan struct{}
	release chan struct{}
}

func (d gateDB) QueryRow(ctx context.Context, sql string, args ...any) repokit.Row {
	d.entered <- struct{}{}
	<-d.release
	return d.constDB.QueryRow(ctx, sql, args...)
}

func (d gateDB) ReadTx(_ context.Context, _ time.Duration, fn func(repokit.Queryer) error) error {
	return fn(d)
}

func TestModule_ThrottlesConcurrentQuestions(t *testing.T) {
	db := gateDB{constDB: constDB{v: int64(1)}, entered: make(chan struct{}, 1), release: make(chan struct{})}
	m, err := NewWithOptions(modkit.Deps{PG: db}, Options{MaxInFlight: 1})
	require.NoError(t, err)

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	ask := func() *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/answers/ask", strings.NewReader(`{"text":"Сколько всего видео?"}`)))
		return rr
	}

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- ask() }()
	<-db.entered

	assert.Equal(t, http.StatusTooManyRequests, ask().Code)

	close(db.release)
	assert.Equal(t, http.StatusOK, (<-first).Code)
}

func TestNew_RejectsBadColumn(t *testing.T) {
	t.Setenv("CORE_QUERY_PUBLISHED_AT_COL", "x; drop table videos")
	_, err := New(modkit.Deps{Cfg: config.New(), PG: constDB{}})
	assert.Error(t, err)
}

func TestModule_PortsAndRoutes(t *testing.T) {
	m, err := NewWithOptions(modkit.Deps{PG: constDB{v: int64(12)}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "answers", m.Name())

	asker := module.MustPortsOf[domain.AskerPort](m)
	a, err := asker.Ask(context.Background(), "Сколько всего видео?")
	require.NoError(t, err)
	assert.Equal(t, "12", a.Text)

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/answers/ask", strings.NewReader(`{"text":"Сколько всего видео?"}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"answer":"12"`)
}
