// Package http serves the meta endpoints: liveness, readiness, build info
package http

import (
	"context"
	"net/http"
	"time"

	"videobot/internal/core/version"
	"videobot/internal/modkit/httpkit"
)

const readyTimeout = 2 * time.Second

// Pinger is the database check behind /ready
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// PG nil reports the database check as skipped
	PG Pinger
	// Modules lists the mounted API modules
	Modules func() []string
	Now     func() time.Time
}

type handlers struct{ Deps }

// Register mounts /health, /ready, /version and /service on r
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Modules == nil {
		d.Modules = func() []string { return nil }
	}
	h := handlers{d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"videobot-api"`
	Started string `json:"started" example:"2025-11-28T10:00:00Z"`
	Now     string `json:"now"     example:"2025-11-28T10:05:00Z"`
}

// ReadyCheck is one dependency; Status is ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse Status is ok, degraded when a check was skipped, or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-11-28T10:05:00Z"`
}

type ServiceResponse struct {
	Name    string   `json:"name"    example:"videobot-api"`
	Started string   `json:"started" example:"2025-11-28T10:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules" example:"answers,meta"`
}

func (h handlers) stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.ServiceName, Started: h.stamp(h.StartedAt), Now: h.stamp(h.Now())}, nil
}

// @Summary Readiness, pings the database
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	pg := ReadyCheck{Name: "pg", Status: "skipped"}
	if h.PG != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		err := h.PG.Ping(ctx)
		cancel()
		pg.Status = "ok"
		if err != nil {
			pg.Status, pg.Error = "fail", err.Error()
		}
	}

	out := ReadyResponse{Status: "ok", Checks: []ReadyCheck{pg}, Now: h.stamp(h.Now())}
	switch pg.Status {
	case "skipped":
		out.Status = "degraded"
	case "fail":
		out.Status = "fail"
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) {
	return version.Info(h.ServiceName), nil
}

// @Summary Uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: h.stamp(h.StartedAt),
		Uptime:  int64(h.Now().Sub(h.StartedAt) / time.Second),
		Modules: h.Modules(),
	}, nil
}
