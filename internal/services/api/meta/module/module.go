// Package module mounts the meta endpoints under /meta
package module

import (
	"time"

	modkit "videobot/internal/modkit"
	"videobot/internal/modkit/httpkit"
	modreg "videobot/internal/modkit/module"

	metahttp "videobot/internal/services/api/meta/http"
)

// ServiceName is reported by /meta/health and /meta/version
const ServiceName = "videobot-api"

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{deps: deps, built: b, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		d := metahttp.Deps{ServiceName: ServiceName, StartedAt: m.startedAt, Modules: modreg.Names}
		if p, ok := m.deps.PG.(metahttp.Pinger); ok {
			d.PG = p
		}
		metahttp.Register(rr, d)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
