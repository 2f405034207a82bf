// Package module wires the answers service into the API and the bot using modkit
package module

import (
	"videobot/internal/core/querycompiler"
	modkit "videobot/internal/modkit"
	"videobot/internal/modkit/httpkit"
	"videobot/internal/services/answers/domain"
	answershttp "videobot/internal/services/answers/http"
	"videobot/internal/services/answers/repo"
	"videobot/internal/services/answers/service"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Ports exposed by the answers module
type Ports struct {
	Asker    domain.AskerPort
	Compiler domain.CompilerPort
}

// Module implements the answers module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	svc   *service.Service
	ports Ports
}

// New constructs the answers module from deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	return NewWithOptions(deps, FromConfig(deps.Cfg), opts...)
}

// NewWithOptions constructs the module with explicit settings
func NewWithOptions(deps modkit.Deps, o Options, opts ...modkit.Option) (*Module, error) {
	o = o.withDefaults()
	base := []modkit.Option{modkit.WithName("answers"), modkit.WithPrefix("/answers")}
	if o.MaxInFlight > 0 {
		// each question holds a pooled connection for its whole query
		base = append(base, modkit.WithMiddlewares(chimw.Throttle(o.MaxInFlight)))
	}
	b := modkit.Build(append(base, opts...)...)

	c, err := querycompiler.New(o.Compiler)
	if err != nil {
		return nil, err
	}
	svc := service.New(deps.PG, repo.NewPG(), c, o.Service)

	return &Module{
		deps:  deps,
		built: b,
		svc:   svc,
		ports: Ports{Asker: svc, Compiler: svc},
	}, nil
}

// MustNew is New for main wiring
func MustNew(deps modkit.Deps, opts ...modkit.Option) *Module {
	m, err := New(deps, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		answershttp.Register(rr, m.svc)
	})
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
