package modkit

import (
	"net/http"
	"strings"

	"videobot/internal/modkit/httpkit"
)

type Router = httpkit.Router

// Built is a module's resolved name, mount prefix and middleware
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
}

// Build applies opts in order, so a later option overrides an earlier one.
// It panics without a prefix: a module mounted at the root would shadow the others.
func Build(opts ...Option) Built {
	var c buildCfg
	for _, opt := range opts {
		opt(&c)
	}
	prefix := "/" + strings.Trim(strings.TrimSpace(c.prefix), "/")
	if prefix == "/" {
		panic("modkit: module " + c.name + " has no prefix")
	}
	return Built{Name: c.name, Prefix: prefix, Mw: c.mw}
}

// Mount creates the module's sub router and hands it to routes
func (b Built) Mount(r Router, routes func(Router)) {
	r.Route(b.Prefix, func(sub Router) {
		sub.Use(b.Mw...)
		routes(sub)
	})
}
