package modkit

import "net/http"

// Option configures Build
type Option func(*buildCfg)

type buildCfg struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
}

// WithName names the module in logs and the port registry
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithMiddlewares wraps only this module's routes, in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}
