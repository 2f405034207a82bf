package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is a plain handler func; modules never see chi types
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount routes on
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux is the handler to serve
	Mux() http.Handler
}

// AdaptChi wraps a chi mux or sub router
func AdaptChi(r chi.Router) Router { return chiRouter{r} }

type chiRouter struct{ chi.Router }

func (c chiRouter) Get(p string, h Handler)  { c.Router.Get(p, h) }
func (c chiRouter) Post(p string, h Handler) { c.Router.Post(p, h) }

func (c chiRouter) Handle(p string, h http.Handler)           { c.Router.Handle(p, h) }
func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.Router.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.Router.Group(func(sub chi.Router) { fn(chiRouter{sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.Router.Route(pattern, func(sub chi.Router) { fn(chiRouter{sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.Router }

// GetJSON mounts a GET handler whose result becomes the envelope's data
func GetJSON(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(h))
}

// PostJSON mounts a POST handler that binds and validates T from the body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(h))
}
