// Package http provides http transport for answers
package http

import (
	stdhttp "net/http"

	"videobot/internal/modkit/httpkit"
	"videobot/internal/services/answers/domain"
	"videobot/internal/services/answers/service"
)

// Service is what the handlers need
type Service interface {
	domain.AskerPort
	domain.CompilerPort
}

// Register mounts answers endpoints on the given router
func Register(r httpkit.Router, s Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.AskInput](r, "/ask", h.ask)
	httpkit.PostJSON[domain.AskInput](r, "/compile", h.compile)
}

type handlers struct{ svc Service }

// @Summary Answer a question about videos, creators and snapshots
// @Tags Answers
// @Accept json
// @Produce json
// @Param payload body domain.AskInput true "Question"
// @Success 200 {object} domain.AskOutput "ok"
// @Router /answers/ask [post]
func (h *handlers) ask(r *stdhttp.Request, in domain.AskInput) (any, error) {
	a, err := h.svc.Ask(r.Context(), in.Text)
	if err != nil {
		return nil, err
	}
	return domain.AskOutput{Answer: a.Text, Intent: a.Intent.String()}, nil
}

// @Summary Show the query a question compiles to without running it
// @Tags Answers
// @Accept json
// @Produce json
// @Param payload body domain.AskInput true "Question"
// @Success 200 {object} domain.CompileOutput "ok"
// @Router /answers/compile [post]
func (h *handlers) compile(r *stdhttp.Request, in domain.AskInput) (any, error) {
	c := h.svc.Compile(r.Context(), in.Text)
	return domain.CompileOutput{
		Intent: c.Intent.String(),
		SQL:    c.SQL,
		Args:   service.DisplayArgs(c.Args),
	}, nil
}
