package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"time"

	"videobot/internal/platform/config"
	"videobot/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server serves a chi mux on PORT and drains in flight requests on shutdown
type Server struct {
	mux   *chi.Mux
	http  *stdhttp.Server
	grace time.Duration
}

// NewServer reads PORT (default :4000), READ_HEADER_TIMEOUT (10s) and
// SHUTDOWN_GRACE (10s) from cfg. opts run against the root mux before any
// module mounts.
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	mux := chi.NewRouter()
	for _, opt := range opts {
		opt(mux)
	}
	return &Server{
		mux: mux,
		http: &stdhttp.Server{
			Addr:              cfg.MayPort("PORT", ":4000"),
			Handler:           mux,
			ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		},
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
	}
}

func (s *Server) Router() Router            { return AdaptChi(s.mux) }
func (s *Server) Addr() string              { return s.http.Addr }
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Run listens, serves until ctx ends, then shuts down within the grace period.
// A failed bind is returned straight away.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	log := logger.Named("http")
	log.Info().Str("addr", ln.Addr().String()).Msg("http listening")

	served := make(chan error, 1)
	go func() { served <- s.http.Serve(ln) }()

	select {
	case err := <-served:
		return ignoreClosed(err)
	case <-ctx.Done():
	}

	log.Info().Dur("grace", s.grace).Msg("http draining")
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
	defer cancel()
	if err := s.http.Shutdown(sctx); err != nil {
		return err
	}
	return ignoreClosed(<-served)
}

func ignoreClosed(err error) error {
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}
