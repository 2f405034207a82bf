package httpkit

import (
	"net/http"
	"time"

	"videobot/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// Timeout bounds a whole request; zero means 30s
	Timeout time.Duration
	// SlowLog marks access log lines as warn at or above this duration
	SlowLog time.Duration
	// AllowedOrigins feeds CORS; empty allows any origin
	AllowedOrigins []string
}

// CommonStack returns the baseline middleware for versioned API routes
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		middleware.LogContext,
		middleware.RecoverJSON,
		middleware.AccessLog(o.SlowLog),
		chimw.NoCache,
		middleware.CORS(o.AllowedOrigins, 300),
		chimw.StripSlashes,
		chimw.Timeout(timeout),
	}
}
