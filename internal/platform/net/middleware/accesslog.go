// Package middleware holds the chi based HTTP middleware stack
package middleware

import (
	"net/http"
	"time"

	"videobot/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// LogContext puts chi's request id on the logger context so logger.C lines
// carry request_id; it must run after RequestID
func LogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chimw.GetReqID(r.Context())
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(logger.WithRequest(r.Context(), id)))
	})
}

// AccessLog writes one line per request. Requests at or above slow log at
// warn, 5xx responses at error; slow <= 0 turns the warn level off.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			took := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log := logger.C(r.Context())
			e := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				e = log.Error()
			case slow > 0 && took >= slow:
				e = log.Warn()
			}
			e.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("took", took).
				Msg("http request")
		})
	}
}
