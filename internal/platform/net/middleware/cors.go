package middleware

import (
	"net/http"

	chicors "github.com/go-chi/cors"
)

// CORS allows the JSON API to be called from a browser. Empty origins allow
// any origin; the API is read only and carries no credentials.
func CORS(origins []string, maxAge int) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         maxAge,
	})
}
