// Package swaggerkit mounts Swagger UI and the OpenAPI document
package swaggerkit

import (
	"net/http"

	"videobot/internal/modkit/httpkit"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves Swagger UI under /api/docs and the spec at /api/docs/doc.json
func Mount(r httpkit.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
