package swaggerkit

import (
	"net/http"
	"strings"

	docs "videobot/internal/services/api/docs"

	"github.com/goccy/go-json"
)

// docReader is a seam so tests can feed arbitrary JSON
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON serves the generated spec lifted to OAS3 with the error envelope attached
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		liftOAS3(spec, "/api/v1")
		addErrorResponses(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// liftOAS3 rewrites swagger 2 and 3.1 docs as 3.0.3, which the UI renders, and sets servers
func liftOAS3(spec map[string]any, base string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": base}}
	}
}

// addErrorResponses declares the envelope schema and attaches 400/500/503 to every operation
func addErrorResponses(spec map[string]any) {
	comps, _ := spec["components"].(map[string]any)
	if comps == nil {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, _ := comps["schemas"].(map[string]any)
	if schemas == nil {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	schemas["ErrorResponse"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}

	ref := map[string]any{"$ref": "#/components/schemas/ErrorResponse"}
	defaults := map[string]string{
		"400": "Bad Request",
		"500": "Internal Server Error",
		"503": "Database unavailable",
	}
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		node, _ := p.(map[string]any)
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, _ := op["responses"].(map[string]any)
			if responses == nil {
				responses = map[string]any{}
				op["responses"] = responses
			}
			for code, desc := range defaults {
				if _, exists := responses[code]; !exists {
					responses[code] = map[string]any{
						"description": desc,
						"content":     map[string]any{"application/json": map[string]any{"schema": ref}},
					}
				}
			}
		}
	}
}
