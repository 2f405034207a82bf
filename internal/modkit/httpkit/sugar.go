package httpkit

import (
	"net/http"

	phttp "videobot/internal/platform/net/http"
)

// PostJSON mounts a POST handler that binds and validates T from the body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// Get mounts a body-less GET handler wrapped in the envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	phttp.GetJSON(r, path, h)
}
