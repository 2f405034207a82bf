package httpkit

import (
	"net/http"
	"strings"
)

// MountAPI mounts routes under /api/<version> behind mw
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.Trim(version, "/"), func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}

func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
