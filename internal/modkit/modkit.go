package modkit

import "videobot/internal/modkit/httpkit"

// Module is the common surface for API modules: mount routes, expose ports
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r httpkit.Router)
	// Ports returns the module's port set for cross wiring
	Ports() any
	// Name returns the module name
	Name() string
}
