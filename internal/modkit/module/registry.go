package module

import (
	"slices"
	"sync"
)

// registry maps module name to its port set; the API fills it while mounting
// and /meta/service lists it
var registry struct {
	sync.RWMutex
	ports map[string]any
}

// Register records the port set of a mounted module; a repeated name replaces
func Register(name string, ports any) {
	registry.Lock()
	defer registry.Unlock()
	if registry.ports == nil {
		registry.ports = make(map[string]any)
	}
	registry.ports[name] = ports
}

// Names lists registered modules, sorted
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.ports))
	for n := range registry.ports {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Reset empties the registry; tests only
func Reset() {
	registry.Lock()
	registry.ports = nil
	registry.Unlock()
}
