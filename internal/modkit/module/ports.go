// Package module holds cross module port lookup for bootstrap wiring
package module

import "reflect"

// Provider is anything that exposes a port set, normally a modkit.Module
type Provider interface {
	Ports() any
	Name() string
}

// PortsOf pulls T out of p.Ports(): either the value itself or the first
// exported struct field implementing T
func PortsOf[T any](p Provider) (t T, ok bool) {
	ports := p.Ports()
	if ports == nil {
		return t, false
	}
	if v, ok := ports.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(ports)
	if rv.Kind() != reflect.Struct {
		return t, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return t, false
}

// MustPortsOf is PortsOf that panics naming the module
func MustPortsOf[T any](p Provider) T {
	if v, ok := PortsOf[T](p); ok {
		return v
	}
	panic("module: requested port not found on module " + p.Name())
}
