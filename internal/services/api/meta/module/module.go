// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"

	"bizdash/internal/core/version"
	modkit "bizdash/internal/modkit"
	"bizdash/internal/modkit/httpkit"
	str "bizdash/internal/platform/strings"

	metahttp "bizdash/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	clock := deps.ClockOrSystem()
	d := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   clock.Now(),
		Clock:       clock,
		Location:    deps.Resolver.Location(),
		CH:          deps.CH,
	}
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		d.PG = p
	}
	return &Module{b: b, deps: d}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.b.Mw }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.b.Ports }
