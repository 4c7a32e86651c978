// Package module wires periods into the API using modkit
package module

import (
	"net/http"

	modkit "bizdash/internal/modkit"
	"bizdash/internal/modkit/httpkit"
	str "bizdash/internal/platform/strings"
	periodshttp "bizdash/internal/services/api/periods/http"
	periodssvc "bizdash/internal/services/api/periods/service"
)

// Module implements the periods module
type Module struct {
	b   modkit.Built
	svc *periodssvc.Service
}

// New constructs the periods module; BIZ_DEFAULT_PERIOD picks the fallback identifier
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("periods"), modkit.WithPrefix("/periods")}, opts...)...)

	m := &Module{b: b, svc: periodssvc.New(deps.Resolver, deps.ClockOrSystem(), deps.DefaultPeriod())}
	if m.b.Ports == nil {
		m.b.Ports = Ports{Periods: m.svc}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { periodshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.b.Mw }
