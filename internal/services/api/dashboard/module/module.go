// Package module wires the dashboard into the API using modkit
package module

import (
	"net/http"
	"time"

	modkit "bizdash/internal/modkit"
	"bizdash/internal/modkit/httpkit"
	str "bizdash/internal/platform/strings"
	dashhttp "bizdash/internal/services/api/dashboard/http"
	drepo "bizdash/internal/services/api/dashboard/repo"
	dashsvc "bizdash/internal/services/api/dashboard/service"
)

// Module implements the dashboard module
type Module struct {
	b   modkit.Built
	svc *dashsvc.Service
}

// New constructs the dashboard module
// BIZDASH_API_CACHE_TTL sets the result cache lifetime; the trend reads clickhouse when deps.CH is set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("dashboard"), modkit.WithPrefix("/dashboard")}, opts...)...)

	cfg := deps.Cfg.Prefix("BIZDASH_API_")
	svc := dashsvc.New(deps.PG, drepo.NewPG(), deps.Resolver, deps.ClockOrSystem(),
		dashsvc.WithDefault(deps.DefaultPeriod()),
		dashsvc.WithCacheTTL(cfg.MayDuration("CACHE_TTL", 5*time.Minute)),
		dashsvc.WithTopLimit(cfg.MayInt("TOP_LIMIT", dashsvc.DefaultTopLimit)),
		dashsvc.WithColumnar(drepo.NewCHTrend(deps.CH)),
	)
	deps.Log.Info().
		Bool("pg", deps.PG != nil).
		Bool("ch", deps.CH != nil).
		Msg("dashboard module configured")

	m := &Module{b: b, svc: svc}
	if m.b.Ports == nil {
		m.b.Ports = Ports{Dashboard: svc}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { dashhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.b.Mw }
