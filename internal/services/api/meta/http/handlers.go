// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"reflect"
	"time"

	"bizdash/internal/core/period"
	"bizdash/internal/core/version"
	"bizdash/internal/modkit/httpkit"
	"bizdash/internal/modkit/swaggerkit"
	"bizdash/internal/platform/net/middleware"
	ptime "bizdash/internal/platform/time"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Clock       ptime.Clock
	Location    *time.Location

	// nil or typed nil reports the check as skipped
	PG Pinger
	CH Pinger

	// ReadyTimeout bounds every ping; 2s when zero
	ReadyTimeout time.Duration
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Clock == nil {
		d.Clock = ptime.System(d.Location)
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d}

	// health checks and the clock must never be served from a cache
	r.Use(middleware.NoCache())
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/clock", h.clock)

	swaggerkit.Document(
		swaggerkit.Op{Method: http.MethodGet, Path: "/meta/health", Tag: "Meta", Summary: "Health check"},
		swaggerkit.Op{Method: http.MethodGet, Path: "/meta/ready", Tag: "Meta", Summary: "Readiness with dependency checks"},
		swaggerkit.Op{Method: http.MethodGet, Path: "/meta/version", Tag: "Meta", Summary: "Build and version info"},
		swaggerkit.Op{Method: http.MethodGet, Path: "/meta/service", Tag: "Meta", Summary: "Service info and uptime"},
		swaggerkit.Op{Method: http.MethodGet, Path: "/meta/clock", Tag: "Meta", Summary: "Server time in the business location"},
	)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"bizdash-api"`
	Started string `json:"started"  example:"2024-03-15T02:00:00Z"`
	Now     string `json:"now"      example:"2024-03-15T02:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2024-03-15T02:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"bizdash-api"`
	Started string `json:"started" example:"2024-03-15T02:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ClockResponse lets clients confirm they agree with the server on the business day
type ClockResponse struct {
	Timezone   string `json:"timezone"    example:"Asia/Manila"`
	Now        string `json:"now"         example:"2024-03-15T10:00:00.000+08:00"`
	StartOfDay string `json:"start_of_day" example:"2024-03-15T00:00:00.000+08:00"`
	Offset     int    `json:"utc_offset_seconds" example:"28800"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Clock.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	check := func(name string, p Pinger) ReadyCheck {
		if isNil(p) {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: "ok"}
	}

	checks := []ReadyCheck{check("pg", h.deps.PG), check("ch", h.deps.CH)}
	return ReadyResponse{
		Status: overall(checks),
		Checks: checks,
		Now:    h.deps.Clock.Now().UTC().Format(time.RFC3339),
	}, nil
}

// overall is fail on any failure, degraded when a backend is skipped, ok otherwise
func overall(checks []ReadyCheck) string {
	out := "ok"
	for _, c := range checks {
		switch c.Status {
		case "fail":
			return "fail"
		case "skipped":
			out = "degraded"
		}
	}
	return out
}

func isNil(p Pinger) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := h.deps.Clock.Now().Sub(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/clock Meta metaClock
// @Summary Server time in the business location
// @Tags Meta
// @Produce json
// @Success 200 {object} ClockResponse "ok"
// @Router /meta/clock [get]
func (h *handlers) clock(_ *http.Request) (any, error) {
	now := h.deps.Clock.Now().In(h.deps.Location)
	_, offset := now.Zone()
	return ClockResponse{
		Timezone:   h.deps.Location.String(),
		Now:        now.Format(period.ISOLayout),
		StartOfDay: ptime.StartOfDay(now).Format(period.ISOLayout),
		Offset:     offset,
	}, nil
}
