// Package http provides http transport for periods
package http

import (
	stdhttp "net/http"

	"bizdash/internal/modkit/httpkit"
	"bizdash/internal/modkit/swaggerkit"
	"bizdash/internal/platform/logger"
	"bizdash/internal/services/api/periods/domain"
)

// Register mounts periods endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.PostJSON(r, "/resolve", h.resolve)
	httpkit.PostJSON(r, "/change", h.change)

	swaggerkit.Document(
		swaggerkit.Op{Method: stdhttp.MethodGet, Path: "/periods", Tag: "Periods", Summary: "List period identifiers"},
		swaggerkit.Op{Method: stdhttp.MethodPost, Path: "/periods/resolve", Tag: "Periods", Summary: "Resolve a period into current and comparison windows", Body: true},
		swaggerkit.Op{Method: stdhttp.MethodPost, Path: "/periods/change", Tag: "Periods", Summary: "Percentage change between two values", Body: true},
	)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /periods Periods periodsList
// @Summary List period identifiers
// @Tags Periods
// @Produce json
// @Success 200 {object} domain.ListResp "ok"
// @Router /periods [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context()), nil
}

// swagger:route POST /periods/resolve Periods periodsResolve
// @Summary Resolve a period into current and comparison windows
// @Tags Periods
// @Accept json
// @Produce json
// @Param payload body domain.ResolveInput true "Period"
// @Success 200 {object} domain.ResolveResp "ok"
// @Router /periods/resolve [post]
func (h *handlers) resolve(r *stdhttp.Request, in domain.ResolveInput) (any, error) {
	ctx := logger.WithPeriod(r.Context(), in.Period)
	return h.svc.Resolve(ctx, in)
}

// swagger:route POST /periods/change Periods periodsChange
// @Summary Percentage change between two values
// @Tags Periods
// @Accept json
// @Produce json
// @Param payload body domain.ChangeInput true "Values"
// @Success 200 {object} domain.ChangeResp "ok"
// @Router /periods/change [post]
func (h *handlers) change(r *stdhttp.Request, in domain.ChangeInput) (any, error) {
	return h.svc.Change(r.Context(), in), nil
}
