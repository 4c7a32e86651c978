// Package http provides http transport for the dashboard
package http

import (
	stdhttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"bizdash/internal/core/period"
	"bizdash/internal/modkit/httpkit"
	"bizdash/internal/modkit/swaggerkit"
	perr "bizdash/internal/platform/errors"
	"bizdash/internal/platform/logger"
	str "bizdash/internal/platform/strings"
	"bizdash/internal/services/api/dashboard/domain"
)

// query keys shared by every comparison endpoint
var windowQuery = []string{
	"period", period.KeyCustomStart, period.KeyCustomEnd, "store_ids",
	period.KeyStartDate, period.KeyEndDate, period.KeyCompareStartDate, period.KeyCompareEndDate,
}

// Register mounts dashboard endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/stores", h.stores)
	httpkit.Get(r, "/kpis", h.kpis)
	httpkit.Get(r, "/sales-by-store", h.salesByStore)
	httpkit.Get(r, "/top-products", h.topProducts)
	httpkit.Get(r, "/top-categories", h.topCategories)
	httpkit.Get(r, "/top-movers", h.topMovers)
	httpkit.Get(r, "/sales-trend", h.salesTrend)
	httpkit.Post(r, "/cache/invalidate", h.invalidate)

	top := append(append([]string{}, windowQuery...), "limit")
	swaggerkit.Document(
		swaggerkit.Op{Method: stdhttp.MethodGet, Path: "/dashboard/stores", Tag: "Dashboard", Summary: "List stores"},
		swaggerkit.Op{Method: stdhttp.MethodGet, Path: "/dashboard/kpis", Tag: "Dashboard", Summary: "Headline figures for both windows", Query: windowQuery},
		swaggerkit.Op{Method: stdhttp.MethodGet, Path: "/dashboard/sales-by-store", Tag: "Dashboard", Summary: "Sales per store for both windows", Query: windowQuery},
		swaggerkit.Op{Method: stdhttp.MethodGet, Path: "/dashboard/top-products", Tag: "Dashboard", Summary: "Best selling products", Query: top},
		swaggerkit.Op{Method: stdhttp.MethodGet, Path: "/dashboard/top-categories", Tag: "Dashboard", Summary: "Best selling categories", Query: top},
		swaggerkit.Op{Method: stdhttp.MethodGet, Path: "/dashboard/top-movers", Tag: "Dashboard", Summary: "Products and categories with the largest change in sales", Query: top},
		swaggerkit.Op{Method: stdhttp.MethodGet, Path: "/dashboard/sales-trend", Tag: "Dashboard", Summary: "Bucketed sales for both windows", Query: append(append([]string{}, windowQuery...), "granularity")},
		swaggerkit.Op{Method: stdhttp.MethodPost, Path: "/dashboard/cache/invalidate", Tag: "Dashboard", Summary: "Drop cached results"},
	)
}

type handlers struct{ svc domain.ServicePort }

// queryInput reads the window selection from the query string and validates it
func queryInput(r *stdhttp.Request) (domain.QueryInput, error) {
	v := r.URL.Query()
	in := domain.QueryInput{
		Period:           v.Get("period"),
		CustomStart:      v.Get(period.KeyCustomStart),
		CustomEnd:        v.Get(period.KeyCustomEnd),
		StoreIDs:         str.SplitCSV(v["store_ids"]...),
		StartDate:        v.Get(period.KeyStartDate),
		EndDate:          v.Get(period.KeyEndDate),
		CompareStartDate: v.Get(period.KeyCompareStartDate),
		CompareEndDate:   v.Get(period.KeyCompareEndDate),
		Granularity:      domain.Granularity(strings.ToLower(strings.TrimSpace(v.Get("granularity")))),
	}
	n, err := intParam(v, "limit")
	if err != nil {
		return in, err
	}
	in.Limit = n
	if err := httpkit.Validate(in); err != nil {
		return in, err
	}
	return in, nil
}

func intParam(v url.Values, key string) (int, error) {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be an integer", key), key)
	}
	return n, nil
}

// withWindow parses the query and tags the request logger with the period
func (h *handlers) withWindow(r *stdhttp.Request) (domain.QueryInput, *stdhttp.Request, error) {
	in, err := queryInput(r)
	if err != nil {
		return in, r, err
	}
	if in.Period != "" {
		r = r.WithContext(logger.WithPeriod(r.Context(), in.Period))
	}
	return in, r, nil
}

// swagger:route GET /dashboard/stores Dashboard dashboardStores
// @Summary List stores
// @Tags Dashboard
// @Produce json
// @Success 200 {array} domain.Store "ok"
// @Router /dashboard/stores [get]
func (h *handlers) stores(r *stdhttp.Request) (any, error) {
	return h.svc.Stores(r.Context())
}

// swagger:route GET /dashboard/kpis Dashboard dashboardKPIs
// @Summary Headline figures for both windows
// @Tags Dashboard
// @Produce json
// @Param period query string false "Period identifier"
// @Param store_ids query string false "Comma separated store ids"
// @Success 200 {object} domain.KPIResp "ok"
// @Router /dashboard/kpis [get]
func (h *handlers) kpis(r *stdhttp.Request) (any, error) {
	in, r, err := h.withWindow(r)
	if err != nil {
		return nil, err
	}
	return h.svc.KPIs(r.Context(), in)
}

// swagger:route GET /dashboard/sales-by-store Dashboard dashboardSalesByStore
// @Summary Sales per store for both windows
// @Tags Dashboard
// @Produce json
// @Param period query string false "Period identifier"
// @Success 200 {array} domain.StoreSales "ok"
// @Router /dashboard/sales-by-store [get]
func (h *handlers) salesByStore(r *stdhttp.Request) (any, error) {
	in, r, err := h.withWindow(r)
	if err != nil {
		return nil, err
	}
	return h.svc.SalesByStore(r.Context(), in)
}

// swagger:route GET /dashboard/top-products Dashboard dashboardTopProducts
// @Summary Best selling products
// @Tags Dashboard
// @Produce json
// @Param period query string false "Period identifier"
// @Param limit query int false "Rows" default(10)
// @Success 200 {array} domain.ProductSales "ok"
// @Router /dashboard/top-products [get]
func (h *handlers) topProducts(r *stdhttp.Request) (any, error) {
	in, r, err := h.withWindow(r)
	if err != nil {
		return nil, err
	}
	return h.svc.TopProducts(r.Context(), in)
}

// swagger:route GET /dashboard/top-categories Dashboard dashboardTopCategories
// @Summary Best selling categories
// @Tags Dashboard
// @Produce json
// @Param period query string false "Period identifier"
// @Param limit query int false "Rows" default(10)
// @Success 200 {array} domain.CategorySales "ok"
// @Router /dashboard/top-categories [get]
func (h *handlers) topCategories(r *stdhttp.Request) (any, error) {
	in, r, err := h.withWindow(r)
	if err != nil {
		return nil, err
	}
	return h.svc.TopCategories(r.Context(), in)
}

// swagger:route GET /dashboard/top-movers Dashboard dashboardTopMovers
// @Summary Products and categories with the largest change in sales
// @Tags Dashboard
// @Produce json
// @Param period query string false "Period identifier"
// @Param limit query int false "Product rows; categories stop at 6" default(10)
// @Success 200 {object} domain.MoversResp "ok"
// @Router /dashboard/top-movers [get]
func (h *handlers) topMovers(r *stdhttp.Request) (any, error) {
	in, r, err := h.withWindow(r)
	if err != nil {
		return nil, err
	}
	return h.svc.TopMovers(r.Context(), in)
}

// swagger:route GET /dashboard/sales-trend Dashboard dashboardSalesTrend
// @Summary Bucketed sales for both windows
// @Tags Dashboard
// @Produce json
// @Param period query string false "Period identifier"
// @Param granularity query string false "hour or day" default(day)
// @Success 200 {object} domain.TrendResp "ok"
// @Router /dashboard/sales-trend [get]
func (h *handlers) salesTrend(r *stdhttp.Request) (any, error) {
	in, r, err := h.withWindow(r)
	if err != nil {
		return nil, err
	}
	return h.svc.SalesTrend(r.Context(), in)
}

// swagger:route POST /dashboard/cache/invalidate Dashboard dashboardInvalidate
// @Summary Drop cached results
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.InvalidateResp "ok"
// @Router /dashboard/cache/invalidate [post]
func (h *handlers) invalidate(r *stdhttp.Request) (any, error) {
	return h.svc.Invalidate(r.Context()), nil
}
