package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"bizdash/internal/core/period"
	"bizdash/internal/modkit/module"
	"bizdash/internal/modkit/swaggerkit"
	"bizdash/internal/platform/config"
	phttp "bizdash/internal/platform/net/http"
	ptime "bizdash/internal/platform/time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountAPI(t *testing.T) http.Handler {
	t.Helper()
	module.Reset()
	swaggerkit.Reset()
	t.Cleanup(module.Reset)

	loc := time.FixedZone("PHT", 8*60*60)
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{
		Config:        config.New(),
		EnableSwagger: true,
		Resolver:      period.NewResolver(loc),
		Clock:         ptime.NewFixed(time.Date(2024, time.March, 15, 10, 0, 0, 0, loc)),
	})
	return mux
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMount_Routes(t *testing.T) {
	h := mountAPI(t)

	cases := map[string]int{
		"/api/v1/meta/health":      http.StatusOK,
		"/api/v1/meta/clock":       http.StatusOK,
		"/api/v1/periods":          http.StatusOK,
		"/api/v1/periods/":         http.StatusOK,
		"/api/v1/dashboard/stores": http.StatusServiceUnavailable,
		"/api/v1/dashboard/kpis":   http.StatusServiceUnavailable,
		"/api/v1/nope":             http.StatusNotFound,
	}
	for path, want := range cases {
		rec := get(h, path)
		assert.Equal(t, want, rec.Code, path)
	}

	assert.Equal(t, "*", func() string {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/meta/health", nil)
		req.Header.Set("Origin", "https://dash.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Header().Get("Access-Control-Allow-Origin")
	}())
}

func TestMount_RegistersPortsAndDocs(t *testing.T) {
	h := mountAPI(t)

	names := module.Names()
	slices.Sort(names)
	assert.Equal(t, []string{"dashboard", "meta", "periods"}, names)

	rec := get(h, "/api/docs/doc.json")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	for _, p := range []string{"/periods/resolve", "/dashboard/kpis", "/meta/clock"} {
		assert.Contains(t, doc.Paths, p)
	}
}
