package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "bizdash/internal/platform/net/http"
	ptime "bizdash/internal/platform/time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p *pinger) Ping(context.Context) error { return p.err }

var manila = time.FixedZone("PHT", 8*60*60)

func serve(t *testing.T, d Deps, path string, out any) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestReady(t *testing.T) {
	var typedNil *pinger
	cases := []struct {
		name   string
		pg, ch Pinger
		status string
		pgStat string
	}{
		{"all ok", &pinger{}, &pinger{}, "ok", "ok"},
		{"ch disabled", &pinger{}, nil, "degraded", "ok"},
		{"typed nil skipped", typedNil, &pinger{}, "degraded", "skipped"},
		{"pg down", &pinger{err: errors.New("refused")}, &pinger{}, "fail", "fail"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got ReadyResponse
			serve(t, Deps{ServiceName: "bizdash-api", PG: c.pg, CH: c.ch}, "/ready", &got)
			assert.Equal(t, c.status, got.Status)
			require.Len(t, got.Checks, 2)
			assert.Equal(t, c.pgStat, got.Checks[0].Status)
		})
	}
}

func TestClock(t *testing.T) {
	clock := ptime.NewFixed(time.Date(2024, time.March, 14, 18, 30, 0, 0, time.UTC))
	var got ClockResponse
	serve(t, Deps{Clock: clock, Location: manila}, "/clock", &got)

	assert.Equal(t, "PHT", got.Timezone)
	assert.Equal(t, "2024-03-15T02:30:00.000+08:00", got.Now)
	assert.Equal(t, "2024-03-15T00:00:00.000+08:00", got.StartOfDay)
	assert.Equal(t, 8*60*60, got.Offset)
}

func TestServiceUptime(t *testing.T) {
	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	clock := ptime.NewFixed(start.Add(90 * time.Second))
	var got ServiceResponse
	serve(t, Deps{ServiceName: "bizdash-api", StartedAt: start, Clock: clock}, "/service", &got)
	assert.Equal(t, int64(90), got.Uptime)
	assert.Equal(t, "bizdash-api", got.Name)

	var h HealthResponse
	serve(t, Deps{ServiceName: "bizdash-api", StartedAt: start, Clock: clock}, "/health", &h)
	assert.True(t, h.OK)
	assert.Equal(t, "2024-03-15T00:01:30Z", h.Now)
}

func TestRegister_NoCache(t *testing.T) {
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), Deps{Location: manila})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clock", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
}
