package httpkit_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bizdash/internal/modkit/httpkit"
	perr "bizdash/internal/platform/errors"
	phttp "bizdash/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func serve(t *testing.T, mux http.Handler, method, path, body string) (*httptest.ResponseRecorder, httpkit.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	var env httpkit.Envelope
	if rec.Code != http.StatusNoContent {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestSugar(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)

	httpkit.Get(r, "/ok", func(*http.Request) (any, error) { return map[string]int{"n": 1}, nil })
	httpkit.Get(r, "/none", func(*http.Request) (any, error) { return httpkit.NoContent(), nil })
	httpkit.Post(r, "/fail", func(*http.Request) (any, error) { return nil, perr.NotFoundf("store 7") })
	httpkit.PostJSON(r, "/echo", func(_ *http.Request, in echoIn) (any, error) { return in, nil })

	rec, env := serve(t, mux, http.MethodGet, "/ok", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"n": float64(1)}, env.Data)

	rec, _ = serve(t, mux, http.MethodGet, "/none", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = serve(t, mux, http.MethodPost, "/fail", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", env.Code)

	rec, env = serve(t, mux, http.MethodPost, "/echo", `{"name":"ok"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"name": "ok"}, env.Data)

	rec, env = serve(t, mux, http.MethodPost, "/echo", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name", env.Field)
}

func TestHandleAndError(t *testing.T) {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Get("/h", httpkit.Handle(func(*http.Request) httpkit.Response { return httpkit.OK("x") }))
	r.Get("/e", httpkit.Handle(func(*http.Request) httpkit.Response { return httpkit.Error(errors.New("plain")) }))

	_, env := serve(t, mux, http.MethodGet, "/h", "")
	assert.Equal(t, "x", env.Data)

	rec, env := serve(t, mux, http.MethodGet, "/e", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "unknown", env.Code)
}

func TestMountAPIV1_AppliesStack(t *testing.T) {
	mux := chi.NewRouter()
	stack := httpkit.CommonStack(httpkit.StackOptions{Timeout: time.Second, CORSOrigins: []string{"https://dash.example"}})
	httpkit.MountAPIV1(phttp.AdaptChi(mux), stack, func(api httpkit.Router) {
		httpkit.MountUnder(api, "/periods", nil, func(p httpkit.Router) {
			httpkit.Get(p, "/", func(*http.Request) (any, error) { return "listed", nil })
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/periods/", nil)
	req.Header.Set("Origin", "https://dash.example")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "https://dash.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("Cache-Control"))

	var env httpkit.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "listed", env.Data)
	assert.NotEmpty(t, env.RequestID)
}

func TestMountAPI_TrimsVersionSlash(t *testing.T) {
	mux := chi.NewRouter()
	httpkit.MountAPI(phttp.AdaptChi(mux), "/v2", nil, func(api httpkit.Router) {
		httpkit.Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})
	rec, env := serve(t, mux, http.MethodGet, "/api/v2/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", env.Data)
}
