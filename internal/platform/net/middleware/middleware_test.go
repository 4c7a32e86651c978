package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bizdash/internal/platform/logger"
	"bizdash/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

var logBuf bytes.Buffer

func init() {
	logger.Init(logger.Options{Level: "debug", Format: "json", Writer: &logBuf})
}

func chain(h http.Handler, mws ...middleware.Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestAccessLog_PassThroughAndLogs(t *testing.T) {
	logBuf.Reset()
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "ok")
	}),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.AccessLogZerolog(middleware.AccessLogOptions{}),
	)

	req := httptest.NewRequest(http.MethodGet, "/kpis?period=YESTERDAY", nil)
	req.Header.Set(chimw.RequestIDHeader, "rid-log")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated || rr.Body.String() != "ok" {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
	out := logBuf.String()
	for _, want := range []string{`"request_id":"rid-log"`, `"status":201`, `"path":"/kpis"`, `"query":"period=YESTERDAY"`, `"bytes":2`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s\n%s", want, out)
		}
	}
}

func TestAccessLog_SlowIsWarn(t *testing.T) {
	logBuf.Reset()
	h := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Nanosecond})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(time.Millisecond)
			_, _ = io.WriteString(w, "slow")
		}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/slow", nil))
	if rr.Body.String() != "slow" {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if out := logBuf.String(); !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, `"slow":true`) {
		t.Fatalf("expected warn slow line\n%s", out)
	}
}

func TestRecoverJSON(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("kaboom") }),
		middleware.RequestID(),
		middleware.RecoverJSON,
	)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "rid-panic")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") != "rid-panic" {
		t.Fatalf("request id header missing")
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not json: %v", err)
	}
	if body["code"] != "panic" || body["request_id"] != "rid-panic" {
		t.Fatalf("body = %v", body)
	}
}

func TestRecoverJSON_AbortHandlerRepanics(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatalf("ErrAbortHandler should propagate")
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://dash.example.com"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/kpis", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.com" {
		t.Fatalf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/kpis", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin allowed: %q", got)
	}
}

func TestDefaults_StackServes(t *testing.T) {
	mws := middleware.Defaults(0, 0)
	if len(mws) == 0 {
		t.Fatalf("empty defaults")
	}
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "fine")
	}), mws...)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "fine" {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatalf("NoCache headers missing")
	}
}

func TestHeartbeatAndStripSlashes(t *testing.T) {
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, r.URL.Path)
	}), middleware.Heartbeat("/ping"), middleware.StripSlashes())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "." {
		t.Fatalf("heartbeat = %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stores/", nil))
	if rr.Body.String() != "/stores" {
		t.Fatalf("strip slashes = %q", rr.Body.String())
	}
}
