package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bizdash/internal/platform/config"
	phttp "bizdash/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_DefaultsAndMux(t *testing.T) {
	called := false
	srv := phttp.NewServer(config.New().Prefix("SRVTEST_"), func(*chi.Mux) { called = true })
	if !called {
		t.Fatalf("option not invoked")
	}
	if srv.Addr() != ":4000" {
		t.Fatalf("Addr = %q, want :4000", srv.Addr())
	}
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	rec := httptest.NewRecorder()
	srv.Router().Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	if rec.Code != 200 || rec.Body.String() != "pong" {
		t.Fatalf("bad response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Setenv("SRVRUN_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New().Prefix("SRVRUN_"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
