package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "bizdash/internal/platform/errors"
	pnet "bizdash/internal/platform/net"
	phttp "bizdash/internal/platform/net/http"
)

func reqWithID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, rec.Body.String())
	}
	return env
}

func TestRespondOK(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.RespondOK(rec, reqWithID("GET", "/stores", "rid-1"), map[string]string{"a": "b"})

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
	env := decode(t, rec)
	if env.StatusCode != 200 || env.Status != "OK" || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("bad envelope: %+v", env)
	}
	if env.Code != "" || env.Error != "" {
		t.Fatalf("success envelope carries error fields: %+v", env)
	}
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid argument", perr.WithField(perr.InvalidArgf("bad period"), "period"), 422, "invalid_argument"},
		{"validation", perr.New(perr.ErrorCodeValidation, "limit must be at most 100"), 400, "validation"},
		{"unavailable", perr.Unavailablef("clickhouse down"), 503, "unavailable"},
		{"foreign", errors.New("boom"), 500, "unknown"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			phttp.RespondError(rec, reqWithID("GET", "/kpis", "rid-e"), c.err)
			if rec.Code != c.status {
				t.Fatalf("status = %d, want %d", rec.Code, c.status)
			}
			env := decode(t, rec)
			if env.Code != c.code || env.Error == "" || env.RequestID != "rid-e" || env.Data != nil {
				t.Fatalf("bad envelope: %+v", env)
			}
		})
	}

	rec := httptest.NewRecorder()
	phttp.RespondError(rec, reqWithID("GET", "/", ""), perr.WithField(perr.InvalidArgf("x"), "custom_start"))
	if env := decode(t, rec); env.Field != "custom_start" {
		t.Fatalf("field = %q", env.Field)
	}
}

func TestHandle_ReturnStyle(t *testing.T) {
	h := phttp.Handle(func(r *http.Request) phttp.Response {
		switch r.URL.Query().Get("mode") {
		case "err":
			return phttp.Error(perr.NotFoundf("no such store"))
		case "none":
			return phttp.NoContent()
		case "hdr":
			return phttp.Response{Body: "x", Header: http.Header{"X-Cache": {"hit"}}}
		}
		return phttp.OK(map[string]int{"n": 1})
	})

	rec := httptest.NewRecorder()
	h(rec, reqWithID("GET", "/?mode=ok", "r1"))
	if rec.Code != 200 || decode(t, rec).RequestID != "r1" {
		t.Fatalf("ok path: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h(rec, reqWithID("GET", "/?mode=err", "r2"))
	if rec.Code != 404 || decode(t, rec).Code != "not_found" {
		t.Fatalf("err path: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h(rec, reqWithID("GET", "/?mode=none", "r3"))
	if rec.Code != 204 || rec.Body.Len() != 0 {
		t.Fatalf("no content path: %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h(rec, reqWithID("GET", "/?mode=hdr", "r4"))
	if rec.Code != 200 || rec.Header().Get("X-Cache") != "hit" {
		t.Fatalf("header path: %d %v", rec.Code, rec.Header())
	}
}
