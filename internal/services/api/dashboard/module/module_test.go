package module

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bizdash/internal/core/period"
	modkit "bizdash/internal/modkit"
	"bizdash/internal/modkit/module"
	"bizdash/internal/modkit/repokit"
	"bizdash/internal/platform/config"
	phttp "bizdash/internal/platform/net/http"
	"bizdash/internal/platform/testkit"
	ptime "bizdash/internal/platform/time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PHT", 8*60*60)

// fakePG answers every statement with canned values and records the SQL it saw
type fakePG struct {
	rows  [][]any
	row   []any
	stmts []string
}

func (f *fakePG) Query(_ context.Context, sql string, _ ...any) (repokit.Rows, error) {
	f.stmts = append(f.stmts, sql)
	return &fakeRows{data: f.rows, i: -1}, nil
}

func (f *fakePG) QueryRow(_ context.Context, sql string, _ ...any) repokit.Row {
	f.stmts = append(f.stmts, sql)
	return fakeRow(f.row)
}

func (f *fakePG) Tx(_ context.Context, fn func(q repokit.Queryer) error) error { return fn(f) }

type fakeRow []any

func (r fakeRow) Scan(dst ...any) error { return assign(r, dst) }

type fakeRows struct {
	data [][]any
	i    int
}

func (r *fakeRows) Next() bool            { r.i++; return r.i < len(r.data) }
func (r *fakeRows) Scan(dst ...any) error { return assign(r.data[r.i], dst) }
func (r *fakeRows) Err() error            { return nil }
func (r *fakeRows) Close()                {}
func (r *fakeRows) Columns() []string     { return nil }

func assign(src []any, dst []any) error {
	if len(src) != len(dst) {
		return fmt.Errorf("scan: %d values into %d targets", len(src), len(dst))
	}
	for i, v := range src {
		switch d := dst[i].(type) {
		case *string:
			*d = v.(string)
		case *int64:
			*d = v.(int64)
		case *decimal.Decimal:
			*d = decimal.RequireFromString(v.(string))
		default:
			return fmt.Errorf("scan: unsupported target %T", d)
		}
	}
	return nil
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       string          `json:"code"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
}

func mount(t *testing.T, pg repokit.TxRunner) http.Handler {
	t.Helper()
	deps := modkit.Deps{
		Cfg:      config.New(),
		PG:       pg,
		Clock:    ptime.NewFixed(time.Date(2024, time.March, 15, 10, 0, 0, 0, manila)),
		Resolver: period.NewResolver(manila),
	}
	mux := chi.NewRouter()
	New(deps).MountRoutes(phttp.AdaptChi(mux))
	return mux
}

func do(t *testing.T, h http.Handler, method, path string) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader("")))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestStores(t *testing.T) {
	pg := &fakePG{rows: [][]any{{"mnl-01", "Makati"}, {"mnl-02", "Pasig"}}}
	code, env := do(t, mount(t, pg), http.MethodGet, "/dashboard/stores")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":"mnl-01","name":"Makati"},{"id":"mnl-02","name":"Pasig"}]`, string(env.Data))
}

func TestKPIs(t *testing.T) {
	pg := &fakePG{row: []any{"1000.50", "200.10", int64(4)}}
	code, env := do(t, mount(t, pg), http.MethodGet, "/dashboard/kpis?period=WEEK_TO_DATE&store_ids=a,b&store_ids=c")
	require.Equal(t, http.StatusOK, code)

	var got struct {
		Current struct {
			TotalSales   string `json:"total_sales"`
			Transactions int64  `json:"transactions"`
			Avg          string `json:"avg_transaction_value"`
		} `json:"current"`
		Change struct {
			Sales string `json:"sales"`
		} `json:"change"`
		Window struct {
			Period string            `json:"period"`
			Params map[string]string `json:"params"`
		} `json:"window"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "1000.5", got.Current.TotalSales)
	assert.Equal(t, int64(4), got.Current.Transactions)
	assert.Equal(t, "250.13", got.Current.Avg)
	assert.Equal(t, "0", got.Change.Sales)
	assert.Equal(t, "WEEK_TO_DATE", got.Window.Period)
	assert.Equal(t, "2024-03-04T00:00:00.000+08:00", got.Window.Params["compare_start_date"])
	assert.Len(t, pg.stmts, 2)
}

func TestTopMovers(t *testing.T) {
	pg := &fakePG{rows: [][]any{{"Latte", "150", "100"}, {"Croissant", "20", "80"}}}
	code, env := do(t, mount(t, pg), http.MethodGet, "/dashboard/top-movers?period=YESTERDAY&limit=4")
	require.Equal(t, http.StatusOK, code)

	var got struct {
		Products []struct {
			Name      string `json:"name"`
			Change    string `json:"change"`
			ChangePct string `json:"change_pct"`
			Direction string `json:"direction"`
		} `json:"products"`
		Categories []json.RawMessage `json:"categories"`
		Window     struct {
			Period string `json:"period"`
		} `json:"window"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.Products, 2)
	assert.Equal(t, "Latte", got.Products[0].Name)
	assert.Equal(t, "50", got.Products[0].Change)
	assert.Equal(t, "up", got.Products[0].Direction)
	assert.Equal(t, "-75", got.Products[1].ChangePct)
	assert.Equal(t, "down", got.Products[1].Direction)
	assert.Len(t, got.Categories, 2)
	assert.Equal(t, "YESTERDAY", got.Window.Period)

	require.Len(t, pg.stmts, 2)
	assert.Contains(t, pg.stmts[0], "GROUP BY p.name")
	assert.Contains(t, pg.stmts[1], "p.category")
}

func TestQueryErrors(t *testing.T) {
	h := mount(t, &fakePG{})
	cases := []struct {
		path   string
		status int
		code   string
		field  string
	}{
		{"/dashboard/kpis?period=LAST_QUARTER", http.StatusBadRequest, "validation", "period"},
		{"/dashboard/top-products?limit=abc", http.StatusBadRequest, "validation", "limit"},
		{"/dashboard/top-products?limit=500", http.StatusBadRequest, "validation", "limit"},
		{"/dashboard/top-movers?limit=0x1", http.StatusBadRequest, "validation", "limit"},
		{"/dashboard/sales-trend?granularity=week", http.StatusBadRequest, "validation", "granularity"},
		{"/dashboard/kpis?period=CUSTOM", http.StatusUnprocessableEntity, "invalid_argument", ""},
		{"/dashboard/kpis?period=CUSTOM&custom_start=x&custom_end=2024-03-01", http.StatusUnprocessableEntity, "invalid_argument", "custom_start"},
		{"/dashboard/sales-by-store?start_date=2024-03-01", http.StatusUnprocessableEntity, "invalid_argument", "end_date"},
	}
	for _, c := range cases {
		code, env := do(t, h, http.MethodGet, c.path)
		assert.Equal(t, c.status, code, c.path)
		assert.Equal(t, c.code, env.Code, c.path)
		assert.Equal(t, c.field, env.Field, c.path)
	}
}

func TestWithoutPostgres(t *testing.T) {
	h := mount(t, nil)
	code, env := do(t, h, http.MethodGet, "/dashboard/stores")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unavailable", env.Code)

	code, env = do(t, h, http.MethodPost, "/dashboard/cache/invalidate")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"evicted":0}`, string(env.Data))
}

func TestCacheTTLFromEnv(t *testing.T) {
	testkit.Env(t, map[string]string{"BIZDASH_API_CACHE_TTL": "1m"})
	pg := &fakePG{rows: [][]any{{"mnl-01", "Makati"}}}
	h := mount(t, pg)

	for i := 0; i < 2; i++ {
		code, _ := do(t, h, http.MethodGet, "/dashboard/stores")
		require.Equal(t, http.StatusOK, code)
	}
	assert.Len(t, pg.stmts, 1)

	_, env := do(t, h, http.MethodPost, "/dashboard/cache/invalidate")
	assert.JSONEq(t, `{"evicted":1}`, string(env.Data))
}

func TestPorts(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New(), Resolver: period.NewResolver(manila)})
	p := module.MustPortsOf[Ports](m)
	require.NotNil(t, p.Dashboard)
	assert.Equal(t, "dashboard", m.Name())
	assert.Equal(t, "/dashboard", m.(*Module).Prefix())
}
