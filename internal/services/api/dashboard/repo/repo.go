// Package repo provides postgres and clickhouse access for the dashboard
package repo

import (
	"context"
	"time"

	"bizdash/internal/core/period"
	"bizdash/internal/modkit/repokit"
	"bizdash/internal/platform/store"
	"bizdash/internal/services/api/dashboard/domain"

	"github.com/shopspring/decimal"
)

// Repo is the persistence surface for the dashboard
// every window is inclusive on both bounds
type Repo interface {
	Stores(ctx context.Context) ([]domain.Store, error)
	Totals(ctx context.Context, w period.DateRange, storeIDs []string) (Totals, error)
	SalesByStore(ctx context.Context, p period.Pair, storeIDs []string) ([]Comparison, error)
	TopProducts(ctx context.Context, p period.Pair, storeIDs []string, limit int) ([]Comparison, error)
	TopCategories(ctx context.Context, p period.Pair, storeIDs []string, limit int) ([]Comparison, error)
	ProductMovers(ctx context.Context, p period.Pair, storeIDs []string, limit int) ([]Comparison, error)
	CategoryMovers(ctx context.Context, p period.Pair, storeIDs []string, limit int) ([]Comparison, error)
	TrendSource
}

// TrendSource buckets sales of one window in the named time zone
type TrendSource interface {
	Trend(ctx context.Context, w period.DateRange, storeIDs []string, g domain.Granularity, loc *time.Location) ([]Bucket, error)
}

// Totals are the raw headline sums of one window
type Totals struct {
	Sales        decimal.Decimal
	Profit       decimal.Decimal
	Transactions int64
}

// Comparison is one key's sales in both windows
type Comparison struct {
	Key      string
	Current  decimal.Decimal
	Previous decimal.Decimal
}

// Bucket is one trend bucket; At is the bucket start in the business location
type Bucket struct {
	At    time.Time
	Sales decimal.Decimal
}

type (
	// PG is a binder that binds the repo to a Queryer
	PG struct{}
	// queries implements Repo
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that binds the repo to a Queryer
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// nilIfEmpty keeps the store filter off for an empty selection; pgx sends nil as NULL
func nilIfEmpty(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return ids
}

func (r *queries) Stores(ctx context.Context) ([]domain.Store, error) {
	return store.Many(ctx, r.q, func(row store.Row) (domain.Store, error) {
		var s domain.Store
		err := row.Scan(&s.ID, &s.Name)
		return s, err
	}, sqlStores)
}

func (r *queries) Totals(ctx context.Context, w period.DateRange, storeIDs []string) (Totals, error) {
	var t Totals
	err := r.q.QueryRow(ctx, sqlTotals, w.Start, until(w.End), nilIfEmpty(storeIDs)).Scan(&t.Sales, &t.Profit, &t.Transactions)
	return t, err
}

func (r *queries) SalesByStore(ctx context.Context, p period.Pair, storeIDs []string) ([]Comparison, error) {
	return store.Many(ctx, r.q, scanComparison, sqlSalesByStore,
		p.Current.Start, until(p.Current.End), p.Comparison.Start, until(p.Comparison.End), nilIfEmpty(storeIDs))
}

func (r *queries) TopProducts(ctx context.Context, p period.Pair, storeIDs []string, limit int) ([]Comparison, error) {
	return r.pair(ctx, sqlTopProducts, p, storeIDs, limit)
}

func (r *queries) TopCategories(ctx context.Context, p period.Pair, storeIDs []string, limit int) ([]Comparison, error) {
	return r.pair(ctx, sqlTopCategories, p, storeIDs, limit)
}

func (r *queries) ProductMovers(ctx context.Context, p period.Pair, storeIDs []string, limit int) ([]Comparison, error) {
	return r.pair(ctx, sqlProductMovers, p, storeIDs, limit)
}

func (r *queries) CategoryMovers(ctx context.Context, p period.Pair, storeIDs []string, limit int) ([]Comparison, error) {
	return r.pair(ctx, sqlCategoryMovers, p, storeIDs, limit)
}

// pair runs a keyed comparison query over both windows
func (r *queries) pair(ctx context.Context, sql string, p period.Pair, storeIDs []string, limit int) ([]Comparison, error) {
	return store.Many(ctx, r.q, scanComparison, sql,
		p.Current.Start, until(p.Current.End), p.Comparison.Start, until(p.Comparison.End), nilIfEmpty(storeIDs), limit)
}

// Trend truncates in loc on the server; the naive result is re-attached to loc
func (r *queries) Trend(ctx context.Context, w period.DateRange, storeIDs []string, g domain.Granularity, loc *time.Location) ([]Bucket, error) {
	return store.Many(ctx, r.q, func(row store.Row) (Bucket, error) {
		var (
			b     Bucket
			naive time.Time
		)
		if err := row.Scan(&naive, &b.Sales); err != nil {
			return b, err
		}
		b.At = time.Date(naive.Year(), naive.Month(), naive.Day(), naive.Hour(), 0, 0, 0, loc)
		return b, nil
	}, sqlTrend, w.Start, until(w.End), nilIfEmpty(storeIDs), string(g), loc.String())
}

// until is the exclusive bound after an inclusive window end; the store keeps
// microseconds, so rows after 23:59:59.999 still belong to the day
func until(end time.Time) time.Time { return end.Add(time.Millisecond) }

func scanComparison(row store.Row) (Comparison, error) {
	var c Comparison
	err := row.Scan(&c.Key, &c.Current, &c.Previous)
	return c, err
}
