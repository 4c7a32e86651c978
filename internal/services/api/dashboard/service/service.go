// Package service resolves dashboard windows and compares them through the repo
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"bizdash/internal/core/period"
	"bizdash/internal/modkit/repokit"
	perr "bizdash/internal/platform/errors"
	"bizdash/internal/platform/logger"
	str "bizdash/internal/platform/strings"
	ptime "bizdash/internal/platform/time"
	"bizdash/internal/services/api/dashboard/domain"
	drepo "bizdash/internal/services/api/dashboard/repo"

	"github.com/shopspring/decimal"
)

// DefaultTopLimit is the row count of the top lists when the caller sends none
const DefaultTopLimit = 10

// CategoryMoverLimit caps the category movers list
const CategoryMoverLimit = 6

// Trend sources reported on TrendResp
const (
	SourcePG = "pg"
	SourceCH = "ch"
)

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	DB       repokit.TxRunner
	Repo     repokit.Binder[drepo.Repo]
	Trend    drepo.TrendSource
	Resolver period.Resolver
	Clock    ptime.Clock
	Default  period.Identifier
	TopLimit int

	ttl   time.Duration
	cache *resultCache
}

var _ domain.ServicePort = (*Service)(nil)

// Option configures the service
type Option func(*Service)

// WithColumnar serves the sales trend from ts; nil keeps postgres
func WithColumnar(ts drepo.TrendSource) Option { return func(s *Service) { s.Trend = ts } }

// WithCacheTTL keeps results for d; zero disables the cache
func WithCacheTTL(d time.Duration) Option { return func(s *Service) { s.ttl = d } }

// WithDefault sets the period used when a request names none
func WithDefault(id period.Identifier) Option { return func(s *Service) { s.Default = id } }

// WithTopLimit sets the default row count of the top lists
func WithTopLimit(n int) Option { return func(s *Service) { s.TopLimit = n } }

// New constructs the dashboard service; db may be nil when postgres is disabled
func New(db repokit.TxRunner, b repokit.Binder[drepo.Repo], res period.Resolver, clock ptime.Clock, opts ...Option) *Service {
	if b == nil {
		panic("dashboard.Service requires a non-nil repo binder")
	}
	if clock == nil {
		panic("dashboard.Service requires a non-nil Clock")
	}
	s := &Service{DB: db, Repo: b, Resolver: res, Clock: clock, Default: period.Default(), TopLimit: DefaultTopLimit}
	for _, o := range opts {
		o(s)
	}
	if !s.Default.Valid() {
		panic(fmt.Sprintf("dashboard.Service default %q is not a period identifier", s.Default))
	}
	if s.TopLimit <= 0 {
		s.TopLimit = DefaultTopLimit
	}
	s.cache = newResultCache(s.ttl, clock)
	return s
}

// Stores lists the selectable stores by name
func (s *Service) Stores(ctx context.Context) ([]domain.Store, error) {
	if s.DB == nil {
		return nil, errNoPG
	}
	return cached(s.cache, "stores", func() ([]domain.Store, error) {
		out, err := repokit.MustBind(s.Repo, s.DB).Stores(ctx)
		if err != nil {
			return nil, s.fail(ctx, "stores", err)
		}
		return out, nil
	})
}

// KPIs reads both windows' totals in one snapshot and compares them
func (s *Service) KPIs(ctx context.Context, in domain.QueryInput) (domain.KPIResp, error) {
	q, err := s.resolve(in)
	if err != nil {
		return domain.KPIResp{}, err
	}
	if s.DB == nil {
		return domain.KPIResp{}, errNoPG
	}
	return cached(s.cache, s.key("kpis", q), func() (domain.KPIResp, error) {
		var cur, prev drepo.Totals
		err := repokit.WithTx(ctx, s.DB, func(tx repokit.Queryer) error {
			r := repokit.MustBind(s.Repo, tx)
			var err error
			if cur, err = r.Totals(ctx, q.Pair.Current, q.StoreIDs); err != nil {
				return err
			}
			prev, err = r.Totals(ctx, q.Pair.Comparison, q.StoreIDs)
			return err
		})
		if err != nil {
			return domain.KPIResp{}, s.fail(ctx, "kpis", err)
		}
		c, p := totalsOf(cur), totalsOf(prev)
		return domain.KPIResp{
			Current:  c,
			Previous: p,
			Change: domain.KPIChange{
				Sales:               period.ChangeDecimal(c.TotalSales, p.TotalSales),
				Profit:              period.ChangeDecimal(c.TotalProfit, p.TotalProfit),
				Transactions:        period.ChangeDecimal(decimal.NewFromInt(c.Transactions), decimal.NewFromInt(p.Transactions)),
				AvgTransactionValue: period.ChangeDecimal(c.AvgTransactionValue, p.AvgTransactionValue),
			},
			Window: s.window(q),
		}, nil
	})
}

// SalesByStore compares each store's sales
func (s *Service) SalesByStore(ctx context.Context, in domain.QueryInput) ([]domain.StoreSales, error) {
	return compare(ctx, s, "sales-by-store", in,
		func(r drepo.Repo, q domain.Query) ([]drepo.Comparison, error) {
			return r.SalesByStore(ctx, q.Pair, q.StoreIDs)
		},
		func(c drepo.Comparison) domain.StoreSales {
			return domain.StoreSales{StoreName: c.Key, CurrentSales: c.Current, PreviousSales: c.Previous, ChangePct: period.ChangeDecimal(c.Current, c.Previous)}
		})
}

// TopProducts compares the best selling products of the current window
func (s *Service) TopProducts(ctx context.Context, in domain.QueryInput) ([]domain.ProductSales, error) {
	limit := s.limit(in)
	return compare(ctx, s, fmt.Sprintf("top-products:%d", limit), in,
		func(r drepo.Repo, q domain.Query) ([]drepo.Comparison, error) {
			return r.TopProducts(ctx, q.Pair, q.StoreIDs, limit)
		},
		func(c drepo.Comparison) domain.ProductSales {
			return domain.ProductSales{ProductName: c.Key, CurrentSales: c.Current, PreviousSales: c.Previous, ChangePct: period.ChangeDecimal(c.Current, c.Previous)}
		})
}

// TopCategories compares the best selling categories of the current window
func (s *Service) TopCategories(ctx context.Context, in domain.QueryInput) ([]domain.CategorySales, error) {
	limit := s.limit(in)
	return compare(ctx, s, fmt.Sprintf("top-categories:%d", limit), in,
		func(r drepo.Repo, q domain.Query) ([]drepo.Comparison, error) {
			return r.TopCategories(ctx, q.Pair, q.StoreIDs, limit)
		},
		func(c drepo.Comparison) domain.CategorySales {
			return domain.CategorySales{Category: c.Key, CurrentSales: c.Current, PreviousSales: c.Previous, ChangePct: period.ChangeDecimal(c.Current, c.Previous)}
		})
}

// TopMovers ranks products and categories by absolute change in sales between the windows
func (s *Service) TopMovers(ctx context.Context, in domain.QueryInput) (domain.MoversResp, error) {
	q, err := s.resolve(in)
	if err != nil {
		return domain.MoversResp{}, err
	}
	if s.DB == nil {
		return domain.MoversResp{}, errNoPG
	}
	limit := s.limit(in)

	return cached(s.cache, s.key(fmt.Sprintf("top-movers:%d", limit), q), func() (domain.MoversResp, error) {
		var products, categories []drepo.Comparison
		err := repokit.WithTx(ctx, s.DB, func(tx repokit.Queryer) error {
			r := repokit.MustBind(s.Repo, tx)
			var err error
			if products, err = r.ProductMovers(ctx, q.Pair, q.StoreIDs, limit); err != nil {
				return err
			}
			categories, err = r.CategoryMovers(ctx, q.Pair, q.StoreIDs, min(limit, CategoryMoverLimit))
			return err
		})
		if err != nil {
			return domain.MoversResp{}, s.fail(ctx, "top-movers", err)
		}
		return domain.MoversResp{
			Products:   movers(products),
			Categories: movers(categories),
			Window:     s.window(q),
		}, nil
	})
}

func movers(rows []drepo.Comparison) []domain.Mover {
	out := make([]domain.Mover, 0, len(rows))
	for _, c := range rows {
		diff := c.Current.Sub(c.Previous)
		dir := domain.Flat
		switch diff.Sign() {
		case 1:
			dir = domain.Up
		case -1:
			dir = domain.Down
		}
		out = append(out, domain.Mover{
			Name:          c.Key,
			CurrentSales:  c.Current,
			PreviousSales: c.Previous,
			Change:        diff,
			ChangePct:     period.ChangeDecimal(c.Current, c.Previous),
			Direction:     dir,
		})
	}
	return out
}

// SalesTrend buckets both windows, from clickhouse when configured
func (s *Service) SalesTrend(ctx context.Context, in domain.QueryInput) (domain.TrendResp, error) {
	q, err := s.resolve(in)
	if err != nil {
		return domain.TrendResp{}, err
	}
	g := in.Granularity
	if g == "" {
		g = domain.Day
	}
	if s.Trend == nil && s.DB == nil {
		return domain.TrendResp{}, errNoPG
	}
	loc := s.Resolver.Location()

	return cached(s.cache, s.key("sales-trend:"+string(g), q), func() (domain.TrendResp, error) {
		var (
			cur, prev []drepo.Bucket
			source    = SourcePG
		)
		if s.Trend != nil {
			source = SourceCH
			var err error
			if cur, err = s.Trend.Trend(ctx, q.Pair.Current, q.StoreIDs, g, loc); err == nil {
				prev, err = s.Trend.Trend(ctx, q.Pair.Comparison, q.StoreIDs, g, loc)
			}
			if err != nil {
				return domain.TrendResp{}, s.failColumnar(ctx, "sales-trend", err)
			}
		} else {
			err := repokit.WithTx(ctx, s.DB, func(tx repokit.Queryer) error {
				r := repokit.MustBind(s.Repo, tx)
				var err error
				if cur, err = r.Trend(ctx, q.Pair.Current, q.StoreIDs, g, loc); err != nil {
					return err
				}
				prev, err = r.Trend(ctx, q.Pair.Comparison, q.StoreIDs, g, loc)
				return err
			})
			if err != nil {
				return domain.TrendResp{}, s.fail(ctx, "sales-trend", err)
			}
		}
		return domain.TrendResp{
			Granularity: g,
			Source:      source,
			Current:     points(cur, loc),
			Previous:    points(prev, loc),
			Window:      s.window(q),
		}, nil
	})
}

// Invalidate drops every cached result
func (s *Service) Invalidate(ctx context.Context) domain.InvalidateResp {
	n := s.cache.purge()
	logger.C(ctx).Info().Int("evicted", n).Msg("dashboard cache invalidated")
	return domain.InvalidateResp{Evicted: n}
}

var errNoPG = perr.Unavailablef("postgres is not configured")

// compare resolves in, reads the comparison rows in one snapshot and maps them
func compare[T any](
	ctx context.Context,
	s *Service,
	endpoint string,
	in domain.QueryInput,
	fetch func(drepo.Repo, domain.Query) ([]drepo.Comparison, error),
	row func(drepo.Comparison) T,
) ([]T, error) {
	q, err := s.resolve(in)
	if err != nil {
		return nil, err
	}
	if s.DB == nil {
		return nil, errNoPG
	}
	return cached(s.cache, s.key(endpoint, q), func() ([]T, error) {
		rows, err := repokit.Collect(ctx, s.DB, s.Repo, func(r drepo.Repo) ([]drepo.Comparison, error) {
			return fetch(r, q)
		})
		if err != nil {
			return nil, s.fail(ctx, endpoint, err)
		}
		out := make([]T, 0, len(rows))
		for _, c := range rows {
			out = append(out, row(c))
		}
		return out, nil
	})
}

// resolve turns the request into a window pair
// explicit bounds win; otherwise the period, or the default, is resolved against the clock
func (s *Service) resolve(in domain.QueryInput) (domain.Query, error) {
	loc := s.Resolver.Location()
	q := domain.Query{StoreIDs: normalizeStores(in.StoreIDs)}

	if v := explicit(in); period.HasParams(v) {
		p, err := period.ParseParams(v, loc)
		if err != nil {
			return q, err
		}
		q.Pair = p
		return q, nil
	}

	id := s.Default
	if strings.TrimSpace(in.Period) != "" {
		parsed, err := period.ParseIdentifier(in.Period)
		if err != nil {
			return q, perr.WithField(err, "period")
		}
		id = parsed
	}
	bounds, err := period.ParseCustom(in.CustomStart, in.CustomEnd, loc)
	if err != nil {
		return q, err
	}
	p, err := s.Resolver.Resolve(id, s.Clock.Now(), bounds)
	if err != nil {
		return q, err
	}
	q.Period, q.Pair = id, p
	return q, nil
}

func explicit(in domain.QueryInput) url.Values {
	v := url.Values{}
	for k, s := range map[string]string{
		period.KeyStartDate:        in.StartDate,
		period.KeyEndDate:          in.EndDate,
		period.KeyCompareStartDate: in.CompareStartDate,
		period.KeyCompareEndDate:   in.CompareEndDate,
	} {
		if s != "" {
			v.Set(k, s)
		}
	}
	return v
}

// normalizeStores trims, dedupes and sorts so equal selections share a cache key
func normalizeStores(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	out = str.Dedupe(out)
	slices.Sort(out)
	return out
}

func (s *Service) window(q domain.Query) domain.Window {
	return domain.Window{
		Period:         q.Period,
		Params:         q.Pair.ParamsIn(s.Resolver.Location()),
		CurrentDays:    q.Pair.Current.Days(),
		ComparisonDays: q.Pair.Comparison.Days(),
	}
}

func (s *Service) key(endpoint string, q domain.Query) string {
	return endpoint + "|" + s.windowKey(q) + "|" + strings.Join(q.StoreIDs, ",")
}

// windowKey names the resolved windows; to-date windows end at now, so now is
// bucketed by the ttl and requests inside one bucket share an entry
func (s *Service) windowKey(q domain.Query) string {
	if !q.Period.ToDate() || s.ttl <= 0 {
		return q.Pair.Params().Encode()
	}
	return fmt.Sprintf("%s:%s:%s:%d",
		q.Period,
		q.Pair.Current.Start.Format(time.DateOnly),
		q.Pair.Comparison.End.Format(time.DateOnly),
		q.Pair.Current.End.Truncate(s.ttl).Unix(),
	)
}

func (s *Service) limit(in domain.QueryInput) int {
	if in.Limit > 0 {
		return in.Limit
	}
	return s.TopLimit
}

func (s *Service) fail(ctx context.Context, op string, err error) error {
	out := perr.WithOp(perr.FromPostgres(err, "dashboard "+op), op)
	logger.C(ctx).Error().Err(err).Str("op", op).Bool("retryable", perr.IsRetryable(err)).Msg("dashboard query failed")
	return out
}

func (s *Service) failColumnar(ctx context.Context, op string, err error) error {
	code := perr.ErrorCodeDB
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		code = perr.ErrorCodeUnavailable
	}
	logger.C(ctx).Error().Err(err).Str("op", op).Str("source", SourceCH).Msg("dashboard query failed")
	return perr.WithOp(perr.Wrap(err, code, "dashboard "+op), op)
}

func totalsOf(t drepo.Totals) domain.Totals {
	avg := decimal.Zero
	if t.Transactions > 0 {
		avg = t.Sales.Div(decimal.NewFromInt(t.Transactions)).Round(2)
	}
	return domain.Totals{
		TotalSales:          t.Sales,
		TotalProfit:         t.Profit,
		Transactions:        t.Transactions,
		AvgTransactionValue: avg,
	}
}

func points(bs []drepo.Bucket, loc *time.Location) []domain.TrendPoint {
	out := make([]domain.TrendPoint, 0, len(bs))
	for _, b := range bs {
		out = append(out, domain.TrendPoint{Date: b.At.In(loc).Format(period.ISOLayout), Sales: b.Sales})
	}
	return out
}
