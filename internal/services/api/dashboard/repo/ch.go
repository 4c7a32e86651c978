package repo

import (
	"context"
	"fmt"
	"time"

	"bizdash/internal/core/period"
	"bizdash/internal/modkit/repokit"
	"bizdash/internal/services/api/dashboard/domain"

	"github.com/shopspring/decimal"
)

// CHTrend serves the sales trend from the clickhouse transactions table
type CHTrend struct{ ch repokit.Columnar }

// NewCHTrend returns a TrendSource over ch, or nil when ch is nil
func NewCHTrend(ch repokit.Columnar) TrendSource {
	if ch == nil {
		return nil
	}
	return &CHTrend{ch: ch}
}

// bucket functions are interpolated, never user supplied
var chBuckets = map[domain.Granularity]string{
	domain.Hour: "toStartOfHour",
	domain.Day:  "toStartOfDay",
}

// Trend buckets sales in loc; sums travel as strings so Decimal columns stay exact
func (c *CHTrend) Trend(ctx context.Context, w period.DateRange, storeIDs []string, g domain.Granularity, loc *time.Location) ([]Bucket, error) {
	fn, ok := chBuckets[g]
	if !ok {
		return nil, fmt.Errorf("clickhouse trend: unsupported granularity %q", g)
	}
	if storeIDs == nil {
		storeIDs = []string{}
	}
	sql := fmt.Sprintf(`
		SELECT
			%s(toTimeZone(transaction_time, ?)) AS bucket,
			toString(sum(total))                AS sales
		FROM bizdash.transactions
		WHERE transaction_time >= ? AND transaction_time < ?
			AND is_cancelled = 0
			AND (empty(?) OR has(?, store_id))
		GROUP BY bucket
		ORDER BY bucket
	`, fn)

	rs, err := c.ch.Query(ctx, sql, loc.String(), w.Start, until(w.End), storeIDs, storeIDs)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	out := []Bucket{}
	for rs.Next() {
		var (
			at  time.Time
			raw string
		)
		if err := rs.Scan(&at, &raw); err != nil {
			return nil, err
		}
		sales, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("clickhouse trend: sales %q: %w", raw, err)
		}
		out = append(out, Bucket{At: at.In(loc), Sales: sales})
	}
	return out, rs.Err()
}
