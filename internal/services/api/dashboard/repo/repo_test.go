package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"bizdash/internal/core/period"
	"bizdash/internal/modkit/repokit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	sql  string
	args []any
}

func (r *recorder) Query(_ context.Context, sql string, args ...any) (repokit.Rows, error) {
	r.sql, r.args = sql, args
	return nil, errors.New("recorder: no rows")
}

func (r *recorder) QueryRow(_ context.Context, sql string, args ...any) repokit.Row {
	r.sql, r.args = sql, args
	return errRow{}
}

type errRow struct{}

func (errRow) Scan(...any) error { return errors.New("recorder: no row") }

func TestQueries_WindowsAreHalfOpen(t *testing.T) {
	loc := time.FixedZone("PHT", 8*60*60)
	p, err := period.NewResolver(loc).Resolve(period.Yesterday, time.Date(2024, time.March, 15, 10, 0, 0, 0, loc), nil)
	require.NoError(t, err)
	rec := &recorder{}
	r := NewPG().Bind(rec)

	_, _ = r.Totals(context.Background(), p.Current, nil)
	assert.Contains(t, rec.sql, "t.transaction_time < $2")
	assert.NotContains(t, rec.sql, "BETWEEN")
	require.Len(t, rec.args, 3)
	assert.True(t, rec.args[0].(time.Time).Equal(time.Date(2024, time.March, 14, 0, 0, 0, 0, loc)))
	assert.True(t, rec.args[1].(time.Time).Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, loc)),
		"a row at 23:59:59.9995 still falls before the bound")
	assert.Nil(t, rec.args[2])

	_, _ = r.SalesByStore(context.Background(), p, []string{"mnl-01"})
	require.Len(t, rec.args, 5)
	assert.True(t, rec.args[3].(time.Time).Equal(time.Date(2024, time.March, 8, 0, 0, 0, 0, loc)))
	assert.Equal(t, []string{"mnl-01"}, rec.args[4])
}

func TestSalesByStore_KeyedByStoreID(t *testing.T) {
	assert.Contains(t, sqlSalesByStore, "GROUP BY s.id, s.name")
	assert.Contains(t, sqlSalesByStore, "ON c.id = p.id")
}

func TestMovers_RankByAbsoluteChange(t *testing.T) {
	loc := time.FixedZone("PHT", 8*60*60)
	p, err := period.NewResolver(loc).Resolve(period.Last7Days, time.Date(2024, time.March, 15, 10, 0, 0, 0, loc), nil)
	require.NoError(t, err)
	rec := &recorder{}
	r := NewPG().Bind(rec)

	_, err = r.ProductMovers(context.Background(), p, nil, 10)
	require.Error(t, err)
	assert.Contains(t, rec.sql, "GROUP BY p.name")
	assert.Contains(t, rec.sql, "ORDER BY ABS(")
	assert.Contains(t, rec.sql, "<> COALESCE(p.sales, 0)")
	require.Len(t, rec.args, 6)
	assert.Equal(t, 10, rec.args[5])

	_, _ = r.CategoryMovers(context.Background(), p, []string{"mnl-02"}, 6)
	assert.Contains(t, rec.sql, "COALESCE(p.category, 'n/a')")
	assert.Contains(t, rec.sql, "ORDER BY ABS(")
	assert.Equal(t, []string{"mnl-02"}, rec.args[4])
	assert.Equal(t, 6, rec.args[5])
}
