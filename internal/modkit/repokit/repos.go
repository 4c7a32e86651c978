// Package repokit provides the seams repositories are written against
package repokit

import (
	"context"

	"bizdash/internal/platform/store"
)

type (
	// Queryer is the read surface a bound repo runs statements on
	Queryer = store.RowQuerier

	// TxRunner runs a group of reads inside one snapshot
	TxRunner = store.TxRunner

	// Rows is a result set
	Rows = store.Rows

	// Row is a single row result
	Row = store.Row

	// Columnar is the clickhouse read seam
	Columnar = store.Clickhouse
)

// WithTx runs fn inside a snapshot using tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// Collect binds a repo inside one snapshot and returns fn's result
func Collect[R, T any](ctx context.Context, tx TxRunner, b Binder[R], fn func(R) (T, error)) (T, error) {
	var out T
	err := tx.Tx(ctx, func(q Queryer) error {
		var e error
		out, e = fn(MustBind(b, q))
		return e
	})
	return out, err
}
