package repokit

import (
	"context"
	"errors"
	"testing"

	"bizdash/internal/platform/store"
	"bizdash/internal/platform/testkit"
)

type fakeQ struct{ id int }

func (f *fakeQ) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeQ) QueryRow(context.Context, string, ...any) store.Row        { return nil }

type fakeTx struct {
	fakeQ
	q     Queryer
	err   error
	calls int
}

func (f *fakeTx) Tx(_ context.Context, fn func(Queryer) error) error {
	f.calls++
	if err := fn(f.q); err != nil {
		return err
	}
	return f.err
}

var (
	_ Queryer  = (*fakeQ)(nil)
	_ TxRunner = (*fakeTx)(nil)
)

func TestBindFunc(t *testing.T) {
	q := &fakeQ{id: 3}
	b := BindFunc[int](func(q Queryer) int { return q.(*fakeQ).id })
	if got := MustBind[int](b, q); got != 3 {
		t.Fatalf("bound = %d, want 3", got)
	}
	if RequireQueryer(q) != Queryer(q) {
		t.Fatal("RequireQueryer should return its input")
	}
	testkit.MustPanic(t, func() { _ = RequireQueryer(nil) })
	testkit.MustPanic(t, func() { _ = MustBind[int](b, nil) })
}

func TestWithTx(t *testing.T) {
	inner := &fakeQ{id: 1}
	tx := &fakeTx{q: inner}
	var seen Queryer
	if err := WithTx(context.Background(), tx, func(q Queryer) error { seen = q; return nil }); err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if seen != Queryer(inner) || tx.calls != 1 {
		t.Fatalf("seen=%v calls=%d", seen, tx.calls)
	}

	boom := errors.New("boom")
	if err := WithTx(context.Background(), tx, func(Queryer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("fn error lost: %v", err)
	}
	tx.err = boom
	if err := WithTx(context.Background(), tx, func(Queryer) error { return nil }); !errors.Is(err, boom) {
		t.Fatalf("tx error lost: %v", err)
	}
}

func TestCollect(t *testing.T) {
	tx := &fakeTx{q: &fakeQ{id: 9}}
	b := BindFunc[*fakeQ](func(q Queryer) *fakeQ { return q.(*fakeQ) })

	got, err := Collect(context.Background(), tx, Binder[*fakeQ](b), func(r *fakeQ) (int, error) { return r.id * 2, nil })
	if err != nil || got != 18 {
		t.Fatalf("Collect = %d, %v", got, err)
	}

	boom := errors.New("scan")
	got, err = Collect(context.Background(), tx, Binder[*fakeQ](b), func(*fakeQ) (int, error) { return 0, boom })
	if !errors.Is(err, boom) || got != 0 {
		t.Fatalf("Collect error = %d, %v", got, err)
	}
}
