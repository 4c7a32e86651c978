package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func pg(code string) error { return &pgconn.PgError{Code: code, Message: "pg " + code} }

func TestDBErrorCodeMappings(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
		ok   bool
	}{
		{"no rows", pgx.ErrNoRows, ErrorCodeNotFound, true},
		{"bad text", pg(pgInvalidTextRepresentation), ErrorCodeInvalidArgument, true},
		{"bad datetime", pg(pgInvalidDatetimeFormat), ErrorCodeInvalidArgument, true},
		{"datetime overflow", pg(pgDatetimeFieldOverflow), ErrorCodeInvalidArgument, true},
		{"canceled", pg(pgQueryCanceled), ErrorCodeUnavailable, true},
		{"cannot connect", pg(pgCannotConnectNow), ErrorCodeUnavailable, true},
		{"undefined table", pg(pgUndefinedTable), ErrorCodeDB, true},
		{"other", pg("XX000"), ErrorCodeDB, true},
		{"wrapped", fmt.Errorf("q: %w", pg(pgDeadlockDetected)), ErrorCodeUnavailable, true},
		{"foreign", stderrs.New("x"), ErrorCodeUnknown, false},
	}
	for _, c := range cases {
		got, ok := DBErrorCode(c.err)
		if got != c.want || ok != c.ok {
			t.Errorf("%s: got (%v,%v), want (%v,%v)", c.name, got, ok, c.want, c.ok)
		}
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
	err := FromPostgres(pg(pgUndefinedColumn), "kpis")
	if CodeOf(err) != ErrorCodeDB {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if !IsSQLState(err, pgUndefinedColumn) {
		t.Fatalf("SQLSTATE lost through wrap")
	}
	if got := CodeOf(FromPostgres(context.DeadlineExceeded, "kpis")); got != ErrorCodeUnavailable {
		t.Fatalf("deadline code = %v", got)
	}
	if got := CodeOf(FromPostgres(stderrs.New("driver"), "kpis")); got != ErrorCodeDB {
		t.Fatalf("foreign code = %v", got)
	}
	err = FromPostgresf(pgx.ErrNoRows, "store %d", 9)
	if pe, _ := As(err); pe.Code() != ErrorCodeNotFound || pe.Message() != "store 9" {
		t.Fatalf("FromPostgresf = %+v", pe)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{fmt.Errorf("x: %w", context.DeadlineExceeded), false},
		{pg(pgSerializationFailure), true},
		{pg(pgAdminShutdown), true},
		{pg(pgUndefinedTable), false},
		{stderrs.New("read: connection reset by peer"), true},
		{stderrs.New("syntax"), false},
	}
	for _, c := range cases {
		if got := IsRetryable(c.err); got != c.want {
			t.Errorf("IsRetryable(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}
