package errors

// Postgres classification for the read paths: map driver failures onto
// ErrorCode and decide which are worth retrying

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the dashboard queries can plausibly hit
const (
	pgInvalidTextRepresentation = "22P02"
	pgInvalidDatetimeFormat     = "22007"
	pgDatetimeFieldOverflow     = "22008"
	pgUndefinedTable            = "42P01"
	pgUndefinedColumn           = "42703"
	pgSerializationFailure      = "40001"
	pgDeadlockDetected          = "40P01"
	pgQueryCanceled             = "57014"
	pgCannotConnectNow          = "57P03"
	pgAdminShutdown             = "57P01"
	pgConnectionFailure         = "08006"
)

// PgError returns the *pgconn.PgError at the root of err
func PgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsSQLState reports whether err is a Postgres error with the given SQLSTATE
func IsSQLState(err error, state string) bool {
	pe, ok := PgError(err)
	return ok && pe.Code == state
}

// DBErrorCode classifies a driver error; ok is false when err is not from Postgres
func DBErrorCode(err error) (ErrorCode, bool) {
	if stderrs.Is(err, pgx.ErrNoRows) {
		return ErrorCodeNotFound, true
	}
	pe, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pe.Code {
	case pgInvalidTextRepresentation, pgInvalidDatetimeFormat, pgDatetimeFieldOverflow:
		return ErrorCodeInvalidArgument, true
	case pgQueryCanceled, pgCannotConnectNow, pgAdminShutdown, pgConnectionFailure,
		pgSerializationFailure, pgDeadlockDetected:
		return ErrorCodeUnavailable, true
	case pgUndefinedTable, pgUndefinedColumn:
		return ErrorCodeDB, true
	default:
		return ErrorCodeDB, true
	}
}

// FromPostgres wraps a driver error with a mapped code; nil stays nil
// deadline and cancel from ctx map to Unavailable so handlers answer 503
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(err, context.Canceled) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromPostgresf is the formatted variant of FromPostgres
func FromPostgresf(err error, format string, a ...any) error {
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// IsRetryable reports whether a database error is transient
// local cancellation is never retryable; the caller gave up
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pe, ok := PgError(err); ok {
		switch pe.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgCannotConnectNow, pgAdminShutdown, pgConnectionFailure:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "terminating connection due to administrator command") ||
		strings.Contains(s, "connection reset by peer") ||
		strings.Contains(s, "conn closed")
}
