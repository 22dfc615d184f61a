package infra

import (
	"errors"

	"carshare-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func WrapRepoErr(msg string, err error, kinds ...RepositoryErrorKind) error {
	kind := KindDBFailure
	if len(kinds) > 0 {
		kind = kinds[0]
	} else {
		kind = classifyPgError(err, kind)
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	// KindConflict covers the exclusion constraint that backstops the
	// no-overlap invariant for accepted bookings.
	KindConflict RepositoryErrorKind = "CONFLICT"
	// KindLockTimeout means the per-car advisory lock was not acquired within
	// lock_timeout; the whole submission should be retried by the caller.
	KindLockTimeout RepositoryErrorKind = "LOCK_TIMEOUT"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	pgCodeUniqueViolation    = "23505"
	pgCodeFKViolation        = "23503"
	pgCodeExclusionViolation = "23P01"
	pgCodeLockNotAvailable   = "55P03"
)

func classifyPgError(err error, fallback RepositoryErrorKind) RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fallback
	}
	switch pgErr.Code {
	case pgCodeUniqueViolation:
		return KindDuplicateKey
	case pgCodeFKViolation:
		return KindForeignKeyViolated
	case pgCodeExclusionViolation:
		return KindConflict
	case pgCodeLockNotAvailable:
		return KindLockTimeout
	default:
		return fallback
	}
}

// IsNoRows checks for pgx's empty result sentinel.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
