package infra

import (
	"errors"
	"log/slog"

	"collabflow/internal/pkg/errs"

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

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindStaleVersion       RepositoryErrorKind = "STALE_VERSION"
	KindCheckViolated      RepositoryErrorKind = "CHECK_VIOLATED"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeCheckViolation      = "23514"
)

// WrapRepoErr classifies a driver error and marks it with the matching
// error class so use cases can branch without knowing about pgx.
func WrapRepoErr(msg string, err error) error {
	if err == nil {
		return nil
	}

	kind := KindDBFailure
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		kind = KindNotFound
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			kind = KindDuplicateKey
		case pgErrCodeForeignKeyViolation:
			kind = KindForeignKeyViolated
		case pgErrCodeCheckViolation:
			kind = KindCheckViolated
		}
	}

	if kind == KindDBFailure || kind == KindCheckViolated {
		slog.Error("Repository error: "+msg,
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
	}

	return NewRepoErr(kind, msg, errs.Wrap(err, msg))
}

// NewRepoErr builds a RepositoryError without a driver cause, for stores
// that detect the condition themselves.
func NewRepoErr(kind RepositoryErrorKind, msg string, cause error) error {
	e := RepositoryError{Kind: kind, msg: msg, err: cause}
	switch kind {
	case KindNotFound:
		return errs.Mark(e, errs.ErrNotFound)
	case KindDuplicateKey:
		return errs.Mark(e, errs.ErrConflict)
	case KindStaleVersion:
		return errs.Mark(e, errs.ErrInvalidTransition)
	case KindCheckViolated:
		return errs.Mark(e, errs.ErrIntegrity)
	default:
		return e
	}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
