package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"collabflow/internal/infra"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// retryPolicy bounds how often a write closure is replayed after a
// transient conflict.
type retryPolicy struct {
	maxRetries int
	base       time.Duration
}

var defaultRetry = retryPolicy{maxRetries: 3, base: 50 * time.Millisecond}

// delay doubles per attempt with up to 20% jitter.
func (p retryPolicy) delay(attempt int) time.Duration {
	d := time.Duration(1<<attempt) * p.base
	if j := int64(d / 5); j > 0 {
		d += time.Duration(rand.Int64N(j))
	}
	return d
}

type PostgresUoW struct {
	pool  *pgxpool.Pool
	retry retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool, retry: defaultRetry}
}

// Within runs fn under ReadCommitted with per-creator advisory locks and
// versioned updates. A concurrent writer surfaces as a stale version, and
// fn is replayed against fresh state.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	for attempt := 0; ; attempt++ {
		err := u.attempt(ctx, opts, true, fn)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		if attempt == u.retry.maxRetries {
			slog.ErrorContext(ctx, "transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		wait := u.retry.delay(attempt)
		slog.WarnContext(ctx, "retrying transaction",
			"attempt", attempt+1,
			"wait_ms", wait.Milliseconds(),
			"error", err.Error())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// WithinReadOnly gives fn one consistent snapshot across tables.
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.attempt(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, false, fn)
}

// attempt runs one transaction. Rollback happens before returning so a
// retry loop never holds two connections.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, lock bool, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	err = fn(ctx, &pgTx{dbtx: pgxTx, lock: lock})
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rbErr := pgxTx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		slog.WarnContext(ctx, "rollback failed", "error", rbErr.Error())
	}
	return err
}

func isRetryable(err error) bool {
	if infra.IsKind(err, infra.KindStaleVersion) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected, pgErrCodeLockNotAvailable:
		return true
	default:
		return false
	}
}
