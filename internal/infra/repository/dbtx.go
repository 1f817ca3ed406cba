package repository

//go:generate mockgen -source=dbtx.go -destination=../../../tests/mock/repository/dbtx_mock.go -package=repositorymock

import (
	"context"

	"collabflow/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// lockCreator takes a transaction-scoped advisory lock for one creator's
// aggregate. It also covers creators that have no row yet.
func lockCreator(ctx context.Context, db DBTX, scope string, creatorID uuid.UUID) error {
	if _, err := db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, scope+":"+creatorID.String()); err != nil {
		return infra.WrapRepoErr("failed to lock "+scope, err)
	}
	return nil
}
