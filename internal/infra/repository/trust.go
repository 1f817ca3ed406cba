package repository

import (
	"context"
	"errors"
	"time"

	"collabflow/internal/domain/trust"
	"collabflow/internal/infra"
	"collabflow/internal/infra/repository/converter"
	"collabflow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DeclineRepository struct {
	db DBTX
}

func NewDeclineRepository(db DBTX) *DeclineRepository {
	return &DeclineRepository{db: db}
}

func (r *DeclineRepository) Create(ctx context.Context, d trust.Decline) error {
	_, err := r.db.Exec(ctx, `INSERT INTO decline_records (id, request_id, creator_id, category, reason, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.RequestID, d.CreatorID, string(d.Category), d.Reason, d.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create decline record", err)
	}
	return nil
}

func (r *DeclineRepository) ListByCreatorSince(ctx context.Context, creatorID uuid.UUID, since time.Time) ([]trust.Decline, error) {
	return r.list(ctx, `SELECT id, request_id, creator_id, category, reason, created_at
FROM decline_records
WHERE creator_id = $1 AND created_at > $2
ORDER BY created_at`, creatorID, since)
}

func (r *DeclineRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]trust.Decline, error) {
	return r.list(ctx, `SELECT id, request_id, creator_id, category, reason, created_at
FROM decline_records
WHERE request_id = $1
ORDER BY created_at`, requestID)
}

func (r *DeclineRepository) list(ctx context.Context, query string, args ...any) ([]trust.Decline, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list decline records", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (trust.Decline, error) {
		var (
			d        trust.Decline
			category string
		)
		err := row.Scan(&d.ID, &d.RequestID, &d.CreatorID, &category, &d.Reason, &d.CreatedAt)
		d.Category = trust.DeclineCategory(category)
		d.CreatedAt = d.CreatedAt.UTC()
		return d, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan decline records", err)
	}
	return out, nil
}

type TrustRepository struct {
	db   DBTX
	lock bool
}

// NewTrustRepository: with lock set, Get takes a per-creator transaction
// lock so concurrent declines for one creator serialize.
func NewTrustRepository(db DBTX, lock bool) *TrustRepository {
	return &TrustRepository{db: db, lock: lock}
}

func (r *TrustRepository) Get(ctx context.Context, creatorID uuid.UUID) (*trust.Standing, error) {
	if r.lock {
		if err := lockCreator(ctx, r.db, "trust", creatorID); err != nil {
			return nil, err
		}
	}
	var row converter.StandingRow
	err := r.db.QueryRow(ctx, `SELECT creator_id, suspended_until, suspension_count, last_warning_at, updated_at
FROM trust_standings
WHERE creator_id = $1`, creatorID).Scan(row.ScanTargets()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return trust.NewStanding(creatorID), nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get trust standing", err)
	}
	return converter.StandingFromRow(row), nil
}

func (r *TrustRepository) Save(ctx context.Context, s *trust.Standing) error {
	_, err := r.db.Exec(ctx, `INSERT INTO trust_standings (creator_id, suspended_until, suspension_count, last_warning_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (creator_id) DO UPDATE SET
	suspended_until = EXCLUDED.suspended_until,
	suspension_count = EXCLUDED.suspension_count,
	last_warning_at = EXCLUDED.last_warning_at,
	updated_at = EXCLUDED.updated_at`,
		s.CreatorID(),
		pgconv.TimePtrToPgtype(s.SuspendedUntil()),
		s.SuspensionCount(),
		pgconv.TimePtrToPgtype(s.LastWarningAt()),
		s.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to save trust standing", err)
	}
	return nil
}
