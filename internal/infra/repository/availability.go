package repository

import (
	"context"
	"errors"
	"time"

	"collabflow/internal/domain/availability"
	"collabflow/internal/infra"
	"collabflow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type AvailabilityRepository struct {
	db   DBTX
	lock bool
}

func NewAvailabilityRepository(db DBTX, lock bool) *AvailabilityRepository {
	return &AvailabilityRepository{db: db, lock: lock}
}

func (r *AvailabilityRepository) Get(ctx context.Context, creatorID uuid.UUID) (*availability.Profile, error) {
	if r.lock {
		if err := lockCreator(ctx, r.db, "availability", creatorID); err != nil {
			return nil, err
		}
	}

	var (
		isAvailable  bool
		leadTimeDays int32
		updatedAt    time.Time
	)
	err := r.db.QueryRow(ctx, `SELECT is_available, lead_time_days, updated_at
FROM availability_profiles
WHERE creator_id = $1`, creatorID).Scan(&isAvailable, &leadTimeDays, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return availability.NewProfile(creatorID), nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get availability profile", err)
	}

	rows, err := r.db.Query(ctx, `SELECT id, start_date, end_date, reason, slot_type, request_id
FROM availability_slots
WHERE creator_id = $1
ORDER BY start_date, end_date`, creatorID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability slots", err)
	}
	slots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (availability.Slot, error) {
		var (
			s          availability.Slot
			start, end pgtype.Date
			slotType   string
			requestID  pgtype.UUID
		)
		if err := row.Scan(&s.ID, &start, &end, &s.Reason, &slotType, &requestID); err != nil {
			return availability.Slot{}, err
		}
		s.Start = pgconv.DateFromPgtype(start)
		s.End = pgconv.DateFromPgtype(end)
		s.Type = availability.SlotType(slotType)
		s.RequestID = pgconv.UUIDPtrFromPgtype(requestID)
		return s, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan availability slots", err)
	}

	return availability.ReconstructProfile(creatorID, isAvailable, int(leadTimeDays), slots, updatedAt.UTC()), nil
}

// Save rewrites the profile and its slot set.
func (r *AvailabilityRepository) Save(ctx context.Context, p *availability.Profile) error {
	_, err := r.db.Exec(ctx, `INSERT INTO availability_profiles (creator_id, is_available, lead_time_days, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (creator_id) DO UPDATE SET
	is_available = EXCLUDED.is_available,
	lead_time_days = EXCLUDED.lead_time_days,
	updated_at = EXCLUDED.updated_at`,
		p.CreatorID(), p.IsAvailable(), p.LeadTimeDays(), p.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to save availability profile", err)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM availability_slots WHERE creator_id = $1`, p.CreatorID()); err != nil {
		return infra.WrapRepoErr("failed to clear availability slots", err)
	}

	slots := p.Slots()
	if len(slots) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(`INSERT INTO availability_slots (id, creator_id, start_date, end_date, reason, slot_type, request_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			s.ID, p.CreatorID(),
			pgconv.DateToPgtype(s.Start), pgconv.DateToPgtype(s.End),
			s.Reason, string(s.Type), pgconv.UUIDPtrToPgtype(s.RequestID))
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range slots {
		if _, err := results.Exec(); err != nil {
			return infra.WrapRepoErr("failed to save availability slot", err)
		}
	}
	return nil
}
