package repository

import (
	"context"

	"collabflow/internal/domain/request"
	"collabflow/internal/infra"
	"collabflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRateCardNotFound = errs.NotFound("rate card not found for creator")

type RateCardReader struct {
	db DBTX
}

func NewRateCardReader(db DBTX) *RateCardReader {
	return &RateCardReader{db: db}
}

// Snapshots returns the active cards in the order of ids. Every id must
// belong to the creator.
func (r *RateCardReader) Snapshots(ctx context.Context, creatorID uuid.UUID, ids []uuid.UUID) ([]request.ServiceSnapshot, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, platform, price_minor
FROM rate_cards
WHERE creator_id = $1 AND id = ANY($2) AND is_active`, creatorID, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read rate cards", err)
	}
	cards, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (request.ServiceSnapshot, error) {
		var (
			s        request.ServiceSnapshot
			platform string
		)
		err := row.Scan(&s.RateCardID, &s.Name, &platform, &s.PriceMinor)
		s.Platform = request.Platform(platform)
		return s, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan rate cards", err)
	}
	return orderSnapshots(cards, ids)
}

func orderSnapshots(cards []request.ServiceSnapshot, ids []uuid.UUID) ([]request.ServiceSnapshot, error) {
	byID := make(map[uuid.UUID]request.ServiceSnapshot, len(cards))
	for _, c := range cards {
		byID[c.RateCardID] = c
	}
	out := make([]request.ServiceSnapshot, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, errs.Wrapf(ErrRateCardNotFound, "rate card %s", id)
		}
		out = append(out, c)
	}
	return out, nil
}
