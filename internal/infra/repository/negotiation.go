package repository

import (
	"context"

	"collabflow/internal/domain/negotiation"
	"collabflow/internal/infra"
	"collabflow/internal/infra/repository/converter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type NegotiationRepository struct {
	db DBTX
}

func NewNegotiationRepository(db DBTX) *NegotiationRepository {
	return &NegotiationRepository{db: db}
}

func (r *NegotiationRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]negotiation.Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT id, request_id, sequence, author, author_id, amount, currency, message, created_at
FROM negotiation_entries
WHERE request_id = $1
ORDER BY sequence`, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list negotiation entries", err)
	}
	defer rows.Close()

	var out []negotiation.Entry
	for rows.Next() {
		var row converter.NegotiationRow
		if err := rows.Scan(row.ScanTargets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan negotiation entry", err)
		}
		e, err := converter.NegotiationFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list negotiation entries", err)
	}
	return out, nil
}

// Append relies on the (request_id, sequence) unique key to reject a
// concurrent writer that computed the same sequence.
func (r *NegotiationRepository) Append(ctx context.Context, entries ...negotiation.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`INSERT INTO negotiation_entries
(id, request_id, sequence, author, author_id, amount, currency, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.ID, e.RequestID, e.Sequence, string(e.Author), e.AuthorID,
			e.Amount.Minor(), e.Amount.Currency(), e.Message, e.CreatedAt)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			return infra.WrapRepoErr("failed to append negotiation entry", err)
		}
	}
	return nil
}
