package repository

import (
	"context"

	"collabflow/internal/domain/escrow"
	"collabflow/internal/infra"
	"collabflow/internal/infra/repository/converter"

	"github.com/google/uuid"
)

const escrowColumns = `id, request_id, reference,
	amount, currency, platform_fee, creator_payout, fee_basis_points, tier,
	status, attempts, failure_reason,
	created_at, escrow_at, released_at, failed_at, updated_at, version`

type EscrowRepository struct {
	db DBTX
}

func NewEscrowRepository(db DBTX) *EscrowRepository {
	return &EscrowRepository{db: db}
}

func (r *EscrowRepository) GetByRequest(ctx context.Context, requestID uuid.UUID) (*escrow.Record, error) {
	return r.get(ctx, `SELECT `+escrowColumns+` FROM escrow_records WHERE request_id = $1`, requestID)
}

func (r *EscrowRepository) GetByReference(ctx context.Context, reference string) (*escrow.Record, error) {
	return r.get(ctx, `SELECT `+escrowColumns+` FROM escrow_records WHERE reference = $1`, reference)
}

func (r *EscrowRepository) get(ctx context.Context, query string, arg any) (*escrow.Record, error) {
	var row converter.EscrowRow
	if err := r.db.QueryRow(ctx, query, arg).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to get escrow record", err)
	}
	return converter.EscrowFromRow(row)
}

func (r *EscrowRepository) Create(ctx context.Context, rec *escrow.Record) error {
	row := converter.EscrowToRow(rec)
	_, err := r.db.Exec(ctx, `INSERT INTO escrow_records (`+escrowColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		row.ID, row.RequestID, row.Reference,
		row.Amount, row.Currency, row.PlatformFee, row.CreatorPayout, row.FeeBasisPoints, row.Tier,
		row.Status, row.Attempts, row.FailureReason,
		row.CreatedAt, row.EscrowAt, row.ReleasedAt, row.FailedAt, row.UpdatedAt, row.Version)
	if err != nil {
		return infra.WrapRepoErr("failed to create escrow record", err)
	}
	return nil
}

func (r *EscrowRepository) Update(ctx context.Context, rec *escrow.Record) error {
	row := converter.EscrowToRow(rec)
	tag, err := r.db.Exec(ctx, `UPDATE escrow_records SET
	reference = $3,
	amount = $4,
	platform_fee = $5,
	creator_payout = $6,
	fee_basis_points = $7,
	tier = $8,
	status = $9,
	attempts = $10,
	failure_reason = $11,
	escrow_at = $12,
	released_at = $13,
	failed_at = $14,
	updated_at = $15,
	version = version + 1
WHERE id = $1 AND version = $2`,
		row.ID, row.Version,
		row.Reference, row.Amount, row.PlatformFee, row.CreatorPayout, row.FeeBasisPoints, row.Tier,
		row.Status, row.Attempts, row.FailureReason,
		row.EscrowAt, row.ReleasedAt, row.FailedAt, row.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update escrow record", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindStaleVersion, "escrow record was modified concurrently", nil)
	}
	rec.BumpVersion()
	return nil
}
