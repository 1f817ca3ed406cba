package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"collabflow/internal/domain/request"
	"collabflow/internal/infra"
	"collabflow/internal/infra/repository/converter"
	"collabflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const requestColumns = `id, reference_number, brand_id, creator_id,
	proposed_budget, currency, final_budget,
	proposed_start, proposed_end,
	description, content_requirements, target_platforms, deliverables, services,
	status, created_at, updated_at,
	expires_at, viewed_at, accepted_at,
	revision_count, max_revisions,
	decline_category, decline_reason,
	brand_signed_at, creator_signed_at,
	content_urls, revision_notes,
	submitted_at, approved_at, completed_at, cancelled_at,
	conversation_id, version`

const insertRequestSQL = `INSERT INTO collaboration_requests (` + requestColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
	$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34)`

// Immutable columns (ids, reference, parties, terms, created_at) are never rewritten.
const updateRequestSQL = `UPDATE collaboration_requests SET
	final_budget = $3,
	status = $4,
	updated_at = $5,
	expires_at = $6,
	viewed_at = $7,
	accepted_at = $8,
	revision_count = $9,
	decline_category = $10,
	decline_reason = $11,
	brand_signed_at = $12,
	creator_signed_at = $13,
	content_urls = $14,
	revision_notes = $15,
	submitted_at = $16,
	approved_at = $17,
	completed_at = $18,
	cancelled_at = $19,
	conversation_id = $20,
	version = version + 1
WHERE id = $1 AND version = $2`

type RequestRepository struct {
	db DBTX
}

func NewRequestRepository(db DBTX) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	row, err := converter.RequestToRow(req)
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, insertRequestSQL, row.Values()...); err != nil {
		return infra.WrapRepoErr("failed to create request", err)
	}
	return nil
}

func (r *RequestRepository) Get(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	return r.get(ctx, `SELECT `+requestColumns+` FROM collaboration_requests WHERE id = $1`, id)
}

func (r *RequestRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	return r.get(ctx, `SELECT `+requestColumns+` FROM collaboration_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *RequestRepository) get(ctx context.Context, query string, id uuid.UUID) (*request.Request, error) {
	var row converter.RequestRow
	if err := r.db.QueryRow(ctx, query, id).Scan(row.ScanTargets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to get request", err)
	}
	return converter.RequestFromRow(row)
}

func (r *RequestRepository) Update(ctx context.Context, req *request.Request) error {
	row, err := converter.RequestToRow(req)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, updateRequestSQL, row.UpdateValues()...)
	if err != nil {
		return infra.WrapRepoErr("failed to update request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindStaleVersion, "request was modified concurrently", nil)
	}
	req.BumpVersion()
	return nil
}

func (r *RequestRepository) List(ctx context.Context, f shared.RequestFilter) ([]*request.Request, error) {
	var (
		conds []string
		args  []any
	)
	if f.BrandID != nil {
		args = append(args, *f.BrandID)
		conds = append(conds, fmt.Sprintf("brand_id = $%d", len(args)))
	}
	if f.CreatorID != nil {
		args = append(args, *f.CreatorID)
		conds = append(conds, fmt.Sprintf("creator_id = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}

	query := `SELECT ` + requestColumns + ` FROM collaboration_requests`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests", err)
	}
	defer rows.Close()

	var out []*request.Request
	for rows.Next() {
		var row converter.RequestRow
		if err := rows.Scan(row.ScanTargets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request", err)
		}
		req, err := converter.RequestFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list requests", err)
	}
	return out, nil
}

func (r *RequestRepository) ListDueForExpiry(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM collaboration_requests
WHERE status IN ('pending', 'viewed') AND expires_at <= $1
ORDER BY expires_at
LIMIT $2`, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expiring requests", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan expiring requests", err)
	}
	return ids, nil
}
