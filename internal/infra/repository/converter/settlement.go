package converter

import (
	"time"

	"collabflow/internal/domain/escrow"
	"collabflow/internal/domain/money"
	"collabflow/internal/domain/negotiation"
	"collabflow/internal/domain/trust"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type EscrowRow struct {
	ID             uuid.UUID
	RequestID      uuid.UUID
	Reference      string
	Amount         int64
	Currency       string
	PlatformFee    int64
	CreatorPayout  int64
	FeeBasisPoints int32
	Tier           string
	Status         string
	Attempts       int32
	FailureReason  string
	CreatedAt      time.Time
	EscrowAt       pgtype.Timestamptz
	ReleasedAt     pgtype.Timestamptz
	FailedAt       pgtype.Timestamptz
	UpdatedAt      time.Time
	Version        int64
}

func (r *EscrowRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.RequestID, &r.Reference,
		&r.Amount, &r.Currency, &r.PlatformFee, &r.CreatorPayout, &r.FeeBasisPoints, &r.Tier,
		&r.Status, &r.Attempts, &r.FailureReason,
		&r.CreatedAt, &r.EscrowAt, &r.ReleasedAt, &r.FailedAt, &r.UpdatedAt, &r.Version,
	}
}

func EscrowToRow(rec *escrow.Record) EscrowRow {
	return EscrowRow{
		ID:             rec.ID(),
		RequestID:      rec.RequestID(),
		Reference:      rec.Reference(),
		Amount:         rec.Amount().Minor(),
		Currency:       rec.Amount().Currency(),
		PlatformFee:    rec.PlatformFee().Minor(),
		CreatorPayout:  rec.CreatorPayout().Minor(),
		FeeBasisPoints: int32(rec.FeeBasisPoints()), // #nosec G115 -- validated fee rate
		Tier:           rec.Tier(),
		Status:         string(rec.Status()),
		Attempts:       int32(rec.Attempts()), // #nosec G115 -- small counter
		FailureReason:  rec.FailureReason(),
		CreatedAt:      rec.CreatedAt(),
		EscrowAt:       pgconv.TimePtrToPgtype(rec.EscrowAt()),
		ReleasedAt:     pgconv.TimePtrToPgtype(rec.ReleasedAt()),
		FailedAt:       pgconv.TimePtrToPgtype(rec.FailedAt()),
		UpdatedAt:      rec.UpdatedAt(),
		Version:        rec.Version(),
	}
}

func EscrowFromRow(row EscrowRow) (*escrow.Record, error) {
	amount, err := money.New(row.Amount, row.Currency)
	if err != nil {
		return nil, errs.Wrap(err, "invalid stored escrow amount")
	}
	fee, err := money.New(row.PlatformFee, row.Currency)
	if err != nil {
		return nil, errs.Wrap(err, "invalid stored platform fee")
	}
	payout, err := money.New(row.CreatorPayout, row.Currency)
	if err != nil {
		return nil, errs.Wrap(err, "invalid stored creator payout")
	}

	return escrow.ReconstructRecord(
		row.ID, row.RequestID, row.Reference,
		amount, fee, payout,
		int(row.FeeBasisPoints), row.Tier,
		escrow.Status(row.Status), int(row.Attempts), row.FailureReason,
		row.CreatedAt.UTC(),
		pgconv.TimePtrFromPgtype(row.EscrowAt),
		pgconv.TimePtrFromPgtype(row.ReleasedAt),
		pgconv.TimePtrFromPgtype(row.FailedAt),
		row.UpdatedAt.UTC(),
		row.Version,
	), nil
}

type NegotiationRow struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	Sequence  int32
	Author    string
	AuthorID  uuid.UUID
	Amount    int64
	Currency  string
	Message   string
	CreatedAt time.Time
}

func (r *NegotiationRow) ScanTargets() []any {
	return []any{&r.ID, &r.RequestID, &r.Sequence, &r.Author, &r.AuthorID, &r.Amount, &r.Currency, &r.Message, &r.CreatedAt}
}

func NegotiationFromRow(row NegotiationRow) (negotiation.Entry, error) {
	amount, err := money.New(row.Amount, row.Currency)
	if err != nil {
		return negotiation.Entry{}, errs.Wrap(err, "invalid stored offer amount")
	}
	return negotiation.Entry{
		ID:        row.ID,
		RequestID: row.RequestID,
		Sequence:  int(row.Sequence),
		Author:    negotiation.Party(row.Author),
		AuthorID:  row.AuthorID,
		Amount:    amount,
		Message:   row.Message,
		CreatedAt: row.CreatedAt.UTC(),
	}, nil
}

type StandingRow struct {
	CreatorID       uuid.UUID
	SuspendedUntil  pgtype.Timestamptz
	SuspensionCount int32
	LastWarningAt   pgtype.Timestamptz
	UpdatedAt       time.Time
}

func (r *StandingRow) ScanTargets() []any {
	return []any{&r.CreatorID, &r.SuspendedUntil, &r.SuspensionCount, &r.LastWarningAt, &r.UpdatedAt}
}

func StandingFromRow(row StandingRow) *trust.Standing {
	return trust.ReconstructStanding(
		row.CreatorID,
		pgconv.TimePtrFromPgtype(row.SuspendedUntil),
		int(row.SuspensionCount),
		pgconv.TimePtrFromPgtype(row.LastWarningAt),
		row.UpdatedAt.UTC(),
	)
}
