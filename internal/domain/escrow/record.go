package escrow

import (
	"strings"
	"time"

	"collabflow/internal/domain/money"
	"collabflow/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidFeeRate    = errs.Validation("fee basis points must be between 0 and 10000")
	ErrEmptyReference    = errs.Validation("payment reference is required")
	ErrZeroAmount        = errs.Validation("escrow amount must be positive")
	ErrNotPending        = errs.InvalidTransition("escrow is not awaiting payment")
	ErrNotFailed         = errs.InvalidTransition("only a failed escrow can be re-initialized")
	ErrNotHeld           = errs.Integrity("escrow is not held; refusing release")
	ErrInvariantViolated = errs.Integrity("escrow amount does not equal payout plus fee")
	ErrCaptureMismatch   = errs.Integrity("captured amount does not match escrow amount")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusEscrow   Status = "escrow"
	StatusReleased Status = "released"
	StatusFailed   Status = "failed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusEscrow, StatusReleased, StatusFailed:
		return true
	default:
		return false
	}
}

// Tier is the creator's fee tier at the time the escrow is opened.
type Tier struct {
	Name           string
	FeeBasisPoints int
}

func (t Tier) Validate() error {
	if t.FeeBasisPoints < 0 || t.FeeBasisPoints > money.BasisPointsDenominator {
		return ErrInvalidFeeRate
	}
	return nil
}

type Record struct {
	id             uuid.UUID
	requestID      uuid.UUID
	reference      string
	amount         money.Money
	platformFee    money.Money
	creatorPayout  money.Money
	feeBasisPoints int
	tier           string
	status         Status
	attempts       int
	failureReason  string
	createdAt      time.Time
	escrowAt       *time.Time
	releasedAt     *time.Time
	failedAt       *time.Time
	updatedAt      time.Time
	version        int64
}

// Initialize opens the escrow of a request in pending with the fee
// snapshotted from tier.
func Initialize(requestID uuid.UUID, amount money.Money, tier Tier, reference string, now time.Time) (*Record, error) {
	r := &Record{
		id:        uuid.New(),
		requestID: requestID,
		createdAt: now,
	}
	if err := r.open(amount, tier, reference, now); err != nil {
		return nil, err
	}
	return r, nil
}

func ReconstructRecord(
	id, requestID uuid.UUID,
	reference string,
	amount, platformFee, creatorPayout money.Money,
	feeBasisPoints int,
	tier string,
	status Status,
	attempts int,
	failureReason string,
	createdAt time.Time,
	escrowAt, releasedAt, failedAt *time.Time,
	updatedAt time.Time,
	version int64,
) *Record {
	return &Record{
		id:             id,
		requestID:      requestID,
		reference:      reference,
		amount:         amount,
		platformFee:    platformFee,
		creatorPayout:  creatorPayout,
		feeBasisPoints: feeBasisPoints,
		tier:           tier,
		status:         status,
		attempts:       attempts,
		failureReason:  failureReason,
		createdAt:      createdAt,
		escrowAt:       escrowAt,
		releasedAt:     releasedAt,
		failedAt:       failedAt,
		updatedAt:      updatedAt,
		version:        version,
	}
}

func (r *Record) ID() uuid.UUID              { return r.id }
func (r *Record) RequestID() uuid.UUID       { return r.requestID }
func (r *Record) Reference() string          { return r.reference }
func (r *Record) Amount() money.Money        { return r.amount }
func (r *Record) PlatformFee() money.Money   { return r.platformFee }
func (r *Record) CreatorPayout() money.Money { return r.creatorPayout }
func (r *Record) FeeBasisPoints() int        { return r.feeBasisPoints }
func (r *Record) Tier() string               { return r.tier }
func (r *Record) Status() Status             { return r.status }
func (r *Record) Attempts() int              { return r.attempts }
func (r *Record) FailureReason() string      { return r.failureReason }
func (r *Record) CreatedAt() time.Time       { return r.createdAt }
func (r *Record) EscrowAt() *time.Time       { return r.escrowAt }
func (r *Record) ReleasedAt() *time.Time     { return r.releasedAt }
func (r *Record) FailedAt() *time.Time       { return r.failedAt }
func (r *Record) UpdatedAt() time.Time       { return r.updatedAt }
func (r *Record) Version() int64             { return r.version }

// BumpVersion is called by repositories after a successful versioned write.
func (r *Record) BumpVersion() { r.version++ }

func (r *Record) Clone() *Record {
	cp := *r
	return &cp
}

// Reinitialize reopens a failed escrow for a new payment attempt with a fresh
// reference and fee snapshot.
func (r *Record) Reinitialize(amount money.Money, tier Tier, reference string, now time.Time) error {
	if r.status != StatusFailed {
		return ErrNotFailed
	}
	return r.open(amount, tier, reference, now)
}

func (r *Record) open(amount money.Money, tier Tier, reference string, now time.Time) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return ErrEmptyReference
	}
	if amount.IsZero() {
		return ErrZeroAmount
	}
	fee := amount.Share(tier.FeeBasisPoints)
	payout, err := amount.Sub(fee)
	if err != nil {
		return errs.Mark(err, errs.ErrIntegrity)
	}

	next := *r
	next.reference = reference
	next.amount = amount
	next.platformFee = fee
	next.creatorPayout = payout
	next.feeBasisPoints = tier.FeeBasisPoints
	next.tier = tier.Name
	next.status = StatusPending
	next.attempts = r.attempts + 1
	next.failureReason = ""
	next.failedAt = nil
	next.updatedAt = now
	if err := next.checkIntegrity(); err != nil {
		return err
	}
	*r = next
	return nil
}

// Confirm moves pending funds into escrow. It reports false when the record
// was already held, so duplicate callbacks are harmless.
func (r *Record) Confirm(now time.Time) (bool, error) {
	switch r.status {
	case StatusEscrow:
		return false, nil
	case StatusPending:
	default:
		return false, ErrNotPending
	}
	if err := r.checkIntegrity(); err != nil {
		return false, err
	}
	r.status = StatusEscrow
	r.escrowAt = &now
	r.updatedAt = now
	return true, nil
}

func (r *Record) Release(now time.Time) error {
	if r.status != StatusEscrow {
		return ErrNotHeld
	}
	if err := r.checkIntegrity(); err != nil {
		return err
	}
	r.status = StatusReleased
	r.releasedAt = &now
	r.updatedAt = now
	return nil
}

func (r *Record) MarkFailed(reason string, now time.Time) error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	if err := r.checkIntegrity(); err != nil {
		return err
	}
	r.status = StatusFailed
	r.failureReason = strings.TrimSpace(reason)
	r.failedAt = &now
	r.updatedAt = now
	return nil
}

// VerifyCapture compares the amount the gateway captured with the escrow.
func (r *Record) VerifyCapture(captured money.Money) error {
	if !captured.Equal(r.amount) {
		return errs.Wrapf(ErrCaptureMismatch, "expected %s, captured %s", r.amount, captured)
	}
	return nil
}

func (r *Record) checkIntegrity() error {
	sum, err := r.creatorPayout.Add(r.platformFee)
	if err != nil || !sum.Equal(r.amount) {
		return errs.Wrapf(ErrInvariantViolated, "escrow %s: amount %s, payout %s, fee %s",
			r.id, r.amount, r.creatorPayout, r.platformFee)
	}
	return nil
}
