package shared

import (
	"context"
	"time"

	"collabflow/internal/domain/availability"
	"collabflow/internal/domain/escrow"
	"collabflow/internal/domain/negotiation"
	"collabflow/internal/domain/request"
	"collabflow/internal/domain/trust"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to one transaction.
type Tx interface {
	Requests() RequestRepository
	Negotiations() NegotiationRepository
	Escrows() EscrowRepository
	Declines() DeclineRepository
	Trust() TrustRepository
	Availability() AvailabilityRepository
	RateCards() RateCardReader
}

type RequestFilter struct {
	BrandID   *uuid.UUID
	CreatorID *uuid.UUID
	Statuses  []request.Status
	Limit     int
	Offset    int
}

type RequestRepository interface {
	Create(ctx context.Context, r *request.Request) error
	Get(ctx context.Context, id uuid.UUID) (*request.Request, error)
	// GetForUpdate locks the row until the transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*request.Request, error)
	// Update writes r only if the stored version still equals r.Version().
	Update(ctx context.Context, r *request.Request) error
	List(ctx context.Context, f RequestFilter) ([]*request.Request, error)
	// ListDueForExpiry returns ids of respondable requests with expiresAt <= now.
	ListDueForExpiry(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

type NegotiationRepository interface {
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]negotiation.Entry, error)
	Append(ctx context.Context, entries ...negotiation.Entry) error
}

type EscrowRepository interface {
	GetByRequest(ctx context.Context, requestID uuid.UUID) (*escrow.Record, error)
	GetByReference(ctx context.Context, reference string) (*escrow.Record, error)
	Create(ctx context.Context, rec *escrow.Record) error
	Update(ctx context.Context, rec *escrow.Record) error
}

type DeclineRepository interface {
	Create(ctx context.Context, d trust.Decline) error
	ListByCreatorSince(ctx context.Context, creatorID uuid.UUID, since time.Time) ([]trust.Decline, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]trust.Decline, error)
}

type TrustRepository interface {
	// Get returns a clean standing for creators without one.
	Get(ctx context.Context, creatorID uuid.UUID) (*trust.Standing, error)
	Save(ctx context.Context, s *trust.Standing) error
}

type AvailabilityRepository interface {
	// Get returns the default profile for creators without one.
	Get(ctx context.Context, creatorID uuid.UUID) (*availability.Profile, error)
	Save(ctx context.Context, p *availability.Profile) error
}

// RateCardReader resolves a creator's rate cards for service snapshots.
type RateCardReader interface {
	Snapshots(ctx context.Context, creatorID uuid.UUID, ids []uuid.UUID) ([]request.ServiceSnapshot, error)
}
