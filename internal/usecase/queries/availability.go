package queries

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability_mock.go -package=queriesmock

import (
	"context"
	"time"

	"collabflow/internal/domain/availability"
	"collabflow/internal/domain/request"
	"collabflow/internal/domain/trust"
	"collabflow/internal/pkg/clock"
	"collabflow/internal/usecase/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Profile and Check are brand-facing exposure points: both fail with the
// SUSPENDED conflict while the creator is suspended. A creator reading their
// own profile is not exposure.
type AvailabilityQueries interface {
	Profile(ctx context.Context, creatorID uuid.UUID, viewer request.Actor) (*AvailabilityView, error)
	// Check runs the conflict validator against today in the calendar zone.
	Check(ctx context.Context, creatorID uuid.UUID, start, end civil.Date) (*CheckResult, error)
}

type availabilityQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	loc   *time.Location
}

func NewAvailabilityQueries(uow shared.UnitOfWork, clk clock.Clock, loc *time.Location) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow, clock: clk, loc: loc}
}

func (q *availabilityQueriesImpl) Profile(ctx context.Context, creatorID uuid.UUID, viewer request.Actor) (*AvailabilityView, error) {
	p, standing, err := q.load(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if viewer.ID != creatorID {
		if err := trust.CheckExposure(standing, q.clock.Now()); err != nil {
			return nil, err
		}
	}
	return NewAvailabilityView(p), nil
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, creatorID uuid.UUID, start, end civil.Date) (*CheckResult, error) {
	if err := availability.ValidateRange(start, end); err != nil {
		return nil, err
	}
	p, standing, err := q.load(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	// same order as request creation: suspension before availability
	if err := trust.CheckExposure(standing, q.clock.Now()); err != nil {
		return nil, err
	}
	c := availability.CheckConflict(p, start, end, clock.Today(q.clock, q.loc))
	return &CheckResult{Allowed: c == nil, Conflict: NewConflictView(c)}, nil
}

func (q *availabilityQueriesImpl) load(ctx context.Context, creatorID uuid.UUID) (*availability.Profile, *trust.Standing, error) {
	var (
		p        *availability.Profile
		standing *trust.Standing
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if p, err = tx.Availability().Get(ctx, creatorID); err != nil {
			return err
		}
		standing, err = tx.Trust().Get(ctx, creatorID)
		return err
	})
	return p, standing, err
}

type TrustQueries interface {
	// Exposure fails with a SUSPENDED conflict while the creator is suspended.
	Exposure(ctx context.Context, creatorID uuid.UUID) (*ExposureView, error)
	Standing(ctx context.Context, creatorID uuid.UUID) (*TrustView, error)
}

type trustQueriesImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy trust.Policy
}

func NewTrustQueries(uow shared.UnitOfWork, clk clock.Clock, policy trust.Policy) TrustQueries {
	return &trustQueriesImpl{uow: uow, clock: clk, policy: policy}
}

func (q *trustQueriesImpl) Exposure(ctx context.Context, creatorID uuid.UUID) (*ExposureView, error) {
	var (
		standing *trust.Standing
		profile  *availability.Profile
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if standing, err = tx.Trust().Get(ctx, creatorID); err != nil {
			return err
		}
		profile, err = tx.Availability().Get(ctx, creatorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := trust.CheckExposure(standing, q.clock.Now()); err != nil {
		return nil, err
	}
	v := &ExposureView{CreatorID: creatorID, Exposed: true}
	if !profile.IsAvailable() {
		v.Exposed = false
		v.Condition = ConditionUnavailable
	}
	return v, nil
}

func (q *trustQueriesImpl) Standing(ctx context.Context, creatorID uuid.UUID) (*TrustView, error) {
	now := q.clock.Now()
	var (
		standing *trust.Standing
		recent   []trust.Decline
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if standing, err = tx.Trust().Get(ctx, creatorID); err != nil {
			return err
		}
		recent, err = tx.Declines().ListByCreatorSince(ctx, creatorID, now.Add(-q.policy.Window))
		return err
	})
	if err != nil {
		return nil, err
	}
	return NewTrustView(standing, recent, q.policy, now), nil
}
