package queries

//go:generate mockgen -source=request.go -destination=../../../tests/mock/queries/request_mock.go -package=queriesmock

import (
	"context"

	"collabflow/internal/domain/negotiation"
	"collabflow/internal/domain/request"
	"collabflow/internal/pkg/clock"
	"collabflow/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type ListFilter struct {
	Statuses []request.Status
	Limit    int
	Offset   int
}

type RequestQueries interface {
	Get(ctx context.Context, id uuid.UUID, actor request.Actor) (*RequestView, error)
	List(ctx context.Context, actor request.Actor, f ListFilter) ([]*RequestView, error)
	Negotiations(ctx context.Context, id uuid.UUID, actor request.Actor) ([]NegotiationEntryView, error)
	Escrow(ctx context.Context, id uuid.UUID, actor request.Actor) (*EscrowView, error)
}

type requestQueriesImpl struct {
	uow     shared.UnitOfWork
	expirer shared.LazyExpirer
	clock   clock.Clock
	group   singleflight.Group
}

func NewRequestQueries(uow shared.UnitOfWork, expirer shared.LazyExpirer, clk clock.Clock) RequestQueries {
	return &requestQueriesImpl{uow: uow, expirer: expirer, clock: clk}
}

// CanRead reports whether actor may see r.
func CanRead(r *request.Request, actor request.Actor) bool {
	switch actor.Role {
	case request.RoleAdmin:
		return true
	case request.RoleBrand:
		return r.BrandID() == actor.ID
	case request.RoleCreator:
		return r.CreatorID() == actor.ID
	default:
		return false
	}
}

func (q *requestQueriesImpl) Get(ctx context.Context, id uuid.UUID, actor request.Actor) (*RequestView, error) {
	r, err := q.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanRead(r, actor) {
		return nil, request.ErrNotParty
	}
	return NewRequestView(r, actor.Role, q.clock.Now()), nil
}

func (q *requestQueriesImpl) List(ctx context.Context, actor request.Actor, f ListFilter) ([]*RequestView, error) {
	filter := shared.RequestFilter{Statuses: f.Statuses, Limit: clampLimit(f.Limit), Offset: max(f.Offset, 0)}
	switch actor.Role {
	case request.RoleBrand:
		filter.BrandID = &actor.ID
	case request.RoleCreator:
		filter.CreatorID = &actor.ID
	case request.RoleAdmin:
	default:
		return nil, request.ErrNotParty
	}

	var rs []*request.Request
	if err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		rs, err = tx.Requests().List(ctx, filter)
		return err
	}); err != nil {
		return nil, err
	}

	now := q.clock.Now()
	out := make([]*RequestView, 0, len(rs))
	for _, r := range rs {
		if r.IsExpired(now) {
			fresh, err := q.expireAndReload(ctx, r.ID())
			if err != nil {
				return nil, err
			}
			r = fresh
		}
		out = append(out, NewRequestView(r, actor.Role, now))
	}
	return out, nil
}

func (q *requestQueriesImpl) Negotiations(ctx context.Context, id uuid.UUID, actor request.Actor) ([]NegotiationEntryView, error) {
	var (
		r       *request.Request
		entries []negotiation.Entry
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if r, err = tx.Requests().Get(ctx, id); err != nil {
			return err
		}
		entries, err = tx.Negotiations().ListByRequest(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !CanRead(r, actor) {
		return nil, request.ErrNotParty
	}
	ledger, err := negotiation.ReconstructLedger(id, entries)
	if err != nil {
		return nil, err
	}
	out := make([]NegotiationEntryView, 0, ledger.Len())
	for _, e := range ledger.Entries() {
		out = append(out, NewNegotiationEntryView(e))
	}
	return out, nil
}

func (q *requestQueriesImpl) Escrow(ctx context.Context, id uuid.UUID, actor request.Actor) (*EscrowView, error) {
	var view *EscrowView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Requests().Get(ctx, id)
		if err != nil {
			return err
		}
		if !CanRead(r, actor) {
			return request.ErrNotParty
		}
		rec, err := tx.Escrows().GetByRequest(ctx, id)
		if err != nil {
			return err
		}
		view = NewEscrowView(rec)
		return nil
	})
	return view, err
}

// load reads a request and settles a lapsed response window first.
func (q *requestQueriesImpl) load(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	var r *request.Request
	if err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		r, err = tx.Requests().Get(ctx, id)
		return err
	}); err != nil {
		return nil, err
	}
	if r.IsExpired(q.clock.Now()) {
		return q.expireAndReload(ctx, id)
	}
	return r, nil
}

// expireAndReload collapses concurrent readers of the same lapsed request
// into one expiry attempt.
func (q *requestQueriesImpl) expireAndReload(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	v, err, _ := q.group.Do(id.String(), func() (any, error) {
		if _, err := q.expirer.ExpireIfDue(ctx, id); err != nil {
			return nil, err
		}
		var r *request.Request
		err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			r, err = tx.Requests().Get(ctx, id)
			return err
		})
		return r, err
	})
	if err != nil {
		return nil, err
	}
	// singleflight shares the value across callers
	return v.(*request.Request).Clone(), nil
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultListLimit
	case n > MaxListLimit:
		return MaxListLimit
	default:
		return n
	}
}
