package commands

//go:generate mockgen -source=expiry.go -destination=../../../tests/mock/commands/expiry_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"collabflow/internal/domain/request"
	"collabflow/internal/pkg/clock"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ExpiryCommands interface {
	shared.LazyExpirer
	// ExpireDue expires up to batchSize lapsed requests with at most
	// concurrency transactions in flight and returns how many it expired.
	ExpireDue(ctx context.Context, batchSize, concurrency int) (int, error)
}

type expiryUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	events dispatcher
}

func NewExpiryUseCase(uow shared.UnitOfWork, clk clock.Clock, notifier shared.Notifier) ExpiryCommands {
	return &expiryUseCaseImpl{uow: uow, clock: clk, events: dispatcher{notifier: notifier}}
}

func (uc *expiryUseCaseImpl) ExpireIfDue(ctx context.Context, requestID uuid.UUID) (bool, error) {
	var ev *shared.Event
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ev = nil
		r, err := tx.Requests().GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		ev, err = expireLocked(ctx, tx, r, uc.clock.Now())
		return err
	})
	if err != nil {
		return false, err
	}
	if ev == nil {
		return false, nil
	}
	uc.events.send(ctx, *ev)
	return true, nil
}

func (uc *expiryUseCaseImpl) ExpireDue(ctx context.Context, batchSize, concurrency int) (int, error) {
	var ids []uuid.UUID
	if err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		ids, err = tx.Requests().ListDueForExpiry(ctx, uc.clock.Now(), batchSize)
		return err
	}); err != nil {
		return 0, err
	}

	var expired atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for _, id := range ids {
		g.Go(func() error {
			ok, err := uc.ExpireIfDue(gctx, id)
			if err != nil {
				if errs.IsNotFound(err) {
					return nil
				}
				return errs.Wrapf(err, "expire request %s", id)
			}
			if ok {
				expired.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	return int(expired.Load()), err
}

// expireLocked applies expiry to r, which the caller holds for update. It
// returns nil when r is not due, including when a concurrent evaluator
// already expired it.
func expireLocked(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) (*shared.Event, error) {
	if !r.IsExpired(now) {
		return nil, nil
	}
	d, err := r.Expire(now)
	if err != nil {
		return nil, err
	}
	if err := tx.Requests().Update(ctx, r); err != nil {
		if errs.IsInvalidTransition(err) {
			return nil, nil
		}
		return nil, err
	}
	if err := tx.Declines().Create(ctx, d); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "request expired",
		"request_id", r.ID().String(),
		"reference", r.ReferenceNumber())
	return &shared.Event{
		Type:       shared.EventRequestExpired,
		RequestID:  r.ID(),
		Reference:  r.ReferenceNumber(),
		Recipients: []uuid.UUID{r.BrandID(), r.CreatorID()},
		OccurredAt: now,
	}, nil
}
