package commands

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/commands/payment_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"collabflow/internal/domain/escrow"
	"collabflow/internal/domain/request"
	"collabflow/internal/pkg/clock"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/queries"
	"collabflow/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrEscrowStateMismatch = errs.Integrity("escrow state does not match request status")

type PaymentResult struct {
	Request *queries.RequestView
	Escrow  *queries.EscrowView
}

type PaymentCommands interface {
	// InitializePayment opens a charge for the final budget and moves the
	// request to payment_pending.
	InitializePayment(ctx context.Context, requestID uuid.UUID, actor request.Actor) (*PaymentResult, error)
	// VerifyPayment asks the gateway about the request's current charge.
	VerifyPayment(ctx context.Context, requestID uuid.UUID, actor request.Actor) (*PaymentResult, error)
	// HandleCallback settles the charge identified by a gateway callback.
	HandleCallback(ctx context.Context, reference string) (*PaymentResult, error)
}

type paymentUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	gateway shared.PaymentGateway
	tiers   shared.TierProvider
	events  dispatcher
}

func NewPaymentUseCase(
	uow shared.UnitOfWork,
	clk clock.Clock,
	gateway shared.PaymentGateway,
	tiers shared.TierProvider,
	notifier shared.Notifier,
) PaymentCommands {
	return &paymentUseCaseImpl{
		uow:     uow,
		clock:   clk,
		gateway: gateway,
		tiers:   tiers,
		events:  dispatcher{notifier: notifier},
	}
}

func (uc *paymentUseCaseImpl) InitializePayment(ctx context.Context, requestID uuid.UUID, actor request.Actor) (*PaymentResult, error) {
	// Dry run first so no charge is opened for a request that cannot move.
	var pre *request.Request
	if err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		pre, err = tx.Requests().Get(ctx, requestID)
		return err
	}); err != nil {
		return nil, err
	}
	if err := pre.Clone().InitializePayment(actor, uc.clock.Now()); err != nil {
		return nil, err
	}
	amount := pre.FinalBudget()
	if amount == nil {
		return nil, errs.Mark(errs.New("contract signed without a final budget"), errs.ErrIntegrity)
	}

	tier, err := uc.tiers.CurrentTier(ctx, pre.CreatorID())
	if err != nil {
		return nil, errs.Wrap(err, "resolve creator tier")
	}
	reference, err := uc.gateway.InitializeCharge(ctx, *amount, map[string]string{
		"request_id":       requestID.String(),
		"reference_number": pre.ReferenceNumber(),
	})
	if err != nil {
		return nil, errs.Wrap(err, "initialize charge")
	}

	var (
		r   *request.Request
		rec *escrow.Record
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		now := uc.clock.Now()
		if r, err = tx.Requests().GetForUpdate(ctx, requestID); err != nil {
			return err
		}
		if err := r.InitializePayment(actor, now); err != nil {
			return err
		}

		rec, err = tx.Escrows().GetByRequest(ctx, requestID)
		switch {
		case errs.IsNotFound(err):
			if rec, err = escrow.Initialize(requestID, *r.FinalBudget(), tier, reference, now); err != nil {
				return err
			}
			if err := tx.Escrows().Create(ctx, rec); err != nil {
				return err
			}
		case err != nil:
			return err
		case rec.Status() == escrow.StatusFailed:
			if err := rec.Reinitialize(*r.FinalBudget(), tier, reference, now); err != nil {
				return err
			}
			if err := tx.Escrows().Update(ctx, rec); err != nil {
				return err
			}
		default:
			return errs.Wrapf(ErrEscrowStateMismatch, "escrow %s is %s", rec.ID(), rec.Status())
		}
		return tx.Requests().Update(ctx, r)
	})
	if err != nil {
		logIntegrity(ctx, "initialize_payment", err)
		return nil, err
	}

	slog.InfoContext(ctx, "payment initialized",
		"request_id", requestID.String(),
		"reference", rec.Reference(),
		"amount_minor", rec.Amount().Minor(),
		"fee_minor", rec.PlatformFee().Minor(),
		"attempt", rec.Attempts())
	uc.events.send(ctx, shared.Event{
		Type:       shared.EventPaymentInitialized,
		RequestID:  requestID,
		Reference:  r.ReferenceNumber(),
		Recipients: []uuid.UUID{r.CreatorID()},
		Data:       map[string]any{"payment_reference": rec.Reference()},
		OccurredAt: uc.clock.Now(),
	})
	return uc.result(r, rec, actor.Role), nil
}

func (uc *paymentUseCaseImpl) VerifyPayment(ctx context.Context, requestID uuid.UUID, actor request.Actor) (*PaymentResult, error) {
	var reference string
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Requests().Get(ctx, requestID)
		if err != nil {
			return err
		}
		if actor.Role != request.RoleAdmin && !r.Involves(actor.ID) {
			return request.ErrNotParty
		}
		rec, err := tx.Escrows().GetByRequest(ctx, requestID)
		if err != nil {
			return err
		}
		reference = rec.Reference()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.settle(ctx, reference, actor.Role)
}

func (uc *paymentUseCaseImpl) HandleCallback(ctx context.Context, reference string) (*PaymentResult, error) {
	return uc.settle(ctx, reference, request.RoleSystem)
}

// settle drives confirm or markFailed from the gateway's verification. The
// escrow and the request change together or not at all.
func (uc *paymentUseCaseImpl) settle(ctx context.Context, reference string, role request.Role) (*PaymentResult, error) {
	verification, err := uc.gateway.VerifyCharge(ctx, reference)
	if err != nil {
		return nil, errs.Wrap(err, "verify charge")
	}

	var (
		r      *request.Request
		rec    *escrow.Record
		events []shared.Event
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		events = nil
		var err error
		if rec, err = tx.Escrows().GetByReference(ctx, reference); err != nil {
			return err
		}
		if r, err = tx.Requests().GetForUpdate(ctx, rec.RequestID()); err != nil {
			return err
		}
		// re-read under the request lock
		if rec, err = tx.Escrows().GetByReference(ctx, reference); err != nil {
			return err
		}
		now := uc.clock.Now()

		if verification.Success {
			if err := rec.VerifyCapture(verification.AmountCaptured); err != nil {
				return err
			}
			changed, err := rec.Confirm(now)
			if err != nil || !changed {
				return err
			}
			if err := r.ConfirmPayment(now); err != nil {
				return errs.Mark(errs.Wrap(err, "escrow confirmed but request cannot start"), errs.ErrIntegrity)
			}
			events = append(events, uc.event(shared.EventPaymentConfirmed, r, now))
		} else {
			if rec.Status() == escrow.StatusFailed {
				return nil
			}
			if err := rec.MarkFailed(verification.FailureReason, now); err != nil {
				return err
			}
			if err := r.PaymentFailed(now); err != nil {
				return errs.Mark(errs.Wrap(err, "escrow failed but request cannot regress"), errs.ErrIntegrity)
			}
			ev := uc.event(shared.EventPaymentFailed, r, now)
			ev.Data = map[string]any{"reason": verification.FailureReason}
			events = append(events, ev)
		}
		if err := tx.Escrows().Update(ctx, rec); err != nil {
			return err
		}
		return tx.Requests().Update(ctx, r)
	})
	if err != nil {
		logIntegrity(ctx, "settle_payment", err)
		return nil, err
	}
	if len(events) > 0 {
		slog.InfoContext(ctx, "payment settled",
			"request_id", r.ID().String(),
			"reference", reference,
			"escrow_status", string(rec.Status()))
	}
	uc.events.send(ctx, events...)
	return uc.result(r, rec, role), nil
}

func (uc *paymentUseCaseImpl) event(t shared.EventType, r *request.Request, now time.Time) shared.Event {
	return shared.Event{
		Type:       t,
		RequestID:  r.ID(),
		Reference:  r.ReferenceNumber(),
		Recipients: []uuid.UUID{r.BrandID(), r.CreatorID()},
		OccurredAt: now,
	}
}

func (uc *paymentUseCaseImpl) result(r *request.Request, rec *escrow.Record, role request.Role) *PaymentResult {
	return &PaymentResult{
		Request: queries.NewRequestView(r, role, uc.clock.Now()),
		Escrow:  queries.NewEscrowView(rec),
	}
}
