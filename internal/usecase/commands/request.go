package commands

//go:generate mockgen -source=request.go -destination=../../../tests/mock/commands/request_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"collabflow/internal/domain/availability"
	"collabflow/internal/domain/money"
	"collabflow/internal/domain/negotiation"
	"collabflow/internal/domain/request"
	"collabflow/internal/domain/trust"
	"collabflow/internal/pkg/clock"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/queries"
	"collabflow/internal/usecase/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type CreateRequestInput struct {
	CreatorID           uuid.UUID
	BudgetMinor         int64
	Currency            string
	ProposedStart       civil.Date
	ProposedEnd         civil.Date
	Description         string
	ContentRequirements string
	TargetPlatforms     []string
	Deliverables        []string
	ServiceIDs          []uuid.UUID
	MaxRevisions        *int
}

type CounterOfferInput struct {
	AmountMinor int64
	Message     string
}

type DeclineInput struct {
	Category trust.DeclineCategory
	Reason   string
}

type DeclineResult struct {
	Request *queries.RequestView
	Trust   trust.Outcome
}

type ApproveResult struct {
	Request *queries.RequestView
	Escrow  *queries.EscrowView
}

type RequestCommands interface {
	Create(ctx context.Context, brandID uuid.UUID, in CreateRequestInput) (*queries.RequestView, error)
	View(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error)
	CounterOffer(ctx context.Context, id uuid.UUID, actor request.Actor, in CounterOfferInput) (*queries.RequestView, error)
	Accept(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error)
	Decline(ctx context.Context, id uuid.UUID, actor request.Actor, in DeclineInput) (*DeclineResult, error)
	Cancel(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error)
	SignContract(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error)
	SubmitContent(ctx context.Context, id uuid.UUID, actor request.Actor, urls []string) (*queries.RequestView, error)
	RequestRevision(ctx context.Context, id uuid.UUID, actor request.Actor, notes string) (*queries.RequestView, error)
	ResumeWork(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error)
	// Approve accepts the content and releases escrow atomically.
	Approve(ctx context.Context, id uuid.UUID, actor request.Actor) (*ApproveResult, error)
	Complete(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error)
}

type requestUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	settings  Settings
	policy    trust.Policy
	refs      shared.ReferenceGenerator
	messenger shared.Messenger
	events    dispatcher
}

func NewRequestUseCase(
	uow shared.UnitOfWork,
	clk clock.Clock,
	settings Settings,
	policy trust.Policy,
	refs shared.ReferenceGenerator,
	messenger shared.Messenger,
	notifier shared.Notifier,
) RequestCommands {
	return &requestUseCaseImpl{
		uow:       uow,
		clock:     clk,
		settings:  settings,
		policy:    policy,
		refs:      refs,
		messenger: messenger,
		events:    dispatcher{notifier: notifier},
	}
}

func (uc *requestUseCaseImpl) Create(ctx context.Context, brandID uuid.UUID, in CreateRequestInput) (*queries.RequestView, error) {
	budget, err := money.New(in.BudgetMinor, uc.settings.currency(in.Currency))
	if err != nil {
		return nil, err
	}
	maxRevisions := uc.settings.maxRevisions(in.MaxRevisions)
	platforms := make([]request.Platform, 0, len(in.TargetPlatforms))
	for _, p := range in.TargetPlatforms {
		platforms = append(platforms, request.Platform(p))
	}

	var created *request.Request
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		standing, err := tx.Trust().Get(ctx, in.CreatorID)
		if err != nil {
			return err
		}
		if err := trust.CheckExposure(standing, now); err != nil {
			return err
		}
		profile, err := tx.Availability().Get(ctx, in.CreatorID)
		if err != nil {
			return err
		}
		today := clock.Today(uc.clock, uc.settings.CalendarLocation)
		if c := availability.CheckConflict(profile, in.ProposedStart, in.ProposedEnd, today); c != nil {
			return c.AsError()
		}

		var services []request.ServiceSnapshot
		if len(in.ServiceIDs) > 0 {
			if services, err = tx.RateCards().Snapshots(ctx, in.CreatorID, in.ServiceIDs); err != nil {
				return err
			}
		}

		r, ledger, err := request.NewRequest(request.NewParams{
			ReferenceNumber:     uc.refs.Next(),
			BrandID:             brandID,
			CreatorID:           in.CreatorID,
			Budget:              budget,
			ProposedStart:       in.ProposedStart,
			ProposedEnd:         in.ProposedEnd,
			Description:         in.Description,
			ContentRequirements: in.ContentRequirements,
			TargetPlatforms:     platforms,
			Deliverables:        in.Deliverables,
			Services:            services,
		}, request.Terms{
			ResponseWindow: uc.settings.ResponseWindow,
			MaxRevisions:   maxRevisions,
			MinBudgetMinor: uc.settings.MinBudgetMinor,
		}, now)
		if err != nil {
			return err
		}

		if uc.messenger != nil {
			convID, err := uc.messenger.EnsureConversation(ctx, brandID, in.CreatorID, r.ID())
			if err != nil {
				slog.WarnContext(ctx, "conversation not created", "request_id", r.ID().String(), "error", err.Error())
			} else {
				r.SetConversationID(convID)
			}
		}

		if err := tx.Requests().Create(ctx, r); err != nil {
			return err
		}
		if err := tx.Negotiations().Append(ctx, ledger.Appended()...); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "request created",
		"request_id", created.ID().String(),
		"reference", created.ReferenceNumber(),
		"creator_id", created.CreatorID().String())
	uc.events.send(ctx, uc.event(shared.EventRequestCreated, created, created.CreatorID()))
	return queries.NewRequestView(created, request.RoleBrand, uc.clock.Now()), nil
}

func (uc *requestUseCaseImpl) View(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error) {
	r, err := uc.transition(ctx, "view", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		if err := r.View(actor, now); err != nil {
			return nil, err
		}
		return []shared.Event{uc.event(shared.EventRequestViewed, r, r.BrandID())}, nil
	})
	return uc.view(r, actor, err)
}

func (uc *requestUseCaseImpl) CounterOffer(ctx context.Context, id uuid.UUID, actor request.Actor, in CounterOfferInput) (*queries.RequestView, error) {
	r, err := uc.transition(ctx, "counter_offer", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		amount, err := money.New(in.AmountMinor, r.ProposedBudget().Currency())
		if err != nil {
			return nil, err
		}
		ledger, err := loadLedger(ctx, tx, r.ID())
		if err != nil {
			return nil, err
		}
		entry, err := r.CounterOffer(actor, amount, in.Message, ledger, uc.settings.MinBudgetMinor, now)
		if err != nil {
			return nil, err
		}
		if err := tx.Negotiations().Append(ctx, entry); err != nil {
			return nil, err
		}
		ev := uc.event(shared.EventCounterOffer, r, counterparty(r, actor))
		ev.Data = map[string]any{"amount_minor": entry.Amount.Minor(), "sequence": entry.Sequence}
		return []shared.Event{ev}, nil
	})
	return uc.view(r, actor, err)
}

func (uc *requestUseCaseImpl) Accept(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error) {
	r, err := uc.transition(ctx, "accept", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		var ledger *negotiation.Ledger
		if r.Status() == request.StatusNegotiating {
			var err error
			if ledger, err = loadLedger(ctx, tx, r.ID()); err != nil {
				return nil, err
			}
		}
		if err := r.Accept(actor, ledger, now); err != nil {
			return nil, err
		}
		profile, err := tx.Availability().Get(ctx, r.CreatorID())
		if err != nil {
			return nil, err
		}
		if _, err := profile.Book(r.ID(), r.ProposedStart(), r.ProposedEnd(), now); err != nil {
			return nil, err
		}
		if err := tx.Availability().Save(ctx, profile); err != nil {
			return nil, err
		}
		return []shared.Event{uc.event(shared.EventRequestAccepted, r, counterparty(r, actor))}, nil
	})
	return uc.view(r, actor, err)
}

// Decline records the decline and applies the trust policy in the same
// transaction as the status change.
func (uc *requestUseCaseImpl) Decline(ctx context.Context, id uuid.UUID, actor request.Actor, in DeclineInput) (*DeclineResult, error) {
	var outcome trust.Outcome
	r, err := uc.transition(ctx, "decline", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		d, err := r.Decline(actor, in.Category, in.Reason, now)
		if err != nil {
			return nil, err
		}
		// Standing first: it serializes concurrent declines for the creator.
		standing, err := tx.Trust().Get(ctx, r.CreatorID())
		if err != nil {
			return nil, err
		}
		history, err := tx.Declines().ListByCreatorSince(ctx, r.CreatorID(), now.Add(-uc.policy.Window))
		if err != nil {
			return nil, err
		}
		outcome = trust.RecordDecline(history, d, uc.policy, standing, now)
		if err := tx.Declines().Create(ctx, d); err != nil {
			return nil, err
		}
		if outcome.Suspended || outcome.Warning != "" {
			if err := tx.Trust().Save(ctx, standing); err != nil {
				return nil, err
			}
		}

		evs := []shared.Event{uc.event(shared.EventRequestDeclined, r, r.BrandID())}
		switch {
		case outcome.Suspended:
			ev := uc.event(shared.EventSuspensionApplied, r, r.CreatorID())
			ev.Data = map[string]any{"suspended_until": outcome.SuspendedUntil}
			evs = append(evs, ev)
		case outcome.Warning != "":
			ev := uc.event(shared.EventDeclineWarning, r, r.CreatorID())
			ev.Data = map[string]any{"warning": outcome.Warning}
			evs = append(evs, ev)
		}
		return evs, nil
	})
	if err != nil {
		return nil, err
	}
	if outcome.Suspended {
		slog.InfoContext(ctx, "creator suspended",
			"creator_id", r.CreatorID().String(),
			"until", outcome.SuspendedUntil,
			"qualifying_declines", outcome.QualifyingCount)
	}
	return &DeclineResult{
		Request: queries.NewRequestView(r, actor.Role, uc.clock.Now()),
		Trust:   outcome,
	}, nil
}

func (uc *requestUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error) {
	r, err := uc.transition(ctx, "cancel", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		if err := r.Cancel(actor, now); err != nil {
			return nil, err
		}
		return []shared.Event{uc.event(shared.EventRequestCancelled, r, r.CreatorID())}, nil
	})
	return uc.view(r, actor, err)
}

func (uc *requestUseCaseImpl) SignContract(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error) {
	r, err := uc.transition(ctx, "sign_contract", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		if err := r.SignContract(actor, now); err != nil {
			return nil, err
		}
		ev := uc.event(shared.EventContractSigned, r, counterparty(r, actor))
		ev.Data = map[string]any{"signed_by": string(actor.Role), "status": string(r.Status())}
		return []shared.Event{ev}, nil
	})
	return uc.view(r, actor, err)
}

func (uc *requestUseCaseImpl) SubmitContent(ctx context.Context, id uuid.UUID, actor request.Actor, urls []string) (*queries.RequestView, error) {
	r, err := uc.transition(ctx, "submit_content", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		if err := r.SubmitContent(actor, urls, now); err != nil {
			return nil, err
		}
		return []shared.Event{uc.event(shared.EventContentSubmitted, r, r.BrandID())}, nil
	})
	return uc.view(r, actor, err)
}

func (uc *requestUseCaseImpl) RequestRevision(ctx context.Context, id uuid.UUID, actor request.Actor, notes string) (*queries.RequestView, error) {
	r, err := uc.transition(ctx, "request_revision", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		if err := r.RequestRevision(actor, notes, now); err != nil {
			return nil, err
		}
		ev := uc.event(shared.EventRevisionRequested, r, r.CreatorID())
		ev.Data = map[string]any{"revision_count": r.RevisionCount(), "max_revisions": r.MaxRevisions()}
		return []shared.Event{ev}, nil
	})
	return uc.view(r, actor, err)
}

func (uc *requestUseCaseImpl) ResumeWork(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error) {
	r, err := uc.transition(ctx, "resume_work", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		if err := r.ResumeWork(actor, now); err != nil {
			return nil, err
		}
		return []shared.Event{uc.event(shared.EventWorkResumed, r, r.BrandID())}, nil
	})
	return uc.view(r, actor, err)
}

func (uc *requestUseCaseImpl) Approve(ctx context.Context, id uuid.UUID, actor request.Actor) (*ApproveResult, error) {
	var released *queries.EscrowView
	r, err := uc.transition(ctx, "approve", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		if err := r.Approve(actor, now); err != nil {
			return nil, err
		}
		rec, err := tx.Escrows().GetByRequest(ctx, r.ID())
		if err != nil {
			if errs.IsNotFound(err) {
				return nil, errs.Mark(errs.Wrap(err, "approved request has no escrow"), errs.ErrIntegrity)
			}
			return nil, err
		}
		if err := rec.Release(now); err != nil {
			return nil, err
		}
		if err := tx.Escrows().Update(ctx, rec); err != nil {
			return nil, err
		}
		released = queries.NewEscrowView(rec)

		paid := uc.event(shared.EventPaymentReleased, r, r.CreatorID())
		paid.Data = map[string]any{
			"creator_payout_minor": rec.CreatorPayout().Minor(),
			"currency":             rec.CreatorPayout().Currency(),
		}
		return []shared.Event{uc.event(shared.EventContentApproved, r, r.CreatorID()), paid}, nil
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "escrow released",
		"request_id", r.ID().String(),
		"escrow_id", released.ID.String(),
		"payout_minor", released.CreatorPayoutMinor)
	return &ApproveResult{
		Request: queries.NewRequestView(r, actor.Role, uc.clock.Now()),
		Escrow:  released,
	}, nil
}

func (uc *requestUseCaseImpl) Complete(ctx context.Context, id uuid.UUID, actor request.Actor) (*queries.RequestView, error) {
	r, err := uc.transition(ctx, "complete", id, func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error) {
		if err := r.Complete(actor, now); err != nil {
			return nil, err
		}
		return []shared.Event{uc.event(shared.EventRequestCompleted, r, r.CreatorID())}, nil
	})
	return uc.view(r, actor, err)
}

type transitionFunc func(ctx context.Context, tx shared.Tx, r *request.Request, now time.Time) ([]shared.Event, error)

// transition runs fn on the locked request and persists it with a version
// check. A lapsed response window is expired and committed first, and the
// action then fails with ErrResponseWindowClosed.
func (uc *requestUseCaseImpl) transition(ctx context.Context, op string, id uuid.UUID, fn transitionFunc) (*request.Request, error) {
	var (
		out     *request.Request
		events  []shared.Event
		expired bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out, events, expired = nil, nil, false
		r, err := tx.Requests().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		if r.IsExpired(now) {
			ev, err := expireLocked(ctx, tx, r, now)
			if err != nil {
				return err
			}
			if ev != nil {
				events = append(events, *ev)
			}
			expired = true
			return nil
		}
		evs, err := fn(ctx, tx, r, now)
		if err != nil {
			return err
		}
		if err := tx.Requests().Update(ctx, r); err != nil {
			return err
		}
		out, events = r, evs
		return nil
	})
	if err != nil {
		logIntegrity(ctx, op, err)
		return nil, err
	}
	uc.events.send(ctx, events...)
	if expired {
		return nil, errs.Wrapf(request.ErrResponseWindowClosed, "%s on %s", op, id)
	}
	slog.InfoContext(ctx, "request transitioned",
		"op", op,
		"request_id", out.ID().String(),
		"status", string(out.Status()))
	return out, nil
}

func (uc *requestUseCaseImpl) view(r *request.Request, actor request.Actor, err error) (*queries.RequestView, error) {
	if err != nil {
		return nil, err
	}
	return queries.NewRequestView(r, actor.Role, uc.clock.Now()), nil
}

func (uc *requestUseCaseImpl) event(t shared.EventType, r *request.Request, recipients ...uuid.UUID) shared.Event {
	return shared.Event{
		Type:       t,
		RequestID:  r.ID(),
		Reference:  r.ReferenceNumber(),
		Recipients: recipients,
		OccurredAt: uc.clock.Now(),
	}
}

func counterparty(r *request.Request, actor request.Actor) uuid.UUID {
	if actor.ID == r.BrandID() {
		return r.CreatorID()
	}
	return r.BrandID()
}

func loadLedger(ctx context.Context, tx shared.Tx, requestID uuid.UUID) (*negotiation.Ledger, error) {
	entries, err := tx.Negotiations().ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return negotiation.ReconstructLedger(requestID, entries)
}
