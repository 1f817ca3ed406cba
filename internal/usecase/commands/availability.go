package commands

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/commands/availability_mock.go -package=commandsmock

import (
	"context"

	"collabflow/internal/domain/availability"
	"collabflow/internal/pkg/clock"
	"collabflow/internal/usecase/queries"
	"collabflow/internal/usecase/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type UpdateAvailabilityInput struct {
	IsAvailable  *bool
	LeadTimeDays *int
}

type AddSlotInput struct {
	StartDate civil.Date
	EndDate   civil.Date
	Reason    string
}

type AvailabilityCommands interface {
	Update(ctx context.Context, creatorID uuid.UUID, in UpdateAvailabilityInput) (*queries.AvailabilityView, error)
	AddBlockedSlot(ctx context.Context, creatorID uuid.UUID, in AddSlotInput) (*queries.AvailabilityView, error)
	RemoveSlot(ctx context.Context, creatorID, slotID uuid.UUID) (*queries.AvailabilityView, error)
}

type availabilityUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAvailabilityUseCase(uow shared.UnitOfWork, clk clock.Clock) AvailabilityCommands {
	return &availabilityUseCaseImpl{uow: uow, clock: clk}
}

func (uc *availabilityUseCaseImpl) Update(ctx context.Context, creatorID uuid.UUID, in UpdateAvailabilityInput) (*queries.AvailabilityView, error) {
	return uc.mutate(ctx, creatorID, func(p *availability.Profile) error {
		now := uc.clock.Now()
		if in.LeadTimeDays != nil {
			if err := p.SetLeadTimeDays(*in.LeadTimeDays, now); err != nil {
				return err
			}
		}
		if in.IsAvailable != nil {
			p.SetAvailable(*in.IsAvailable, now)
		}
		return nil
	})
}

func (uc *availabilityUseCaseImpl) AddBlockedSlot(ctx context.Context, creatorID uuid.UUID, in AddSlotInput) (*queries.AvailabilityView, error) {
	return uc.mutate(ctx, creatorID, func(p *availability.Profile) error {
		_, err := p.AddBlockedSlot(in.StartDate, in.EndDate, in.Reason, uc.clock.Now())
		return err
	})
}

func (uc *availabilityUseCaseImpl) RemoveSlot(ctx context.Context, creatorID, slotID uuid.UUID) (*queries.AvailabilityView, error) {
	return uc.mutate(ctx, creatorID, func(p *availability.Profile) error {
		return p.RemoveSlot(slotID, uc.clock.Now())
	})
}

func (uc *availabilityUseCaseImpl) mutate(ctx context.Context, creatorID uuid.UUID, fn func(p *availability.Profile) error) (*queries.AvailabilityView, error) {
	var view *queries.AvailabilityView
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Availability().Get(ctx, creatorID)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		if err := tx.Availability().Save(ctx, p); err != nil {
			return err
		}
		view = queries.NewAvailabilityView(p)
		return nil
	})
	return view, err
}
