package uow

import (
	"collabflow/internal/infra/repository"
	"collabflow/internal/usecase/shared"
)

// pgTx hands out repositories bound to one pgx transaction, built on first use.
type pgTx struct {
	dbtx repository.DBTX
	// lock enables per-creator advisory locks; off for read-only work.
	lock bool

	requestRepo      shared.RequestRepository
	negotiationRepo  shared.NegotiationRepository
	escrowRepo       shared.EscrowRepository
	declineRepo      shared.DeclineRepository
	trustRepo        shared.TrustRepository
	availabilityRepo shared.AvailabilityRepository
	rateCards        shared.RateCardReader
}

func (t *pgTx) Requests() shared.RequestRepository {
	if t.requestRepo == nil {
		t.requestRepo = repository.NewRequestRepository(t.dbtx)
	}
	return t.requestRepo
}

func (t *pgTx) Negotiations() shared.NegotiationRepository {
	if t.negotiationRepo == nil {
		t.negotiationRepo = repository.NewNegotiationRepository(t.dbtx)
	}
	return t.negotiationRepo
}

func (t *pgTx) Escrows() shared.EscrowRepository {
	if t.escrowRepo == nil {
		t.escrowRepo = repository.NewEscrowRepository(t.dbtx)
	}
	return t.escrowRepo
}

func (t *pgTx) Declines() shared.DeclineRepository {
	if t.declineRepo == nil {
		t.declineRepo = repository.NewDeclineRepository(t.dbtx)
	}
	return t.declineRepo
}

func (t *pgTx) Trust() shared.TrustRepository {
	if t.trustRepo == nil {
		t.trustRepo = repository.NewTrustRepository(t.dbtx, t.lock)
	}
	return t.trustRepo
}

func (t *pgTx) Availability() shared.AvailabilityRepository {
	if t.availabilityRepo == nil {
		t.availabilityRepo = repository.NewAvailabilityRepository(t.dbtx, t.lock)
	}
	return t.availabilityRepo
}

func (t *pgTx) RateCards() shared.RateCardReader {
	if t.rateCards == nil {
		t.rateCards = repository.NewRateCardReader(t.dbtx)
	}
	return t.rateCards
}
