// Package memstore is an in-process UnitOfWork. Each transaction holds a
// store-wide lock, works on a copy of the state and swaps it in on commit,
// so a failed transaction leaves nothing behind.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"collabflow/internal/domain/availability"
	"collabflow/internal/domain/escrow"
	"collabflow/internal/domain/negotiation"
	"collabflow/internal/domain/request"
	"collabflow/internal/domain/trust"
	"collabflow/internal/infra"
	"collabflow/internal/usecase/shared"

	"github.com/google/uuid"
)

// RateCard is a creator's priced service offering.
type RateCard struct {
	ID         uuid.UUID
	CreatorID  uuid.UUID
	Name       string
	Platform   request.Platform
	PriceMinor int64
	Active     bool
}

type state struct {
	requests  map[uuid.UUID]request.Snapshot
	refs      map[string]uuid.UUID
	ledgers   map[uuid.UUID][]negotiation.Entry
	escrows   map[uuid.UUID]*escrow.Record
	declines  []trust.Decline
	standings map[uuid.UUID]*trust.Standing
	profiles  map[uuid.UUID]*availability.Profile
	rateCards map[uuid.UUID]RateCard
}

func newState() *state {
	return &state{
		requests:  make(map[uuid.UUID]request.Snapshot),
		refs:      make(map[string]uuid.UUID),
		ledgers:   make(map[uuid.UUID][]negotiation.Entry),
		escrows:   make(map[uuid.UUID]*escrow.Record),
		standings: make(map[uuid.UUID]*trust.Standing),
		profiles:  make(map[uuid.UUID]*availability.Profile),
		rateCards: make(map[uuid.UUID]RateCard),
	}
}

// clone copies everything a transaction may mutate. Snapshots and entries
// are values; aggregates with pointers are cloned through their own Clone.
func (s *state) clone() *state {
	out := newState()
	for k, v := range s.requests {
		out.requests[k] = request.Reconstruct(v).Snapshot()
	}
	for k, v := range s.refs {
		out.refs[k] = v
	}
	for k, v := range s.ledgers {
		out.ledgers[k] = append([]negotiation.Entry(nil), v...)
	}
	for k, v := range s.escrows {
		out.escrows[k] = v.Clone()
	}
	out.declines = append([]trust.Decline(nil), s.declines...)
	for k, v := range s.standings {
		out.standings[k] = v.Clone()
	}
	for k, v := range s.profiles {
		out.profiles[k] = v.Clone()
	}
	for k, v := range s.rateCards {
		out.rateCards[k] = v
	}
	return out
}

type Store struct {
	mu    sync.Mutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(ctx, &memTx{st: s.state.clone()})
}

// AddRateCard seeds a rate card. Used by local runs and tests.
func (s *Store) AddRateCard(card RateCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.rateCards[card.ID] = card
}

type memTx struct {
	st *state
}

func (t *memTx) Requests() shared.RequestRepository         { return requestRepo{t.st} }
func (t *memTx) Negotiations() shared.NegotiationRepository { return negotiationRepo{t.st} }
func (t *memTx) Escrows() shared.EscrowRepository           { return escrowRepo{t.st} }
func (t *memTx) Declines() shared.DeclineRepository         { return declineRepo{t.st} }
func (t *memTx) Trust() shared.TrustRepository              { return trustRepo{t.st} }
func (t *memTx) Availability() shared.AvailabilityRepository {
	return availabilityRepo{t.st}
}
func (t *memTx) RateCards() shared.RateCardReader { return rateCardReader{t.st} }

type requestRepo struct{ st *state }

func (r requestRepo) Create(_ context.Context, req *request.Request) error {
	if _, ok := r.st.requests[req.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "request already exists", nil)
	}
	if _, ok := r.st.refs[req.ReferenceNumber()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "reference number already used", nil)
	}
	r.st.requests[req.ID()] = req.Snapshot()
	r.st.refs[req.ReferenceNumber()] = req.ID()
	return nil
}

func (r requestRepo) Get(_ context.Context, id uuid.UUID) (*request.Request, error) {
	s, ok := r.st.requests[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "request not found", nil)
	}
	return request.Reconstruct(s), nil
}

func (r requestRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	return r.Get(ctx, id)
}

func (r requestRepo) Update(_ context.Context, req *request.Request) error {
	stored, ok := r.st.requests[req.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "request not found", nil)
	}
	if stored.Version != req.Version() {
		return infra.NewRepoErr(infra.KindStaleVersion, "request was modified concurrently", nil)
	}
	req.BumpVersion()
	r.st.requests[req.ID()] = req.Snapshot()
	return nil
}

func (r requestRepo) List(_ context.Context, f shared.RequestFilter) ([]*request.Request, error) {
	var matched []request.Snapshot
	for _, s := range r.st.requests {
		if f.BrandID != nil && s.BrandID != *f.BrandID {
			continue
		}
		if f.CreatorID != nil && s.CreatorID != *f.CreatorID {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, s.Status) {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.String() < matched[j].ID.String()
	})

	if f.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	out := make([]*request.Request, 0, len(matched))
	for _, s := range matched {
		out = append(out, request.Reconstruct(s))
	}
	return out, nil
}

func containsStatus(in []request.Status, s request.Status) bool {
	for _, v := range in {
		if v == s {
			return true
		}
	}
	return false
}

func (r requestRepo) ListDueForExpiry(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	var due []request.Snapshot
	for _, s := range r.st.requests {
		if s.Status.IsRespondable() && s.ExpiresAt != nil && !s.ExpiresAt.After(now) {
			due = append(due, s)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ExpiresAt.Before(*due[j].ExpiresAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	ids := make([]uuid.UUID, 0, len(due))
	for _, s := range due {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

type negotiationRepo struct{ st *state }

func (r negotiationRepo) ListByRequest(_ context.Context, requestID uuid.UUID) ([]negotiation.Entry, error) {
	return append([]negotiation.Entry(nil), r.st.ledgers[requestID]...), nil
}

func (r negotiationRepo) Append(_ context.Context, entries ...negotiation.Entry) error {
	for _, e := range entries {
		for _, existing := range r.st.ledgers[e.RequestID] {
			if existing.Sequence == e.Sequence {
				return infra.NewRepoErr(infra.KindDuplicateKey, "negotiation sequence already written", nil)
			}
		}
		r.st.ledgers[e.RequestID] = append(r.st.ledgers[e.RequestID], e)
	}
	return nil
}

type escrowRepo struct{ st *state }

func (r escrowRepo) GetByRequest(_ context.Context, requestID uuid.UUID) (*escrow.Record, error) {
	rec, ok := r.st.escrows[requestID]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "escrow record not found", nil)
	}
	return rec.Clone(), nil
}

func (r escrowRepo) GetByReference(_ context.Context, reference string) (*escrow.Record, error) {
	for _, rec := range r.st.escrows {
		if rec.Reference() == reference {
			return rec.Clone(), nil
		}
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "escrow record not found", nil)
}

func (r escrowRepo) Create(_ context.Context, rec *escrow.Record) error {
	if _, ok := r.st.escrows[rec.RequestID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "escrow record already exists for request", nil)
	}
	r.st.escrows[rec.RequestID()] = rec.Clone()
	return nil
}

func (r escrowRepo) Update(_ context.Context, rec *escrow.Record) error {
	stored, ok := r.st.escrows[rec.RequestID()]
	if !ok || stored.ID() != rec.ID() {
		return infra.NewRepoErr(infra.KindNotFound, "escrow record not found", nil)
	}
	if stored.Version() != rec.Version() {
		return infra.NewRepoErr(infra.KindStaleVersion, "escrow record was modified concurrently", nil)
	}
	rec.BumpVersion()
	r.st.escrows[rec.RequestID()] = rec.Clone()
	return nil
}

type declineRepo struct{ st *state }

func (r declineRepo) Create(_ context.Context, d trust.Decline) error {
	for _, existing := range r.st.declines {
		if existing.RequestID == d.RequestID {
			return infra.NewRepoErr(infra.KindDuplicateKey, "request already has a decline record", nil)
		}
	}
	r.st.declines = append(r.st.declines, d)
	return nil
}

func (r declineRepo) ListByCreatorSince(_ context.Context, creatorID uuid.UUID, since time.Time) ([]trust.Decline, error) {
	var out []trust.Decline
	for _, d := range r.st.declines {
		if d.CreatorID == creatorID && d.CreatedAt.After(since) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r declineRepo) ListByRequest(_ context.Context, requestID uuid.UUID) ([]trust.Decline, error) {
	var out []trust.Decline
	for _, d := range r.st.declines {
		if d.RequestID == requestID {
			out = append(out, d)
		}
	}
	return out, nil
}

type trustRepo struct{ st *state }

func (r trustRepo) Get(_ context.Context, creatorID uuid.UUID) (*trust.Standing, error) {
	if s, ok := r.st.standings[creatorID]; ok {
		return s.Clone(), nil
	}
	return trust.NewStanding(creatorID), nil
}

func (r trustRepo) Save(_ context.Context, s *trust.Standing) error {
	r.st.standings[s.CreatorID()] = s.Clone()
	return nil
}

type availabilityRepo struct{ st *state }

func (r availabilityRepo) Get(_ context.Context, creatorID uuid.UUID) (*availability.Profile, error) {
	if p, ok := r.st.profiles[creatorID]; ok {
		return p.Clone(), nil
	}
	return availability.NewProfile(creatorID), nil
}

func (r availabilityRepo) Save(_ context.Context, p *availability.Profile) error {
	r.st.profiles[p.CreatorID()] = p.Clone()
	return nil
}

type rateCardReader struct{ st *state }

func (r rateCardReader) Snapshots(_ context.Context, creatorID uuid.UUID, ids []uuid.UUID) ([]request.ServiceSnapshot, error) {
	out := make([]request.ServiceSnapshot, 0, len(ids))
	for _, id := range ids {
		card, ok := r.st.rateCards[id]
		if !ok || card.CreatorID != creatorID || !card.Active {
			return nil, infra.NewRepoErr(infra.KindNotFound, "rate card not found for creator: "+id.String(), nil)
		}
		out = append(out, request.ServiceSnapshot{
			RateCardID: card.ID,
			Name:       card.Name,
			Platform:   card.Platform,
			PriceMinor: card.PriceMinor,
		})
	}
	return out, nil
}
