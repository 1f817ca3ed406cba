package queries

import (
	"time"

	"collabflow/internal/domain/availability"
	"collabflow/internal/domain/escrow"
	"collabflow/internal/domain/negotiation"
	"collabflow/internal/domain/request"
	"collabflow/internal/domain/trust"

	"github.com/google/uuid"
)

type ServiceView struct {
	RateCardID uuid.UUID
	Name       string
	Platform   string
	PriceMinor int64
}

// RequestView is the read model of a request as seen by one role.
type RequestView struct {
	ID                  uuid.UUID
	ReferenceNumber     string
	BrandID             uuid.UUID
	CreatorID           uuid.UUID
	ProposedBudgetMinor int64
	FinalBudgetMinor    *int64
	Currency            string
	ProposedStart       string
	ProposedEnd         string
	Description         string
	ContentRequirements string
	TargetPlatforms     []string
	Deliverables        []string
	Services            []ServiceView
	Status              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ExpiresAt           *time.Time
	RemainingSeconds    int64
	ViewedAt            *time.Time
	AcceptedAt          *time.Time
	RevisionCount       int
	MaxRevisions        int
	DeclineCategory     string
	DeclineReason       string
	BrandSignedAt       *time.Time
	CreatorSignedAt     *time.Time
	ContentURLs         []string
	RevisionNotes       string
	SubmittedAt         *time.Time
	ApprovedAt          *time.Time
	CompletedAt         *time.Time
	CancelledAt         *time.Time
	ConversationID      string
	AvailableActions    []string
	Version             int64
}

// NewRequestView projects r for role at now. The countdown is derived here
// and never stored.
func NewRequestView(r *request.Request, role request.Role, now time.Time) *RequestView {
	s := r.Snapshot()
	v := &RequestView{
		ID:                  s.ID,
		ReferenceNumber:     s.ReferenceNumber,
		BrandID:             s.BrandID,
		CreatorID:           s.CreatorID,
		ProposedBudgetMinor: s.ProposedBudget.Minor(),
		Currency:            s.ProposedBudget.Currency(),
		ProposedStart:       s.ProposedStart.String(),
		ProposedEnd:         s.ProposedEnd.String(),
		Description:         s.Description,
		ContentRequirements: s.ContentRequirements,
		Deliverables:        s.Deliverables,
		Status:              string(s.Status),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		ExpiresAt:           s.ExpiresAt,
		RemainingSeconds:    int64(r.Remaining(now) / time.Second),
		ViewedAt:            s.ViewedAt,
		AcceptedAt:          s.AcceptedAt,
		RevisionCount:       s.RevisionCount,
		MaxRevisions:        s.MaxRevisions,
		DeclineCategory:     s.DeclineCategory,
		DeclineReason:       s.DeclineReason,
		BrandSignedAt:       s.BrandSignedAt,
		CreatorSignedAt:     s.CreatorSignedAt,
		ContentURLs:         s.ContentURLs,
		RevisionNotes:       s.RevisionNotes,
		SubmittedAt:         s.SubmittedAt,
		ApprovedAt:          s.ApprovedAt,
		CompletedAt:         s.CompletedAt,
		CancelledAt:         s.CancelledAt,
		ConversationID:      s.ConversationID,
		Version:             s.Version,
	}
	if s.FinalBudget != nil {
		minor := s.FinalBudget.Minor()
		v.FinalBudgetMinor = &minor
	}
	for _, p := range s.TargetPlatforms {
		v.TargetPlatforms = append(v.TargetPlatforms, string(p))
	}
	for _, svc := range s.Services {
		v.Services = append(v.Services, ServiceView{
			RateCardID: svc.RateCardID,
			Name:       svc.Name,
			Platform:   string(svc.Platform),
			PriceMinor: svc.PriceMinor,
		})
	}
	for _, a := range r.AvailableActions(role, now) {
		v.AvailableActions = append(v.AvailableActions, string(a))
	}
	return v
}

type EscrowView struct {
	ID                 uuid.UUID
	RequestID          uuid.UUID
	Reference          string
	AmountMinor        int64
	PlatformFeeMinor   int64
	CreatorPayoutMinor int64
	Currency           string
	FeeBasisPoints     int
	Tier               string
	Status             string
	Attempts           int
	FailureReason      string
	CreatedAt          time.Time
	EscrowAt           *time.Time
	EscrowReleasedAt   *time.Time
	FailedAt           *time.Time
}

func NewEscrowView(rec *escrow.Record) *EscrowView {
	return &EscrowView{
		ID:                 rec.ID(),
		RequestID:          rec.RequestID(),
		Reference:          rec.Reference(),
		AmountMinor:        rec.Amount().Minor(),
		PlatformFeeMinor:   rec.PlatformFee().Minor(),
		CreatorPayoutMinor: rec.CreatorPayout().Minor(),
		Currency:           rec.Amount().Currency(),
		FeeBasisPoints:     rec.FeeBasisPoints(),
		Tier:               rec.Tier(),
		Status:             string(rec.Status()),
		Attempts:           rec.Attempts(),
		FailureReason:      rec.FailureReason(),
		CreatedAt:          rec.CreatedAt(),
		EscrowAt:           rec.EscrowAt(),
		EscrowReleasedAt:   rec.ReleasedAt(),
		FailedAt:           rec.FailedAt(),
	}
}

type NegotiationEntryView struct {
	ID          uuid.UUID
	Sequence    int
	Author      string
	AuthorID    uuid.UUID
	AmountMinor int64
	Currency    string
	Message     string
	CreatedAt   time.Time
}

func NewNegotiationEntryView(e negotiation.Entry) NegotiationEntryView {
	return NegotiationEntryView{
		ID:          e.ID,
		Sequence:    e.Sequence,
		Author:      string(e.Author),
		AuthorID:    e.AuthorID,
		AmountMinor: e.Amount.Minor(),
		Currency:    e.Amount.Currency(),
		Message:     e.Message,
		CreatedAt:   e.CreatedAt,
	}
}

type SlotView struct {
	ID        uuid.UUID
	StartDate string
	EndDate   string
	Reason    string
	SlotType  string
	RequestID *uuid.UUID
}

func newSlotView(s availability.Slot) SlotView {
	return SlotView{
		ID:        s.ID,
		StartDate: s.Start.String(),
		EndDate:   s.End.String(),
		Reason:    s.Reason,
		SlotType:  string(s.Type),
		RequestID: s.RequestID,
	}
}

type AvailabilityView struct {
	CreatorID    uuid.UUID
	IsAvailable  bool
	LeadTimeDays int
	Slots        []SlotView
	UpdatedAt    time.Time
}

func NewAvailabilityView(p *availability.Profile) *AvailabilityView {
	v := &AvailabilityView{
		CreatorID:    p.CreatorID(),
		IsAvailable:  p.IsAvailable(),
		LeadTimeDays: p.LeadTimeDays(),
		Slots:        []SlotView{},
		UpdatedAt:    p.UpdatedAt(),
	}
	for _, s := range p.Slots() {
		v.Slots = append(v.Slots, newSlotView(s))
	}
	return v
}

type ConflictView struct {
	Type     string
	Message  string
	MinStart *string
	Slot     *SlotView
}

func NewConflictView(c *availability.Conflict) *ConflictView {
	if c == nil {
		return nil
	}
	v := &ConflictView{Type: string(c.Type), Message: c.Message}
	if c.MinStart != nil {
		s := c.MinStart.String()
		v.MinStart = &s
	}
	if c.Slot != nil {
		sv := newSlotView(*c.Slot)
		v.Slot = &sv
	}
	return v
}

type CheckResult struct {
	Allowed  bool
	Conflict *ConflictView
}

const (
	ConditionSuspended   = "SUSPENDED"
	ConditionUnavailable = "UNAVAILABLE"
)

type ExposureView struct {
	CreatorID uuid.UUID
	Exposed   bool
	// Condition is UNAVAILABLE when the creator paused new work. Suspension
	// is reported as an error instead.
	Condition string
}

type TrustView struct {
	CreatorID           uuid.UUID
	Suspended           bool
	SuspendedUntil      *time.Time
	RemainingSeconds    int64
	SuspensionCount     int
	LastWarningAt       *time.Time
	QualifyingDeclines  int
	WarningThreshold    int
	SuspensionThreshold int
	WindowSeconds       int64
}

// NewTrustView summarises standing and the creator's declines inside the
// policy window.
func NewTrustView(s *trust.Standing, recent []trust.Decline, policy trust.Policy, now time.Time) *TrustView {
	v := &TrustView{
		CreatorID:           s.CreatorID(),
		Suspended:           s.IsSuspended(now),
		SuspensionCount:     s.SuspensionCount(),
		LastWarningAt:       s.LastWarningAt(),
		WarningThreshold:    policy.WarningThreshold,
		SuspensionThreshold: policy.SuspensionThreshold,
		WindowSeconds:       int64(policy.Window / time.Second),
	}
	if v.Suspended {
		v.SuspendedUntil = s.SuspendedUntil()
		v.RemainingSeconds = int64(v.SuspendedUntil.Sub(now) / time.Second)
	}
	since := now.Add(-policy.Window)
	for _, d := range recent {
		if d.Category.Counts() && d.CreatedAt.After(since) {
			v.QualifyingDeclines++
		}
	}
	return v
}
