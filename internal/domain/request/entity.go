package request

import (
	"strings"
	"time"
	"unicode/utf8"

	"collabflow/internal/domain/money"
	"collabflow/internal/domain/negotiation"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

const (
	MaxDescriptionLength  = 5000
	MaxRequirementsLength = 5000
	MaxContentURLs        = 20
)

type NewParams struct {
	ReferenceNumber     string
	BrandID             uuid.UUID
	CreatorID           uuid.UUID
	Budget              money.Money
	ProposedStart       civil.Date
	ProposedEnd         civil.Date
	Description         string
	ContentRequirements string
	TargetPlatforms     []Platform
	Deliverables        []string
	Services            []ServiceSnapshot
}

// Terms are the engine settings applied at creation.
type Terms struct {
	ResponseWindow time.Duration
	MaxRevisions   int
	MinBudgetMinor int64
}

// Snapshot is the full persisted state of a Request.
type Snapshot struct {
	ID                  uuid.UUID
	ReferenceNumber     string
	BrandID             uuid.UUID
	CreatorID           uuid.UUID
	ProposedBudget      money.Money
	FinalBudget         *money.Money
	ProposedStart       civil.Date
	ProposedEnd         civil.Date
	Description         string
	ContentRequirements string
	TargetPlatforms     []Platform
	Deliverables        []string
	Services            []ServiceSnapshot
	Status              Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ExpiresAt           *time.Time
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
	Version             int64
}

// Request is a collaboration between one brand and one creator. All
// mutation goes through the action methods, which validate completely
// before writing any field.
type Request struct {
	s Snapshot
}

// NewRequest creates a pending request. The brand's proposal is recorded
// as the first entry of the returned ledger.
func NewRequest(p NewParams, terms Terms, now time.Time) (*Request, *negotiation.Ledger, error) {
	if strings.TrimSpace(p.ReferenceNumber) == "" {
		return nil, nil, ErrReferenceRequired
	}
	if p.BrandID == p.CreatorID {
		return nil, nil, ErrSameParty
	}
	if p.Budget.Minor() < terms.MinBudgetMinor || p.Budget.IsZero() {
		return nil, nil, ErrBudgetBelowMinimum
	}
	if !p.ProposedStart.IsValid() || !p.ProposedEnd.IsValid() || p.ProposedStart.After(p.ProposedEnd) {
		return nil, nil, ErrInvalidDates
	}
	if terms.MaxRevisions < 0 {
		return nil, nil, ErrInvalidMaxRevisions
	}
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		return nil, nil, ErrDescriptionRequired
	}
	if utf8.RuneCountInString(desc) > MaxDescriptionLength ||
		utf8.RuneCountInString(p.ContentRequirements) > MaxRequirementsLength {
		return nil, nil, ErrDescriptionTooLong
	}
	platforms, err := normalizePlatforms(p.TargetPlatforms)
	if err != nil {
		return nil, nil, err
	}
	deliverables := make([]string, 0, len(p.Deliverables))
	for _, d := range p.Deliverables {
		if d = strings.TrimSpace(d); d != "" {
			deliverables = append(deliverables, d)
		}
	}
	if len(deliverables) == 0 {
		return nil, nil, ErrDeliverablesRequired
	}

	expires := now.Add(terms.ResponseWindow)
	r := &Request{s: Snapshot{
		ID:                  uuid.New(),
		ReferenceNumber:     p.ReferenceNumber,
		BrandID:             p.BrandID,
		CreatorID:           p.CreatorID,
		ProposedBudget:      p.Budget,
		ProposedStart:       p.ProposedStart,
		ProposedEnd:         p.ProposedEnd,
		Description:         desc,
		ContentRequirements: strings.TrimSpace(p.ContentRequirements),
		TargetPlatforms:     platforms,
		Deliverables:        deliverables,
		Services:            append([]ServiceSnapshot(nil), p.Services...),
		Status:              StatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
		ExpiresAt:           &expires,
		MaxRevisions:        terms.MaxRevisions,
	}}

	ledger := negotiation.NewLedger(r.s.ID)
	if _, err := ledger.Append(negotiation.PartyBrand, p.BrandID, p.Budget, "initial proposal", now); err != nil {
		return nil, nil, err
	}
	return r, ledger, nil
}

func normalizePlatforms(in []Platform) ([]Platform, error) {
	seen := make(map[Platform]bool, len(in))
	out := make([]Platform, 0, len(in))
	for _, p := range in {
		p = Platform(strings.ToLower(strings.TrimSpace(string(p))))
		if !p.IsValid() {
			return nil, ErrInvalidPlatform
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, ErrPlatformsRequired
	}
	return out, nil
}

func Reconstruct(s Snapshot) *Request {
	return &Request{s: cloneSnapshot(s)}
}

func (r *Request) Snapshot() Snapshot { return cloneSnapshot(r.s) }
func (r *Request) Clone() *Request    { return Reconstruct(r.s) }

// BumpVersion is called by repositories after a successful versioned write.
func (r *Request) BumpVersion() { r.s.Version++ }

// SetConversationID records the conversation opened for this request.
func (r *Request) SetConversationID(id string) { r.s.ConversationID = id }

func (r *Request) ID() uuid.UUID               { return r.s.ID }
func (r *Request) ReferenceNumber() string     { return r.s.ReferenceNumber }
func (r *Request) BrandID() uuid.UUID          { return r.s.BrandID }
func (r *Request) CreatorID() uuid.UUID        { return r.s.CreatorID }
func (r *Request) ProposedBudget() money.Money { return r.s.ProposedBudget }
func (r *Request) ProposedStart() civil.Date   { return r.s.ProposedStart }
func (r *Request) ProposedEnd() civil.Date     { return r.s.ProposedEnd }
func (r *Request) Status() Status              { return r.s.Status }
func (r *Request) CreatedAt() time.Time        { return r.s.CreatedAt }
func (r *Request) UpdatedAt() time.Time        { return r.s.UpdatedAt }
func (r *Request) RevisionCount() int          { return r.s.RevisionCount }
func (r *Request) MaxRevisions() int           { return r.s.MaxRevisions }
func (r *Request) ConversationID() string      { return r.s.ConversationID }
func (r *Request) Version() int64              { return r.s.Version }
func (r *Request) ExpiresAt() *time.Time       { return copyTime(r.s.ExpiresAt) }

func (r *Request) FinalBudget() *money.Money {
	if r.s.FinalBudget == nil {
		return nil
	}
	v := *r.s.FinalBudget
	return &v
}

// Involves reports whether id is the request's brand or creator.
func (r *Request) Involves(id uuid.UUID) bool {
	return id == r.s.BrandID || id == r.s.CreatorID
}

func cloneSnapshot(s Snapshot) Snapshot {
	out := s
	out.TargetPlatforms = append([]Platform(nil), s.TargetPlatforms...)
	out.Deliverables = append([]string(nil), s.Deliverables...)
	out.Services = append([]ServiceSnapshot(nil), s.Services...)
	out.ContentURLs = append([]string(nil), s.ContentURLs...)
	if s.FinalBudget != nil {
		v := *s.FinalBudget
		out.FinalBudget = &v
	}
	out.ExpiresAt = copyTime(s.ExpiresAt)
	out.ViewedAt = copyTime(s.ViewedAt)
	out.AcceptedAt = copyTime(s.AcceptedAt)
	out.BrandSignedAt = copyTime(s.BrandSignedAt)
	out.CreatorSignedAt = copyTime(s.CreatorSignedAt)
	out.SubmittedAt = copyTime(s.SubmittedAt)
	out.ApprovedAt = copyTime(s.ApprovedAt)
	out.CompletedAt = copyTime(s.CompletedAt)
	out.CancelledAt = copyTime(s.CancelledAt)
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
