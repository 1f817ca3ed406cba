package converter

import (
	"encoding/json"
	"time"

	"collabflow/internal/domain/money"
	"collabflow/internal/domain/request"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// RequestRow mirrors collaboration_requests column for column.
type RequestRow struct {
	ID                  uuid.UUID
	ReferenceNumber     string
	BrandID             uuid.UUID
	CreatorID           uuid.UUID
	ProposedBudget      int64
	Currency            string
	FinalBudget         pgtype.Int8
	ProposedStart       pgtype.Date
	ProposedEnd         pgtype.Date
	Description         string
	ContentRequirements string
	TargetPlatforms     []string
	Deliverables        []string
	Services            []byte
	Status              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ExpiresAt           pgtype.Timestamptz
	ViewedAt            pgtype.Timestamptz
	AcceptedAt          pgtype.Timestamptz
	RevisionCount       int32
	MaxRevisions        int32
	DeclineCategory     string
	DeclineReason       string
	BrandSignedAt       pgtype.Timestamptz
	CreatorSignedAt     pgtype.Timestamptz
	ContentURLs         []string
	RevisionNotes       string
	SubmittedAt         pgtype.Timestamptz
	ApprovedAt          pgtype.Timestamptz
	CompletedAt         pgtype.Timestamptz
	CancelledAt         pgtype.Timestamptz
	ConversationID      string
	Version             int64
}

// ScanTargets returns pointers in column order for pgx.Row.Scan.
func (r *RequestRow) ScanTargets() []any {
	return []any{
		&r.ID, &r.ReferenceNumber, &r.BrandID, &r.CreatorID,
		&r.ProposedBudget, &r.Currency, &r.FinalBudget,
		&r.ProposedStart, &r.ProposedEnd,
		&r.Description, &r.ContentRequirements, &r.TargetPlatforms, &r.Deliverables, &r.Services,
		&r.Status, &r.CreatedAt, &r.UpdatedAt,
		&r.ExpiresAt, &r.ViewedAt, &r.AcceptedAt,
		&r.RevisionCount, &r.MaxRevisions,
		&r.DeclineCategory, &r.DeclineReason,
		&r.BrandSignedAt, &r.CreatorSignedAt,
		&r.ContentURLs, &r.RevisionNotes,
		&r.SubmittedAt, &r.ApprovedAt, &r.CompletedAt, &r.CancelledAt,
		&r.ConversationID, &r.Version,
	}
}

// Values returns column values in the same order as ScanTargets.
func (r *RequestRow) Values() []any {
	return []any{
		r.ID, r.ReferenceNumber, r.BrandID, r.CreatorID,
		r.ProposedBudget, r.Currency, r.FinalBudget,
		r.ProposedStart, r.ProposedEnd,
		r.Description, r.ContentRequirements, r.TargetPlatforms, r.Deliverables, r.Services,
		r.Status, r.CreatedAt, r.UpdatedAt,
		r.ExpiresAt, r.ViewedAt, r.AcceptedAt,
		r.RevisionCount, r.MaxRevisions,
		r.DeclineCategory, r.DeclineReason,
		r.BrandSignedAt, r.CreatorSignedAt,
		r.ContentURLs, r.RevisionNotes,
		r.SubmittedAt, r.ApprovedAt, r.CompletedAt, r.CancelledAt,
		r.ConversationID, r.Version,
	}
}

// UpdateValues returns id, expected version, then the mutable columns.
func (r *RequestRow) UpdateValues() []any {
	return []any{
		r.ID, r.Version,
		r.FinalBudget, r.Status, r.UpdatedAt,
		r.ExpiresAt, r.ViewedAt, r.AcceptedAt,
		r.RevisionCount,
		r.DeclineCategory, r.DeclineReason,
		r.BrandSignedAt, r.CreatorSignedAt,
		r.ContentURLs, r.RevisionNotes,
		r.SubmittedAt, r.ApprovedAt, r.CompletedAt, r.CancelledAt,
		r.ConversationID,
	}
}

type serviceJSON struct {
	RateCardID uuid.UUID `json:"rate_card_id"`
	Name       string    `json:"name"`
	Platform   string    `json:"platform"`
	PriceMinor int64     `json:"price_minor"`
}

func RequestToRow(r *request.Request) (RequestRow, error) {
	s := r.Snapshot()

	services := make([]serviceJSON, 0, len(s.Services))
	for _, svc := range s.Services {
		services = append(services, serviceJSON{
			RateCardID: svc.RateCardID,
			Name:       svc.Name,
			Platform:   string(svc.Platform),
			PriceMinor: svc.PriceMinor,
		})
	}
	servicesJSON, err := json.Marshal(services)
	if err != nil {
		return RequestRow{}, errs.Wrap(err, "failed to encode services")
	}

	platforms := make([]string, 0, len(s.TargetPlatforms))
	for _, p := range s.TargetPlatforms {
		platforms = append(platforms, string(p))
	}

	var finalBudget *int64
	if s.FinalBudget != nil {
		v := s.FinalBudget.Minor()
		finalBudget = &v
	}

	return RequestRow{
		ID:                  s.ID,
		ReferenceNumber:     s.ReferenceNumber,
		BrandID:             s.BrandID,
		CreatorID:           s.CreatorID,
		ProposedBudget:      s.ProposedBudget.Minor(),
		Currency:            s.ProposedBudget.Currency(),
		FinalBudget:         pgconv.Int8PtrToPgtype(finalBudget),
		ProposedStart:       pgconv.DateToPgtype(s.ProposedStart),
		ProposedEnd:         pgconv.DateToPgtype(s.ProposedEnd),
		Description:         s.Description,
		ContentRequirements: s.ContentRequirements,
		TargetPlatforms:     platforms,
		Deliverables:        nonNil(s.Deliverables),
		Services:            servicesJSON,
		Status:              string(s.Status),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		ExpiresAt:           pgconv.TimePtrToPgtype(s.ExpiresAt),
		ViewedAt:            pgconv.TimePtrToPgtype(s.ViewedAt),
		AcceptedAt:          pgconv.TimePtrToPgtype(s.AcceptedAt),
		RevisionCount:       int32(s.RevisionCount), // #nosec G115 -- bounded by max_revisions
		MaxRevisions:        int32(s.MaxRevisions),  // #nosec G115 -- validated at creation
		DeclineCategory:     s.DeclineCategory,
		DeclineReason:       s.DeclineReason,
		BrandSignedAt:       pgconv.TimePtrToPgtype(s.BrandSignedAt),
		CreatorSignedAt:     pgconv.TimePtrToPgtype(s.CreatorSignedAt),
		ContentURLs:         nonNil(s.ContentURLs),
		RevisionNotes:       s.RevisionNotes,
		SubmittedAt:         pgconv.TimePtrToPgtype(s.SubmittedAt),
		ApprovedAt:          pgconv.TimePtrToPgtype(s.ApprovedAt),
		CompletedAt:         pgconv.TimePtrToPgtype(s.CompletedAt),
		CancelledAt:         pgconv.TimePtrToPgtype(s.CancelledAt),
		ConversationID:      s.ConversationID,
		Version:             s.Version,
	}, nil
}

func RequestFromRow(row RequestRow) (*request.Request, error) {
	budget, err := money.New(row.ProposedBudget, row.Currency)
	if err != nil {
		return nil, errs.Wrap(err, "invalid stored budget")
	}

	var finalBudget *money.Money
	if v := pgconv.Int8PtrFromPgtype(row.FinalBudget); v != nil {
		fb, err := money.New(*v, row.Currency)
		if err != nil {
			return nil, errs.Wrap(err, "invalid stored final budget")
		}
		finalBudget = &fb
	}

	var services []serviceJSON
	if len(row.Services) > 0 {
		if err := json.Unmarshal(row.Services, &services); err != nil {
			return nil, errs.Wrap(err, "failed to decode services")
		}
	}
	snapshots := make([]request.ServiceSnapshot, 0, len(services))
	for _, svc := range services {
		snapshots = append(snapshots, request.ServiceSnapshot{
			RateCardID: svc.RateCardID,
			Name:       svc.Name,
			Platform:   request.Platform(svc.Platform),
			PriceMinor: svc.PriceMinor,
		})
	}

	platforms := make([]request.Platform, 0, len(row.TargetPlatforms))
	for _, p := range row.TargetPlatforms {
		platforms = append(platforms, request.Platform(p))
	}

	return request.Reconstruct(request.Snapshot{
		ID:                  row.ID,
		ReferenceNumber:     row.ReferenceNumber,
		BrandID:             row.BrandID,
		CreatorID:           row.CreatorID,
		ProposedBudget:      budget,
		FinalBudget:         finalBudget,
		ProposedStart:       pgconv.DateFromPgtype(row.ProposedStart),
		ProposedEnd:         pgconv.DateFromPgtype(row.ProposedEnd),
		Description:         row.Description,
		ContentRequirements: row.ContentRequirements,
		TargetPlatforms:     platforms,
		Deliverables:        row.Deliverables,
		Services:            snapshots,
		Status:              request.Status(row.Status),
		CreatedAt:           row.CreatedAt.UTC(),
		UpdatedAt:           row.UpdatedAt.UTC(),
		ExpiresAt:           pgconv.TimePtrFromPgtype(row.ExpiresAt),
		ViewedAt:            pgconv.TimePtrFromPgtype(row.ViewedAt),
		AcceptedAt:          pgconv.TimePtrFromPgtype(row.AcceptedAt),
		RevisionCount:       int(row.RevisionCount),
		MaxRevisions:        int(row.MaxRevisions),
		DeclineCategory:     row.DeclineCategory,
		DeclineReason:       row.DeclineReason,
		BrandSignedAt:       pgconv.TimePtrFromPgtype(row.BrandSignedAt),
		CreatorSignedAt:     pgconv.TimePtrFromPgtype(row.CreatorSignedAt),
		ContentURLs:         row.ContentURLs,
		RevisionNotes:       row.RevisionNotes,
		SubmittedAt:         pgconv.TimePtrFromPgtype(row.SubmittedAt),
		ApprovedAt:          pgconv.TimePtrFromPgtype(row.ApprovedAt),
		CompletedAt:         pgconv.TimePtrFromPgtype(row.CompletedAt),
		CancelledAt:         pgconv.TimePtrFromPgtype(row.CancelledAt),
		ConversationID:      row.ConversationID,
		Version:             row.Version,
	}), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
