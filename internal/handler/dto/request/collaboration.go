package request

import (
	"strings"

	"collabflow/internal/domain/trust"
	"collabflow/internal/usecase/commands"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type CreateCollaborationRequest struct {
	CreatorID           uuid.UUID   `json:"creatorId" binding:"required"`
	BudgetMinor         int64       `json:"budgetMinor" binding:"required,gt=0"`
	Currency            string      `json:"currency,omitempty"`
	ProposedStart       string      `json:"proposedStart" binding:"required"`
	ProposedEnd         string      `json:"proposedEnd" binding:"required"`
	Description         string      `json:"description" binding:"required"`
	ContentRequirements string      `json:"contentRequirements,omitempty"`
	TargetPlatforms     []string    `json:"targetPlatforms" binding:"required,min=1"`
	Deliverables        []string    `json:"deliverables" binding:"required,min=1"`
	ServiceIDs          []uuid.UUID `json:"serviceIds,omitempty"`
	MaxRevisions        *int        `json:"maxRevisions,omitempty"`
}

func (r CreateCollaborationRequest) ToInput() (commands.CreateRequestInput, error) {
	start, err := civil.ParseDate(strings.TrimSpace(r.ProposedStart))
	if err != nil {
		return commands.CreateRequestInput{}, err
	}
	end, err := civil.ParseDate(strings.TrimSpace(r.ProposedEnd))
	if err != nil {
		return commands.CreateRequestInput{}, err
	}
	return commands.CreateRequestInput{
		CreatorID:           r.CreatorID,
		BudgetMinor:         r.BudgetMinor,
		Currency:            strings.TrimSpace(r.Currency),
		ProposedStart:       start,
		ProposedEnd:         end,
		Description:         r.Description,
		ContentRequirements: r.ContentRequirements,
		TargetPlatforms:     r.TargetPlatforms,
		Deliverables:        r.Deliverables,
		ServiceIDs:          r.ServiceIDs,
		MaxRevisions:        r.MaxRevisions,
	}, nil
}

type CounterOfferRequest struct {
	AmountMinor int64  `json:"amountMinor" binding:"required,gt=0"`
	Message     string `json:"message,omitempty"`
}

type DeclineRequest struct {
	Category string `json:"category" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

func (r DeclineRequest) ToInput() commands.DeclineInput {
	return commands.DeclineInput{
		Category: trust.DeclineCategory(strings.TrimSpace(r.Category)),
		Reason:   r.Reason,
	}
}

type SubmitContentRequest struct {
	ContentURLs []string `json:"contentUrls" binding:"required,min=1"`
}

type RevisionRequest struct {
	Notes string `json:"notes" binding:"required"`
}

type ListRequestsQuery struct {
	Status []string `form:"status"`
	Limit  int      `form:"limit"`
	Offset int      `form:"offset"`
}

// PaymentCallback is the gateway's notification body. Only the reference
// is trusted; the outcome is always re-verified with the gateway.
type PaymentCallback struct {
	Event     string `json:"event"`
	Reference string `json:"reference" binding:"required"`
}
