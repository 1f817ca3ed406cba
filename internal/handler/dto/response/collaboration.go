package response

import (
	"time"

	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/commands"
	"collabflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var (
	deepCopy    = copier.Option{DeepCopy: true}
	shallowCopy = copier.Option{}
)

// copyFrom maps a view onto its response shape. A nil view or an unmappable
// field is an error rather than a silently empty body.
func copyFrom(to, from any, what string, opt copier.Option) error {
	if err := copier.CopyWithOption(to, from, opt); err != nil {
		return errs.Wrapf(err, "map %s response", what)
	}
	return nil
}

type ServiceResponse struct {
	RateCardID uuid.UUID `json:"rateCardId"`
	Name       string    `json:"name"`
	Platform   string    `json:"platform"`
	PriceMinor int64     `json:"priceMinor"`
}

type RequestResponse struct {
	ID                  uuid.UUID         `json:"id"`
	ReferenceNumber     string            `json:"referenceNumber"`
	BrandID             uuid.UUID         `json:"brandId"`
	CreatorID           uuid.UUID         `json:"creatorId"`
	ProposedBudgetMinor int64             `json:"proposedBudgetMinor"`
	FinalBudgetMinor    *int64            `json:"finalBudgetMinor,omitempty"`
	Currency            string            `json:"currency"`
	ProposedStart       string            `json:"proposedStart"`
	ProposedEnd         string            `json:"proposedEnd"`
	Description         string            `json:"description"`
	ContentRequirements string            `json:"contentRequirements,omitempty"`
	TargetPlatforms     []string          `json:"targetPlatforms"`
	Deliverables        []string          `json:"deliverables"`
	Services            []ServiceResponse `json:"services"`
	Status              string            `json:"status"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
	ExpiresAt           *time.Time        `json:"expiresAt,omitempty"`
	RemainingSeconds    int64             `json:"remainingSeconds"`
	ViewedAt            *time.Time        `json:"viewedAt,omitempty"`
	AcceptedAt          *time.Time        `json:"acceptedAt,omitempty"`
	RevisionCount       int               `json:"revisionCount"`
	MaxRevisions        int               `json:"maxRevisions"`
	DeclineCategory     string            `json:"declineCategory,omitempty"`
	DeclineReason       string            `json:"declineReason,omitempty"`
	BrandSignedAt       *time.Time        `json:"brandSignedAt,omitempty"`
	CreatorSignedAt     *time.Time        `json:"creatorSignedAt,omitempty"`
	ContentURLs         []string          `json:"contentUrls"`
	RevisionNotes       string            `json:"revisionNotes,omitempty"`
	SubmittedAt         *time.Time        `json:"submittedAt,omitempty"`
	ApprovedAt          *time.Time        `json:"approvedAt,omitempty"`
	CompletedAt         *time.Time        `json:"completedAt,omitempty"`
	CancelledAt         *time.Time        `json:"cancelledAt,omitempty"`
	ConversationID      string            `json:"conversationId,omitempty"`
	AvailableActions    []string          `json:"availableActions"`
	Version             int64             `json:"version"`
}

func FromRequestView(v *queries.RequestView) (*RequestResponse, error) {
	if v == nil {
		return nil, nil
	}
	out := &RequestResponse{}
	if err := copyFrom(out, v, "request", deepCopy); err != nil {
		return nil, err
	}
	if out.Services == nil {
		out.Services = []ServiceResponse{}
	}
	if out.ContentURLs == nil {
		out.ContentURLs = []string{}
	}
	if out.AvailableActions == nil {
		out.AvailableActions = []string{}
	}
	return out, nil
}

func FromRequestViews(vs []*queries.RequestView) ([]*RequestResponse, error) {
	out := make([]*RequestResponse, 0, len(vs))
	for _, v := range vs {
		r, err := FromRequestView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

type EscrowResponse struct {
	ID                 uuid.UUID  `json:"id"`
	RequestID          uuid.UUID  `json:"requestId"`
	Reference          string     `json:"reference"`
	AmountMinor        int64      `json:"amountMinor"`
	PlatformFeeMinor   int64      `json:"platformFeeMinor"`
	CreatorPayoutMinor int64      `json:"creatorPayoutMinor"`
	Currency           string     `json:"currency"`
	FeeBasisPoints     int        `json:"feeBasisPoints"`
	Tier               string     `json:"tier"`
	Status             string     `json:"status"`
	Attempts           int        `json:"attempts"`
	FailureReason      string     `json:"failureReason,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	EscrowAt           *time.Time `json:"escrowAt,omitempty"`
	EscrowReleasedAt   *time.Time `json:"escrowReleasedAt,omitempty"`
	FailedAt           *time.Time `json:"failedAt,omitempty"`
}

func FromEscrowView(v *queries.EscrowView) (*EscrowResponse, error) {
	if v == nil {
		return nil, nil
	}
	out := &EscrowResponse{}
	if err := copyFrom(out, v, "escrow", shallowCopy); err != nil {
		return nil, err
	}
	return out, nil
}

type NegotiationEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	Sequence    int       `json:"sequence"`
	Author      string    `json:"author"`
	AuthorID    uuid.UUID `json:"authorId"`
	AmountMinor int64     `json:"amountMinor"`
	Currency    string    `json:"currency"`
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromNegotiationViews(vs []queries.NegotiationEntryView) ([]NegotiationEntryResponse, error) {
	out := make([]NegotiationEntryResponse, 0, len(vs))
	if err := copyFrom(&out, vs, "negotiation history", shallowCopy); err != nil {
		return nil, err
	}
	return out, nil
}

type DeclineOutcomeResponse struct {
	QualifyingCount int        `json:"qualifyingDeclines"`
	Warning         string     `json:"warning,omitempty"`
	Suspended       bool       `json:"suspended"`
	SuspendedUntil  *time.Time `json:"suspendedUntil,omitempty"`
}

type DeclineResponse struct {
	Request *RequestResponse       `json:"request"`
	Trust   DeclineOutcomeResponse `json:"trust"`
}

func FromDeclineResult(r *commands.DeclineResult) (*DeclineResponse, error) {
	req, err := FromRequestView(r.Request)
	if err != nil {
		return nil, err
	}
	out := &DeclineResponse{Request: req}
	if err := copyFrom(&out.Trust, &r.Trust, "decline outcome", shallowCopy); err != nil {
		return nil, err
	}
	return out, nil
}

// SettlementResponse carries a request together with its escrow record.
type SettlementResponse struct {
	Request *RequestResponse `json:"request"`
	Escrow  *EscrowResponse  `json:"escrow,omitempty"`
}

func FromApproveResult(r *commands.ApproveResult) (*SettlementResponse, error) {
	return settlement(r.Request, r.Escrow)
}

func FromPaymentResult(r *commands.PaymentResult) (*SettlementResponse, error) {
	return settlement(r.Request, r.Escrow)
}

func settlement(rv *queries.RequestView, ev *queries.EscrowView) (*SettlementResponse, error) {
	req, err := FromRequestView(rv)
	if err != nil {
		return nil, err
	}
	esc, err := FromEscrowView(ev)
	if err != nil {
		return nil, err
	}
	return &SettlementResponse{Request: req, Escrow: esc}, nil
}
