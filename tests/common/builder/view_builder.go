//go:build unit || e2e

package builder

import (
	"time"

	"collabflow/internal/domain/request"
	"collabflow/internal/usecase/queries"

	"github.com/google/uuid"
)

// NewRequestView returns a pending request view as a creator would see it.
func NewRequestView(brandID, creatorID uuid.UUID) *queries.RequestView {
	created := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)
	expires := created.Add(48 * time.Hour)
	return &queries.RequestView{
		ID:                  uuid.New(),
		ReferenceNumber:     "COL-1A2B3C",
		BrandID:             brandID,
		CreatorID:           creatorID,
		ProposedBudgetMinor: 50000,
		Currency:            "NGN",
		ProposedStart:       "2024-01-10",
		ProposedEnd:         "2024-01-12",
		Description:         "Launch campaign for our new running shoe",
		TargetPlatforms:     []string{"instagram"},
		Deliverables:        []string{"1 reel"},
		Status:              string(request.StatusPending),
		CreatedAt:           created,
		UpdatedAt:           created,
		ExpiresAt:           &expires,
		RemainingSeconds:    int64(48 * time.Hour / time.Second),
		MaxRevisions:        2,
		AvailableActions:    []string{"view", "accept", "decline", "counter_offer"},
	}
}

func WithStatus(v *queries.RequestView, s request.Status) *queries.RequestView {
	out := *v
	out.Status = string(s)
	return &out
}

func NewEscrowView(requestID uuid.UUID) *queries.EscrowView {
	at := time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC)
	return &queries.EscrowView{
		ID:                 uuid.New(),
		RequestID:          requestID,
		Reference:          "PAY-0001",
		AmountMinor:        50000,
		PlatformFeeMinor:   5000,
		CreatorPayoutMinor: 45000,
		Currency:           "NGN",
		FeeBasisPoints:     1000,
		Tier:               "standard",
		Status:             "escrow",
		Attempts:           1,
		CreatedAt:          at,
		EscrowAt:           &at,
	}
}
