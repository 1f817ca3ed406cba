//go:build unit || e2e

package builder

import (
	reqdto "collabflow/internal/handler/dto/request"

	"github.com/google/uuid"
)

func NewCreateRequestDTO(creatorID uuid.UUID) reqdto.CreateCollaborationRequest {
	return reqdto.CreateCollaborationRequest{
		CreatorID:           creatorID,
		BudgetMinor:         50000,
		Currency:            "NGN",
		ProposedStart:       "2024-01-10",
		ProposedEnd:         "2024-01-12",
		Description:         "Launch campaign for our new running shoe",
		ContentRequirements: "Show the shoe on a morning run",
		TargetPlatforms:     []string{"instagram", "tiktok"},
		Deliverables:        []string{"1 reel", "3 stories"},
	}
}
