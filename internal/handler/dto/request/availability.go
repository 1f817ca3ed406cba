package request

import (
	"strings"

	"collabflow/internal/usecase/commands"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

type UpdateAvailabilityRequest struct {
	IsAvailable  *bool `json:"isAvailable,omitempty"`
	LeadTimeDays *int  `json:"leadTimeDays,omitempty"`
}

func (r UpdateAvailabilityRequest) ToInput() commands.UpdateAvailabilityInput {
	return commands.UpdateAvailabilityInput{
		IsAvailable:  r.IsAvailable,
		LeadTimeDays: r.LeadTimeDays,
	}
}

type AddSlotRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason,omitempty"`
}

func (r AddSlotRequest) ToInput() (commands.AddSlotInput, error) {
	start, end, err := parseRange(r.StartDate, r.EndDate)
	if err != nil {
		return commands.AddSlotInput{}, err
	}
	return commands.AddSlotInput{StartDate: start, EndDate: end, Reason: r.Reason}, nil
}

type AvailabilityCheckRequest struct {
	CreatorID     uuid.UUID `json:"creatorId" binding:"required"`
	ProposedStart string    `json:"proposedStart" binding:"required"`
	ProposedEnd   string    `json:"proposedEnd" binding:"required"`
}

func (r AvailabilityCheckRequest) Dates() (civil.Date, civil.Date, error) {
	return parseRange(r.ProposedStart, r.ProposedEnd)
}

func parseRange(startStr, endStr string) (civil.Date, civil.Date, error) {
	start, err := civil.ParseDate(strings.TrimSpace(startStr))
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	end, err := civil.ParseDate(strings.TrimSpace(endStr))
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return start, end, nil
}
