package response

import (
	"time"

	"collabflow/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID        uuid.UUID  `json:"id"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Reason    string     `json:"reason,omitempty"`
	SlotType  string     `json:"slotType"`
	RequestID *uuid.UUID `json:"requestId,omitempty"`
}

type AvailabilityResponse struct {
	CreatorID    uuid.UUID      `json:"creatorId"`
	IsAvailable  bool           `json:"isAvailable"`
	LeadTimeDays int            `json:"leadTimeDays"`
	Slots        []SlotResponse `json:"slots"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	out := &AvailabilityResponse{}
	if err := copyFrom(out, v, "availability", deepCopy); err != nil {
		return nil, err
	}
	if out.Slots == nil {
		out.Slots = []SlotResponse{}
	}
	return out, nil
}

type ConflictResponse struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	MinStart *string       `json:"minStart,omitempty"`
	Slot     *SlotResponse `json:"slot,omitempty"`
}

type CheckResponse struct {
	Allowed  bool              `json:"allowed"`
	Conflict *ConflictResponse `json:"conflict,omitempty"`
}

func FromCheckResult(v *queries.CheckResult) (*CheckResponse, error) {
	out := &CheckResponse{}
	if err := copyFrom(out, v, "availability check", deepCopy); err != nil {
		return nil, err
	}
	return out, nil
}

type ExposureResponse struct {
	CreatorID uuid.UUID `json:"creatorId"`
	Exposed   bool      `json:"exposed"`
	Condition string    `json:"condition,omitempty"`
}

func FromExposureView(v *queries.ExposureView) (*ExposureResponse, error) {
	out := &ExposureResponse{}
	if err := copyFrom(out, v, "exposure", shallowCopy); err != nil {
		return nil, err
	}
	return out, nil
}

type TrustResponse struct {
	CreatorID           uuid.UUID  `json:"creatorId"`
	Suspended           bool       `json:"suspended"`
	SuspendedUntil      *time.Time `json:"suspendedUntil,omitempty"`
	RemainingSeconds    int64      `json:"remainingSeconds"`
	SuspensionCount     int        `json:"suspensionCount"`
	LastWarningAt       *time.Time `json:"lastWarningAt,omitempty"`
	QualifyingDeclines  int        `json:"qualifyingDeclines"`
	WarningThreshold    int        `json:"warningThreshold"`
	SuspensionThreshold int        `json:"suspensionThreshold"`
	WindowSeconds       int64      `json:"windowSeconds"`
}

func FromTrustView(v *queries.TrustView) (*TrustResponse, error) {
	out := &TrustResponse{}
	if err := copyFrom(out, v, "trust standing", shallowCopy); err != nil {
		return nil, err
	}
	return out, nil
}
