package availability

import (
	"fmt"

	"collabflow/internal/pkg/errs"

	"cloud.google.com/go/civil"
)

type ConflictType string

const (
	ConflictUnavailable  ConflictType = "UNAVAILABLE"
	ConflictLeadTime     ConflictType = "LEAD_TIME"
	ConflictBlockedRange ConflictType = "BLOCKED_RANGE"
)

// Conflict is the typed rejection returned by CheckConflict.
type Conflict struct {
	Type     ConflictType
	Message  string
	MinStart *civil.Date
	Slot     *Slot
}

func (c *Conflict) Error() string {
	return string(c.Type) + ": " + c.Message
}

// AsError marks the conflict with the conflict error class.
func (c *Conflict) AsError() error {
	if c == nil {
		return nil
	}
	return errs.Mark(c, errs.ErrConflict)
}

// CheckConflict returns nil when the proposed range is allowed. today is
// supplied by the caller so the result is deterministic.
func CheckConflict(p *Profile, proposedStart, proposedEnd, today civil.Date) *Conflict {
	if !p.IsAvailable() {
		return &Conflict{
			Type:    ConflictUnavailable,
			Message: "creator is not accepting new collaborations",
		}
	}

	minStart := today.AddDays(p.LeadTimeDays())
	if proposedStart.Before(minStart) {
		return &Conflict{
			Type:     ConflictLeadTime,
			Message:  fmt.Sprintf("creator requires %d days notice; earliest allowed start date is %s", p.LeadTimeDays(), minStart),
			MinStart: &minStart,
		}
	}

	for _, s := range p.Slots() {
		if !s.Overlaps(proposedStart, proposedEnd) {
			continue
		}
		slot := s
		msg := fmt.Sprintf("dates overlap %s period %s to %s", slot.Type, slot.Start, slot.End)
		if slot.Reason != "" {
			msg += " (" + slot.Reason + ")"
		}
		return &Conflict{
			Type:    ConflictBlockedRange,
			Message: msg,
			Slot:    &slot,
		}
	}
	return nil
}
