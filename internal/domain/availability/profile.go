package availability

import (
	"sort"
	"strings"
	"time"

	"collabflow/internal/pkg/errs"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

const MaxSlotReasonLength = 200

var (
	ErrInvalidDateRange   = errs.Validation("start date must not be after end date")
	ErrNegativeLeadTime   = errs.Validation("lead time cannot be negative")
	ErrSlotReasonTooLong  = errs.Validation("slot reason exceeds maximum length")
	ErrSlotNotFound       = errs.NotFound("slot not found")
	ErrBookedSlotReadOnly = errs.Validation("booked slots are managed by the system and cannot be removed")
)

type SlotType string

const (
	SlotBlocked SlotType = "blocked"
	SlotBooked  SlotType = "booked"
)

func (t SlotType) IsValid() bool {
	return t == SlotBlocked || t == SlotBooked
}

type Slot struct {
	ID        uuid.UUID
	Start     civil.Date
	End       civil.Date
	Reason    string
	Type      SlotType
	RequestID *uuid.UUID
}

// Overlaps uses inclusive calendar-day bounds on both sides.
func (s Slot) Overlaps(start, end civil.Date) bool {
	return !start.After(s.End) && !end.Before(s.Start)
}

type Profile struct {
	creatorID    uuid.UUID
	isAvailable  bool
	leadTimeDays int
	slots        []Slot
	updatedAt    time.Time
}

// NewProfile is the default profile of a creator that never configured one.
func NewProfile(creatorID uuid.UUID) *Profile {
	return &Profile{creatorID: creatorID, isAvailable: true}
}

func ReconstructProfile(creatorID uuid.UUID, isAvailable bool, leadTimeDays int, slots []Slot, updatedAt time.Time) *Profile {
	cp := make([]Slot, len(slots))
	copy(cp, slots)
	return &Profile{
		creatorID:    creatorID,
		isAvailable:  isAvailable,
		leadTimeDays: leadTimeDays,
		slots:        cp,
		updatedAt:    updatedAt,
	}
}

func (p *Profile) CreatorID() uuid.UUID { return p.creatorID }
func (p *Profile) IsAvailable() bool    { return p.isAvailable }
func (p *Profile) LeadTimeDays() int    { return p.leadTimeDays }
func (p *Profile) UpdatedAt() time.Time { return p.updatedAt }

// Slots returns the slots ordered by start date, then end date.
func (p *Profile) Slots() []Slot {
	out := make([]Slot, len(p.slots))
	copy(out, p.slots)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].End.Before(out[j].End)
	})
	return out
}

func (p *Profile) Clone() *Profile {
	return ReconstructProfile(p.creatorID, p.isAvailable, p.leadTimeDays, p.slots, p.updatedAt)
}

func (p *Profile) SetAvailable(v bool, now time.Time) {
	p.isAvailable = v
	p.updatedAt = now
}

func (p *Profile) SetLeadTimeDays(days int, now time.Time) error {
	if days < 0 {
		return ErrNegativeLeadTime
	}
	p.leadTimeDays = days
	p.updatedAt = now
	return nil
}

func (p *Profile) AddBlockedSlot(start, end civil.Date, reason string, now time.Time) (Slot, error) {
	if err := ValidateRange(start, end); err != nil {
		return Slot{}, err
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > MaxSlotReasonLength {
		return Slot{}, ErrSlotReasonTooLong
	}
	slot := Slot{ID: uuid.New(), Start: start, End: end, Reason: reason, Type: SlotBlocked}
	p.slots = append(p.slots, slot)
	p.updatedAt = now
	return slot, nil
}

// RemoveSlot deletes a creator-managed slot.
func (p *Profile) RemoveSlot(id uuid.UUID, now time.Time) error {
	for i, s := range p.slots {
		if s.ID != id {
			continue
		}
		if s.Type == SlotBooked {
			return ErrBookedSlotReadOnly
		}
		p.slots = append(p.slots[:i:i], p.slots[i+1:]...)
		p.updatedAt = now
		return nil
	}
	return ErrSlotNotFound
}

// Book marks the request's date range as booked. Booking the same request
// twice is a no-op.
func (p *Profile) Book(requestID uuid.UUID, start, end civil.Date, now time.Time) (Slot, error) {
	if err := ValidateRange(start, end); err != nil {
		return Slot{}, err
	}
	for _, s := range p.slots {
		if s.Type == SlotBooked && s.RequestID != nil && *s.RequestID == requestID {
			return s, nil
		}
	}
	rid := requestID
	slot := Slot{ID: uuid.New(), Start: start, End: end, Reason: "collaboration booking", Type: SlotBooked, RequestID: &rid}
	p.slots = append(p.slots, slot)
	p.updatedAt = now
	return slot, nil
}

func ValidateRange(start, end civil.Date) error {
	if !start.IsValid() || !end.IsValid() || start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}
