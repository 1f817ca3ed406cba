package trust

import (
	"time"

	"github.com/google/uuid"
)

// Standing is the per-creator trust state mutated by RecordDecline.
type Standing struct {
	creatorID       uuid.UUID
	suspendedUntil  *time.Time
	suspensionCount int
	lastWarningAt   *time.Time
	updatedAt       time.Time
}

func NewStanding(creatorID uuid.UUID) *Standing {
	return &Standing{creatorID: creatorID}
}

func ReconstructStanding(creatorID uuid.UUID, suspendedUntil *time.Time, suspensionCount int, lastWarningAt *time.Time, updatedAt time.Time) *Standing {
	return &Standing{
		creatorID:       creatorID,
		suspendedUntil:  copyTime(suspendedUntil),
		suspensionCount: suspensionCount,
		lastWarningAt:   copyTime(lastWarningAt),
		updatedAt:       updatedAt,
	}
}

func (s *Standing) CreatorID() uuid.UUID       { return s.creatorID }
func (s *Standing) SuspendedUntil() *time.Time { return copyTime(s.suspendedUntil) }
func (s *Standing) SuspensionCount() int       { return s.suspensionCount }
func (s *Standing) LastWarningAt() *time.Time  { return copyTime(s.lastWarningAt) }
func (s *Standing) UpdatedAt() time.Time       { return s.updatedAt }

func (s *Standing) IsSuspended(now time.Time) bool {
	return s != nil && s.suspendedUntil != nil && now.Before(*s.suspendedUntil)
}

func (s *Standing) Clone() *Standing {
	return ReconstructStanding(s.creatorID, s.suspendedUntil, s.suspensionCount, s.lastWarningAt, s.updatedAt)
}

func (s *Standing) suspend(until, now time.Time) {
	// never shorten a running suspension
	if s.suspendedUntil == nil || until.After(*s.suspendedUntil) {
		s.suspendedUntil = &until
	}
	s.suspensionCount++
	s.updatedAt = now
}

func (s *Standing) warn(now time.Time) {
	s.lastWarningAt = &now
	s.updatedAt = now
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
