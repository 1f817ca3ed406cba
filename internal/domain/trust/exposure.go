package trust

import (
	"fmt"
	"time"

	"collabflow/internal/pkg/errs"

	"github.com/google/uuid"
)

// SuspendedError is the SUSPENDED exposure condition. It is distinct from the
// availability UNAVAILABLE conflict and carries the end of the suspension.
type SuspendedError struct {
	CreatorID uuid.UUID
	Until     time.Time
	// Remaining is the time left at the moment the check ran.
	Remaining time.Duration
}

func (e *SuspendedError) Error() string {
	return fmt.Sprintf("SUSPENDED: creator is suspended until %s", e.Until.UTC().Format(time.RFC3339))
}

// CheckExposure rejects brand-facing exposure of a suspended creator.
func CheckExposure(standing *Standing, now time.Time) error {
	if !standing.IsSuspended(now) {
		return nil
	}
	until := *standing.suspendedUntil
	return errs.Mark(&SuspendedError{
		CreatorID: standing.creatorID,
		Until:     until,
		Remaining: until.Sub(now),
	}, errs.ErrConflict)
}
