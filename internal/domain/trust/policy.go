package trust

import (
	"fmt"
	"time"

	"collabflow/internal/pkg/errs"
)

var ErrInvalidPolicy = errs.New("invalid trust policy")

// Policy holds the decline thresholds. Values come from configuration.
type Policy struct {
	Window              time.Duration
	WarningThreshold    int
	SuspensionThreshold int
	// SuspensionDurations[i] applies to the (i+1)th suspension; the last
	// entry repeats for every later one.
	SuspensionDurations []time.Duration
}

func (p Policy) Validate() error {
	switch {
	case p.Window <= 0:
		return errs.Wrap(ErrInvalidPolicy, "window must be positive")
	case p.WarningThreshold <= 0 || p.SuspensionThreshold <= 0:
		return errs.Wrap(ErrInvalidPolicy, "thresholds must be positive")
	case p.WarningThreshold > p.SuspensionThreshold:
		return errs.Wrap(ErrInvalidPolicy, "warning threshold must not exceed suspension threshold")
	case len(p.SuspensionDurations) == 0:
		return errs.Wrap(ErrInvalidPolicy, "at least one suspension duration is required")
	}
	for i, d := range p.SuspensionDurations {
		if d <= 0 {
			return errs.Wrapf(ErrInvalidPolicy, "suspension duration %d must be positive", i)
		}
		if i > 0 && d < p.SuspensionDurations[i-1] {
			return errs.Wrap(ErrInvalidPolicy, "suspension durations must not decrease")
		}
	}
	return nil
}

func (p Policy) suspensionDuration(priorSuspensions int) time.Duration {
	i := priorSuspensions
	if i >= len(p.SuspensionDurations) {
		i = len(p.SuspensionDurations) - 1
	}
	if i < 0 {
		i = 0
	}
	return p.SuspensionDurations[i]
}

type Outcome struct {
	QualifyingCount int
	Warning         string
	Suspended       bool
	SuspendedUntil  *time.Time
}

// RecordDecline evaluates decline against the creator's prior declines and
// applies the result to standing. history must not contain decline.
func RecordDecline(history []Decline, decline Decline, policy Policy, standing *Standing, now time.Time) Outcome {
	if !decline.Category.Counts() {
		return Outcome{}
	}

	since := now.Add(-policy.Window)
	count := 1
	for _, d := range history {
		if d.ID == decline.ID || !d.Category.Counts() {
			continue
		}
		if d.CreatedAt.After(since) && !d.CreatedAt.After(now) {
			count++
		}
	}

	out := Outcome{QualifyingCount: count}
	switch {
	case count >= policy.SuspensionThreshold:
		until := now.Add(policy.suspensionDuration(standing.SuspensionCount()))
		standing.suspend(until, now)
		out.Suspended = true
		out.SuspendedUntil = standing.SuspendedUntil()
	case count >= policy.WarningThreshold:
		standing.warn(now)
		out.Warning = fmt.Sprintf(
			"You have declined %d requests in the last %s. %d more will suspend your profile.",
			count, formatWindow(policy.Window), policy.SuspensionThreshold-count,
		)
	}
	return out
}

func formatWindow(d time.Duration) string {
	if d%(24*time.Hour) == 0 {
		days := int(d / (24 * time.Hour))
		if days == 1 {
			return "day"
		}
		return fmt.Sprintf("%d days", days)
	}
	return d.String()
}
