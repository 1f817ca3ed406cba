package commands

import (
	"context"
	"log/slog"
	"time"

	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/shared"
)

// Settings are the engine parameters taken from configuration.
type Settings struct {
	ResponseWindow      time.Duration
	DefaultMaxRevisions int
	MinBudgetMinor      int64
	DefaultCurrency     string
	// CalendarLocation decides which calendar day "today" is.
	CalendarLocation *time.Location
}

func (s Settings) maxRevisions(requested *int) int {
	if requested != nil {
		return *requested
	}
	return s.DefaultMaxRevisions
}

func (s Settings) currency(requested string) string {
	if requested == "" {
		return s.DefaultCurrency
	}
	return requested
}

// dispatcher sends notifications after commit. Delivery failures never fail
// the command.
type dispatcher struct {
	notifier shared.Notifier
}

func (d dispatcher) send(ctx context.Context, events ...shared.Event) {
	if d.notifier == nil {
		return
	}
	for _, e := range events {
		if err := d.notifier.Notify(ctx, e); err != nil {
			slog.WarnContext(ctx, "notification dispatch failed",
				"event", string(e.Type),
				"request_id", e.RequestID.String(),
				"error", err.Error())
		}
	}
}

// logIntegrity reports integrity violations loudly; they are never user errors.
func logIntegrity(ctx context.Context, op string, err error) {
	if err == nil || !errs.IsIntegrity(err) {
		return
	}
	slog.ErrorContext(ctx, "integrity violation",
		"op", op,
		"error", err.Error(),
		"stack", errs.ExtractStackLines(err, 20))
}
