// Package notify turns engine events into notification jobs. Delivery is
// someone else's job; the engine only enqueues.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"collabflow/internal/infra"
	"collabflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobPayload struct {
	Type       string         `json:"type"`
	RequestID  string         `json:"request_id"`
	Reference  string         `json:"reference"`
	Recipients []string       `json:"recipients"`
	Data       map[string]any `json:"data,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func payloadOf(e shared.Event) jobPayload {
	recipients := make([]string, 0, len(e.Recipients))
	for _, r := range e.Recipients {
		recipients = append(recipients, r.String())
	}
	return jobPayload{
		Type:       string(e.Type),
		RequestID:  e.RequestID.String(),
		Reference:  e.Reference,
		Recipients: recipients,
		Data:       e.Data,
		OccurredAt: e.OccurredAt,
	}
}

// JobNotifier writes one notification_jobs row per event.
type JobNotifier struct {
	pool *pgxpool.Pool
}

func NewJobNotifier(pool *pgxpool.Pool) *JobNotifier {
	return &JobNotifier{pool: pool}
}

func (n *JobNotifier) Notify(ctx context.Context, e shared.Event) error {
	payload, err := json.Marshal(payloadOf(e))
	if err != nil {
		return err
	}
	_, err = n.pool.Exec(ctx, `INSERT INTO notification_jobs (id, kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5, 'queued')`,
		uuid.New(), string(e.Type), "request:"+e.RequestID.String(), payload, e.OccurredAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// LogNotifier is used with the in-memory store.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (LogNotifier) Notify(ctx context.Context, e shared.Event) error {
	p := payloadOf(e)
	slog.InfoContext(ctx, "notification",
		"type", p.Type,
		"request_id", p.RequestID,
		"reference", p.Reference,
		"recipients", p.Recipients)
	return nil
}
