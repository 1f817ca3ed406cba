package shared

import (
	"context"
	"time"

	"collabflow/internal/domain/escrow"
	"collabflow/internal/domain/money"

	"github.com/google/uuid"
)

type ChargeVerification struct {
	Success        bool
	AmountCaptured money.Money
	// FailureReason is set by the gateway when Success is false.
	FailureReason string
}

type PaymentGateway interface {
	InitializeCharge(ctx context.Context, amount money.Money, metadata map[string]string) (string, error)
	VerifyCharge(ctx context.Context, reference string) (ChargeVerification, error)
}

type Messenger interface {
	EnsureConversation(ctx context.Context, brandID, creatorID, requestID uuid.UUID) (string, error)
}

type TierProvider interface {
	CurrentTier(ctx context.Context, creatorID uuid.UUID) (escrow.Tier, error)
}

// ReferenceGenerator issues request reference numbers. Values are never reused.
type ReferenceGenerator interface {
	Next() string
}

type EventType string

const (
	EventRequestCreated     EventType = "request.created"
	EventRequestViewed      EventType = "request.viewed"
	EventCounterOffer       EventType = "request.counter_offer"
	EventRequestAccepted    EventType = "request.accepted"
	EventRequestDeclined    EventType = "request.declined"
	EventRequestCancelled   EventType = "request.cancelled"
	EventRequestExpired     EventType = "request.expired"
	EventContractSigned     EventType = "contract.signed"
	EventPaymentInitialized EventType = "payment.initialized"
	EventPaymentFailed      EventType = "payment.failed"
	EventPaymentConfirmed   EventType = "payment.confirmed"
	EventContentSubmitted   EventType = "content.submitted"
	EventRevisionRequested  EventType = "content.revision_requested"
	EventWorkResumed        EventType = "content.work_resumed"
	EventContentApproved    EventType = "content.approved"
	EventPaymentReleased    EventType = "payment.released"
	EventRequestCompleted   EventType = "request.completed"
	EventDeclineWarning     EventType = "trust.warning"
	EventSuspensionApplied  EventType = "trust.suspended"
)

type Event struct {
	Type       EventType
	RequestID  uuid.UUID
	Reference  string
	Recipients []uuid.UUID
	Data       map[string]any
	OccurredAt time.Time
}

// Notifier is fire-and-forget from the engine's point of view.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// LazyExpirer expires a single request if its response window has passed.
type LazyExpirer interface {
	ExpireIfDue(ctx context.Context, requestID uuid.UUID) (bool, error)
}
