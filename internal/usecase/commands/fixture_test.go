//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"collabflow/internal/domain/request"
	"collabflow/internal/domain/trust"
	"collabflow/internal/infra/memstore"
	"collabflow/internal/infra/messaging"
	"collabflow/internal/infra/payment"
	"collabflow/internal/infra/reference"
	"collabflow/internal/infra/tier"
	"collabflow/internal/pkg/clock"
	"collabflow/internal/usecase/commands"
	"collabflow/internal/usecase/queries"
	"collabflow/internal/usecase/shared"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func testPolicy() trust.Policy {
	return trust.Policy{
		Window:              30 * 24 * time.Hour,
		WarningThreshold:    3,
		SuspensionThreshold: 5,
		SuspensionDurations: []time.Duration{7 * 24 * time.Hour, 14 * 24 * time.Hour},
	}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []shared.Event
}

func (n *recordingNotifier) Notify(_ context.Context, e shared.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func (n *recordingNotifier) count(t shared.EventType) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e.Type == t {
			c++
		}
	}
	return c
}

// engine wires the command and query use cases over the in-memory store.
type engine struct {
	store    *memstore.Store
	clock    *clock.MockClock
	gateway  *payment.Sandbox
	tiers    *tier.MemoryLookup
	notifier *recordingNotifier

	requests commands.RequestCommands
	payments commands.PaymentCommands
	expiry   commands.ExpiryCommands
	avail    commands.AvailabilityCommands
	reads    queries.RequestQueries
	trust    queries.TrustQueries
	calendar queries.AvailabilityQueries

	brand   request.Actor
	creator request.Actor
}

func newEngine(t *testing.T, sandboxMode string) *engine {
	t.Helper()

	store := memstore.New()
	clk := clock.NewMockClock(baseTime)
	gateway, err := payment.NewSandbox(sandboxMode)
	require.NoError(t, err)
	refs, err := reference.NewGenerator(1)
	require.NoError(t, err)
	lookup := tier.NewMemoryLookup()
	tiers, err := tier.NewProvider(lookup, map[string]int{"standard": 1000, "pro": 800}, "standard")
	require.NoError(t, err)
	notifier := &recordingNotifier{}

	settings := commands.Settings{
		ResponseWindow:      48 * time.Hour,
		DefaultMaxRevisions: 2,
		MinBudgetMinor:      1000,
		DefaultCurrency:     "NGN",
		CalendarLocation:    time.UTC,
	}
	policy := testPolicy()
	expiry := commands.NewExpiryUseCase(store, clk, notifier)

	return &engine{
		store:    store,
		clock:    clk,
		gateway:  gateway,
		tiers:    lookup,
		notifier: notifier,
		requests: commands.NewRequestUseCase(store, clk, settings, policy, refs, messaging.NewMemoryMessenger(), notifier),
		payments: commands.NewPaymentUseCase(store, clk, gateway, tiers, notifier),
		expiry:   expiry,
		avail:    commands.NewAvailabilityUseCase(store, clk),
		reads:    queries.NewRequestQueries(store, expiry, clk),
		trust:    queries.NewTrustQueries(store, clk, policy),
		calendar: queries.NewAvailabilityQueries(store, clk, time.UTC),
		brand:    request.Actor{ID: uuid.New(), Role: request.RoleBrand},
		creator:  request.Actor{ID: uuid.New(), Role: request.RoleCreator},
	}
}

func (e *engine) today() civil.Date {
	return clock.Today(e.clock, time.UTC)
}

func (e *engine) createInput(budgetMinor int64, startIn, days int) commands.CreateRequestInput {
	start := e.today().AddDays(startIn)
	return commands.CreateRequestInput{
		CreatorID:       e.creator.ID,
		BudgetMinor:     budgetMinor,
		ProposedStart:   start,
		ProposedEnd:     start.AddDays(days),
		Description:     "Launch campaign for the spring collection",
		TargetPlatforms: []string{"instagram"},
		Deliverables:    []string{"1 reel", "3 stories"},
	}
}

func (e *engine) create(t *testing.T, budgetMinor int64) *queries.RequestView {
	t.Helper()
	v, err := e.requests.Create(context.Background(), e.brand.ID, e.createInput(budgetMinor, 14, 3))
	require.NoError(t, err)
	return v
}

// signed drives a fresh request up to contract_signed.
func (e *engine) signed(t *testing.T, budgetMinor int64) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id := e.create(t, budgetMinor).ID

	_, err := e.requests.Accept(ctx, id, e.creator)
	require.NoError(t, err)
	_, err = e.requests.SignContract(ctx, id, e.brand)
	require.NoError(t, err)
	v, err := e.requests.SignContract(ctx, id, e.creator)
	require.NoError(t, err)
	require.Equal(t, string(request.StatusContractSigned), v.Status)
	return id
}

func (e *engine) load(t *testing.T, id uuid.UUID) request.Snapshot {
	t.Helper()
	var snap request.Snapshot
	require.NoError(t, e.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Requests().Get(ctx, id)
		if err != nil {
			return err
		}
		snap = r.Snapshot()
		return nil
	}))
	return snap
}

func (e *engine) declines(t *testing.T, id uuid.UUID) []trust.Decline {
	t.Helper()
	var out []trust.Decline
	require.NoError(t, e.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.Declines().ListByRequest(ctx, id)
		return err
	}))
	return out
}

func (e *engine) standing(t *testing.T) *trust.Standing {
	t.Helper()
	var out *trust.Standing
	require.NoError(t, e.store.WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = tx.Trust().Get(ctx, e.creator.ID)
		return err
	}))
	return out
}
