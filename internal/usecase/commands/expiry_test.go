//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"collabflow/internal/domain/request"
	"collabflow/internal/domain/trust"
	"collabflow/internal/infra/payment"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/commands"
	"collabflow/internal/usecase/queries"
	"collabflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpireIfDue(t *testing.T) {
	e := newEngine(t, string(payment.ModeSuccess))
	ctx := context.Background()
	id := e.create(t, 50000).ID

	ok, err := e.expiry.ExpireIfDue(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok, "window still open")

	e.clock.Add(48*time.Hour + time.Second)
	ok, err = e.expiry.ExpireIfDue(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.expiry.ExpireIfDue(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok, "second evaluation is a no-op")

	snap := e.load(t, id)
	assert.Equal(t, request.StatusDeclined, snap.Status)
	assert.Equal(t, string(trust.CategorySystemExpired), snap.DeclineCategory)

	declines := e.declines(t, id)
	require.Len(t, declines, 1)
	assert.Equal(t, trust.CategorySystemExpired, declines[0].Category)
	assert.Equal(t, 1, e.notifier.count(shared.EventRequestExpired))
}

func TestExpiryRacesWithAccept(t *testing.T) {
	for i := 0; i < 20; i++ {
		e := newEngine(t, string(payment.ModeSuccess))
		ctx := context.Background()
		id := e.create(t, 50000).ID
		e.clock.Add(48*time.Hour + time.Minute)

		var (
			wg        sync.WaitGroup
			acceptErr error
			expireErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, acceptErr = e.requests.Accept(ctx, id, e.creator)
		}()
		go func() {
			defer wg.Done()
			_, expireErr = e.expiry.ExpireIfDue(ctx, id)
		}()
		wg.Wait()

		require.NoError(t, expireErr)
		require.Error(t, acceptErr)
		assert.True(t, errs.IsInvalidTransition(acceptErr), "got %v", acceptErr)
		assert.Equal(t, request.StatusDeclined, e.load(t, id).Status)
		assert.Len(t, e.declines(t, id), 1)

		standing := e.standing(t)
		assert.Zero(t, standing.SuspensionCount())
		assert.Nil(t, standing.LastWarningAt())
	}
}

func TestActionAfterWindowExpiresFirst(t *testing.T) {
	e := newEngine(t, string(payment.ModeSuccess))
	ctx := context.Background()
	id := e.create(t, 50000).ID
	e.clock.Add(49 * time.Hour)

	_, err := e.requests.View(ctx, id, e.creator)
	assert.True(t, errs.Is(err, request.ErrResponseWindowClosed), "got %v", err)

	snap := e.load(t, id)
	assert.Equal(t, request.StatusDeclined, snap.Status)
	assert.Len(t, e.declines(t, id), 1)
}

func TestReadExpiresLazily(t *testing.T) {
	e := newEngine(t, string(payment.ModeSuccess))
	ctx := context.Background()
	id := e.create(t, 50000).ID
	e.clock.Add(72 * time.Hour)

	v, err := e.reads.Get(ctx, id, e.brand)
	require.NoError(t, err)
	assert.Equal(t, string(request.StatusDeclined), v.Status)
	assert.Zero(t, v.RemainingSeconds)

	list, err := e.reads.List(ctx, e.creator, queries.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, string(request.StatusDeclined), list[0].Status)
	assert.Len(t, e.declines(t, id), 1)
}

func TestExpireDue(t *testing.T) {
	e := newEngine(t, string(payment.ModeSuccess))
	ctx := context.Background()

	var due []uuid.UUID
	for i := 0; i < 5; i++ {
		in := e.createInput(50000, 14+i*5, 1)
		v, err := e.requests.Create(ctx, e.brand.ID, in)
		require.NoError(t, err)
		due = append(due, v.ID)
	}
	accepted := due[0]
	_, err := e.requests.Accept(ctx, accepted, e.creator)
	require.NoError(t, err)

	e.clock.Add(47 * time.Hour)
	fresh, err := e.requests.Create(ctx, e.brand.ID, e.createInput(50000, 60, 1))
	require.NoError(t, err)
	e.clock.Add(2 * time.Hour)

	n, err := e.expiry.ExpireDue(ctx, 100, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	for _, id := range due[1:] {
		assert.Equal(t, request.StatusDeclined, e.load(t, id).Status)
	}
	assert.Equal(t, request.StatusAccepted, e.load(t, accepted).Status)
	assert.Equal(t, request.StatusPending, e.load(t, fresh.ID).Status)

	n, err = e.expiry.ExpireDue(ctx, 100, 3)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeclineEscalatesToSuspension(t *testing.T) {
	e := newEngine(t, string(payment.ModeSuccess))
	ctx := context.Background()
	decline := commands.DeclineInput{Category: trust.CategoryBudget, Reason: "Budget does not cover the work"}

	var last *commands.DeclineResult
	for i := 1; i <= 5; i++ {
		id := e.create(t, 50000).ID
		_, err := e.requests.View(ctx, id, e.creator)
		require.NoError(t, err)
		last, err = e.requests.Decline(ctx, id, e.creator, decline)
		require.NoError(t, err)
		assert.Equal(t, i, last.Trust.QualifyingCount)

		switch {
		case i < 3:
			assert.Empty(t, last.Trust.Warning)
			assert.False(t, last.Trust.Suspended)
		case i < 5:
			assert.Contains(t, last.Trust.Warning, "30 days")
			assert.False(t, last.Trust.Suspended)
		}
		e.clock.Add(time.Minute)
	}
	require.True(t, last.Trust.Suspended)
	require.NotNil(t, last.Trust.SuspendedUntil)
	assert.Equal(t, 1, e.notifier.count(shared.EventSuspensionApplied))

	_, err := e.requests.Create(ctx, e.brand.ID, e.createInput(50000, 30, 1))
	var suspended *trust.SuspendedError
	require.True(t, errs.As(err, &suspended), "got %v", err)
	assert.True(t, last.Trust.SuspendedUntil.Equal(suspended.Until))

	_, err = e.trust.Exposure(ctx, e.creator.ID)
	assert.True(t, errs.As(err, &suspended), "got %v", err)

	start := e.today().AddDays(30)
	_, err = e.calendar.Check(ctx, e.creator.ID, start, start.AddDays(1))
	require.True(t, errs.As(err, &suspended), "availability check must agree with create, got %v", err)
	assert.Equal(t, suspended.Until.Sub(e.clock.Now()), suspended.Remaining)

	_, err = e.calendar.Profile(ctx, e.creator.ID, e.brand)
	assert.True(t, errs.As(err, &suspended), "got %v", err)
	own, err := e.calendar.Profile(ctx, e.creator.ID, e.creator)
	require.NoError(t, err, "creators still see their own profile")
	assert.Equal(t, e.creator.ID, own.CreatorID)

	e.clock.Set(last.Trust.SuspendedUntil.Add(time.Second))
	_, err = e.requests.Create(ctx, e.brand.ID, e.createInput(50000, 30, 1))
	require.NoError(t, err)
	exposure, err := e.trust.Exposure(ctx, e.creator.ID)
	require.NoError(t, err)
	assert.True(t, exposure.Exposed)
	check, err := e.calendar.Check(ctx, e.creator.ID, start, start.AddDays(1))
	require.NoError(t, err)
	assert.True(t, check.Allowed)
}

func TestSystemExpiryDoesNotCount(t *testing.T) {
	e := newEngine(t, string(payment.ModeSuccess))
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		e.create(t, 50000)
	}
	e.clock.Add(49 * time.Hour)
	n, err := e.expiry.ExpireDue(ctx, 100, 2)
	require.NoError(t, err)
	require.Equal(t, 6, n)

	standing := e.standing(t)
	assert.False(t, standing.IsSuspended(e.clock.Now()))
	assert.Nil(t, standing.LastWarningAt())

	view, err := e.trust.Standing(ctx, e.creator.ID)
	require.NoError(t, err)
	assert.False(t, view.Suspended)
}

func TestDeclineRejectsSystemCategory(t *testing.T) {
	e := newEngine(t, string(payment.ModeSuccess))
	ctx := context.Background()
	id := e.create(t, 50000).ID
	before := e.load(t, id)

	_, err := e.requests.Decline(ctx, id, e.creator, commands.DeclineInput{
		Category: trust.CategorySystemExpired,
		Reason:   "Trying to dodge the score",
	})
	assert.True(t, errs.IsValidation(err), "got %v", err)
	assert.Equal(t, before.Version, e.load(t, id).Version)
	assert.Empty(t, e.declines(t, id))
}
