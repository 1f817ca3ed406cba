//go:build unit

package trust_test

import (
	"testing"
	"time"

	"collabflow/internal/domain/trust"
	"collabflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now    = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	policy = trust.Policy{
		Window:              30 * 24 * time.Hour,
		WarningThreshold:    3,
		SuspensionThreshold: 5,
		SuspensionDurations: []time.Duration{7 * 24 * time.Hour, 14 * 24 * time.Hour},
	}
)

func declines(t *testing.T, creatorID uuid.UUID, n int, category trust.DeclineCategory, at time.Time) []trust.Decline {
	t.Helper()
	out := make([]trust.Decline, 0, n)
	for i := 0; i < n; i++ {
		if category == trust.CategorySystemExpired {
			out = append(out, trust.NewSystemExpiry(uuid.New(), creatorID, at))
			continue
		}
		d, err := trust.NewDecline(uuid.New(), creatorID, category, "not a fit for my audience", at)
		require.NoError(t, err)
		out = append(out, d)
	}
	return out
}

func TestRecordDecline(t *testing.T) {
	creatorID := uuid.New()

	t.Run("below warning threshold has no effect", func(t *testing.T) {
		standing := trust.NewStanding(creatorID)
		history := declines(t, creatorID, 1, trust.CategoryBudget, now.Add(-time.Hour))
		d := declines(t, creatorID, 1, trust.CategoryBudget, now)[0]

		out := trust.RecordDecline(history, d, policy, standing, now)
		assert.Equal(t, 2, out.QualifyingCount)
		assert.Empty(t, out.Warning)
		assert.False(t, out.Suspended)
		assert.Nil(t, standing.LastWarningAt())
	})

	t.Run("warning threshold returns text without suspension", func(t *testing.T) {
		standing := trust.NewStanding(creatorID)
		history := declines(t, creatorID, 2, trust.CategoryNiche, now.Add(-24*time.Hour))
		d := declines(t, creatorID, 1, trust.CategoryNiche, now)[0]

		out := trust.RecordDecline(history, d, policy, standing, now)
		assert.NotEmpty(t, out.Warning)
		assert.False(t, out.Suspended)
		assert.False(t, standing.IsSuspended(now))
		require.NotNil(t, standing.LastWarningAt())
	})

	t.Run("threshold minus one prior declines suspends", func(t *testing.T) {
		standing := trust.NewStanding(creatorID)
		history := declines(t, creatorID, policy.SuspensionThreshold-1, trust.CategorySchedule, now.Add(-48*time.Hour))
		d := declines(t, creatorID, 1, trust.CategorySchedule, now)[0]

		out := trust.RecordDecline(history, d, policy, standing, now)
		require.True(t, out.Suspended)
		require.NotNil(t, out.SuspendedUntil)
		assert.Equal(t, now.Add(7*24*time.Hour), *out.SuspendedUntil)
		assert.Equal(t, 1, standing.SuspensionCount())
		assert.True(t, standing.IsSuspended(now.Add(time.Hour)))
		assert.False(t, standing.IsSuspended(now.Add(7*24*time.Hour)))
	})

	t.Run("repeat suspension escalates and caps at last duration", func(t *testing.T) {
		until := now.Add(-time.Hour)
		standing := trust.ReconstructStanding(creatorID, &until, 1, nil, now.Add(-time.Hour))
		history := declines(t, creatorID, 4, trust.CategoryOther, now.Add(-time.Hour))

		out := trust.RecordDecline(history, declines(t, creatorID, 1, trust.CategoryOther, now)[0], policy, standing, now)
		require.True(t, out.Suspended)
		assert.Equal(t, now.Add(14*24*time.Hour), *out.SuspendedUntil)

		later := now.Add(time.Minute)
		out = trust.RecordDecline(history, declines(t, creatorID, 1, trust.CategoryOther, later)[0], policy, standing, later)
		require.True(t, out.Suspended)
		assert.Equal(t, later.Add(14*24*time.Hour), *out.SuspendedUntil)
		assert.Equal(t, 3, standing.SuspensionCount())
	})

	t.Run("system expiries and old declines do not count", func(t *testing.T) {
		standing := trust.NewStanding(creatorID)
		history := append(
			declines(t, creatorID, 10, trust.CategorySystemExpired, now.Add(-time.Hour)),
			declines(t, creatorID, 10, trust.CategoryBudget, now.Add(-31*24*time.Hour))...,
		)
		out := trust.RecordDecline(history, declines(t, creatorID, 1, trust.CategoryBudget, now)[0], policy, standing, now)
		assert.Equal(t, 1, out.QualifyingCount)
		assert.False(t, out.Suspended)
		assert.Empty(t, out.Warning)
	})

	t.Run("system expiry itself never mutates standing", func(t *testing.T) {
		standing := trust.NewStanding(creatorID)
		history := declines(t, creatorID, 10, trust.CategoryBudget, now.Add(-time.Hour))
		out := trust.RecordDecline(history, trust.NewSystemExpiry(uuid.New(), creatorID, now), policy, standing, now)
		assert.Equal(t, trust.Outcome{}, out)
		assert.Equal(t, 0, standing.SuspensionCount())
		assert.Nil(t, standing.LastWarningAt())
	})

	t.Run("severity is monotonic in count", func(t *testing.T) {
		severity := func(o trust.Outcome) int {
			switch {
			case o.Suspended:
				return 2
			case o.Warning != "":
				return 1
			}
			return 0
		}
		prev := 0
		for n := 0; n < 10; n++ {
			standing := trust.NewStanding(creatorID)
			history := declines(t, creatorID, n, trust.CategoryBudget, now.Add(-time.Hour))
			s := severity(trust.RecordDecline(history, declines(t, creatorID, 1, trust.CategoryBudget, now)[0], policy, standing, now))
			assert.GreaterOrEqual(t, s, prev, "count %d", n+1)
			prev = s
		}
	})
}

func TestCheckExposure(t *testing.T) {
	creatorID := uuid.New()
	assert.NoError(t, trust.CheckExposure(nil, now))
	assert.NoError(t, trust.CheckExposure(trust.NewStanding(creatorID), now))

	until := now.Add(72 * time.Hour)
	standing := trust.ReconstructStanding(creatorID, &until, 1, nil, now)
	err := trust.CheckExposure(standing, now)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	var suspended *trust.SuspendedError
	require.True(t, errs.As(err, &suspended))
	assert.Equal(t, until, suspended.Until)
	assert.Equal(t, 72*time.Hour, suspended.Remaining)

	assert.NoError(t, trust.CheckExposure(standing, until))
}

func TestNewDecline(t *testing.T) {
	_, err := trust.NewDecline(uuid.New(), uuid.New(), trust.CategorySystemExpired, "long enough reason", now)
	assert.ErrorIs(t, err, trust.ErrInvalidCategory)

	_, err = trust.NewDecline(uuid.New(), uuid.New(), trust.CategoryBudget, "   too short   ", now)
	assert.ErrorIs(t, err, trust.ErrReasonTooShort)
	assert.True(t, errs.IsValidation(err))

	d, err := trust.NewDecline(uuid.New(), uuid.New(), trust.CategoryBudget, "  budget too low  ", now)
	require.NoError(t, err)
	assert.Equal(t, "budget too low", d.Reason)
}

func TestPolicyValidate(t *testing.T) {
	require.NoError(t, policy.Validate())

	bad := policy
	bad.WarningThreshold = 6
	assert.ErrorIs(t, bad.Validate(), trust.ErrInvalidPolicy)

	bad = policy
	bad.SuspensionDurations = []time.Duration{14 * 24 * time.Hour, time.Hour}
	assert.ErrorIs(t, bad.Validate(), trust.ErrInvalidPolicy)
}
