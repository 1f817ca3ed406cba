//go:build unit

package escrow_test

import (
	"testing"
	"time"

	"collabflow/internal/domain/escrow"
	"collabflow/internal/domain/money"
	"collabflow/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now      = time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	standard = escrow.Tier{Name: "standard", FeeBasisPoints: 1000}
)

func snapshot(r *escrow.Record) map[string]any {
	return map[string]any{
		"status":   r.Status(),
		"amount":   r.Amount().Minor(),
		"fee":      r.PlatformFee().Minor(),
		"payout":   r.CreatorPayout().Minor(),
		"attempts": r.Attempts(),
		"ref":      r.Reference(),
		"escrowAt": r.EscrowAt(),
		"released": r.ReleasedAt(),
		"failedAt": r.FailedAt(),
	}
}

func TestInitialize(t *testing.T) {
	t.Run("fee is snapshotted from tier", func(t *testing.T) {
		r, err := escrow.Initialize(uuid.New(), money.MustNew(50000, "NGN"), standard, "PAY-1", now)
		require.NoError(t, err)
		assert.Equal(t, escrow.StatusPending, r.Status())
		assert.Equal(t, int64(50000), r.Amount().Minor())
		assert.Equal(t, int64(5000), r.PlatformFee().Minor())
		assert.Equal(t, int64(45000), r.CreatorPayout().Minor())
		assert.Equal(t, 1000, r.FeeBasisPoints())
		assert.Equal(t, "standard", r.Tier())
		assert.Equal(t, 1, r.Attempts())
	})

	t.Run("fee rounds half up", func(t *testing.T) {
		r, err := escrow.Initialize(uuid.New(), money.MustNew(15, "USD"), escrow.Tier{Name: "x", FeeBasisPoints: 1000}, "PAY-2", now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), r.PlatformFee().Minor())
		assert.Equal(t, int64(13), r.CreatorPayout().Minor())
	})

	cases := []struct {
		name   string
		amount money.Money
		tier   escrow.Tier
		ref    string
		errIs  error
	}{
		{"negative fee rate", money.MustNew(100, "USD"), escrow.Tier{FeeBasisPoints: -1}, "r", escrow.ErrInvalidFeeRate},
		{"fee rate above 100%", money.MustNew(100, "USD"), escrow.Tier{FeeBasisPoints: 10001}, "r", escrow.ErrInvalidFeeRate},
		{"blank reference", money.MustNew(100, "USD"), standard, "  ", escrow.ErrEmptyReference},
		{"zero amount", money.MustNew(0, "USD"), standard, "r", escrow.ErrZeroAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := escrow.Initialize(uuid.New(), tc.amount, tc.tier, tc.ref, now)
			assert.ErrorIs(t, err, tc.errIs)
			assert.True(t, errs.IsValidation(err))
		})
	}
}

func TestLifecycle(t *testing.T) {
	t.Run("confirm is idempotent", func(t *testing.T) {
		r, err := escrow.Initialize(uuid.New(), money.MustNew(50000, "NGN"), standard, "PAY-1", now)
		require.NoError(t, err)

		changed, err := r.Confirm(now)
		require.NoError(t, err)
		assert.True(t, changed)
		once := snapshot(r)

		changed, err = r.Confirm(now.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, cmp.Diff(once, snapshot(r)))
	})

	t.Run("release only from escrow", func(t *testing.T) {
		r, err := escrow.Initialize(uuid.New(), money.MustNew(50000, "NGN"), standard, "PAY-1", now)
		require.NoError(t, err)

		err = r.Release(now)
		assert.ErrorIs(t, err, escrow.ErrNotHeld)
		assert.True(t, errs.IsIntegrity(err))

		_, err = r.Confirm(now)
		require.NoError(t, err)
		require.NoError(t, r.Release(now.Add(time.Hour)))
		assert.Equal(t, escrow.StatusReleased, r.Status())
		require.NotNil(t, r.ReleasedAt())
		assert.Equal(t, now.Add(time.Hour), *r.ReleasedAt())

		before := snapshot(r)
		assert.ErrorIs(t, r.Release(now.Add(2*time.Hour)), escrow.ErrNotHeld)
		assert.Empty(t, cmp.Diff(before, snapshot(r)))
	})

	t.Run("failed escrow can be reopened with a new reference", func(t *testing.T) {
		r, err := escrow.Initialize(uuid.New(), money.MustNew(50000, "NGN"), standard, "PAY-1", now)
		require.NoError(t, err)
		require.NoError(t, r.MarkFailed("card declined", now))
		assert.Equal(t, escrow.StatusFailed, r.Status())
		assert.Equal(t, "card declined", r.FailureReason())

		_, err = r.Confirm(now)
		assert.ErrorIs(t, err, escrow.ErrNotPending)

		require.NoError(t, r.Reinitialize(money.MustNew(50000, "NGN"), escrow.Tier{Name: "pro", FeeBasisPoints: 800}, "PAY-2", now))
		assert.Equal(t, escrow.StatusPending, r.Status())
		assert.Equal(t, 2, r.Attempts())
		assert.Equal(t, "PAY-2", r.Reference())
		assert.Equal(t, int64(4000), r.PlatformFee().Minor())
		assert.Nil(t, r.FailedAt())
	})

	t.Run("reinitialize outside failed is rejected", func(t *testing.T) {
		r, err := escrow.Initialize(uuid.New(), money.MustNew(100, "USD"), standard, "PAY-1", now)
		require.NoError(t, err)
		assert.ErrorIs(t, r.Reinitialize(money.MustNew(100, "USD"), standard, "PAY-2", now), escrow.ErrNotFailed)
		assert.Equal(t, "PAY-1", r.Reference())
	})

	t.Run("corrupted record refuses every mutation", func(t *testing.T) {
		r := escrow.ReconstructRecord(uuid.New(), uuid.New(), "PAY-9",
			money.MustNew(50000, "NGN"), money.MustNew(5000, "NGN"), money.MustNew(40000, "NGN"),
			1000, "standard", escrow.StatusEscrow, 1, "", now, &now, nil, nil, now, 3)

		err := r.Release(now)
		assert.ErrorIs(t, err, escrow.ErrInvariantViolated)
		assert.True(t, errs.IsIntegrity(err))
		assert.Equal(t, escrow.StatusEscrow, r.Status())
	})

	t.Run("capture mismatch", func(t *testing.T) {
		r, err := escrow.Initialize(uuid.New(), money.MustNew(50000, "NGN"), standard, "PAY-1", now)
		require.NoError(t, err)
		assert.NoError(t, r.VerifyCapture(money.MustNew(50000, "NGN")))
		err = r.VerifyCapture(money.MustNew(49999, "NGN"))
		assert.ErrorIs(t, err, escrow.ErrCaptureMismatch)
		assert.True(t, errs.IsIntegrity(err))
	})
}
