//go:build unit

package money_test

import (
	"math"
	"testing"

	"collabflow/internal/domain/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShare(t *testing.T) {
	tests := []struct {
		name  string
		minor int64
		bps   int
		want  int64
	}{
		{name: "standard fee", minor: 50000, bps: 1000, want: 5000},
		{name: "pro fee", minor: 70000, bps: 800, want: 5600},
		{name: "rounds half up", minor: 5, bps: 1000, want: 1},
		{name: "rounds down below half", minor: 4, bps: 1000, want: 0},
		{name: "zero rate", minor: 123456, bps: 0, want: 0},
		{name: "full rate", minor: 123456, bps: 10000, want: 123456},
		{name: "large amount", minor: 5_000_000_000_000_000, bps: 1000, want: 500_000_000_000_000},
		{name: "max int64 at full rate", minor: math.MaxInt64, bps: 10000, want: math.MaxInt64},
		{name: "max int64 at ten percent", minor: math.MaxInt64, bps: 1000, want: 922337203685477581},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.MustNew(tt.minor, "NGN").Share(tt.bps)
			assert.Equal(t, tt.want, got.Minor())
			assert.Equal(t, "NGN", got.Currency())
		})
	}
}

func TestShareAndRemainderAddUp(t *testing.T) {
	amount := money.MustNew(math.MaxInt64-7, "USD")
	fee := amount.Share(1000)
	payout, err := amount.Sub(fee)
	require.NoError(t, err)

	total, err := fee.Add(payout)
	require.NoError(t, err)
	assert.True(t, total.Equal(amount))
}

func TestNew(t *testing.T) {
	_, err := money.New(-1, "NGN")
	assert.ErrorIs(t, err, money.ErrNegativeAmount)

	_, err = money.New(100, "naira")
	assert.ErrorIs(t, err, money.ErrInvalidCurrency)

	m, err := money.New(100, " ngn ")
	require.NoError(t, err)
	assert.Equal(t, "NGN", m.Currency())

	_, err = m.Add(money.MustNew(1, "USD"))
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
}
