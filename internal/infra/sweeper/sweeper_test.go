//go:build unit

package sweeper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"collabflow/internal/infra/sweeper"
	"collabflow/internal/pkg/config"
	commandsmock "collabflow/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sweepConfig() config.SweepConfig {
	return config.SweepConfig{
		Enabled:     true,
		Interval:    10 * time.Millisecond,
		BatchSize:   10,
		Concurrency: 4,
	}
}

func TestSweepDrainsFullBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	expiry := commandsmock.NewMockExpiryCommands(ctrl)

	gomock.InOrder(
		expiry.EXPECT().ExpireDue(gomock.Any(), 10, 4).Return(10, nil),
		expiry.EXPECT().ExpireDue(gomock.Any(), 10, 4).Return(10, nil),
		expiry.EXPECT().ExpireDue(gomock.Any(), 10, 4).Return(3, nil),
	)

	s := sweeper.New(expiry, sweepConfig())
	assert.Equal(t, 23, s.Sweep(context.Background()))
}

func TestSweepStopsOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	expiry := commandsmock.NewMockExpiryCommands(ctrl)

	gomock.InOrder(
		expiry.EXPECT().ExpireDue(gomock.Any(), 10, 4).Return(10, nil),
		expiry.EXPECT().ExpireDue(gomock.Any(), 10, 4).Return(2, errors.New("connection reset")),
	)

	s := sweeper.New(expiry, sweepConfig())
	assert.Equal(t, 12, s.Sweep(context.Background()))
}

func TestSweepNothingDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	expiry := commandsmock.NewMockExpiryCommands(ctrl)
	expiry.EXPECT().ExpireDue(gomock.Any(), 10, 4).Return(0, nil)

	s := sweeper.New(expiry, sweepConfig())
	assert.Zero(t, s.Sweep(context.Background()))
}

func TestStartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	expiry := commandsmock.NewMockExpiryCommands(ctrl)

	ticked := make(chan struct{}, 1)
	expiry.EXPECT().ExpireDue(gomock.Any(), 10, 4).
		DoAndReturn(func(context.Context, int, int) (int, error) {
			select {
			case ticked <- struct{}{}:
			default:
			}
			return 0, nil
		}).
		MinTimes(1)

	s := sweeper.New(expiry, sweepConfig())
	s.Start()
	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper never ran")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}
