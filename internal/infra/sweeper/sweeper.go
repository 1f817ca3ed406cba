// Package sweeper runs the periodic response-window expiry pass.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"collabflow/internal/pkg/config"
	"collabflow/internal/usecase/commands"

	"go.uber.org/fx"
)

type Sweeper struct {
	expiry commands.ExpiryCommands
	cfg    config.SweepConfig

	cancel context.CancelFunc
	done   sync.WaitGroup
}

func New(expiry commands.ExpiryCommands, cfg config.SweepConfig) *Sweeper {
	return &Sweeper{expiry: expiry, cfg: cfg}
}

// Register hooks the loop into the fx lifecycle when sweeping is enabled.
func Register(lc fx.Lifecycle, s *Sweeper) {
	if !s.cfg.Enabled {
		slog.Info("expiry sweeper disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}

func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done.Add(1)
	go func() {
		defer s.done.Done()
		s.run(ctx)
	}()
}

func (s *Sweeper) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()

	stopped := make(chan struct{})
	go func() {
		s.done.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) run(ctx context.Context) {
	slog.Info("expiry sweeper started", "interval", s.cfg.Interval.String())

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			slog.Info("expiry sweeper stopped")
			return
		}
	}
}

// Sweep drains due requests batch by batch until a pass expires nothing.
func (s *Sweeper) Sweep(ctx context.Context) int {
	start := time.Now()
	total := 0
	for ctx.Err() == nil {
		n, err := s.expiry.ExpireDue(ctx, s.cfg.BatchSize, s.cfg.Concurrency)
		total += n
		if err != nil {
			slog.ErrorContext(ctx, "expiry sweep failed", "error", err.Error(), "expired", total)
			return total
		}
		if n == 0 || n < s.cfg.BatchSize {
			break
		}
	}
	if total > 0 {
		slog.InfoContext(ctx, "expiry sweep finished",
			"expired", total,
			"duration", time.Since(start).String())
	}
	return total
}
