package study

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultDeliveryInterval is how often the scheduler scans for due
// notifications.
const DefaultDeliveryInterval = 5 * time.Minute

// Scheduler polls the state on a fixed interval and transitions due
// notifications to delivered.
type Scheduler struct {
	state    *State
	interval time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a scheduler. A non-positive interval falls back to
// the default five minutes.
func NewScheduler(state *State, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultDeliveryInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{state: state, interval: interval, logger: logger}
}

// Run ticks until the context is cancelled. Each tick delivers every
// notification whose scheduled time has arrived.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("notification scheduler started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("notification scheduler stopped")
			return
		case now := <-ticker.C:
			if n := s.state.DeliverDue(now); n > 0 {
				s.logger.Debug("scheduler tick delivered notifications", zap.Int("count", n))
			}
		}
	}
}
