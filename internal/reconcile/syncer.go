package reconcile

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultInterval matches the 30s refresh cadence of the UI.
const DefaultInterval = 30 * time.Second

// Syncer replaces optimistic local state with authoritative state on a fixed
// interval, plus whenever Trigger is called (reconnect, visibility regain,
// mutation broadcast). Overlapping refreshes are deduplicated by an in-flight
// guard; a skipped caller simply waits for the next tick.
type Syncer struct {
	interval time.Duration
	refresh  func(ctx context.Context) error
	kick     chan struct{}
	inFlight atomic.Bool
}

// NewSyncer wraps refresh. refresh is responsible for reporting its own
// failures; the syncer only schedules it.
func NewSyncer(interval time.Duration, refresh func(ctx context.Context) error) *Syncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Syncer{
		interval: interval,
		refresh:  refresh,
		kick:     make(chan struct{}, 1),
	}
}

// Run refreshes once immediately, then on every tick or Trigger until the
// context is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	s.RefreshNow(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RefreshNow(ctx)
		case <-s.kick:
			s.RefreshNow(ctx)
		}
	}
}

// Trigger requests an out-of-band refresh without blocking. A trigger that
// lands while one is already pending coalesces with it.
func (s *Syncer) Trigger() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// RefreshNow runs a refresh unless one is already in flight.
func (s *Syncer) RefreshNow(ctx context.Context) bool {
	if !s.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer s.inFlight.Store(false)
	_ = s.refresh(ctx)
	return true
}
