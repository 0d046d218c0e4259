package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRefreshNow_DeduplicatesInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var startedOnce sync.Once
	var calls atomic.Int32

	s := NewSyncer(time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		startedOnce.Do(func() { close(started) })
		<-release
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if !s.RefreshNow(context.Background()) {
			t.Error("first refresh should run")
		}
	}()

	<-started
	// Second caller lands while the first is still running.
	if s.RefreshNow(context.Background()) {
		t.Error("overlapping refresh should be skipped")
	}

	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 refresh call, got %d", calls.Load())
	}

	// After the first finishes, refresh runs again.
	if !s.RefreshNow(context.Background()) {
		t.Error("refresh after completion should run")
	}
}

func TestRun_RefreshesImmediatelyAndOnTrigger(t *testing.T) {
	refreshed := make(chan struct{}, 10)
	s := NewSyncer(time.Hour, func(ctx context.Context) error {
		refreshed <- struct{}{}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected immediate refresh on start")
	}

	s.Trigger()
	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("expected refresh after trigger")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop on context cancel")
	}
}

func TestTrigger_CoalescesPending(t *testing.T) {
	s := NewSyncer(time.Hour, func(ctx context.Context) error { return nil })

	// No Run loop draining the channel; repeated triggers must not block.
	for i := 0; i < 100; i++ {
		s.Trigger()
	}
}

func TestNewSyncer_DefaultsInterval(t *testing.T) {
	s := NewSyncer(0, func(ctx context.Context) error { return nil })
	if s.interval != DefaultInterval {
		t.Errorf("expected default interval %v, got %v", DefaultInterval, s.interval)
	}
}
