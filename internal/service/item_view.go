package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/model"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/reconcile"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/logger"
)

// ItemView keeps the last authoritative item list plus a queue of optimistic
// patches from local mutations, so dashboard reads reflect intent immediately
// while the syncer converges on server truth. Each successful refresh
// replaces the snapshot and drops the queue (last-refresh-wins).
type ItemView struct {
	repo   repository.ItemRepository
	queue  *reconcile.Queue[model.Item]
	syncer *reconcile.Syncer

	mu          sync.RWMutex
	snapshot    []model.Item
	refreshedAt time.Time

	unsubscribe func()
}

func NewItemView(repo repository.ItemRepository, broker *reconcile.Broker, interval time.Duration) *ItemView {
	v := &ItemView{
		repo:  repo,
		queue: reconcile.NewQueue[model.Item](),
	}
	v.syncer = reconcile.NewSyncer(interval, v.refresh)
	if broker != nil {
		v.unsubscribe = broker.Subscribe("items", v.syncer.Trigger)
	}
	return v
}

// Run drives the refresh loop until ctx is cancelled.
func (v *ItemView) Run(ctx context.Context) {
	v.syncer.Run(ctx)
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
}

func (v *ItemView) refresh(ctx context.Context) error {
	items, err := v.repo.FindAll()
	if err != nil {
		logger.LogError("itemview", "refresh", err, nil)
		return err
	}

	v.mu.Lock()
	v.snapshot = items
	v.refreshedAt = time.Now()
	v.mu.Unlock()

	// Server truth wins: pending optimistic patches are discarded wholesale.
	v.queue.Reset()

	logger.Get().WithFields(logrus.Fields{"items": len(items)}).Debug("item view refreshed")
	return nil
}

// RefreshNow replaces the snapshot synchronously, bypassing the syncer.
// Used at startup and by callers that must see server truth before reading.
func (v *ItemView) RefreshNow(ctx context.Context) error {
	return v.refresh(ctx)
}

// Items returns the snapshot with all pending optimistic patches applied.
func (v *ItemView) Items() []model.Item {
	v.mu.RLock()
	base := v.snapshot
	v.mu.RUnlock()
	return v.queue.Materialize(base)
}

// Apply enqueues an optimistic patch visible until the next refresh.
func (v *ItemView) Apply(p reconcile.Patch[model.Item]) {
	v.queue.Enqueue(p)
}

// RefreshedAt reports when the snapshot was last replaced.
func (v *ItemView) RefreshedAt() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.refreshedAt
}
