package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/internal/repository"
	"github.com/basribas2578-cmyk/ramayanahotel-systeminventaris/pkg/logger"
)

const statsKey = "dashboard:stats"

// StatsCache keeps dashboard aggregates in Redis so every dashboard poll
// does not hit the same three counting queries. Misses and Redis failures both
// fall through to the database.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to addr. ttl <= 0 defaults to 30 seconds, matching the
// dashboard refresh cadence.
func New(addr, password string, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &StatsCache{client: client, ttl: ttl}
}

func (c *StatsCache) GetStats(ctx context.Context) (*repository.DashboardStats, bool) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.LogError("cache", "GetStats", err, nil)
		}
		return nil, false
	}
	var stats repository.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *StatsCache) SetStats(ctx context.Context, stats *repository.DashboardStats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey, raw, c.ttl).Err(); err != nil {
		logger.LogError("cache", "SetStats", err, nil)
	}
}

// Invalidate drops the cached aggregates; called after stock mutations.
func (c *StatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		logger.LogError("cache", "Invalidate", err, nil)
	}
}
