package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/repository"
)

const statsKey = "assessments:stats"

// StatsCache caches the assessment statistics aggregate. Cache misses fall
// through to the compute function; cache failures degrade to direct
// computation and never fail the request.
type StatsCache interface {
	Get(ctx context.Context, compute func(context.Context) (*repository.Stats, error)) (*repository.Stats, error)
	Invalidate(ctx context.Context) error
}

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewStatsCache creates a Redis-backed statistics cache.
func NewStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	return &statsCache{client: client, ttl: ttl}
}

func (c *statsCache) Get(ctx context.Context, compute func(context.Context) (*repository.Stats, error)) (*repository.Stats, error) {
	if c.client != nil {
		data, err := c.client.Get(ctx, statsKey).Bytes()
		if err == nil {
			var stats repository.Stats
			if err := json.Unmarshal(data, &stats); err == nil {
				return &stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			// Redis trouble is not a reason to fail the listing.
			return compute(ctx)
		}
	}

	// Collapse concurrent recomputations into one aggregation.
	v, err, _ := c.group.Do(statsKey, func() (interface{}, error) {
		stats, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if c.client != nil {
			if data, err := json.Marshal(stats); err == nil {
				c.client.Set(ctx, statsKey, data, c.ttl)
			}
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*repository.Stats), nil
}

func (c *statsCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, statsKey).Err()
}
