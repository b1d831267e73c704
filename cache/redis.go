// Package cache wraps redis for two concerns: a short-TTL cache of the
// occupancy summary and best-effort per-room booking holds. Both are
// optimizations; the services work with a nil cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Summary map[string]TypeCount

type TypeCount struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

type RedisCache struct {
	client     *redis.Client
	summaryTTL time.Duration
}

func NewRedisCache(addr, password string, db int, summaryTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		summaryTTL: summaryTTL,
	}
}

// GetSummary returns the cached occupancy summary for a date, or nil on miss.
func (c *RedisCache) GetSummary(ctx context.Context, asOf time.Time) (Summary, error) {
	data, err := c.client.Get(ctx, summaryKey(asOf)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *RedisCache) SetSummary(ctx context.Context, asOf time.Time, summary Summary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(asOf), payload, c.summaryTTL).Err()
}

// InvalidateSummaries drops all cached summaries. Called after any room or
// booking mutation; the key space is small enough that a scan is fine.
func (c *RedisCache) InvalidateSummaries(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "cache:summary:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// AcquireRoomHold takes a short exclusive hold on a room while a booking for
// it is checked and inserted. Returns false when another request holds it.
func (c *RedisCache) AcquireRoomHold(ctx context.Context, roomID uint, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, roomHoldKey(roomID), "held", ttl).Result()
}

func (c *RedisCache) ReleaseRoomHold(ctx context.Context, roomID uint) error {
	return c.client.Del(ctx, roomHoldKey(roomID)).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func summaryKey(asOf time.Time) string {
	return "cache:summary:" + asOf.Format("2006-01-02")
}

func roomHoldKey(roomID uint) string {
	return fmt.Sprintf("hold:room:%d", roomID)
}
