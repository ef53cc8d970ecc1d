// Package cache stores recent recommendation responses in Redis. The cache
// key captures every request input that influences the result, so a hit is
// always an exact replay.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

const defaultTTL = 10 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// Key inputs: fatigue depends on time of day and session minutes, scoring
// on emotion and genre filter. All of them are part of the key.
func buildKey(userID string, ctx domain.ContextFeatures, emotionLabel, genreFilter string) string {
	return fmt.Sprintf("rec:user:%s:tod:%s:sm:%d:emo:%s:genre:%s",
		userID, ctx.TimeOfDay, int(ctx.SessionMinutes), emotionLabel, genreFilter)
}

// Get returns a cached recommendation result, or nil on a miss.
func (c *Cache) Get(ctx context.Context, userID string, fctx domain.ContextFeatures, emotionLabel, genreFilter string) (*domain.RecommendationResult, error) {
	key := buildKey(userID, fctx, emotionLabel, genreFilter)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recommendations from cache: %w", err)
	}

	var result domain.RecommendationResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached recommendations %s: %w", key, err)
	}
	return &result, nil
}

// Set stores a recommendation result.
func (c *Cache) Set(ctx context.Context, userID string, fctx domain.ContextFeatures, emotionLabel, genreFilter string, result *domain.RecommendationResult) error {
	key := buildKey(userID, fctx, emotionLabel, genreFilter)
	val, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set recommendations in cache: %w", err)
	}
	return nil
}

// ClearUserCache drops every cached result for a user; called when a new
// interaction is logged.
func (c *Cache) ClearUserCache(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("rec:user:%s:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
