// Package cache provides the Redis-backed recommendation cache and the
// marketplace event publisher. A nil *Client is valid and does nothing,
// which is how the API runs without Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/clicksy/clicksy-api/internal/types"
)

// EventListingCreated is the channel a new marketplace listing is announced on.
const EventListingCreated = "EVENT_LISTING_CREATED"

// DefaultTTL applies when Connect is given a non-positive TTL.
const DefaultTTL = 2 * time.Minute

const recommendationsPrefix = "clicksy:recommendations:"

// Client wraps a Redis connection.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// Connect dials Redis and returns a Client whose cache entries expire after ttl.
func Connect(ctx context.Context, redisURL string, ttl time.Duration) (*Client, error) {
	rdb, err := NewRedisClient(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	return New(rdb, ttl), nil
}

// New wraps an existing go-redis client.
func New(rdb *redis.Client, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Client{rdb: rdb, ttl: ttl}
}

// Close releases the connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// RecommendationsKey is the cache key of a requester's full ranked list.
func RecommendationsKey(requesterID uuid.UUID) string {
	return recommendationsPrefix + requesterID.String()
}

// GetRecommendations returns the cached list for requesterID. ok is false on a miss.
func (c *Client) GetRecommendations(ctx context.Context, requesterID uuid.UUID) ([]types.MatchResult, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	data, err := c.rdb.Get(ctx, RecommendationsKey(requesterID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read recommendations: %w", err)
	}

	var results []types.MatchResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached recommendations: %w", err)
	}
	return results, true, nil
}

// SetRecommendations stores the ranked list for requesterID.
func (c *Client) SetRecommendations(ctx context.Context, requesterID uuid.UUID, results []types.MatchResult) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}
	if err := c.rdb.Set(ctx, RecommendationsKey(requesterID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendations: %w", err)
	}
	return nil
}

// InvalidateRecommendations drops the cached list for requesterID.
func (c *Client) InvalidateRecommendations(ctx context.Context, requesterID uuid.UUID) error {
	if c == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, RecommendationsKey(requesterID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate recommendations: %w", err)
	}
	return nil
}
