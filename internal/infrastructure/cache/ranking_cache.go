package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/redis/go-redis/v9"
)

const rankingKey = "ga:ranking:sellers"

// RankingCache stores the computed seller ranking
type RankingCache interface {
	// Get returns the cached ranking; ok is false on a miss
	Get(ctx context.Context) (ranks []trade.SellerRank, ok bool, err error)
	Set(ctx context.Context, ranks []trade.SellerRank) error
	Invalidate(ctx context.Context) error
}

// RedisRankingCache keeps the ranking as a JSON value with a TTL
type RedisRankingCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisRankingCache creates a Redis-backed ranking cache
func NewRedisRankingCache(client redis.Cmdable, ttl time.Duration) *RedisRankingCache {
	return &RedisRankingCache{client: client, ttl: ttl}
}

// Get reads the ranking from Redis
func (c *RedisRankingCache) Get(ctx context.Context) ([]trade.SellerRank, bool, error) {
	data, err := c.client.Get(ctx, rankingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read ranking cache: %w", err)
	}

	var ranks []trade.SellerRank
	if err := json.Unmarshal(data, &ranks); err != nil {
		return nil, false, fmt.Errorf("failed to decode ranking cache: %w", err)
	}
	return ranks, true, nil
}

// Set writes the ranking to Redis
func (c *RedisRankingCache) Set(ctx context.Context, ranks []trade.SellerRank) error {
	data, err := json.Marshal(ranks)
	if err != nil {
		return fmt.Errorf("failed to encode ranking: %w", err)
	}
	if err := c.client.Set(ctx, rankingKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write ranking cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached ranking
func (c *RedisRankingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, rankingKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate ranking cache: %w", err)
	}
	return nil
}

var _ RankingCache = (*RedisRankingCache)(nil)

// InMemoryRankingCache is a process-local RankingCache.
// Suitable for single-instance deployments and tests.
type InMemoryRankingCache struct {
	mu        sync.RWMutex
	ranks     []trade.SellerRank
	expiresAt time.Time
	ttl       time.Duration
}

// NewInMemoryRankingCache creates an in-memory ranking cache
func NewInMemoryRankingCache(ttl time.Duration) *InMemoryRankingCache {
	return &InMemoryRankingCache{ttl: ttl}
}

// Get returns the ranking when present and not expired
func (c *InMemoryRankingCache) Get(_ context.Context) ([]trade.SellerRank, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ranks == nil || time.Now().After(c.expiresAt) {
		return nil, false, nil
	}
	out := make([]trade.SellerRank, len(c.ranks))
	copy(out, c.ranks)
	return out, true, nil
}

// Set stores a copy of the ranking
func (c *InMemoryRankingCache) Set(_ context.Context, ranks []trade.SellerRank) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ranks = make([]trade.SellerRank, len(ranks))
	copy(c.ranks, ranks)
	c.expiresAt = time.Now().Add(c.ttl)
	return nil
}

// Invalidate clears the ranking
func (c *InMemoryRankingCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ranks = nil
	return nil
}

var _ RankingCache = (*InMemoryRankingCache)(nil)

// NoopRankingCache never stores anything, used when caching is disabled
type NoopRankingCache struct{}

func (NoopRankingCache) Get(context.Context) ([]trade.SellerRank, bool, error) { return nil, false, nil }
func (NoopRankingCache) Set(context.Context, []trade.SellerRank) error          { return nil }
func (NoopRankingCache) Invalidate(context.Context) error                       { return nil }

var _ RankingCache = NoopRankingCache{}
