package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/greenauction/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRanks() []trade.SellerRank {
	return trade.RankSellers([]trade.SellerSales{
		{SellerID: uuid.New(), Username: "alpha", TotalSold: 50},
		{SellerID: uuid.New(), Username: "bravo", TotalSold: 10},
	})
}

func TestInMemoryRankingCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss before set", func(t *testing.T) {
		c := NewInMemoryRankingCache(time.Minute)
		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get returns a copy", func(t *testing.T) {
		c := NewInMemoryRankingCache(time.Minute)
		ranks := sampleRanks()
		require.NoError(t, c.Set(ctx, ranks))

		got, ok, err := c.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ranks, got)

		got[0].Username = "mutated"
		again, _, _ := c.Get(ctx)
		assert.Equal(t, "alpha", again[0].Username)
	})

	t.Run("empty ranking is a hit", func(t *testing.T) {
		c := NewInMemoryRankingCache(time.Minute)
		require.NoError(t, c.Set(ctx, []trade.SellerRank{}))
		got, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, got)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		c := NewInMemoryRankingCache(time.Millisecond)
		require.NoError(t, c.Set(ctx, sampleRanks()))
		time.Sleep(5 * time.Millisecond)
		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate", func(t *testing.T) {
		c := NewInMemoryRankingCache(time.Minute)
		require.NoError(t, c.Set(ctx, sampleRanks()))
		require.NoError(t, c.Invalidate(ctx))
		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNoopRankingCache(t *testing.T) {
	ctx := context.Background()
	var c RankingCache = NoopRankingCache{}

	require.NoError(t, c.Set(ctx, sampleRanks()))
	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
}
