package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedFetcher_ReadThrough(t *testing.T) {
	source := NewMockFetcher()
	source.SetBars("AAPL", testBars(1, 2, 3, 4))
	redis := storage.NewMockRedisClient()
	cached := NewCachedFetcher(source, redis, "test:", time.Minute)
	ctx := context.Background()

	first, err := cached.FetchSeries(ctx, "aapl", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, source.Calls("AAPL"))

	key := cached.Key("AAPL", 10)
	assert.Equal(t, "test:mock:AAPL:10", key)
	assert.Contains(t, redis.Data, key)
	assert.Equal(t, time.Minute, redis.TTLs[key])

	second, err := cached.FetchSeries(ctx, "AAPL", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, source.Calls("AAPL"), "served from cache")
	require.Equal(t, first.Len(), second.Len())
	for i := range first.Bars {
		assert.True(t, first.Bars[i].Timestamp.Equal(second.Bars[i].Timestamp))
		assert.Equal(t, first.Bars[i].Close, second.Bars[i].Close)
	}
}

func TestCachedFetcher_CacheErrorsFallBack(t *testing.T) {
	source := NewMockFetcher()
	source.SetBars("AAPL", testBars(1, 2, 3))
	redis := storage.NewMockRedisClient()
	redis.GetErr = errors.New("connection refused")
	redis.SetErr = errors.New("connection refused")
	cached := NewCachedFetcher(source, redis, "", time.Minute)

	series, err := cached.FetchSeries(context.Background(), "AAPL", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, series.Len())
	assert.Equal(t, 1, redis.Sets)
}

func TestCachedFetcher_SourceErrorNotCached(t *testing.T) {
	source := NewMockFetcher()
	source.SetError("BAD", errors.New("down"))
	redis := storage.NewMockRedisClient()
	cached := NewCachedFetcher(source, redis, "", time.Minute)

	_, err := cached.FetchSeries(context.Background(), "BAD", 10)
	assert.Error(t, err)
	assert.Empty(t, redis.Data)
}
