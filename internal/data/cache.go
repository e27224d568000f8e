package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/config"
	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/internal/storage"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

// CachedFetcher is a read-through cache in front of another fetcher.
// Cache failures never fail a fetch; they fall back to the source.
type CachedFetcher struct {
	source Fetcher
	redis  storage.RedisClient
	prefix string
	ttl    time.Duration
}

// NewCachedFetcher wraps source with a Redis cache
func NewCachedFetcher(source Fetcher, redis storage.RedisClient, prefix string, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		source: source,
		redis:  redis,
		prefix: prefix,
		ttl:    ttl,
	}
}

func newRedisClient(cfg config.RedisConfig) (storage.RedisClient, error) {
	client, err := storage.NewRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create series cache: %w", err)
	}
	return client, nil
}

func (c *CachedFetcher) Name() string { return c.source.Name() }

// Key returns the cache key of one symbol and lookback
func (c *CachedFetcher) Key(symbol string, lookback int) string {
	return fmt.Sprintf("%s%s:%s:%d", c.prefix, c.source.Name(), symbol, lookback)
}

// FetchSeries returns the cached series or fetches and stores it
func (c *CachedFetcher) FetchSeries(ctx context.Context, symbol string, lookback int) (*models.Series, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	key := c.Key(symbol, lookback)

	data, err := c.redis.Get(ctx, key)
	switch {
	case err == nil:
		var series models.Series
		if jsonErr := json.Unmarshal(data, &series); jsonErr == nil && series.Len() > 0 {
			logger.CacheRequestsTotal.WithLabelValues("hit").Inc()
			return &series, nil
		}
		logger.CacheRequestsTotal.WithLabelValues("error").Inc()
	case errors.Is(err, storage.ErrCacheMiss):
		logger.CacheRequestsTotal.WithLabelValues("miss").Inc()
	default:
		logger.CacheRequestsTotal.WithLabelValues("error").Inc()
		logger.WithContext(ctx).Warn("Series cache read failed",
			logger.String("key", key),
			logger.ErrorField(err),
		)
	}

	series, err := c.source.FetchSeries(ctx, symbol, lookback)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(series); err == nil {
		if err := c.redis.Set(ctx, key, payload, c.ttl); err != nil {
			logger.WithContext(ctx).Warn("Series cache write failed",
				logger.String("key", key),
				logger.ErrorField(err),
			)
		}
	}

	return series, nil
}

// Close closes the source and the cache connection
func (c *CachedFetcher) Close() error {
	return errors.Join(c.source.Close(), c.redis.Close())
}
