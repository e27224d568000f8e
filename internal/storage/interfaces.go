package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// ErrCacheMiss is returned by RedisClient.Get when the key does not exist
var ErrCacheMiss = errors.New("cache miss")

// HistoryStorage defines the interface for alert history operations
type HistoryStorage interface {
	// WriteRecords writes matched alerts to storage
	WriteRecords(ctx context.Context, records []*models.HistoryRecord) error

	// GetRecords retrieves alerts with filtering options, newest first
	GetRecords(ctx context.Context, filter HistoryFilter) ([]*models.HistoryRecord, error)

	// Close closes the storage connection
	Close() error
}

// HistoryFilter defines filtering options for history queries
type HistoryFilter struct {
	Symbol    string
	ScanID    string
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// RedisClient defines the key-value operations the series cache needs
type RedisClient interface {
	// Set stores raw bytes under key with a TTL (0 means no expiry)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the bytes stored under key, or ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete deletes keys
	Delete(ctx context.Context, keys ...string) error

	// Close closes the Redis connection
	Close() error
}
