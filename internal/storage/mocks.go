package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// MockHistoryStorage is a mock implementation of HistoryStorage for testing
type MockHistoryStorage struct {
	mu       sync.Mutex
	Records  []*models.HistoryRecord
	WriteErr error
	GetErr   error
}

func (m *MockHistoryStorage) WriteRecords(ctx context.Context, records []*models.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Records = append(m.Records, records...)
	return nil
}

func (m *MockHistoryStorage) GetRecords(ctx context.Context, filter HistoryFilter) ([]*models.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}

	var result []*models.HistoryRecord
	for _, rec := range m.Records {
		if filter.Symbol != "" && rec.Symbol != filter.Symbol {
			continue
		}
		if filter.ScanID != "" && rec.ScanID != filter.ScanID {
			continue
		}
		if !filter.StartTime.IsZero() && rec.Timestamp.Before(filter.StartTime) {
			continue
		}
		if !filter.EndTime.IsZero() && rec.Timestamp.After(filter.EndTime) {
			continue
		}
		result = append(result, rec)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	start := filter.Offset
	if start > len(result) {
		start = len(result)
	}
	result = result[start:]
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (m *MockHistoryStorage) Close() error {
	return nil
}

// MockRedisClient is an in-memory RedisClient for testing. TTLs are recorded, not enforced.
type MockRedisClient struct {
	mu     sync.Mutex
	Data   map[string][]byte
	TTLs   map[string]time.Duration
	GetErr error
	SetErr error
	Gets   int
	Sets   int
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{
		Data: make(map[string][]byte),
		TTLs: make(map[string]time.Duration),
	}
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = append([]byte(nil), value...)
	m.TTLs[key] = ttl
	return nil
}

func (m *MockRedisClient) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Gets++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	data, ok := m.Data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

func (m *MockRedisClient) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.Data, key)
		delete(m.TTLs, key)
	}
	return nil
}

func (m *MockRedisClient) Close() error {
	return nil
}
