package storage

import (
	"context"
	"testing"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockHistoryStorage_Filter(t *testing.T) {
	m := &MockHistoryStorage{}
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, m.WriteRecords(ctx, []*models.HistoryRecord{
		record("1", "a", "AAPL", base),
		record("2", "a", "MSFT", base.Add(time.Hour)),
	}))

	got, err := m.GetRecords(ctx, HistoryFilter{Symbol: "MSFT"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = m.GetRecords(ctx, HistoryFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestMockRedisClient(t *testing.T) {
	m := NewMockRedisClient()
	ctx := context.Background()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, time.Minute, m.TTLs["k"])

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
