package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/stock-alerts/internal/config"
)

func TestConnectionString(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "alerts",
		Password: "pw",
		Database: "market",
		SSLMode:  "require",
	}
	assert.Equal(t, "host=db.internal port=5433 user=alerts password=pw dbname=market sslmode=require", connectionString(cfg))
}

func TestLatestBarsQuery(t *testing.T) {
	tests := []struct {
		table   string
		wantErr bool
	}{
		{table: "daily_bars"},
		{table: "market.daily_bars"},
		{table: "Bars2024"},
		{table: "", wantErr: true},
		{table: "bars; DROP TABLE bars", wantErr: true},
		{table: "1bars", wantErr: true},
		{table: "a.b.c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			query, err := latestBarsQuery(tt.table)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid bars table name")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, query, "FROM "+tt.table)
			assert.Contains(t, query, "ORDER BY timestamp DESC")
		})
	}
}

func TestNewPostgresFetcher_InvalidTable(t *testing.T) {
	_, err := NewPostgresFetcher(config.DatabaseConfig{BarsTable: "bars--"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bars table name")
}
