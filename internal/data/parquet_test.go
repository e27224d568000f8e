package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParquetFetcher_RoundTrip(t *testing.T) {
	f := NewParquetFetcher(t.TempDir())
	bars := testBars(10, 11, 12, 13, 14)

	require.NoError(t, f.WriteSeries("msft", bars))

	series, err := f.FetchSeries(context.Background(), "MSFT", 3)
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())
	assert.Equal(t, "MSFT", series.Symbol)
	assert.Equal(t, 12.0, series.Bars[0].Close)
	assert.Equal(t, bars[4].Timestamp, series.Last().Timestamp)
	assert.Equal(t, 1000.0, series.Last().Volume)
}

func TestParquetFetcher_MissingFile(t *testing.T) {
	f := NewParquetFetcher(t.TempDir())
	_, err := f.FetchSeries(context.Background(), "NOPE", 10)
	assert.Error(t, err)
}
