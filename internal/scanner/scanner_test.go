package scanner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/stock-alerts/internal/data"
	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

func newTestScanner(fetcher data.Fetcher, workers int) *Scanner {
	return NewScanner(NewEvaluator(fetcher, 300), Config{Workers: workers, SymbolTimeout: 5 * time.Second})
}

func TestScanner_Scan_FailureIsolated(t *testing.T) {
	fetcher := data.NewMockFetcher()
	fetcher.SetBars("A", flatBars(30, 150))
	fetcher.SetError("B", errors.New("connection reset"))
	fetcher.SetBars("C", flatBars(30, 50))

	results := newTestScanner(fetcher, 4).Scan(context.Background(), "price > 100", []string{"A", "B", "C"})

	require.Len(t, results, 3)
	assert.Equal(t, []string{"A", "B", "C"}, symbolsOf(results))

	assert.True(t, results[0].Matched)
	assert.Equal(t, 150.0, results[0].Price)

	assert.False(t, results[1].Matched)
	assert.NotEmpty(t, results[1].Explanation)
	assert.Contains(t, results[1].Explanation, "connection reset")

	assert.False(t, results[2].Matched)
	assert.Equal(t, "price = 50.00 (not > 100)", results[2].Explanation)
}

func TestScanner_Scan_PreservesOrder(t *testing.T) {
	fetcher := data.NewMockFetcher()
	symbols := make([]string, 40)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("S%02d", i)
		fetcher.SetBars(symbols[i], flatBars(30, float64(i)))
	}

	tests := []struct {
		name    string
		workers int
	}{
		{name: "single worker", workers: 1},
		{name: "several workers", workers: 7},
		{name: "more workers than symbols", workers: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := newTestScanner(fetcher, tt.workers).Scan(context.Background(), "price >= 20", symbols)
			require.Len(t, results, len(symbols))
			assert.Equal(t, symbols, symbolsOf(results))
			for i, r := range results {
				assert.Equal(t, i >= 20, r.Matched, r.Symbol)
			}
		})
	}
}

func TestScanner_Scan_Empty(t *testing.T) {
	results := newTestScanner(data.NewMockFetcher(), 4).Scan(context.Background(), "price > 1", nil)
	assert.Empty(t, results)
}

func TestScanner_Scan_CancelledContext(t *testing.T) {
	fetcher := data.NewMockFetcher()
	fetcher.SetBars("A", flatBars(30, 150))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := newTestScanner(fetcher, 2).Scan(ctx, "price > 100", []string{"A", "B"})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Matched)
		assert.NotEmpty(t, r.Explanation)
	}
}

func TestScanner_Scan_InvalidExpression(t *testing.T) {
	fetcher := data.NewMockFetcher()
	fetcher.SetBars("A", flatBars(30, 150))

	results := newTestScanner(fetcher, 2).Scan(context.Background(), "price >>> 100", []string{"A"})
	require.Len(t, results, 1)
	assert.False(t, results[0].Matched)
	assert.NotEmpty(t, results[0].Explanation)
}

func TestMatches(t *testing.T) {
	results := []models.MatchResult{
		{Symbol: "A", Matched: true},
		{Symbol: "B"},
		{Symbol: "C", Matched: true},
	}
	assert.Equal(t, []string{"A", "C"}, symbolsOf(Matches(results)))
	assert.Empty(t, Matches(nil))
}

func symbolsOf(results []models.MatchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Symbol
	}
	return out
}
