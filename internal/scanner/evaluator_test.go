package scanner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/stock-alerts/internal/data"
)

func TestEvaluator_Evaluate(t *testing.T) {
	fetcher := data.NewMockFetcher()
	fetcher.SetBars("AAPL", flatBars(30, 210))
	evaluator := NewEvaluator(fetcher, 300)

	report, err := evaluator.Evaluate(context.Background(), "aapl", "price > 200")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", report.Ticker)
	assert.Equal(t, "price > 200", report.Expression)
	assert.True(t, report.Matched)
	assert.Equal(t, "price = 210.00 > 200", report.Explanation)
	assert.False(t, report.Timestamp.IsZero())
}

func TestEvaluator_Evaluate_ExpressionErrorIsReport(t *testing.T) {
	fetcher := data.NewMockFetcher()
	fetcher.SetBars("AAPL", flatBars(5, 210))
	evaluator := NewEvaluator(fetcher, 300)

	report, err := evaluator.Evaluate(context.Background(), "AAPL", "sma(50) > 100")
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.NotEmpty(t, report.Explanation)
}

func TestEvaluator_Evaluate_FetchError(t *testing.T) {
	fetcher := data.NewMockFetcher()
	fetcher.SetError("AAPL", errors.New("upstream unavailable"))
	evaluator := NewEvaluator(fetcher, 300)

	report, err := evaluator.Evaluate(context.Background(), "AAPL", "price > 200")
	require.Error(t, err)
	assert.Nil(t, report)

	var fetchErr *data.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "AAPL", fetchErr.Symbol)
	assert.Equal(t, "mock", fetchErr.Source)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestEvaluator_FetchesOncePerEvaluation(t *testing.T) {
	fetcher := data.NewMockFetcher()
	fetcher.SetBars("AAPL", flatBars(30, 210))
	evaluator := NewEvaluator(fetcher, 300)

	_, err := evaluator.Evaluate(context.Background(), "AAPL", "price > 200 AND volume > 1M OR sma(10) > 100")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.Calls("AAPL"))
}
