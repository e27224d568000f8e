package scanner

import (
	"context"
	"strings"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/data"
	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/internal/rules"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

// Evaluator fetches a symbol's series once and evaluates an expression against it
type Evaluator struct {
	fetcher  data.Fetcher
	lookback int
}

// NewEvaluator creates an evaluator requesting lookback bars per symbol
func NewEvaluator(fetcher data.Fetcher, lookback int) *Evaluator {
	return &Evaluator{
		fetcher:  fetcher,
		lookback: lookback,
	}
}

// Evaluate evaluates expression for one symbol.
// Parse and indicator failures come back as a non-matching report; only a
// failed fetch is returned as an error, always a *data.FetchError.
func (e *Evaluator) Evaluate(ctx context.Context, symbol, expression string) (*models.Report, error) {
	result, _, err := e.evaluate(ctx, symbol, expression)
	if err != nil {
		return nil, err
	}

	return &models.Report{
		Ticker:      strings.ToUpper(strings.TrimSpace(symbol)),
		Expression:  expression,
		Matched:     result.Matched,
		Explanation: result.Explanation,
		Timestamp:   time.Now().UTC(),
	}, nil
}

func (e *Evaluator) evaluate(ctx context.Context, symbol, expression string) (rules.EvaluationResult, *models.Series, error) {
	series, err := e.fetcher.FetchSeries(ctx, symbol, e.lookback)
	if err != nil {
		logger.EvaluationsTotal.WithLabelValues("error").Inc()
		return rules.EvaluationResult{}, nil, data.WrapFetchError(e.fetcher.Name(), symbol, err)
	}

	result := rules.Evaluate(expression, series)
	if result.Matched {
		logger.EvaluationsTotal.WithLabelValues("matched").Inc()
	} else {
		logger.EvaluationsTotal.WithLabelValues("not_matched").Inc()
	}

	logger.WithContext(ctx).Debug("Expression evaluated",
		logger.String("expression", expression),
		logger.Int("bars", series.Len()),
		logger.Bool("matched", result.Matched),
	)
	return result, series, nil
}
