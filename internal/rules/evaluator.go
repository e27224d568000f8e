package rules

import (
	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// Evaluate parses expression and evaluates it against series.
// It never returns an error: every parse, lookup and data failure becomes a
// non-matching result whose explanation is the error text.
func Evaluate(expression string, series *models.Series) EvaluationResult {
	expr, err := Parse(expression)
	if err != nil {
		return EvaluationResult{Explanation: err.Error()}
	}

	var bars []models.Bar
	if series != nil {
		bars = series.Bars
	}

	return evaluateExpression(expr, bars)
}

// EvaluateBars is Evaluate over a bare bar slice
func EvaluateBars(expression string, bars []models.Bar) EvaluationResult {
	return Evaluate(expression, &models.Series{Bars: bars})
}
