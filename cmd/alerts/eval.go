package main

import (
	"errors"
	"strings"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

func (a *app) runEval(args []string) int {
	fs := newFlagSet("eval", "[flags] <symbol> <expression>", a.stderr)
	jsonOut := fs.Bool("json", false, "print the report as JSON")
	lookback := fs.Int("lookback", 0, "bars to fetch (default DATA_LOOKBACK)")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return a.usageError(fs, err)
	}
	if len(positional) != 2 {
		return a.usageError(fs, errors.New("expected a symbol and an expression"))
	}
	symbol, expression := positional[0], positional[1]
	if strings.TrimSpace(expression) == "" {
		return a.usageError(fs, errors.New("expression is empty"))
	}

	evaluator, fetcher, err := a.newEvaluator(*lookback)
	if err != nil {
		logger.Error("Failed to create fetcher", logger.ErrorField(err))
		return exitUsage
	}
	defer fetcher.Close()

	ctx, cancel := signalContext()
	defer cancel()

	report, err := evaluator.Evaluate(ctx, symbol, expression)
	if err != nil {
		report = &models.Report{
			Ticker:      strings.ToUpper(strings.TrimSpace(symbol)),
			Expression:  expression,
			Explanation: err.Error(),
			Timestamp:   time.Now().UTC(),
		}
	}

	if *jsonOut {
		if err := writeJSON(a.stdout, report); err != nil {
			logger.Error("Failed to write report", logger.ErrorField(err))
		}
	} else {
		printReport(a.stdout, report)
	}

	if report.Matched {
		return exitOK
	}
	return exitNotMatched
}
