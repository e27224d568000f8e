package main

import (
	"errors"
	"fmt"

	"github.com/mohamedkhairy/stock-alerts/internal/rules"
	"github.com/mohamedkhairy/stock-alerts/internal/scanner"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

// runScan always exits 0 once the scan has run; per-symbol failures are part of the output
func (a *app) runScan(args []string) int {
	fs := newFlagSet("scan", "[flags] <expression>", a.stderr)
	universe := fs.String("universe", "", "named universe to scan (default SCAN_DEFAULT_UNIVERSE)")
	symbolList := fs.String("symbols", "", "comma separated symbols, overrides --universe")
	limit := fs.Int("limit", 0, "scan only the first N symbols of the universe")
	workers := fs.Int("workers", 0, "concurrent symbols (default SCAN_WORKERS)")
	all := fs.Bool("all", false, "print every symbol, not only matches")
	jsonOut := fs.Bool("json", false, "print results as JSON")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return a.usageError(fs, err)
	}
	if len(positional) != 1 {
		return a.usageError(fs, errors.New("expected one expression"))
	}
	if *limit < 0 {
		return a.usageError(fs, errors.New("--limit must not be negative"))
	}
	expression := positional[0]

	symbols, err := a.resolveSymbols(*symbolList, *universe, *limit)
	if err != nil {
		return a.usageError(fs, err)
	}

	if err := rules.Check(expression); err != nil {
		fmt.Fprintf(a.stderr, "warning: %v\n", err)
	}

	// scans report failures in their output and still exit 0
	evaluator, fetcher, err := a.newEvaluator(0)
	if err != nil {
		logger.Error("Failed to create fetcher", logger.ErrorField(err))
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return exitOK
	}
	defer fetcher.Close()

	ctx, cancel := signalContext()
	defer cancel()

	results := a.newScanner(evaluator, *workers).Scan(ctx, expression, symbols)
	matches := scanner.Matches(results)

	shown := matches
	if *all {
		shown = results
	}

	if *jsonOut {
		if err := writeJSON(a.stdout, nonNil(shown)); err != nil {
			logger.Error("Failed to write results", logger.ErrorField(err))
		}
		return exitOK
	}

	printResults(a.stdout, shown, *all)
	fmt.Fprintf(a.stdout, "%d of %d symbols matched\n", len(matches), len(results))
	return exitOK
}
