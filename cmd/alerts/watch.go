package main

import (
	"errors"
	"fmt"

	"github.com/mohamedkhairy/stock-alerts/internal/watch"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

func (a *app) runWatch(args []string) int {
	fs := newFlagSet("watch", "[flags] [expression]", a.stderr)
	schedule := fs.String("schedule", a.cfg.Watch.Schedule, "cron schedule with a seconds field")
	universe := fs.String("universe", a.cfg.Watch.Universe, "named universe to watch (default SCAN_DEFAULT_UNIVERSE)")
	symbolList := fs.String("symbols", "", "comma separated symbols, overrides --universe")
	limit := fs.Int("limit", a.cfg.Watch.Limit, "watch only the first N symbols of the universe")
	cooldown := fs.Duration("cooldown", a.cfg.Watch.Cooldown, "suppress repeat alerts for a symbol within this window")
	once := fs.Bool("once", false, "run a single scan and exit")
	runOnStart := fs.Bool("run-on-start", a.cfg.Watch.RunOnStart, "scan immediately before waiting for the schedule")
	jsonOut := fs.Bool("json", false, "print the --once summary as JSON")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return a.usageError(fs, err)
	}
	if len(positional) > 1 {
		return a.usageError(fs, errors.New("expected at most one expression"))
	}
	expression := a.cfg.Watch.Expression
	if len(positional) == 1 {
		expression = positional[0]
	}
	if expression == "" {
		return a.usageError(fs, errors.New("no expression given (argument or WATCH_EXPRESSION)"))
	}

	symbols, err := a.resolveSymbols(*symbolList, *universe, *limit)
	if err != nil {
		return a.usageError(fs, err)
	}

	history, err := a.openHistory()
	if err != nil {
		logger.Error("Failed to open alert history", logger.ErrorField(err))
		return exitUsage
	}
	defer history.Close()

	evaluator, fetcher, err := a.newEvaluator(0)
	if err != nil {
		logger.Error("Failed to create fetcher", logger.ErrorField(err))
		return exitUsage
	}
	defer fetcher.Close()

	w, err := watch.NewWatcher(a.newScanner(evaluator, 0), history, watch.Config{
		Schedule:   *schedule,
		Expression: expression,
		Symbols:    symbols,
		Cooldown:   *cooldown,
	})
	if err != nil {
		return a.usageError(fs, err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	if *once {
		summary, err := w.RunOnce(ctx)
		if err != nil {
			logger.Error("Watch run failed", logger.ErrorField(err))
			return exitError
		}
		if *jsonOut {
			if err := writeJSON(a.stdout, summary); err != nil {
				logger.Error("Failed to write summary", logger.ErrorField(err))
			}
		} else {
			fmt.Fprintf(a.stdout, "scan %s: %d of %d symbols matched, %d recorded, %d on cooldown\n",
				summary.ScanID, summary.Matched, summary.Symbols, summary.Recorded, summary.Suppressed)
		}
		return exitOK
	}

	if *runOnStart {
		if _, err := w.RunOnce(ctx); err != nil {
			logger.Error("Initial watch run failed", logger.ErrorField(err))
		}
	}

	if err := w.Start(ctx); err != nil {
		logger.Error("Failed to start watcher", logger.ErrorField(err))
		return exitError
	}
	<-ctx.Done()
	w.Stop()
	return exitOK
}
