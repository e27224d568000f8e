package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mohamedkhairy/stock-alerts/internal/config"
	"github.com/mohamedkhairy/stock-alerts/internal/data"
	"github.com/mohamedkhairy/stock-alerts/internal/scanner"
	"github.com/mohamedkhairy/stock-alerts/internal/storage"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

// Exit codes
const (
	exitOK         = 0
	exitNotMatched = 1
	exitError      = 1
	exitUsage      = 2
)

const usageText = `Usage: alerts <command> [flags] [args]

Commands:
  eval <symbol> <expression>   evaluate an expression for one symbol (exit 0 matched, 1 not matched)
  scan <expression>            evaluate an expression across a universe and print matches
  serve                        run the HTTP API
  watch [expression]           run scheduled scans and record matches to alert history
  history                      list recorded alerts
  indicators                   list built-in indicators

Run 'alerts <command> -h' for command flags.
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries what every command needs
type app struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usageText)
		return exitUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usageText)
		return exitOK
	case "indicators":
		return runIndicators(rest, stdout, stderr)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitUsage
	}
	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return exitUsage
	}
	defer logger.Sync()

	a := &app{cfg: cfg, stdout: stdout, stderr: stderr}
	switch cmd {
	case "eval":
		return a.runEval(rest)
	case "scan":
		return a.runScan(rest)
	case "serve":
		return a.runServe(rest)
	case "watch":
		return a.runWatch(rest)
	case "history":
		return a.runHistory(rest)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usageText)
		return exitUsage
	}
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// parseArgs parses flags that may appear before, between or after positional arguments
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// usageError reports a flag or argument problem and returns the matching exit code
func (a *app) usageError(fs *flag.FlagSet, err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	fmt.Fprintf(a.stderr, "%s: %v\n", fs.Name(), err)
	fs.Usage()
	return exitUsage
}

func newFlagSet(name, args string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: alerts %s %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// newEvaluator builds the configured fetcher and an evaluator on top of it
func (a *app) newEvaluator(lookback int) (*scanner.Evaluator, data.Fetcher, error) {
	fetcher, err := data.New(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	if lookback <= 0 {
		lookback = a.cfg.Data.Lookback
	}
	return scanner.NewEvaluator(fetcher, lookback), fetcher, nil
}

func (a *app) newScanner(evaluator *scanner.Evaluator, workers int) *scanner.Scanner {
	if workers <= 0 {
		workers = a.cfg.Scanner.WorkerCount
	}
	return scanner.NewScanner(evaluator, scanner.Config{
		Workers:       workers,
		SymbolTimeout: a.cfg.Scanner.SymbolTimeout,
	})
}

// resolveSymbols picks the explicit symbol list if given, otherwise the named universe
func (a *app) resolveSymbols(symbolList, universe string, limit int) ([]string, error) {
	var symbols []string
	if symbolList != "" {
		symbols = scanner.ParseSymbols(symbolList)
	} else {
		universes, err := scanner.LoadUniverses(a.cfg.Scanner.UniverseFile)
		if err != nil {
			return nil, err
		}
		if universe == "" {
			universe = a.cfg.Scanner.DefaultUniverse
		}
		symbols, err = universes.Get(universe)
		if err != nil {
			return nil, err
		}
	}
	if len(symbols) == 0 {
		return nil, errors.New("no symbols to scan")
	}
	return scanner.Limit(symbols, limit), nil
}

func (a *app) openHistory() (storage.HistoryStorage, error) {
	if !a.cfg.History.Enabled {
		return nil, errors.New("alert history is disabled (HISTORY_ENABLED=false)")
	}
	return storage.NewSQLiteHistoryStorage(a.cfg.History.Path)
}
