package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

// Config holds configuration for universe scans
type Config struct {
	Workers       int           // concurrent symbols (default: 8)
	SymbolTimeout time.Duration // per-symbol fetch + evaluate budget, 0 for none
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Workers:       8,
		SymbolTimeout: 30 * time.Second,
	}
}

// Scanner evaluates one expression across a list of symbols with a bounded worker pool
type Scanner struct {
	evaluator *Evaluator
	config    Config
}

// NewScanner creates a new scanner
func NewScanner(evaluator *Evaluator, config Config) *Scanner {
	if evaluator == nil {
		panic("evaluator cannot be nil")
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Scanner{
		evaluator: evaluator,
		config:    config,
	}
}

// Scan returns exactly one result per input symbol, in input order.
// A symbol whose fetch or evaluation fails gets matched=false with the error
// as its explanation; the scan itself never fails.
func (s *Scanner) Scan(ctx context.Context, expression string, symbols []string) []models.MatchResult {
	start := time.Now()
	if logger.ScanID(ctx) == "" {
		ctx = logger.WithScanID(ctx, logger.NewScanID())
	}

	results := make([]models.MatchResult, len(symbols))
	jobs := make(chan int)

	workers := s.config.Workers
	if workers > len(symbols) {
		workers = len(symbols)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.scanSymbol(ctx, expression, symbols[i])
			}
		}()
	}

	for i := range symbols {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	matched := 0
	for _, r := range results {
		if r.Matched {
			matched++
		}
	}

	elapsed := time.Since(start)
	logger.ScanDuration.Observe(elapsed.Seconds())
	logger.WithContext(ctx).Info("Scan completed",
		logger.String("expression", expression),
		logger.Int("symbols", len(symbols)),
		logger.Int("matched", matched),
		logger.Int("workers", workers),
		logger.Duration("duration", elapsed),
	)

	return results
}

// scanSymbol evaluates one symbol and converts every failure into a non-matching result
func (s *Scanner) scanSymbol(ctx context.Context, expression, symbol string) (result models.MatchResult) {
	result = models.MatchResult{Symbol: symbol}

	defer func() {
		if r := recover(); r != nil {
			logger.WithContext(ctx).Error("Panic while scanning symbol",
				logger.String("symbol", symbol),
				logger.String("panic", fmt.Sprint(r)),
			)
			result = models.MatchResult{
				Symbol:      symbol,
				Explanation: fmt.Sprintf("internal error: %v", r),
				Timestamp:   time.Now().UTC(),
			}
			logger.ScanSymbolsTotal.WithLabelValues("error").Inc()
		}
	}()

	ctx = logger.WithSymbol(ctx, symbol)
	if s.config.SymbolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.SymbolTimeout)
		defer cancel()
	}

	if err := ctx.Err(); err != nil {
		result.Explanation = fmt.Sprintf("scan cancelled: %v", err)
		result.Timestamp = time.Now().UTC()
		logger.ScanSymbolsTotal.WithLabelValues("error").Inc()
		return result
	}

	evaluation, series, err := s.evaluator.evaluate(ctx, symbol, expression)
	result.Timestamp = time.Now().UTC()
	if err != nil {
		result.Explanation = err.Error()
		logger.ScanSymbolsTotal.WithLabelValues("error").Inc()
		logger.WithContext(ctx).Warn("Symbol skipped", logger.ErrorField(err))
		return result
	}

	result.Matched = evaluation.Matched
	result.Explanation = evaluation.Explanation
	if last := series.Last(); last != nil {
		result.Price = last.Close
	}

	if result.Matched {
		logger.ScanSymbolsTotal.WithLabelValues("matched").Inc()
	} else {
		logger.ScanSymbolsTotal.WithLabelValues("not_matched").Inc()
	}
	return result
}

// Matches filters results down to the matched ones, keeping order
func Matches(results []models.MatchResult) []models.MatchResult {
	var out []models.MatchResult
	for _, r := range results {
		if r.Matched {
			out = append(out, r)
		}
	}
	return out
}
