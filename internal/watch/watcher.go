package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/internal/rules"
	"github.com/mohamedkhairy/stock-alerts/internal/scanner"
	"github.com/mohamedkhairy/stock-alerts/internal/storage"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

// Config holds configuration for a watcher
type Config struct {
	Schedule   string // cron spec with a leading seconds field
	Expression string
	Symbols    []string
	Cooldown   time.Duration
}

// RunSummary describes one scheduled scan
type RunSummary struct {
	ScanID     string
	Symbols    int
	Matched    int
	Suppressed int
	Recorded   int
	Duration   time.Duration
}

// Watcher runs a scan on a cron schedule and records new matches to alert history
type Watcher struct {
	cron      *cron.Cron
	scanner   *scanner.Scanner
	history   storage.HistoryStorage
	cooldowns *CooldownTracker
	config    Config

	mu      sync.Mutex // guards ctx, cancel and running
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// NewWatcher creates a watcher; the expression is checked up front so a bad
// rule fails at startup rather than on every tick
func NewWatcher(s *scanner.Scanner, history storage.HistoryStorage, config Config) (*Watcher, error) {
	if s == nil {
		return nil, fmt.Errorf("scanner cannot be nil")
	}
	if history == nil {
		return nil, fmt.Errorf("history storage cannot be nil")
	}
	if len(config.Symbols) == 0 {
		return nil, fmt.Errorf("watch universe is empty")
	}
	if err := rules.Check(config.Expression); err != nil {
		return nil, fmt.Errorf("invalid watch expression: %w", err)
	}

	w := &Watcher{
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		scanner:   s,
		history:   history,
		cooldowns: NewCooldownTracker(config.Cooldown),
		config:    config,
	}
	if _, err := w.cron.AddFunc(config.Schedule, w.tick); err != nil {
		return nil, fmt.Errorf("failed to register watch schedule %q: %w", config.Schedule, err)
	}
	return w, nil
}

// Start starts the cron scheduler
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("watcher is already running")
	}

	w.ctx, w.cancel = context.WithCancel(ctx)
	w.running = true
	w.cron.Start()

	logger.Info("Watcher started",
		logger.String("schedule", w.config.Schedule),
		logger.String("expression", w.config.Expression),
		logger.Int("symbols", len(w.config.Symbols)),
	)
	return nil
}

// Stop stops the scheduler and waits for a running scan to finish
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.cancel()
	w.mu.Unlock()

	<-w.cron.Stop().Done()
	logger.Info("Watcher stopped")
}

func (w *Watcher) tick() {
	w.mu.Lock()
	ctx := w.ctx
	w.mu.Unlock()
	if ctx == nil {
		return
	}

	if _, err := w.RunOnce(ctx); err != nil {
		logger.Error("Scheduled scan failed", logger.ErrorField(err))
	}
}

// RunOnce scans the universe once and records every match not on cooldown
func (w *Watcher) RunOnce(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	scanID := logger.NewScanID()
	ctx = logger.WithScanID(ctx, scanID)

	results := w.scanner.Scan(ctx, w.config.Expression, w.config.Symbols)
	summary := &RunSummary{ScanID: scanID, Symbols: len(results)}

	var records []*models.HistoryRecord
	for _, r := range scanner.Matches(results) {
		summary.Matched++
		if w.cooldowns.IsOnCooldown(w.config.Expression, r.Symbol) {
			summary.Suppressed++
			continue
		}
		records = append(records, &models.HistoryRecord{
			ID:          uuid.New().String(),
			ScanID:      scanID,
			Symbol:      r.Symbol,
			Expression:  w.config.Expression,
			Explanation: r.Explanation,
			Price:       r.Price,
			Timestamp:   r.Timestamp,
		})
	}
	w.cooldowns.ClearExpired()

	if len(records) > 0 {
		if err := w.history.WriteRecords(ctx, records); err != nil {
			logger.HistoryWritesTotal.WithLabelValues("error").Inc()
			return summary, fmt.Errorf("failed to record alerts: %w", err)
		}
		logger.HistoryWritesTotal.WithLabelValues("success").Add(float64(len(records)))
		for _, rec := range records {
			w.cooldowns.Record(w.config.Expression, rec.Symbol)
			logger.WithContext(ctx).Info("Alert",
				logger.String("symbol", rec.Symbol),
				logger.String("explanation", rec.Explanation),
			)
		}
	}
	summary.Recorded = len(records)
	summary.Duration = time.Since(start)

	logger.WithContext(ctx).Info("Watch run completed",
		logger.Int("symbols", summary.Symbols),
		logger.Int("matched", summary.Matched),
		logger.Int("suppressed", summary.Suppressed),
		logger.Int("recorded", summary.Recorded),
		logger.Duration("duration", summary.Duration),
	)
	return summary, nil
}
