package data

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/config"
	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

var (
	// ErrInvalidSymbol is returned when an invalid symbol is provided
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrNoData is returned when a source has no bars for a symbol
	ErrNoData = errors.New("no data")
)

// Fetcher loads the recent daily history of one symbol
type Fetcher interface {
	// FetchSeries returns up to lookback bars for symbol, oldest first
	FetchSeries(ctx context.Context, symbol string, lookback int) (*models.Series, error)

	// Name returns the source name (e.g. "yahoo", "postgres")
	Name() string

	// Close releases the source's connections
	Close() error
}

// FetchError wraps every failure to obtain a series
type FetchError struct {
	Symbol string
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s from %s: %v", e.Symbol, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// WrapFetchError returns err as a *FetchError, keeping an existing one as is
func WrapFetchError(source, symbol string, err error) error {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return err
	}
	return &FetchError{Symbol: symbol, Source: source, Err: err}
}

// FetcherFactory creates fetchers by source name
type FetcherFactory interface {
	// CreateFetcher creates a fetcher for the given source
	CreateFetcher(source string, cfg *config.Config) (Fetcher, error)

	// RegisterFetcher registers a fetcher constructor
	RegisterFetcher(source string, factoryFunc func(*config.Config) (Fetcher, error)) error

	// ListFetchers returns the registered source names
	ListFetchers() []string
}

// DefaultFetcherFactory is the default implementation of FetcherFactory
type DefaultFetcherFactory struct {
	factories map[string]func(*config.Config) (Fetcher, error)
}

// NewFetcherFactory creates a factory with the built-in sources registered
func NewFetcherFactory() *DefaultFetcherFactory {
	factory := &DefaultFetcherFactory{
		factories: make(map[string]func(*config.Config) (Fetcher, error)),
	}

	factory.RegisterFetcher(config.SourceYahoo, func(cfg *config.Config) (Fetcher, error) {
		return NewYahooFetcher(cfg.Data.YahooBaseURL, cfg.Data.YahooProxyURL, cfg.Data.HTTPTimeout), nil
	})
	factory.RegisterFetcher(config.SourcePostgres, func(cfg *config.Config) (Fetcher, error) {
		return NewPostgresFetcher(cfg.Database)
	})
	factory.RegisterFetcher(config.SourceParquet, func(cfg *config.Config) (Fetcher, error) {
		return NewParquetFetcher(cfg.Data.ParquetDir), nil
	})
	factory.RegisterFetcher(config.SourceMock, func(cfg *config.Config) (Fetcher, error) {
		return NewMockFetcher(), nil
	})

	return factory
}

// CreateFetcher creates a new fetcher instance
func (f *DefaultFetcherFactory) CreateFetcher(source string, cfg *config.Config) (Fetcher, error) {
	factoryFunc, exists := f.factories[source]
	if !exists {
		return nil, errors.New("unknown data source: " + source)
	}
	return factoryFunc(cfg)
}

// RegisterFetcher registers a fetcher constructor
func (f *DefaultFetcherFactory) RegisterFetcher(source string, factoryFunc func(*config.Config) (Fetcher, error)) error {
	if _, exists := f.factories[source]; exists {
		return errors.New("data source already registered: " + source)
	}
	f.factories[source] = factoryFunc
	return nil
}

// ListFetchers returns the registered sources in sorted order
func (f *DefaultFetcherFactory) ListFetchers() []string {
	sources := make([]string, 0, len(f.factories))
	for source := range f.factories {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}

// instrumented records fetch latency and failures per source
type instrumented struct {
	Fetcher
}

// Instrument wraps a fetcher with Prometheus metrics and error wrapping
func Instrument(f Fetcher) Fetcher {
	return &instrumented{Fetcher: f}
}

func (i *instrumented) FetchSeries(ctx context.Context, symbol string, lookback int) (*models.Series, error) {
	start := time.Now()
	series, err := i.Fetcher.FetchSeries(ctx, symbol, lookback)
	logger.FetchDuration.WithLabelValues(i.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		logger.FetchErrorsTotal.WithLabelValues(i.Name()).Inc()
		logger.WithContext(ctx).Debug("Series fetch failed",
			logger.String("source", i.Name()),
			logger.String("symbol", symbol),
			logger.ErrorField(err),
		)
		return nil, WrapFetchError(i.Name(), symbol, err)
	}
	return series, nil
}

// New builds the configured fetcher: source, optional Redis cache, metrics
func New(cfg *config.Config) (Fetcher, error) {
	source, err := NewFetcherFactory().CreateFetcher(cfg.Data.Source, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s fetcher: %w", cfg.Data.Source, err)
	}

	if cfg.Data.CacheEnabled {
		client, err := newRedisClient(cfg.Redis)
		if err != nil {
			source.Close()
			return nil, err
		}
		source = NewCachedFetcher(source, client, cfg.Redis.KeyPrefix, cfg.Data.CacheTTL)
	}

	logger.Info("Series fetcher ready",
		logger.String("source", cfg.Data.Source),
		logger.Bool("cache", cfg.Data.CacheEnabled),
	)
	return Instrument(source), nil
}
