package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/parquet-go/parquet-go"
)

// ParquetBar is the on-disk row layout of a per-symbol bar file
type ParquetBar struct {
	Timestamp    int64   `parquet:"t"` // Unix milliseconds
	Open         float64 `parquet:"o"`
	High         float64 `parquet:"h"`
	Low          float64 `parquet:"l"`
	Close        float64 `parquet:"c"`
	Volume       int64   `parquet:"v"`
	VWAP         float64 `parquet:"vw,optional"`
	Transactions int64   `parquet:"n,optional"`
}

// ParquetFetcher reads <dir>/<SYMBOL>.parquet files
type ParquetFetcher struct {
	dir string
}

// NewParquetFetcher creates a fetcher over dir
func NewParquetFetcher(dir string) *ParquetFetcher {
	return &ParquetFetcher{dir: dir}
}

func (p *ParquetFetcher) Name() string { return "parquet" }

func (p *ParquetFetcher) Close() error { return nil }

// Path returns the file that holds symbol's bars
func (p *ParquetFetcher) Path(symbol string) string {
	return filepath.Join(p.dir, symbol+".parquet")
}

// FetchSeries reads and normalizes the symbol's file
func (p *ParquetFetcher) FetchSeries(ctx context.Context, symbol string, lookback int) (*models.Series, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := parquet.ReadFile[ParquetBar](p.Path(symbol))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: no bar file for %s", ErrNoData, symbol)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}

	bars := make([]models.Bar, len(rows))
	for i, r := range rows {
		bars[i] = models.Bar{
			Timestamp: time.UnixMilli(r.Timestamp).UTC(),
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    float64(r.Volume),
		}
	}

	return NormalizeBars(symbol, bars, lookback)
}

// WriteSeries stores bars as symbol's parquet file, creating the directory if needed
func (p *ParquetFetcher) WriteSeries(symbol string, bars []models.Bar) error {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create parquet directory: %w", err)
	}

	rows := make([]ParquetBar, len(bars))
	for i, b := range bars {
		rows[i] = ParquetBar{
			Timestamp: b.Timestamp.UnixMilli(),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    int64(b.Volume),
		}
	}

	if err := parquet.WriteFile(p.Path(symbol), rows); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}
	return nil
}
