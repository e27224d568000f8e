package data

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// MockFetcher serves in-memory series. Symbols without stored bars get a
// deterministic random walk seeded by the symbol name, unless they were
// registered to fail.
type MockFetcher struct {
	mu       sync.RWMutex
	series   map[string][]models.Bar
	failures map[string]error
	end      time.Time
	calls    map[string]int
}

// NewMockFetcher creates a mock fetcher whose synthetic series end today
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		series:   make(map[string][]models.Bar),
		failures: make(map[string]error),
		calls:    make(map[string]int),
		end:      time.Now().UTC().Truncate(24 * time.Hour),
	}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Close() error { return nil }

// SetBars stores fixed bars for symbol
func (m *MockFetcher) SetBars(symbol string, bars []models.Bar) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[symbol] = bars
}

// SetError makes every fetch of symbol fail with err
func (m *MockFetcher) SetError(symbol string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[symbol] = err
}

// Calls returns how many times symbol was fetched
func (m *MockFetcher) Calls(symbol string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[symbol]
}

// FetchSeries returns the stored, failing or synthetic series for symbol
func (m *MockFetcher) FetchSeries(ctx context.Context, symbol string, lookback int) (*models.Series, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.calls[symbol]++
	bars, stored := m.series[symbol]
	failure := m.failures[symbol]
	m.mu.Unlock()

	if failure != nil {
		return nil, failure
	}
	if !stored {
		bars = m.generateBars(symbol, lookback)
	}
	return NormalizeBars(symbol, bars, lookback)
}

// generateBars builds a random walk of n daily bars ending at m.end
func (m *MockFetcher) generateBars(symbol string, n int) []models.Bar {
	if n <= 0 {
		n = 250
	}

	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	price := 20 + rng.Float64()*480
	bars := make([]models.Bar, n)
	for i := range bars {
		open := price
		change := (rng.Float64() - 0.5) * 0.04 // +/- 2%
		price = math.Max(1, price*(1+change))

		high := math.Max(open, price) * (1 + rng.Float64()*0.01)
		low := math.Min(open, price) * (1 - rng.Float64()*0.01)

		bars[i] = models.Bar{
			Timestamp: m.end.AddDate(0, 0, i-n+1),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     price,
			Volume:    float64(100_000 + rng.Intn(5_000_000)),
		}
	}
	return bars
}
