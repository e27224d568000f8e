package data

import (
	"sort"
	"strings"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// NormalizeSymbol trims and upper-cases a ticker
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || strings.ContainsAny(s, " \t/\\") {
		return "", ErrInvalidSymbol
	}
	return s, nil
}

// NormalizeBars turns raw source bars into a Series: null and invalid bars are
// dropped, bars are sorted by time, duplicate timestamps keep the later bar,
// and only the last lookback bars are kept (lookback <= 0 keeps all).
func NormalizeBars(symbol string, raw []models.Bar, lookback int) (*models.Series, error) {
	bars := make([]models.Bar, 0, len(raw))
	for _, b := range raw {
		if b.Open == 0 && b.High == 0 && b.Low == 0 && b.Close == 0 {
			continue // holidays and halted sessions come back as null bars
		}
		if err := b.Validate(); err != nil {
			continue
		}
		bars = append(bars, b)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})

	deduped := bars[:0]
	for _, b := range bars {
		if n := len(deduped); n > 0 && deduped[n-1].Timestamp.Equal(b.Timestamp) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	bars = deduped

	if len(bars) == 0 {
		return nil, ErrNoData
	}
	if lookback > 0 && len(bars) > lookback {
		bars = bars[len(bars)-lookback:]
	}

	return &models.Series{
		Symbol:    symbol,
		Bars:      bars,
		FetchedAt: time.Now().UTC(),
	}, nil
}
