package models

import (
	"time"
)

// Bar represents one OHLCV bar of a symbol's history
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Validate validates a Bar
func (b *Bar) Validate() error {
	if b.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	if b.High < b.Low {
		return ErrInvalidBar
	}
	if b.Volume < 0 {
		return ErrInvalidVolume
	}
	return nil
}

// Series is the fetched history of one symbol, oldest bar first.
// A Series is never modified after it has been fetched.
type Series struct {
	Symbol    string    `json:"symbol"`
	Bars      []Bar     `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Len returns the number of bars in the series
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Last returns the most recent bar, or nil for an empty series
func (s *Series) Last() *Bar {
	if s.Len() == 0 {
		return nil
	}
	return &s.Bars[len(s.Bars)-1]
}

// Validate validates a Series
func (s *Series) Validate() error {
	if s.Symbol == "" {
		return ErrInvalidSymbol
	}
	for i := range s.Bars {
		if err := s.Bars[i].Validate(); err != nil {
			return err
		}
		if i > 0 && !s.Bars[i].Timestamp.After(s.Bars[i-1].Timestamp) {
			return ErrUnorderedSeries
		}
	}
	return nil
}

// Report is the outcome of evaluating one expression against one symbol
type Report struct {
	Ticker      string    `json:"ticker"`
	Expression  string    `json:"expression"`
	Matched     bool      `json:"matched"`
	Explanation string    `json:"explanation"`
	Timestamp   time.Time `json:"timestamp"`
}

// MatchResult is one symbol's entry in a universe scan.
// Price is the last close, zero when the series could not be fetched.
type MatchResult struct {
	Symbol      string    `json:"symbol"`
	Matched     bool      `json:"matched"`
	Explanation string    `json:"explanation"`
	Price       float64   `json:"price,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// HistoryRecord is a persisted alert match
type HistoryRecord struct {
	ID          string    `json:"id"`
	ScanID      string    `json:"scan_id,omitempty"`
	Symbol      string    `json:"symbol"`
	Expression  string    `json:"expression"`
	Explanation string    `json:"explanation"`
	Price       float64   `json:"price"`
	Timestamp   time.Time `json:"timestamp"`
}

// Validate validates a HistoryRecord
func (h *HistoryRecord) Validate() error {
	if h.Symbol == "" {
		return ErrInvalidSymbol
	}
	if h.Expression == "" {
		return ErrEmptyExpression
	}
	if h.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	return nil
}
