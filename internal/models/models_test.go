package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBar_Validate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		bar     *Bar
		wantErr error
	}{
		{
			name:    "valid bar",
			bar:     &Bar{Timestamp: now, Open: 150.0, High: 151.0, Low: 149.0, Close: 150.5, Volume: 1000},
			wantErr: nil,
		},
		{
			name:    "zero timestamp",
			bar:     &Bar{Open: 150.0, High: 151.0, Low: 149.0, Close: 150.5},
			wantErr: ErrInvalidTimestamp,
		},
		{
			name:    "high below low",
			bar:     &Bar{Timestamp: now, Open: 150.0, High: 148.0, Low: 149.0, Close: 150.5},
			wantErr: ErrInvalidBar,
		},
		{
			name:    "negative volume",
			bar:     &Bar{Timestamp: now, Open: 150.0, High: 151.0, Low: 149.0, Close: 150.5, Volume: -1},
			wantErr: ErrInvalidVolume,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bar.Validate()
			if err != tt.wantErr {
				t.Errorf("Bar.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSeries_Validate(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bar := func(day int) Bar {
		return Bar{Timestamp: base.AddDate(0, 0, day), Open: 10, High: 11, Low: 9, Close: 10, Volume: 100}
	}

	tests := []struct {
		name    string
		series  *Series
		wantErr error
	}{
		{
			name:    "ascending bars",
			series:  &Series{Symbol: "AAPL", Bars: []Bar{bar(0), bar(1), bar(2)}},
			wantErr: nil,
		},
		{
			name:    "empty series is valid",
			series:  &Series{Symbol: "AAPL"},
			wantErr: nil,
		},
		{
			name:    "missing symbol",
			series:  &Series{Bars: []Bar{bar(0)}},
			wantErr: ErrInvalidSymbol,
		},
		{
			name:    "duplicate timestamp",
			series:  &Series{Symbol: "AAPL", Bars: []Bar{bar(0), bar(0)}},
			wantErr: ErrUnorderedSeries,
		},
		{
			name:    "descending bars",
			series:  &Series{Symbol: "AAPL", Bars: []Bar{bar(2), bar(1)}},
			wantErr: ErrUnorderedSeries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if err != tt.wantErr {
				t.Errorf("Series.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSeries_Last(t *testing.T) {
	var empty *Series
	if empty.Last() != nil {
		t.Error("Expected nil last bar for nil series")
	}

	s := &Series{Symbol: "AAPL", Bars: []Bar{{Close: 1}, {Close: 2}}}
	if s.Len() != 2 {
		t.Errorf("Expected length 2, got %d", s.Len())
	}
	if s.Last().Close != 2 {
		t.Errorf("Expected last close 2, got %f", s.Last().Close)
	}
}

func TestReport_JSONIsFlat(t *testing.T) {
	report := Report{
		Ticker:      "AAPL",
		Expression:  "rsi < 30",
		Matched:     true,
		Explanation: "rsi(14) = 25.00 < 30",
		Timestamp:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, key := range []string{"ticker", "expression", "matched", "explanation", "timestamp"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("Expected key %q in JSON output", key)
		}
	}
	for key, value := range fields {
		switch value.(type) {
		case map[string]interface{}, []interface{}:
			t.Errorf("Expected flat JSON, key %q is nested", key)
		}
	}
}

func TestHistoryRecord_Validate(t *testing.T) {
	valid := HistoryRecord{ID: "1", Symbol: "AAPL", Expression: "rsi < 30", Timestamp: time.Now()}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid record, got %v", err)
	}

	noExpr := valid
	noExpr.Expression = ""
	if err := noExpr.Validate(); err != ErrEmptyExpression {
		t.Errorf("Expected ErrEmptyExpression, got %v", err)
	}

	noSymbol := valid
	noSymbol.Symbol = ""
	if err := noSymbol.Validate(); err != ErrInvalidSymbol {
		t.Errorf("Expected ErrInvalidSymbol, got %v", err)
	}
}
