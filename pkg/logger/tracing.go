package logger

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	scanIDKey contextKey = "scan_id"
	symbolKey contextKey = "symbol"
)

// NewScanID returns a fresh identifier for one scan or evaluation run
func NewScanID() string {
	return uuid.NewString()
}

// WithScanID adds a scan ID to the context
func WithScanID(ctx context.Context, scanID string) context.Context {
	return context.WithValue(ctx, scanIDKey, scanID)
}

// ScanID retrieves the scan ID from context
func ScanID(ctx context.Context) string {
	if v, ok := ctx.Value(scanIDKey).(string); ok {
		return v
	}
	return ""
}

// WithSymbol adds the symbol being processed to the context
func WithSymbol(ctx context.Context, symbol string) context.Context {
	return context.WithValue(ctx, symbolKey, symbol)
}

// Symbol retrieves the symbol from context
func Symbol(ctx context.Context) string {
	if v, ok := ctx.Value(symbolKey).(string); ok {
		return v
	}
	return ""
}
