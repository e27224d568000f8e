package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestInit(t *testing.T) {
	require.NoError(t, Init("debug", "production"))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("error", "development"))
	assert.False(t, Get().Core().Enabled(zapcore.WarnLevel))

	globalLogger = nil
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestContextFields(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ScanID(ctx))
	assert.Empty(t, Symbol(ctx))

	id := NewScanID()
	ctx = WithSymbol(WithScanID(ctx, id), "AAPL")

	assert.Equal(t, id, ScanID(ctx))
	assert.Equal(t, "AAPL", Symbol(ctx))
	assert.NotEqual(t, id, NewScanID())
	assert.NotNil(t, WithContext(ctx))
}
