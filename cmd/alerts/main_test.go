package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/internal/watch"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATA_SOURCE", "mock")
	t.Setenv("DATA_CACHE_ENABLED", "false")
	t.Setenv("HISTORY_ENABLED", "true")
	t.Setenv("HISTORY_PATH", filepath.Join(t.TempDir(), "alerts.db"))
	t.Setenv("SCAN_UNIVERSE_FILE", "")
	t.Setenv("WATCH_EXPRESSION", "")
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "no command", args: nil, wantCode: exitUsage},
		{name: "help", args: []string{"help"}, wantCode: exitOK},
		{name: "unknown command", args: []string{"frobnicate"}, wantCode: exitUsage},
		{name: "eval missing expression", args: []string{"eval", "AAPL"}, wantCode: exitUsage},
		{name: "eval empty expression", args: []string{"eval", "AAPL", "  "}, wantCode: exitUsage},
		{name: "eval bad flag", args: []string{"eval", "--nope", "AAPL", "price > 1"}, wantCode: exitUsage},
		{name: "scan missing expression", args: []string{"scan"}, wantCode: exitUsage},
		{name: "scan unknown universe", args: []string{"scan", "price > 1", "--universe", "nope"}, wantCode: exitUsage},
		{name: "scan negative limit", args: []string{"scan", "price > 1", "--limit", "-1"}, wantCode: exitUsage},
		{name: "watch without expression", args: []string{"watch", "--once"}, wantCode: exitUsage},
		{name: "watch invalid expression", args: []string{"watch", "--once", "--symbols", "AAPL", "price >"}, wantCode: exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, tt.args...)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestRun_Eval(t *testing.T) {
	setupEnv(t)

	code, stdout, _ := runCLI(t, "eval", "aapl", "price > 0")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "AAPL MATCHED: price = ")

	code, stdout, _ = runCLI(t, "eval", "AAPL", "price < 0")
	assert.Equal(t, exitNotMatched, code)
	assert.Contains(t, stdout, "AAPL not matched: ")
	assert.Contains(t, stdout, "(not < 0)")
}

func TestRun_EvalJSON(t *testing.T) {
	setupEnv(t)

	code, stdout, _ := runCLI(t, "eval", "--json", "MSFT", "price > 0 AND volume > 0")
	require.Equal(t, exitOK, code)

	var report models.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "MSFT", report.Ticker)
	assert.True(t, report.Matched)
	assert.Contains(t, report.Explanation, " AND ")
}

func TestRun_EvalFetchErrorIsReport(t *testing.T) {
	setupEnv(t)

	code, stdout, _ := runCLI(t, "eval", "--json", "A B", "price > 0")
	assert.Equal(t, exitNotMatched, code)

	var report models.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.False(t, report.Matched)
	assert.Contains(t, report.Explanation, "invalid symbol")
}

func TestRun_Scan(t *testing.T) {
	setupEnv(t)

	code, stdout, _ := runCLI(t, "scan", "price > 0", "--symbols", "aapl,msft", "--json")
	require.Equal(t, exitOK, code)

	var results []models.MatchResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "AAPL", results[0].Symbol)
	assert.Equal(t, "MSFT", results[1].Symbol)
	assert.True(t, results[0].Matched)
	assert.Greater(t, results[0].Price, 0.0)
}

func TestRun_ScanAlwaysExitsZero(t *testing.T) {
	setupEnv(t)

	code, stdout, _ := runCLI(t, "scan", "--universe", "etfs", "--limit", "3", "price < 0")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "0 of 3 symbols matched")

	code, stdout, stderr := runCLI(t, "scan", "--symbols", "AAPL", "foo(1) > 2")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "0 of 1 symbols matched")
	assert.Contains(t, stderr, "warning")
}

func TestRun_ScanFetcherFailureExitsZero(t *testing.T) {
	setupEnv(t)
	t.Setenv("DATA_SOURCE", "postgres")
	t.Setenv("DB_BARS_TABLE", "bars; drop table bars")

	code, stdout, stderr := runCLI(t, "scan", "--symbols", "AAPL", "price > 0")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid bars table name")
}

func TestRun_ScanAll(t *testing.T) {
	setupEnv(t)

	code, stdout, _ := runCLI(t, "scan", "--symbols", "AAPL,MSFT", "--all", "price < 0")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "AAPL")
	assert.Contains(t, stdout, "MSFT")
	assert.Contains(t, stdout, "0 of 2 symbols matched")
}

func TestRun_WatchOnceThenHistory(t *testing.T) {
	setupEnv(t)

	code, stdout, _ := runCLI(t, "watch", "--once", "--json", "--symbols", "AAPL,MSFT,NVDA", "price > 0")
	require.Equal(t, exitOK, code)

	var summary watch.RunSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 3, summary.Symbols)
	assert.Equal(t, 3, summary.Matched)
	assert.Equal(t, 3, summary.Recorded)

	code, stdout, _ = runCLI(t, "history", "--json", "--symbol", "msft")
	require.Equal(t, exitOK, code)

	var records []models.HistoryRecord
	require.NoError(t, json.Unmarshal([]byte(stdout), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "MSFT", records[0].Symbol)
	assert.Equal(t, summary.ScanID, records[0].ScanID)
	assert.Equal(t, "price > 0", records[0].Expression)
}

func TestRun_HistoryDisabled(t *testing.T) {
	setupEnv(t)
	t.Setenv("HISTORY_ENABLED", "false")

	code, _, _ := runCLI(t, "history")
	assert.Equal(t, exitUsage, code)
}

func TestRun_Indicators(t *testing.T) {
	code, stdout, _ := runCLI(t, "indicators")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "macd_signal")
	assert.Contains(t, stdout, "text")
	assert.Contains(t, stdout, "sma")
	assert.Contains(t, stdout, "(<period>)")
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantPositional []string
		wantLimit      int
		wantJSON       bool
	}{
		{name: "flags first", args: []string{"--limit", "5", "--json", "price > 1"}, wantPositional: []string{"price > 1"}, wantLimit: 5, wantJSON: true},
		{name: "flags last", args: []string{"price > 1", "--limit", "5"}, wantPositional: []string{"price > 1"}, wantLimit: 5},
		{name: "interleaved", args: []string{"AAPL", "--json", "rsi < 30"}, wantPositional: []string{"AAPL", "rsi < 30"}, wantJSON: true},
		{name: "no args", args: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			limit := fs.Int("limit", 0, "")
			jsonOut := fs.Bool("json", false, "")

			positional, err := parseArgs(fs, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPositional, positional)
			assert.Equal(t, tt.wantLimit, *limit)
			assert.Equal(t, tt.wantJSON, *jsonOut)
		})
	}
}
