package main

import (
	"errors"
	"strings"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/internal/storage"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

func (a *app) runHistory(args []string) int {
	fs := newFlagSet("history", "[flags]", a.stderr)
	symbol := fs.String("symbol", "", "only alerts for this symbol")
	scanID := fs.String("scan-id", "", "only alerts from this scan")
	limit := fs.Int("limit", 50, "maximum records")
	offset := fs.Int("offset", 0, "records to skip")
	jsonOut := fs.Bool("json", false, "print records as JSON")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return a.usageError(fs, err)
	}
	if len(positional) != 0 {
		return a.usageError(fs, errors.New("history takes no arguments"))
	}

	history, err := a.openHistory()
	if err != nil {
		logger.Error("Failed to open alert history", logger.ErrorField(err))
		return exitUsage
	}
	defer history.Close()

	ctx, cancel := signalContext()
	defer cancel()

	records, err := history.GetRecords(ctx, storage.HistoryFilter{
		Symbol: strings.ToUpper(strings.TrimSpace(*symbol)),
		ScanID: *scanID,
		Limit:  *limit,
		Offset: *offset,
	})
	if err != nil {
		logger.Error("Failed to read alert history", logger.ErrorField(err))
		return exitError
	}

	if *jsonOut {
		if records == nil {
			records = []*models.HistoryRecord{}
		}
		if err := writeJSON(a.stdout, records); err != nil {
			logger.Error("Failed to write records", logger.ErrorField(err))
		}
		return exitOK
	}
	printHistory(a.stdout, records)
	return exitOK
}
