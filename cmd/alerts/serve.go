package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mohamedkhairy/stock-alerts/internal/api"
	"github.com/mohamedkhairy/stock-alerts/internal/scanner"
	"github.com/mohamedkhairy/stock-alerts/internal/storage"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

func (a *app) runServe(args []string) int {
	fs := newFlagSet("serve", "[flags]", a.stderr)
	port := fs.Int("port", a.cfg.API.Port, "HTTP listen port")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return a.usageError(fs, err)
	}
	if len(positional) != 0 {
		return a.usageError(fs, errors.New("serve takes no arguments"))
	}

	evaluator, fetcher, err := a.newEvaluator(0)
	if err != nil {
		logger.Error("Failed to create fetcher", logger.ErrorField(err))
		return exitUsage
	}
	defer fetcher.Close()

	universes, err := scanner.LoadUniverses(a.cfg.Scanner.UniverseFile)
	if err != nil {
		logger.Error("Failed to load universes", logger.ErrorField(err))
		return exitUsage
	}

	var history storage.HistoryStorage
	if a.cfg.History.Enabled {
		history, err = a.openHistory()
		if err != nil {
			logger.Error("Failed to open alert history", logger.ErrorField(err))
			return exitUsage
		}
		defer history.Close()
	}

	handler := api.NewAlertHandler(evaluator, a.newScanner(evaluator, 0), universes, history, a.cfg.API.MaxScanSymbols)
	auth := api.NewAuthManager(a.cfg.API.JWTSecret)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      api.NewRouter(handler, auth, a.cfg.API.RateLimitRPS),
		ReadTimeout:  a.cfg.API.ReadTimeout,
		WriteTimeout: a.cfg.API.WriteTimeout,
	}

	logger.Info("Starting HTTP server",
		logger.String("addr", server.Addr),
		logger.String("source", a.cfg.Data.Source),
		logger.Bool("auth", auth.Enabled()),
		logger.Bool("history", history != nil),
	)

	ctx, cancel := signalContext()
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", logger.ErrorField(err))
			return exitError
		}
		return exitOK
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.API.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down HTTP server", logger.ErrorField(err))
		return exitError
	}

	logger.Info("HTTP server stopped")
	return exitOK
}
