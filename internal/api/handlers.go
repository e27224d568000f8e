package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/data"
	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/internal/rules"
	"github.com/mohamedkhairy/stock-alerts/internal/scanner"
	"github.com/mohamedkhairy/stock-alerts/internal/storage"
	"github.com/mohamedkhairy/stock-alerts/pkg/indicator"
	"github.com/mohamedkhairy/stock-alerts/pkg/logger"
)

const defaultHistoryLimit = 100

// EvalRequest is the body of POST /api/v1/eval
type EvalRequest struct {
	Symbol     string `json:"symbol"`
	Expression string `json:"expression"`
}

// ScanRequest is the body of POST /api/v1/scan. Symbols takes precedence over Universe.
type ScanRequest struct {
	Expression  string   `json:"expression"`
	Symbols     []string `json:"symbols,omitempty"`
	Universe    string   `json:"universe,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	MatchesOnly bool     `json:"matches_only,omitempty"`
}

// ScanResponse is the body returned by POST /api/v1/scan
type ScanResponse struct {
	ScanID     string               `json:"scan_id"`
	Expression string               `json:"expression"`
	Count      int                  `json:"count"`
	Matched    int                  `json:"matched"`
	Results    []models.MatchResult `json:"results"`
}

// IndicatorInfo describes one built-in indicator
type IndicatorInfo struct {
	Name      string   `json:"name"`
	Result    string   `json:"result"`
	MinParams int      `json:"min_params"`
	MaxParams int      `json:"max_params"`
	Defaults  []string `json:"defaults,omitempty"`
}

// AlertHandler serves evaluation, scan and history endpoints
type AlertHandler struct {
	evaluator      *scanner.Evaluator
	scanner        *scanner.Scanner
	universes      *scanner.Universes
	history        storage.HistoryStorage
	maxScanSymbols int
}

// NewAlertHandler creates a new alert handler. history may be nil when
// alert history is disabled.
func NewAlertHandler(evaluator *scanner.Evaluator, s *scanner.Scanner, universes *scanner.Universes, history storage.HistoryStorage, maxScanSymbols int) *AlertHandler {
	return &AlertHandler{
		evaluator:      evaluator,
		scanner:        s,
		universes:      universes,
		history:        history,
		maxScanSymbols: maxScanSymbols,
	}
}

// Evaluate handles POST /api/v1/eval
func (h *AlertHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Symbol) == "" {
		respondWithError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	if strings.TrimSpace(req.Expression) == "" {
		respondWithError(w, http.StatusBadRequest, "expression is required")
		return
	}

	ctx := logger.WithScanID(r.Context(), logger.NewScanID())
	report, err := h.evaluator.Evaluate(ctx, req.Symbol, req.Expression)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrInvalidSymbol):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, data.ErrNoData):
			respondWithError(w, http.StatusNotFound, err.Error())
		default:
			respondWithError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// Scan handles POST /api/v1/scan
func (h *AlertHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := rules.Check(req.Expression); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid expression: "+err.Error())
		return
	}

	symbols, err := h.resolveSymbols(req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h.maxScanSymbols > 0 && len(symbols) > h.maxScanSymbols {
		respondWithError(w, http.StatusBadRequest,
			"too many symbols: "+strconv.Itoa(len(symbols))+" > "+strconv.Itoa(h.maxScanSymbols))
		return
	}

	scanID := logger.NewScanID()
	results := h.scanner.Scan(logger.WithScanID(r.Context(), scanID), req.Expression, symbols)
	matches := scanner.Matches(results)

	resp := ScanResponse{
		ScanID:     scanID,
		Expression: req.Expression,
		Count:      len(results),
		Matched:    len(matches),
		Results:    results,
	}
	if req.MatchesOnly {
		resp.Results = matches
	}
	if resp.Results == nil {
		resp.Results = []models.MatchResult{}
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *AlertHandler) resolveSymbols(req ScanRequest) ([]string, error) {
	var symbols []string
	if len(req.Symbols) > 0 {
		symbols = scanner.ParseSymbols(strings.Join(req.Symbols, ","))
	} else {
		if req.Universe == "" {
			return nil, errors.New("symbols or universe is required")
		}
		var err error
		symbols, err = h.universes.Get(req.Universe)
		if err != nil {
			return nil, err
		}
	}
	if len(symbols) == 0 {
		return nil, errors.New("no symbols to scan")
	}
	return scanner.Limit(symbols, req.Limit), nil
}

// ListHistory handles GET /api/v1/history
func (h *AlertHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Alert history is disabled")
		return
	}

	query := r.URL.Query()
	filter := storage.HistoryFilter{
		Symbol: strings.ToUpper(strings.TrimSpace(query.Get("symbol"))),
		ScanID: query.Get("scan_id"),
		Limit:  defaultHistoryLimit,
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 1000 {
			filter.Limit = limit
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	if startStr := query.Get("start_time"); startStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "start_time must be RFC3339")
			return
		}
		filter.StartTime = start
	}
	if endStr := query.Get("end_time"); endStr != "" {
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "end_time must be RFC3339")
			return
		}
		filter.EndTime = end
	}

	records, err := h.history.GetRecords(r.Context(), filter)
	if err != nil {
		logger.Error("Failed to read alert history", logger.ErrorField(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve alert history")
		return
	}
	if records == nil {
		records = []*models.HistoryRecord{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
		"limit":   filter.Limit,
		"offset":  filter.Offset,
	})
}

// ListIndicators handles GET /api/v1/indicators
func ListIndicators(w http.ResponseWriter, r *http.Request) {
	kinds := indicator.Kinds()
	infos := make([]IndicatorInfo, 0, len(kinds))
	for _, k := range kinds {
		infos = append(infos, IndicatorInfo{
			Name:      k.String(),
			Result:    k.Result().String(),
			MinParams: k.MinParams(),
			MaxParams: k.MaxParams(),
			Defaults:  k.Defaults(),
		})
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"indicators": infos,
		"count":      len(infos),
	})
}

// ListUniverses handles GET /api/v1/universes
func (h *AlertHandler) ListUniverses(w http.ResponseWriter, r *http.Request) {
	names := h.universes.Names()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"universes": names,
		"count":     len(names),
	})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
