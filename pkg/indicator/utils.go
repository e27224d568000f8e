package indicator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// endIndex returns the index of the bar at offset, requiring window bars up to and including it
func endIndex(have, offset, window int, name string) (int, error) {
	need := window + offset
	if have < need {
		return 0, &InsufficientDataError{Indicator: name, Need: need, Have: have}
	}
	return have - 1 - offset, nil
}

// closes extracts close prices, oldest first
func closes(bars []models.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// parseWindow parses an integer window length such as "14"
func parseWindow(token string) (int, error) {
	text := unquote(strings.TrimSpace(token))
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ValueParseError{Text: token, Reason: "not an integer period"}
	}
	if n < 1 {
		return 0, fmt.Errorf("period must be at least 1, got %d: %w", n, ErrInvalidParam)
	}
	return n, nil
}
