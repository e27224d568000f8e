package indicator

import (
	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// OBV returns on-balance volume at offset: the cumulative sum of
// sign(close - prevClose) * volume from the second bar onward
func OBV(bars []models.Bar, offset int, name string) (float64, error) {
	end, err := endIndex(len(bars), offset, 1, name)
	if err != nil {
		return 0, err
	}

	var obv float64
	for j := 1; j <= end; j++ {
		switch {
		case bars[j].Close > bars[j-1].Close:
			obv += bars[j].Volume
		case bars[j].Close < bars[j-1].Close:
			obv -= bars[j].Volume
		}
	}
	return obv, nil
}
