package indicator

import (
	"math"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// trueRange returns max(high-low, |high-prevClose|, |low-prevClose|)
func trueRange(bar models.Bar, prevClose float64) float64 {
	return math.Max(bar.High-bar.Low, math.Max(math.Abs(bar.High-prevClose), math.Abs(bar.Low-prevClose)))
}

// ATR returns the rolling mean of true range over period bars at offset
func ATR(bars []models.Bar, period, offset int, name string) (float64, error) {
	end, err := endIndex(len(bars), offset, period+1, name)
	if err != nil {
		return 0, err
	}

	var sum float64
	for j := end - period + 1; j <= end; j++ {
		sum += trueRange(bars[j], bars[j-1].Close)
	}
	return sum / float64(period), nil
}
