package indicator

import (
	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// SMA returns the simple moving average of close over period bars ending at offset.
// SMA = Sum of closes over period / period
func SMA(bars []models.Bar, period, offset int, name string) (float64, error) {
	end, err := endIndex(len(bars), offset, period, name)
	if err != nil {
		return 0, err
	}
	return techanSMA(bars[end-period+1:end+1], period)
}
