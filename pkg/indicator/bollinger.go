package indicator

import (
	"math"
)

// BollingerBand returns SMA(period) + k * stddev(period) of closes at offset.
// k = 0 gives the middle band, negative k the lower band. The deviation is the
// sample standard deviation of the window.
func BollingerBand(closes []float64, period int, k float64, offset int, name string) (float64, error) {
	end, err := endIndex(len(closes), offset, period, name)
	if err != nil {
		return 0, err
	}

	window := closes[end-period+1 : end+1]
	middle := mean(window)
	if k == 0 {
		return middle, nil
	}

	var squares float64
	for _, c := range window {
		squares += (c - middle) * (c - middle)
	}
	stddev := math.Sqrt(squares / float64(period-1))

	return middle + k*stddev, nil
}
