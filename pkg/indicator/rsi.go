package indicator

import "fmt"

// RSI returns the relative strength index of closes at offset.
// RSI = 100 - (100 / (1 + RS)), RS = mean gain / mean loss over the last period
// close-to-close differences. The means are plain rolling means, not Wilder smoothing.
// A window without any price change has no RS and fails with ErrUndefined.
func RSI(closes []float64, period, offset int, name string) (float64, error) {
	end, err := endIndex(len(closes), offset, period+1, name)
	if err != nil {
		return 0, err
	}

	var gains, losses float64
	for j := end - period + 1; j <= end; j++ {
		change := closes[j] - closes[j-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 0, fmt.Errorf("%s: no price change in the last %d closes: %w", name, period+1, ErrUndefined)
		}
		return 100.0, nil
	}

	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs)), nil
}
