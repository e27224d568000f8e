package indicator

// emaSeries returns the exponential moving average of values at every index.
// The first value seeds the average; alpha = 2 / (period + 1).
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// EMA returns the exponential moving average of closes at offset.
// At least period bars must lead up to the offset bar.
func EMA(closes []float64, period, offset int, name string) (float64, error) {
	end, err := endIndex(len(closes), offset, period, name)
	if err != nil {
		return 0, err
	}
	return emaSeries(closes[:end+1], period)[end], nil
}

// macdLine returns EMA(fast) - EMA(slow) at every index
func macdLine(closes []float64, fast, slow int) []float64 {
	fastEMA := emaSeries(closes, fast)
	slowEMA := emaSeries(closes, slow)

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	return line
}

// MACD returns the MACD line at offset
func MACD(closes []float64, fast, slow, offset int, name string) (float64, error) {
	end, err := endIndex(len(closes), offset, max(fast, slow), name)
	if err != nil {
		return 0, err
	}
	return macdLine(closes[:end+1], fast, slow)[end], nil
}

// MACDSignal returns "bullish" when the MACD line is above its signal EMA at offset, else "bearish"
func MACDSignal(closes []float64, fast, slow, signal, offset int, name string) (string, error) {
	end, err := endIndex(len(closes), offset, max(fast, slow)+signal-1, name)
	if err != nil {
		return "", err
	}

	line := macdLine(closes[:end+1], fast, slow)
	signalLine := emaSeries(line, signal)
	if line[end] > signalLine[end] {
		return "bullish", nil
	}
	return "bearish", nil
}
