package rules

import (
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

var testEpoch = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func seriesFromCloses(closes ...float64) *models.Series {
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Timestamp: testEpoch.AddDate(0, 0, i),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1_000_000,
		}
	}
	return &models.Series{Symbol: "TEST", Bars: bars}
}

func flat(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// oversold ends at 210 with rsi(14) = 25: seven losses of 3 and seven gains of 1
func oversold() *models.Series {
	closes := flat(16, 224)
	price := 224.0
	for i := 0; i < 7; i++ {
		price -= 3
		closes = append(closes, price)
		price++
		closes = append(closes, price)
	}
	return seriesFromCloses(closes...)
}
