package indicator

import (
	"fmt"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
)

// candleSpacing places adapted candles on a synthetic timeline. techan orders
// candles by period, and fetched bars may repeat or skip timestamps.
const candleSpacing = 2 * time.Minute

// toTechanSeries converts bars into a techan.TimeSeries
func toTechanSeries(bars []models.Bar) (*techan.TimeSeries, error) {
	series := techan.NewTimeSeries()
	origin := time.Unix(0, 0).UTC()

	for i, bar := range bars {
		period := techan.NewTimePeriod(origin.Add(time.Duration(i)*candleSpacing), time.Minute)
		candle := techan.NewCandle(period)

		candle.OpenPrice = big.NewDecimal(bar.Open)
		candle.MaxPrice = big.NewDecimal(bar.High)
		candle.MinPrice = big.NewDecimal(bar.Low)
		candle.ClosePrice = big.NewDecimal(bar.Close)
		candle.Volume = big.NewDecimal(bar.Volume)

		if !series.AddCandle(candle) {
			return nil, fmt.Errorf("techan rejected candle %d", i)
		}
	}

	return series, nil
}

// techanSMA returns the simple moving average of closes over the last period bars
func techanSMA(bars []models.Bar, period int) (float64, error) {
	series, err := toTechanSeries(bars)
	if err != nil {
		return 0, err
	}

	lastIndex := series.LastIndex()
	if lastIndex < period-1 {
		return 0, fmt.Errorf("techan series has %d candles, need %d", lastIndex+1, period)
	}

	sma := techan.NewSimpleMovingAverage(techan.NewClosePriceIndicator(series), period)
	return sma.Calculate(lastIndex).Float(), nil
}
