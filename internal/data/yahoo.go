package data

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// YahooFetcher fetches daily bars from the Yahoo Finance chart API
type YahooFetcher struct {
	client    *http.Client
	baseURL   string
	symbolMap map[string]string
}

// NewYahooFetcher creates a Yahoo fetcher; proxyURL may be empty
func NewYahooFetcher(baseURL, proxyURL string, timeout time.Duration) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		symbolMap: map[string]string{
			"SPX":    "^GSPC",
			"SPX500": "^GSPC",
			"NDX":    "^NDX",
			"VIX":    "^VIX",
			"DJI":    "^DJI",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// yahooChart is the response of /v8/finance/chart
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// chartRange picks the smallest Yahoo range covering lookback trading days
func chartRange(lookback int) string {
	switch {
	case lookback <= 21:
		return "1mo"
	case lookback <= 63:
		return "3mo"
	case lookback <= 126:
		return "6mo"
	case lookback <= 252:
		return "1y"
	case lookback <= 504:
		return "2y"
	case lookback <= 1260:
		return "5y"
	}
	return "max"
}

// FetchSeries fetches the daily chart for symbol
func (f *YahooFetcher) FetchSeries(ctx context.Context, symbol string, lookback int) (*models.Series, error) {
	symbol, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	ticker := symbol
	if mapped, ok := f.symbolMap[symbol]; ok {
		ticker = mapped
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.baseURL, url.PathEscape(ticker), chartRange(lookback))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read yahoo response: %w", err)
	}

	var chart yahooChart
	decodeErr := json.Unmarshal(body, &chart)
	if decodeErr == nil && chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode yahoo response: %w", decodeErr)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	raw := make([]models.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		raw = append(raw, models.Bar{
			Timestamp: time.Unix(ts, 0).UTC(),
			Open:      at(quote.Open, i),
			High:      at(quote.High, i),
			Low:       at(quote.Low, i),
			Close:     at(quote.Close, i),
			Volume:    at(quote.Volume, i),
		})
	}

	return NormalizeBars(symbol, raw, lookback)
}

// at reads a nullable column value; null and missing entries read as 0
func at(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
