package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooProvider implements Provider using the Yahoo Finance chart API
// (free, no API key needed)
type YahooProvider struct {
	client *http.Client

	mu    sync.Mutex
	cache map[string]cachedHistory
}

type cachedHistory struct {
	timestamp time.Time
	points    []models.PricePoint
}

// NewYahooProvider creates new Yahoo Finance price provider
func NewYahooProvider() *YahooProvider {
	return &YahooProvider{
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  make(map[string]cachedHistory),
	}
}

func (y *YahooProvider) GetName() string {
	return "YahooFinance"
}

type chartResponse struct {
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

// DailyHistory fetches daily bars for the trailing window. Days the
// API reports with a null close are skipped entirely; the caller sees
// fewer bars, never zero-filled ones.
func (y *YahooProvider) DailyHistory(ctx context.Context, symbol string, lookbackDays int) ([]models.PricePoint, error) {
	cacheKey := fmt.Sprintf("%s:%d", symbol, lookbackDays)
	y.mu.Lock()
	if cached, ok := y.cache[cacheKey]; ok && time.Since(cached.timestamp) < 15*time.Minute {
		y.mu.Unlock()
		return cached.points, nil
	}
	y.mu.Unlock()

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -lookbackDays)

	endpoint := fmt.Sprintf("%s/%s?period1=%d&period2=%d&interval=1d",
		yahooChartURL, url.PathEscape(symbol), from.Unix(), now.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "stock-forecaster/1.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var parsed chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s", parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}

	result := parsed.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	points := make([]models.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		points = append(points, models.PricePoint{
			Symbol: symbol,
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   derefDecimal(quote.Open, i),
			High:   derefDecimal(quote.High, i),
			Low:    derefDecimal(quote.Low, i),
			Close:  models.NewDecimal(*quote.Close[i]),
			Volume: derefDecimal(quote.Volume, i),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	y.mu.Lock()
	y.cache[cacheKey] = cachedHistory{timestamp: time.Now(), points: points}
	y.mu.Unlock()

	return points, nil
}

func derefDecimal(values []*float64, i int) decimal.Decimal {
	if i < len(values) && values[i] != nil {
		return models.NewDecimal(*values[i])
	}
	return models.NewDecimal(0)
}
