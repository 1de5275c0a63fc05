package forecast

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

func TestEngine_Forecast(t *testing.T) {
	engine := NewEngine(DefaultModelParams())
	records := generateTestMerged(90, 100, 0.003, 0.1)

	result, err := engine.Forecast("AAPL", records, 30, Options{})
	if err != nil {
		t.Fatalf("Failed to forecast: %v", err)
	}

	if result.Symbol != "AAPL" {
		t.Errorf("Expected symbol AAPL, got %s", result.Symbol)
	}
	if result.ForecastDays != 30 {
		t.Errorf("Expected 30 forecast days, got %d", result.ForecastDays)
	}
	if len(result.DailyForecasts) != 30 {
		t.Fatalf("Expected 30 daily forecasts, got %d", len(result.DailyForecasts))
	}

	// Days are consecutive starting the day after the last observation
	lastObserved := records[len(records)-1].Date
	for i, day := range result.DailyForecasts {
		expected := lastObserved.AddDate(0, 0, i+1).Format("2006-01-02")
		if day.Date != expected {
			t.Fatalf("Expected date %s at position %d, got %s", expected, i, day.Date)
		}
		if !(day.LowerBound <= day.Price && day.Price <= day.UpperBound) {
			t.Fatalf("Band ordering violated on %s", day.Date)
		}
	}

	end := result.DailyForecasts[len(result.DailyForecasts)-1]
	if result.ForecastedPrice != end.Price {
		t.Error("Forecasted price should match the final daily forecast")
	}
	if result.ForecastEndDate != end.Date {
		t.Error("Forecast end date should match the final daily forecast")
	}

	expectedChange := (end.Price - result.CurrentPrice) / result.CurrentPrice * 100
	if math.Abs(result.PercentChange-expectedChange) > 1e-9 {
		t.Errorf("Percent change inconsistent: %.4f vs %.4f", result.PercentChange, expectedChange)
	}
	if result.IsFallback {
		t.Error("A successful fit should not be marked as fallback")
	}
}

func TestEngine_Forecast_NewsEnhanced(t *testing.T) {
	engine := NewEngine(DefaultModelParams())

	t.Run("varying sentiment enables the regressor", func(t *testing.T) {
		records := generateTestMerged(90, 100, 0.003, 0.1)
		result, err := engine.Forecast("AAPL", records, 10, Options{UseSentiment: true})
		if err != nil {
			t.Fatalf("Failed to forecast: %v", err)
		}
		if !result.NewsEnhanced {
			t.Error("Expected news-enhanced forecast with varying sentiment")
		}
	})

	t.Run("flat sentiment falls back to price-only", func(t *testing.T) {
		records := generateTestMerged(90, 100, 0.003, 0)
		result, err := engine.Forecast("AAPL", records, 10, Options{UseSentiment: true})
		if err != nil {
			t.Fatalf("Failed to forecast: %v", err)
		}
		if result.NewsEnhanced {
			t.Error("A constant sentiment series should not mark the forecast as enhanced")
		}
	})

	t.Run("sentiment ignored by default", func(t *testing.T) {
		records := generateTestMerged(90, 100, 0.003, 0.1)
		result, err := engine.Forecast("AAPL", records, 10, Options{})
		if err != nil {
			t.Fatalf("Failed to forecast: %v", err)
		}
		if result.NewsEnhanced {
			t.Error("Forecast should not be enhanced without UseSentiment")
		}
	})
}

func TestEngine_Forecast_FlatSeries(t *testing.T) {
	engine := NewEngine(DefaultModelParams())
	records := generateTestMerged(30, 100, 0, 0)

	result, err := engine.Forecast("KO", records, 10, Options{})
	if err != nil {
		t.Fatalf("Failed to forecast: %v", err)
	}

	for _, day := range result.DailyForecasts {
		if math.Abs(day.Price-100) > 1e-6 {
			t.Fatalf("Expected flat forecast 100 on %s, got %.6f", day.Date, day.Price)
		}
	}
	if math.Abs(result.PercentChange) > 1e-9 {
		t.Errorf("Expected zero change on a flat series, got %.6f", result.PercentChange)
	}
}

func TestEngine_Forecast_Errors(t *testing.T) {
	engine := NewEngine(DefaultModelParams())

	t.Run("empty series", func(t *testing.T) {
		_, err := engine.Forecast("AAPL", nil, 30, Options{})
		if !errors.Is(err, models.ErrDataUnavailable) {
			t.Errorf("Expected ErrDataUnavailable, got %v", err)
		}
	})

	t.Run("too little history", func(t *testing.T) {
		records := generateTestMerged(5, 100, 0.01, 0)
		_, err := engine.Forecast("AAPL", records, 30, Options{})
		if !errors.Is(err, models.ErrModelFit) {
			t.Errorf("Expected ErrModelFit, got %v", err)
		}
	})

	t.Run("invalid horizon", func(t *testing.T) {
		records := generateTestMerged(90, 100, 0.01, 0)
		_, err := engine.Forecast("AAPL", records, 0, Options{})
		if !errors.Is(err, models.ErrModelFit) {
			t.Errorf("Expected ErrModelFit, got %v", err)
		}
	})
}

func TestTrailingMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	if got := trailingMean(values, 7); math.Abs(got-7) > 1e-12 {
		t.Errorf("Expected trailing mean 7, got %.4f", got)
	}
	if got := trailingMean(values[:3], 7); math.Abs(got-2) > 1e-12 {
		t.Errorf("Expected mean of short series 2, got %.4f", got)
	}
	if got := trailingMean(nil, 7); got != 0 {
		t.Errorf("Expected 0 on empty series, got %.4f", got)
	}
}

// generateTestMerged builds a merged series with drifting prices and
// oscillating sentiment of the given amplitude
func generateTestMerged(count int, startPrice, dailyReturn, sentimentAmp float64) []models.MergedRecord {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	records := make([]models.MergedRecord, count)

	price := startPrice
	for i := 0; i < count; i++ {
		records[i] = models.MergedRecord{
			Date:      start.AddDate(0, 0, i),
			Close:     price,
			Volume:    1000,
			Sentiment: sentimentAmp * math.Sin(float64(i)/3),
			NewsCount: 1,
		}
		price *= 1 + dailyReturn
	}

	return records
}
