package scenario

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/selivandex/stock-forecaster/internal/forecast"
	"github.com/selivandex/stock-forecaster/pkg/models"
)

func TestSimulator_Simulate(t *testing.T) {
	sim := NewSimulator(forecast.NewEngine(forecast.DefaultModelParams()))

	// Prices move with sentiment so the regressor carries real signal
	records := generateSentimentDrivenRecords(120)

	set, err := sim.Simulate("AAPL", records, 14)
	if err != nil {
		t.Fatalf("Failed to simulate: %v", err)
	}

	if set.Symbol != "AAPL" || set.ForecastDays != 14 {
		t.Errorf("Unexpected identity fields: %s / %d", set.Symbol, set.ForecastDays)
	}
	if set.CurrentPrice != records[len(records)-1].Close {
		t.Errorf("Expected current price %.2f, got %.2f",
			records[len(records)-1].Close, set.CurrentPrice)
	}

	expected := []string{"very_negative", "negative", "neutral", "positive", "very_positive"}
	if len(set.Scenarios) != len(expected) {
		t.Fatalf("Expected %d scenarios, got %d", len(expected), len(set.Scenarios))
	}
	for _, name := range expected {
		sc, ok := set.Scenarios[name]
		if !ok {
			t.Fatalf("Missing scenario %s", name)
		}
		if len(sc.DailyForecasts) != 14 {
			t.Errorf("Scenario %s should have 14 daily forecasts, got %d", name, len(sc.DailyForecasts))
		}
		if sc.ForecastedPrice <= 0 {
			t.Errorf("Scenario %s has non-positive forecast %.2f", name, sc.ForecastedPrice)
		}
	}

	if set.Scenarios["very_negative"].SentimentValue != -0.8 ||
		set.Scenarios["very_positive"].SentimentValue != 0.8 {
		t.Error("Scenario sentiment constants out of place")
	}

	// Sentiment drove prices upward in training, so optimistic
	// scenarios should forecast higher than pessimistic ones
	if set.Scenarios["very_positive"].ForecastedPrice <= set.Scenarios["very_negative"].ForecastedPrice {
		t.Errorf("Expected very_positive above very_negative, got %.4f vs %.4f",
			set.Scenarios["very_positive"].ForecastedPrice,
			set.Scenarios["very_negative"].ForecastedPrice)
	}
}

func TestSimulator_Simulate_FlatSentiment(t *testing.T) {
	sim := NewSimulator(forecast.NewEngine(forecast.DefaultModelParams()))

	records := generateSentimentDrivenRecords(60)
	for i := range records {
		records[i].Sentiment = 0.3
	}

	_, err := sim.Simulate("AAPL", records, 14)
	if !errors.Is(err, models.ErrSentimentUnavailable) {
		t.Errorf("Expected ErrSentimentUnavailable, got %v", err)
	}
}

func TestSimulator_Simulate_EmptySeries(t *testing.T) {
	sim := NewSimulator(forecast.NewEngine(forecast.DefaultModelParams()))

	_, err := sim.Simulate("AAPL", nil, 14)
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Errorf("Expected ErrDataUnavailable, got %v", err)
	}
}

// generateSentimentDrivenRecords builds a series whose price level
// tracks an oscillating sentiment signal on top of a mild drift
func generateSentimentDrivenRecords(count int) []models.MergedRecord {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	records := make([]models.MergedRecord, count)

	base := 100.0
	for i := 0; i < count; i++ {
		sentiment := 0.5 * math.Sin(0.45*float64(i))
		base *= 1.001

		records[i] = models.MergedRecord{
			Date:      start.AddDate(0, 0, i),
			Close:     base * (1 + 0.05*sentiment),
			Volume:    1000,
			Sentiment: sentiment,
			NewsCount: 1,
		}
	}

	return records
}
