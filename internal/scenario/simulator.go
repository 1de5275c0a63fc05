package scenario

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/selivandex/stock-forecaster/internal/forecast"
	"github.com/selivandex/stock-forecaster/pkg/logger"
	"github.com/selivandex/stock-forecaster/pkg/models"
)

// scenarioValues are the fixed hypothetical future sentiment levels
var scenarioValues = map[string]float64{
	"very_negative": -0.8,
	"negative":      -0.4,
	"neutral":       0.0,
	"positive":      0.4,
	"very_positive": 0.8,
}

// minimum sentiment standard deviation for scenarios to be meaningful
const minSentimentStd = 1e-9

// Simulator re-runs the forecast engine under pinned future sentiment
// values to bound possible outcomes
type Simulator struct {
	engine *forecast.Engine
}

// NewSimulator creates a scenario simulator over the given engine
func NewSimulator(engine *forecast.Engine) *Simulator {
	return &Simulator{engine: engine}
}

// Simulate forecasts horizonDays ahead once per scenario, each run
// with future sentiment pinned to the scenario constant. Fails with
// ErrSentimentUnavailable when the observed series has no sentiment
// variance: scenario analysis is only meaningful when real sentiment
// varies.
func (s *Simulator) Simulate(symbol string, records []models.MergedRecord, horizonDays int) (models.ScenarioSet, error) {
	if len(records) == 0 {
		return models.ScenarioSet{}, models.ErrDataUnavailable
	}

	mean, std := sentimentStats(records)
	if std < minSentimentStd {
		return models.ScenarioSet{}, models.ErrSentimentUnavailable
	}

	lastClose := records[len(records)-1].Close
	set := models.ScenarioSet{
		Symbol:           symbol,
		CurrentPrice:     lastClose,
		CurrentSentiment: mean,
		ForecastDays:     horizonDays,
		Scenarios:        make(map[string]models.ScenarioForecast, len(scenarioValues)),
	}

	for name, value := range scenarioValues {
		pinned := value
		result, err := s.engine.Forecast(symbol, records, horizonDays, forecast.Options{
			UseSentiment:    true,
			FutureSentiment: &pinned,
		})
		if err != nil {
			return models.ScenarioSet{}, fmt.Errorf("scenario %s: %w", name, err)
		}

		set.Scenarios[name] = models.ScenarioForecast{
			SentimentValue:  value,
			ForecastedPrice: result.ForecastedPrice,
			LowerBound:      result.ConfidenceInterval.Lower,
			UpperBound:      result.ConfidenceInterval.Upper,
			PercentChange:   result.PercentChange,
			DailyForecasts:  result.DailyForecasts,
		}
	}

	logger.Debug("sentiment scenarios complete",
		zap.String("symbol", symbol),
		zap.Int("scenarios", len(set.Scenarios)),
	)

	return set, nil
}

func sentimentStats(records []models.MergedRecord) (mean, std float64) {
	n := float64(len(records))
	var sum float64
	for _, r := range records {
		sum += r.Sentiment
	}
	mean = sum / n

	var ss float64
	for _, r := range records {
		d := r.Sentiment - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / n)
}
