package forecast

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/stock-forecaster/pkg/logger"
	"github.com/selivandex/stock-forecaster/pkg/models"
)

// trailing window used to extrapolate observed sentiment into the future
const recentSentimentDays = 7

// Engine fits the decomposable model on a merged series and produces
// point forecasts with confidence bands. All errors are returned to
// the caller; converting them into fallback results is the caller's
// explicit branch, not the engine's.
type Engine struct {
	params ModelParams
}

// NewEngine creates a forecast engine with the given hyperparameters
func NewEngine(params ModelParams) *Engine {
	return &Engine{params: params}
}

// Options control one forecast run
type Options struct {
	// UseSentiment registers the sentiment column as a standardized
	// exogenous regressor, provided it has non-trivial variance
	UseSentiment bool
	// FutureSentiment pins every forecast day to a constant sentiment.
	// Nil means the trailing observed mean is used.
	FutureSentiment *float64
}

// Forecast trains on the records and predicts horizonDays beyond the
// last observed date
func (e *Engine) Forecast(symbol string, records []models.MergedRecord, horizonDays int, opts Options) (models.ForecastResult, error) {
	if len(records) == 0 {
		return models.ForecastResult{}, models.ErrDataUnavailable
	}
	if horizonDays <= 0 {
		return models.ForecastResult{}, fmt.Errorf("%w: invalid horizon %d", models.ErrModelFit, horizonDays)
	}

	dates := make([]time.Time, len(records))
	closes := make([]float64, len(records))
	sentiments := make([]float64, len(records))
	for i, r := range records {
		dates[i] = r.Date
		closes[i] = r.Close
		sentiments[i] = r.Sentiment
	}

	var regressor []float64
	if opts.UseSentiment {
		regressor = sentiments
	}

	m, err := fitModel(e.params, dates, closes, regressor)
	if err != nil {
		return models.ForecastResult{}, fmt.Errorf("%w: %v", models.ErrModelFit, err)
	}

	futureSentiment := trailingMean(sentiments, recentSentimentDays)
	if opts.FutureSentiment != nil {
		futureSentiment = *opts.FutureSentiment
	}

	lastDate := dates[len(dates)-1]
	lastClose := closes[len(closes)-1]

	daily := make([]models.DailyForecast, 0, horizonDays)
	for h := 1; h <= horizonDays; h++ {
		day := lastDate.AddDate(0, 0, h)
		price, lower, upper := m.predict(day, futureSentiment, h)
		daily = append(daily, models.DailyForecast{
			Date:       day.Format("2006-01-02"),
			Price:      price,
			LowerBound: lower,
			UpperBound: upper,
		})
	}

	end := daily[len(daily)-1]
	result := models.ForecastResult{
		Symbol:          symbol,
		CurrentPrice:    lastClose,
		ForecastEndDate: end.Date,
		ForecastedPrice: end.Price,
		PriceChange:     end.Price - lastClose,
		PercentChange:   (end.Price - lastClose) / lastClose * 100,
		ConfidenceInterval: models.ConfidenceInterval{
			Lower: end.LowerBound,
			Upper: end.UpperBound,
		},
		UncertaintyRange: end.UpperBound - end.LowerBound,
		ForecastDays:     horizonDays,
		DailyForecasts:   daily,
		NewsEnhanced:     opts.UseSentiment && m.useRegressor,
	}

	logger.Debug("forecast complete",
		zap.String("symbol", symbol),
		zap.Int("horizon_days", horizonDays),
		zap.Bool("news_enhanced", result.NewsEnhanced),
		zap.Float64("percent_change", result.PercentChange),
	)

	return result, nil
}

func trailingMean(values []float64, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	start := len(values) - window
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, v := range values[start:] {
		sum += v
	}
	return sum / float64(len(values)-start)
}
