package forecast

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

// Fallback bounds: daily noise sigma 0.5%, drift sigma 2%, bands +/-2%.
// Randomness is deliberately unseeded; fallback output is advisory and
// never feeds trading decisions.
const (
	fallbackDriftSigma = 2.0
	fallbackDailySigma = 0.5
	fallbackBandWidth  = 0.02
)

// FallbackForecast synthesizes a bounded random walk from the current
// price when the real model cannot run. The payload shape is identical
// to a real forecast; IsFallback marks it as a directional estimate
// only.
func FallbackForecast(symbol string, currentPrice float64, horizonDays int) models.ForecastResult {
	if currentPrice <= 0 {
		currentPrice = 100.0
	}
	if horizonDays <= 0 {
		horizonDays = 1
	}

	trendPercent := rand.NormFloat64() * fallbackDriftSigma
	endPrice := currentPrice * (1 + trendPercent/100)

	today := time.Now().UTC()
	daily := make([]models.DailyForecast, 0, horizonDays)

	for i := 1; i <= horizonDays; i++ {
		// Linear interpolation toward the drifted end price, plus noise
		ratio := float64(i) / float64(horizonDays)
		price := currentPrice*(1-ratio) + endPrice*ratio
		price *= 1 + rand.NormFloat64()*fallbackDailySigma/100

		daily = append(daily, models.DailyForecast{
			Date:       today.AddDate(0, 0, i).Format("2006-01-02"),
			Price:      price,
			LowerBound: price * (1 - fallbackBandWidth),
			UpperBound: price * (1 + fallbackBandWidth),
		})
	}

	end := daily[len(daily)-1]
	return models.ForecastResult{
		Symbol:          symbol,
		CurrentPrice:    currentPrice,
		ForecastEndDate: end.Date,
		ForecastedPrice: end.Price,
		PriceChange:     end.Price - currentPrice,
		PercentChange:   (end.Price - currentPrice) / currentPrice * 100,
		ConfidenceInterval: models.ConfidenceInterval{
			Lower: end.LowerBound,
			Upper: end.UpperBound,
		},
		UncertaintyRange: end.UpperBound - end.LowerBound,
		ForecastDays:     horizonDays,
		DailyForecasts:   daily,
		NewsEnhanced:     false,
		IsFallback:       true,
		AnalysisSummary: &models.AnalysisSummary{
			ForecastMessage: fallbackMessage(symbol, end.Price, currentPrice, horizonDays),
		},
	}
}

// FallbackImpact produces an empty-but-valid news impact payload with
// the fallback marker set
func FallbackImpact(symbol string, daysBack int) models.NewsImpact {
	return models.NewsImpact{
		Symbol:          symbol,
		DaysAnalyzed:    daysBack,
		SignificantNews: []models.SignificantNews{},
		IsFallback:      true,
	}
}

func fallbackMessage(symbol string, endPrice, currentPrice float64, horizonDays int) string {
	change := (endPrice - currentPrice) / currentPrice * 100
	return fmt.Sprintf("The %s stock price is forecasted to change by %.2f%% over the next %d days. This is a fallback prediction as the actual model could not be computed.", symbol, change, horizonDays)
}
