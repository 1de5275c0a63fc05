package predictor

import (
	"fmt"
	"math"
	"strings"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

// buildSummary composes the human-oriented digest attached to a
// successful forecast: news polarity, the strongest sentiment/price
// correlation, latest technical readings, and a confidence grade.
func buildSummary(series *symbolSeries, corr models.CorrelationSummary, result models.ForecastResult) *models.AnalysisSummary {
	summary := &models.AnalysisSummary{}

	if len(series.scores) > 0 {
		avg := series.averageSentiment()
		summary.NewsSentiment = &models.NewsSentimentSummary{
			AverageSentiment:  avg,
			SentimentCategory: models.SentimentCategory(avg),
		}
	}

	if corr.CorrelationStrength != "" {
		summary.Correlation = &models.CorrelationBrief{
			BestCorrelation:     corr.BestCorrelation,
			BestLag:             corr.BestLag,
			CorrelationStrength: corr.CorrelationStrength,
		}
	}

	summary.TechnicalIndicators = technicalSummary(series.enriched)

	if result.ForecastedPrice != 0 {
		uncertaintyPercent := result.UncertaintyRange / result.ForecastedPrice * 100
		summary.ForecastConfidence = &models.ConfidenceSummary{
			UncertaintyRangePercent: uncertaintyPercent,
			ConfidenceLevel:         confidenceLevel(uncertaintyPercent),
		}
	}

	summary.ForecastMessage = forecastMessage(summary, result)
	return summary
}

func technicalSummary(records []models.MergedRecord) *models.TechnicalSummary {
	if len(records) == 0 {
		return nil
	}
	last := records[len(records)-1]

	tech := &models.TechnicalSummary{}
	populated := false

	if last.RSI != nil {
		tech.RSI = last.RSI
		switch {
		case *last.RSI > 70:
			tech.RSISignal = "overbought"
		case *last.RSI < 30:
			tech.RSISignal = "oversold"
		default:
			tech.RSISignal = "neutral"
		}
		populated = true
	}

	if last.MACD != nil && last.MACDSignal != nil && last.MACDHistogram != nil {
		tech.MACD = last.MACD
		tech.MACDSignal = last.MACDSignal
		tech.MACDHistogram = last.MACDHistogram
		switch {
		case *last.MACDHistogram > 0:
			tech.MACDSignalType = "bullish"
		case *last.MACDHistogram < 0:
			tech.MACDSignalType = "bearish"
		default:
			tech.MACDSignalType = "neutral"
		}
		populated = true
	}

	if last.MA5 != nil && last.MA20 != nil {
		tech.Trend = trendLabel(last.Close, *last.MA5, *last.MA20)
		populated = true
	}

	if !populated {
		return nil
	}
	return tech
}

func trendLabel(price, ma5, ma20 float64) string {
	switch {
	case price > ma5 && ma5 > ma20:
		return "strong_uptrend"
	case price > ma20:
		return "uptrend"
	case price < ma5 && ma5 < ma20:
		return "strong_downtrend"
	case price < ma20:
		return "downtrend"
	default:
		return "neutral"
	}
}

func confidenceLevel(uncertaintyPercent float64) string {
	switch {
	case uncertaintyPercent < 5:
		return "high"
	case uncertaintyPercent < 10:
		return "medium"
	default:
		return "low"
	}
}

func forecastMessage(summary *models.AnalysisSummary, result models.ForecastResult) string {
	direction := "remain stable"
	if result.PercentChange > 0 {
		direction = "increase"
	} else if result.PercentChange < 0 {
		direction = "decrease"
	}

	msg := fmt.Sprintf("The %s stock price is forecasted to %s by %.2f%% over the next %d days. ",
		result.Symbol, direction, math.Abs(result.PercentChange), result.ForecastDays)

	if summary.ForecastConfidence != nil {
		msg += fmt.Sprintf("This forecast has %s confidence. ", summary.ForecastConfidence.ConfidenceLevel)
	}

	if summary.NewsSentiment != nil && summary.NewsSentiment.SentimentCategory != "neutral" {
		msg += fmt.Sprintf("Recent news sentiment is %s. ", summary.NewsSentiment.SentimentCategory)
	}

	if tech := summary.TechnicalIndicators; tech != nil {
		if tech.Trend != "" && tech.Trend != "neutral" {
			msg += fmt.Sprintf("Technical analysis shows a %s. ", strings.ReplaceAll(tech.Trend, "_", " "))
		}
		if tech.RSISignal != "" && tech.RSISignal != "neutral" {
			msg += fmt.Sprintf("RSI indicates the stock is currently %s. ", tech.RSISignal)
		}
	}

	return msg
}
