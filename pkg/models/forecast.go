package models

// DailyForecast is one predicted day
type DailyForecast struct {
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// ConfidenceInterval bounds the end-of-horizon forecast
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ForecastResult is the full forecast payload for one symbol.
// Fallback results carry the identical shape with IsFallback set.
type ForecastResult struct {
	Symbol             string             `json:"symbol"`
	CurrentPrice       float64            `json:"current_price"`
	ForecastEndDate    string             `json:"forecast_end_date"`
	ForecastedPrice    float64            `json:"forecasted_price"`
	PriceChange        float64            `json:"price_change"`
	PercentChange      float64            `json:"percent_change"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	UncertaintyRange   float64            `json:"uncertainty_range"`
	ForecastDays       int                `json:"forecast_days"`
	DailyForecasts     []DailyForecast    `json:"daily_forecasts"`
	NewsEnhanced       bool               `json:"news_enhanced"`
	IsFallback         bool               `json:"is_fallback"`
	AnalysisSummary    *AnalysisSummary   `json:"analysis_summary,omitempty"`
}

// ScenarioForecast is one hypothetical-sentiment projection
type ScenarioForecast struct {
	SentimentValue  float64         `json:"sentiment_value"`
	ForecastedPrice float64         `json:"forecasted_price"`
	LowerBound      float64         `json:"lower_bound"`
	UpperBound      float64         `json:"upper_bound"`
	PercentChange   float64         `json:"percent_change"`
	DailyForecasts  []DailyForecast `json:"daily_forecasts"`
}

// ScenarioSet bounds possible outcomes under fixed future sentiment values
type ScenarioSet struct {
	Symbol           string                      `json:"symbol"`
	CurrentPrice     float64                     `json:"current_price"`
	CurrentSentiment float64                     `json:"current_sentiment"`
	ForecastDays     int                         `json:"forecast_days"`
	Scenarios        map[string]ScenarioForecast `json:"scenarios"`
}

// NewsSentimentSummary summarizes recent news polarity
type NewsSentimentSummary struct {
	AverageSentiment  float64 `json:"average_sentiment"`
	SentimentCategory string  `json:"sentiment_category"`
}

// CorrelationBrief restates the strongest sentiment/price link
type CorrelationBrief struct {
	BestCorrelation     float64 `json:"best_correlation"`
	BestLag             int     `json:"best_lag"`
	CorrelationStrength string  `json:"correlation_strength"`
}

// TechnicalSummary carries the latest indicator readings and signals
type TechnicalSummary struct {
	RSI            *float64 `json:"rsi,omitempty"`
	RSISignal      string   `json:"rsi_signal,omitempty"`
	MACD           *float64 `json:"macd,omitempty"`
	MACDSignal     *float64 `json:"macd_signal,omitempty"`
	MACDHistogram  *float64 `json:"macd_histogram,omitempty"`
	MACDSignalType string   `json:"macd_signal_type,omitempty"`
	Trend          string   `json:"trend,omitempty"`
}

// ConfidenceSummary grades the forecast by its uncertainty range
type ConfidenceSummary struct {
	UncertaintyRangePercent float64 `json:"uncertainty_range_percent"`
	ConfidenceLevel         string  `json:"confidence_level"`
}

// AnalysisSummary is the human-oriented digest attached to forecasts
type AnalysisSummary struct {
	NewsSentiment       *NewsSentimentSummary `json:"news_sentiment,omitempty"`
	Correlation         *CorrelationBrief     `json:"correlation,omitempty"`
	TechnicalIndicators *TechnicalSummary     `json:"technical_indicators,omitempty"`
	ForecastConfidence  *ConfidenceSummary    `json:"forecast_confidence,omitempty"`
	ForecastMessage     string                `json:"forecast_message"`
}
