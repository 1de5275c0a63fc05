package models

// Correlation metric names, as reported in CorrelationSummary.BestMetric
const (
	MetricReturn       = "sentiment_vs_return"
	MetricVolatility   = "sentiment_vs_volatility"
	MetricVolumeChange = "sentiment_vs_volume_change"
)

// LagCorrelation holds Pearson correlations for one sentiment lead.
// Nil means too few complete pairs or zero variance at that lag.
type LagCorrelation struct {
	Lag            int      `json:"lag"`
	VsReturn       *float64 `json:"sentiment_vs_return,omitempty"`
	VsVolatility   *float64 `json:"sentiment_vs_volatility,omitempty"`
	VsVolumeChange *float64 `json:"sentiment_vs_volume_change,omitempty"`
}

// CorrelationSummary is the lag/metric correlation matrix plus the best cell.
// A zero-valued summary means the series was too short to correlate.
type CorrelationSummary struct {
	Lags                []LagCorrelation `json:"lags,omitempty"`
	BestCorrelation     float64          `json:"best_correlation"`
	BestLag             int              `json:"best_lag"`
	BestMetric          string           `json:"best_metric"`
	CorrelationStrength string           `json:"correlation_strength"`
	SampleSize          int              `json:"sample_size"`
}

// SignificantNews flags a day where sentiment and price moved together or diverged
type SignificantNews struct {
	Date        string  `json:"date"`
	Sentiment   float64 `json:"sentiment"`
	PriceChange float64 `json:"price_change"` // percent
	NewsCount   int     `json:"news_count"`
	Alignment   bool    `json:"alignment"`
}

// SentimentReturns is the mean daily return within one sentiment category
type SentimentReturns struct {
	MeanReturn float64 `json:"mean_return"` // percent
	Count      int     `json:"count"`
}

// LaggedEffect measures sentiment against returns N days later
type LaggedEffect struct {
	Correlation      float64 `json:"correlation"`
	MeanFutureReturn float64 `json:"mean_future_return"` // percent
}

// PredictiveLag names the lag with the strongest forward correlation
type PredictiveLag struct {
	Lag         int     `json:"lag"`
	Correlation float64 `json:"correlation"`
}

// ReturnDifference names the lag where positive and negative news diverge most
type ReturnDifference struct {
	Lag        int     `json:"lag"`
	Difference float64 `json:"difference"` // percent points
}

// ImpactPatterns describes how news sentiment has historically moved the price
type ImpactPatterns struct {
	AlignmentRatio     float64                            `json:"alignment_ratio"`
	ReturnsBySentiment map[string]SentimentReturns        `json:"returns_by_sentiment"`
	LaggedEffects      map[string]map[string]LaggedEffect `json:"lagged_effects"`
	BestPredictiveLag  PredictiveLag                      `json:"best_predictive_lag"`
	MaxReturnDiff      ReturnDifference                   `json:"max_return_difference"`
	Findings           []string                           `json:"findings"`
}

// NewsImpact is the full news-impact analysis payload for one symbol
type NewsImpact struct {
	Symbol                string                `json:"symbol"`
	DaysAnalyzed          int                   `json:"days_analyzed"`
	TotalNewsCount        int                   `json:"total_news_count"`
	SignificantNewsCount  int                   `json:"significant_news_count"`
	AverageSentiment      float64               `json:"average_sentiment"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	CorrelationMetrics    CorrelationSummary    `json:"correlation_metrics"`
	SignificantNews       []SignificantNews     `json:"significant_news"`
	ImpactPatterns        *ImpactPatterns       `json:"impact_analysis,omitempty"`
	IsFallback            bool                  `json:"is_fallback"`
}
