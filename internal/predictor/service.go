package predictor

import (
	"context"
	"fmt"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/selivandex/stock-forecaster/internal/adapters/config"
	"github.com/selivandex/stock-forecaster/internal/adapters/news"
	"github.com/selivandex/stock-forecaster/internal/adapters/price"
	"github.com/selivandex/stock-forecaster/internal/align"
	"github.com/selivandex/stock-forecaster/internal/correlation"
	"github.com/selivandex/stock-forecaster/internal/forecast"
	"github.com/selivandex/stock-forecaster/internal/indicators"
	"github.com/selivandex/stock-forecaster/internal/scenario"
	"github.com/selivandex/stock-forecaster/pkg/logger"
	"github.com/selivandex/stock-forecaster/pkg/models"
)

// Service is the forecasting facade. Each call runs the full
// align -> enrich -> correlate -> forecast pipeline over freshly
// fetched series; results are cached as immutable snapshots.
//
// Error policy: only a total absence of price history surfaces as an
// error (ErrDataUnavailable). Model failures become fallback results
// on an explicit branch.
type Service struct {
	cfg        *config.Config
	prices     price.Provider
	newsFeed   news.Provider
	aligner    *align.Aligner
	enricher   *indicators.Enricher
	correlator *correlation.Analyzer
	engine     *forecast.Engine
	simulator  *scenario.Simulator
	cache      *gocache.Cache
}

// NewService wires the pipeline components together
func NewService(cfg *config.Config, prices price.Provider, newsFeed news.Provider, score align.ScoreFunc) *Service {
	engine := forecast.NewEngine(forecast.ModelParams{
		ChangepointPriorScale: cfg.Forecast.ChangepointPriorScale,
		SeasonalityPriorScale: cfg.Forecast.SeasonalityPriorScale,
		Multiplicative:        cfg.Forecast.SeasonalityMode == "multiplicative",
		WeeklySeasonality:     cfg.Forecast.WeeklySeasonality,
		YearlySeasonality:     cfg.Forecast.YearlySeasonality,
		Changepoints:          cfg.Forecast.Changepoints,
	})

	return &Service{
		cfg:      cfg,
		prices:   prices,
		newsFeed: newsFeed,
		aligner:  align.New(score),
		enricher: indicators.NewEnricher(),
		correlator: correlation.NewAnalyzer(
			cfg.Correlation.SentimentThreshold,
			cfg.Correlation.ReturnThreshold,
			cfg.Correlation.MinRows,
		),
		engine:    engine,
		simulator: scenario.NewSimulator(engine),
		cache:     gocache.New(cfg.Cache.ForecastTTL, cfg.Cache.CleanupInterval),
	}
}

// Predict forecasts forecastDays ahead for the symbol, optionally
// enhancing the model with news sentiment as a regressor
func (s *Service) Predict(ctx context.Context, symbol string, forecastDays int, includeNews bool) (models.ForecastResult, error) {
	cacheKey := fmt.Sprintf("forecast:%s:%d:%t", symbol, forecastDays, includeNews)
	if cached, ok := s.cache.Get(cacheKey); ok {
		logger.Debug("forecast served from cache", zap.String("symbol", symbol))
		return cached.(models.ForecastResult), nil
	}

	lookback := forecastDays * 2
	if lookback < s.cfg.Forecast.MinLookbackDays {
		lookback = s.cfg.Forecast.MinLookbackDays
	}

	series, err := s.loadSeries(ctx, symbol, lookback, includeNews)
	if err != nil {
		return models.ForecastResult{}, err
	}

	result, err := s.engine.Forecast(symbol, series.enriched, forecastDays, forecast.Options{
		UseSentiment: includeNews,
	})
	if err != nil {
		// Explicit fallback arm: the caller never sees a model error.
		// Fallback results are never cached, so the next request retries
		// the real model as soon as upstream data recovers.
		logger.Warn("forecast failed, generating fallback",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		return forecast.FallbackForecast(symbol, series.lastClose(), forecastDays), nil
	}

	corr := s.correlator.Analyze(series.enriched)
	result.AnalysisSummary = buildSummary(series, corr, result)

	s.cache.Set(cacheKey, result, s.cfg.Cache.ForecastTTL)
	return result, nil
}

// AnalyzeNewsImpact measures how news sentiment has historically moved
// the symbol's price over the trailing window
func (s *Service) AnalyzeNewsImpact(ctx context.Context, symbol string, daysBack int) (models.NewsImpact, error) {
	cacheKey := fmt.Sprintf("impact:%s:%d", symbol, daysBack)
	if cached, ok := s.cache.Get(cacheKey); ok {
		logger.Debug("news impact served from cache", zap.String("symbol", symbol))
		return cached.(models.NewsImpact), nil
	}

	series, err := s.loadSeries(ctx, symbol, daysBack, true)
	if err != nil {
		return models.NewsImpact{}, err
	}
	if series.newsErr != nil {
		// Price data alone cannot say anything about news impact. Not
		// cached, so the next request retries the feed.
		logger.Warn("news fetch failed, generating fallback impact",
			zap.String("symbol", symbol),
			zap.Error(series.newsErr),
		)
		return forecast.FallbackImpact(symbol, daysBack), nil
	}

	significant := s.correlator.SignificantNews(series.enriched)
	impact := models.NewsImpact{
		Symbol:                symbol,
		DaysAnalyzed:          daysBack,
		TotalNewsCount:        len(series.news),
		SignificantNewsCount:  len(significant),
		AverageSentiment:      series.averageSentiment(),
		SentimentDistribution: series.sentimentDistribution(),
		CorrelationMetrics:    s.correlator.Analyze(series.enriched),
		SignificantNews:       significant,
		ImpactPatterns:        s.correlator.ImpactPatterns(series.enriched),
	}
	if impact.SignificantNews == nil {
		impact.SignificantNews = []models.SignificantNews{}
	}

	s.cache.Set(cacheKey, impact, s.cfg.Cache.ImpactTTL)
	return impact, nil
}

// CreateSentimentScenarios bounds outcomes under hypothetical future
// sentiment, from very negative to very positive
func (s *Service) CreateSentimentScenarios(ctx context.Context, symbol string, forecastDays int) (models.ScenarioSet, error) {
	cacheKey := fmt.Sprintf("scenarios:%s:%d", symbol, forecastDays)
	if cached, ok := s.cache.Get(cacheKey); ok {
		logger.Debug("scenarios served from cache", zap.String("symbol", symbol))
		return cached.(models.ScenarioSet), nil
	}

	lookback := forecastDays * 2
	if lookback < s.cfg.Forecast.MinLookbackDays {
		lookback = s.cfg.Forecast.MinLookbackDays
	}

	series, err := s.loadSeries(ctx, symbol, lookback, true)
	if err != nil {
		return models.ScenarioSet{}, err
	}

	set, err := s.simulator.Simulate(symbol, series.enriched, forecastDays)
	if err != nil {
		return models.ScenarioSet{}, err
	}

	s.cache.Set(cacheKey, set, s.cfg.Cache.ScenarioTTL)
	return set, nil
}

// symbolSeries is one request's fetched and merged data
type symbolSeries struct {
	enriched []models.MergedRecord
	news     []models.NewsItem
	newsErr  error
	scores   []float64
}

// loadSeries fetches and merges the price and news series. Absent
// price history is the one hard error; a failing news feed degrades to
// an empty news series with newsErr recorded.
func (s *Service) loadSeries(ctx context.Context, symbol string, lookbackDays int, includeNews bool) (*symbolSeries, error) {
	prices, err := s.prices.DailyHistory(ctx, symbol, lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, symbol, err)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrDataUnavailable, symbol)
	}

	series := &symbolSeries{}
	if includeNews {
		items, newsErr := s.newsFeed.RecentNews(ctx, symbol, lookbackDays)
		if newsErr != nil {
			logger.Warn("news fetch failed, proceeding without sentiment",
				zap.String("symbol", symbol),
				zap.String("provider", s.newsFeed.GetName()),
				zap.Error(newsErr),
			)
			series.newsErr = newsErr
		} else {
			series.news = items
			series.scores = make([]float64, len(items))
			for i, item := range items {
				series.scores[i] = s.aligner.Score(item)
			}
		}
	}

	merged, err := s.aligner.Align(prices, series.news)
	if err != nil {
		return nil, err
	}
	series.enriched = s.enricher.Enrich(merged)

	return series, nil
}

func (ss *symbolSeries) lastClose() float64 {
	if len(ss.enriched) == 0 {
		return 0
	}
	return ss.enriched[len(ss.enriched)-1].Close
}

func (ss *symbolSeries) averageSentiment() float64 {
	if len(ss.scores) == 0 {
		return 0
	}
	var sum float64
	for _, v := range ss.scores {
		sum += v
	}
	return sum / float64(len(ss.scores))
}

func (ss *symbolSeries) sentimentDistribution() models.SentimentDistribution {
	var dist models.SentimentDistribution
	if len(ss.scores) == 0 {
		return dist
	}

	for _, score := range ss.scores {
		switch models.SentimentCategory(score) {
		case "positive":
			dist.Positive++
		case "negative":
			dist.Negative++
		default:
			dist.Neutral++
		}
	}

	total := float64(len(ss.scores))
	dist.Positive = dist.Positive / total * 100
	dist.Neutral = dist.Neutral / total * 100
	dist.Negative = dist.Negative / total * 100
	return dist
}
