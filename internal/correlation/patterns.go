package correlation

import (
	"fmt"
	"math"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

var sentimentCategories = []string{"positive", "neutral", "negative"}

// ImpactPatterns analyzes how sentiment has historically translated
// into price movement: alignment on news days, returns grouped by
// sentiment category, and forward-lag correlations. Returns nil when
// the series has no news days to analyze.
func (a *Analyzer) ImpactPatterns(records []models.MergedRecord) *models.ImpactPatterns {
	if len(records) == 0 {
		return nil
	}

	// Alignment ratio over days that actually had news
	newsDays := 0
	aligned := 0
	for i := range records {
		r := records[i]
		if r.NewsCount == 0 || r.DailyReturn == nil {
			continue
		}
		newsDays++
		if (r.Sentiment > 0 && *r.DailyReturn > 0) || (r.Sentiment < 0 && *r.DailyReturn < 0) {
			aligned++
		}
	}
	if newsDays == 0 {
		return nil
	}

	patterns := &models.ImpactPatterns{
		AlignmentRatio:     float64(aligned) / float64(newsDays),
		ReturnsBySentiment: make(map[string]models.SentimentReturns),
		LaggedEffects:      make(map[string]map[string]models.LaggedEffect),
	}

	// Mean same-day return within each sentiment category
	for _, category := range sentimentCategories {
		var sum float64
		count := 0
		for i := range records {
			r := records[i]
			if r.DailyReturn == nil || models.SentimentCategory(r.Sentiment) != category {
				continue
			}
			sum += *r.DailyReturn
			count++
		}
		entry := models.SentimentReturns{Count: count}
		if count > 0 {
			entry.MeanReturn = sum / float64(count) * 100
		}
		patterns.ReturnsBySentiment[category] = entry
	}

	// Forward-lag effects: sentiment today against returns 1-3 days out
	bestLag, bestCorr := 1, 0.0
	maxDiffLag, maxDiff := 1, 0.0

	for lag := 1; lag <= maxLag; lag++ {
		effects := make(map[string]models.LaggedEffect)

		for _, category := range sentimentCategories {
			var xs, ys []float64
			for i := 0; i+lag < len(records); i++ {
				r := records[i]
				future := records[i+lag].DailyReturn
				if future == nil || models.SentimentCategory(r.Sentiment) != category {
					continue
				}
				xs = append(xs, r.Sentiment)
				ys = append(ys, *future)
			}
			if len(ys) == 0 {
				continue
			}

			var sum float64
			for _, y := range ys {
				sum += y
			}
			effect := models.LaggedEffect{MeanFutureReturn: sum / float64(len(ys)) * 100}
			if corr, err := pearson(xs, ys); err == nil {
				effect.Correlation = corr
			}
			effects[category] = effect
		}

		patterns.LaggedEffects[fmt.Sprintf("lag_%d", lag)] = effects

		for _, category := range []string{"positive", "negative"} {
			effect, ok := effects[category]
			if ok && math.Abs(effect.Correlation) > math.Abs(bestCorr) {
				bestCorr = effect.Correlation
				bestLag = lag
			}
		}

		pos := effects["positive"].MeanFutureReturn
		neg := effects["negative"].MeanFutureReturn
		if diff := math.Abs(pos - neg); diff > maxDiff {
			maxDiff = diff
			maxDiffLag = lag
		}
	}

	patterns.BestPredictiveLag = models.PredictiveLag{Lag: bestLag, Correlation: bestCorr}
	patterns.MaxReturnDiff = models.ReturnDifference{Lag: maxDiffLag, Difference: maxDiff}
	patterns.Findings = buildFindings(patterns)

	return patterns
}

func buildFindings(p *models.ImpactPatterns) []string {
	var findings []string

	switch {
	case p.AlignmentRatio > 0.7:
		findings = append(findings, "News sentiment and price movements are strongly aligned, suggesting high market efficiency for this stock.")
	case p.AlignmentRatio > 0.5:
		findings = append(findings, "News sentiment and price movements show moderate alignment.")
	default:
		findings = append(findings, "News sentiment and price movements often diverge, indicating other factors may be more influential.")
	}

	pos := p.ReturnsBySentiment["positive"].MeanReturn
	neg := p.ReturnsBySentiment["negative"].MeanReturn
	if pos > 0.5 && neg < -0.5 {
		findings = append(findings, fmt.Sprintf("Positive news typically results in %.2f%% returns, while negative news leads to %.2f%% returns.", pos, neg))
	}

	if math.Abs(p.BestPredictiveLag.Correlation) > 0.3 {
		direction := "positive"
		if p.BestPredictiveLag.Correlation < 0 {
			direction = "inverse"
		}
		findings = append(findings, fmt.Sprintf("News sentiment shows a %s correlation with price movements %d day(s) later.", direction, p.BestPredictiveLag.Lag))
	}

	if p.MaxReturnDiff.Difference > 1.0 {
		findings = append(findings, fmt.Sprintf("The difference in returns between positive and negative news is most pronounced %d day(s) after publication.", p.MaxReturnDiff.Lag))
	}

	return findings
}
