package correlation

import (
	"fmt"
	"math"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

const maxLag = 3

// Analyzer computes lagged correlations between news sentiment and
// price-derived metrics.
//
// Lag convention: sentiment leads price. A lag of k pairs sentiment on
// day d with the metric on day d+k.
type Analyzer struct {
	sentimentThreshold float64
	returnThreshold    float64
	minRows            int
}

// NewAnalyzer creates a correlation analyzer with the given
// significance thresholds
func NewAnalyzer(sentimentThreshold, returnThreshold float64, minRows int) *Analyzer {
	return &Analyzer{
		sentimentThreshold: sentimentThreshold,
		returnThreshold:    returnThreshold,
		minRows:            minRows,
	}
}

// Analyze computes the lag/metric correlation matrix over an enriched
// series and identifies the strongest cell. Series with fewer than
// minRows complete rows produce an empty summary: correlation is
// statistically meaningless below that size.
func (a *Analyzer) Analyze(records []models.MergedRecord) models.CorrelationSummary {
	valid := 0
	for i := range records {
		if records[i].DailyReturn != nil {
			valid++
		}
	}
	if valid < a.minRows {
		return models.CorrelationSummary{}
	}

	summary := models.CorrelationSummary{SampleSize: valid}

	for lag := 0; lag <= maxLag; lag++ {
		cell := models.LagCorrelation{Lag: lag}
		cell.VsReturn = laggedCorrelation(records, lag, func(r models.MergedRecord) *float64 {
			return r.DailyReturn
		})
		cell.VsVolatility = laggedCorrelation(records, lag, func(r models.MergedRecord) *float64 {
			if r.DailyReturn == nil {
				return nil
			}
			abs := math.Abs(*r.DailyReturn)
			return &abs
		})
		cell.VsVolumeChange = laggedCorrelation(records, lag, func(r models.MergedRecord) *float64 {
			return r.VolumeChange
		})
		summary.Lags = append(summary.Lags, cell)
	}

	best := 0.0
	for _, cell := range summary.Lags {
		candidates := []struct {
			value  *float64
			metric string
		}{
			{cell.VsReturn, models.MetricReturn},
			{cell.VsVolatility, models.MetricVolatility},
			{cell.VsVolumeChange, models.MetricVolumeChange},
		}
		for _, c := range candidates {
			if c.value != nil && math.Abs(*c.value) > math.Abs(best) {
				best = *c.value
				summary.BestCorrelation = best
				summary.BestLag = cell.Lag
				summary.BestMetric = c.metric
			}
		}
	}

	summary.CorrelationStrength = strengthLabel(summary.BestCorrelation)
	return summary
}

// SignificantNews flags days where strong sentiment coincided with a
// price move above the return threshold. Alignment means the signs of
// sentiment and return agree.
func (a *Analyzer) SignificantNews(records []models.MergedRecord) []models.SignificantNews {
	var result []models.SignificantNews

	for i := 1; i < len(records); i++ {
		r := records[i]
		if r.DailyReturn == nil {
			continue
		}
		if math.Abs(r.Sentiment) <= a.sentimentThreshold {
			continue
		}
		if r.NewsCount == 0 {
			continue
		}
		if math.Abs(*r.DailyReturn) <= a.returnThreshold {
			continue
		}

		change := *r.DailyReturn * 100
		result = append(result, models.SignificantNews{
			Date:        r.Date.Format("2006-01-02"),
			Sentiment:   r.Sentiment,
			PriceChange: change,
			NewsCount:   r.NewsCount,
			Alignment:   (r.Sentiment > 0 && change > 0) || (r.Sentiment < 0 && change < 0),
		})
	}

	return result
}

// laggedCorrelation pairs day-d sentiment with the day-(d+lag) metric
// and computes Pearson correlation over the complete pairs. Pairs with
// a nil metric operand are excluded (pairwise-complete).
func laggedCorrelation(records []models.MergedRecord, lag int, metric func(models.MergedRecord) *float64) *float64 {
	var xs, ys []float64
	for i := 0; i+lag < len(records); i++ {
		m := metric(records[i+lag])
		if m == nil {
			continue
		}
		xs = append(xs, records[i].Sentiment)
		ys = append(ys, *m)
	}

	r, err := pearson(xs, ys)
	if err != nil {
		return nil
	}
	return &r
}

// pearson computes the Pearson correlation coefficient between two
// equal-length series. Zero variance on either side yields an error
// rather than a coefficient.
func pearson(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0, fmt.Errorf("invalid series lengths (%d, %d)", len(xs), len(ys))
	}

	n := float64(len(xs))

	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var numerator, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		numerator += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, fmt.Errorf("zero variance")
	}

	return numerator / math.Sqrt(varX*varY), nil
}

func strengthLabel(r float64) string {
	abs := math.Abs(r)
	switch {
	case abs > 0.5:
		return "strong"
	case abs > 0.3:
		return "moderate"
	default:
		return "weak"
	}
}
