package align

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/selivandex/stock-forecaster/pkg/logger"
	"github.com/selivandex/stock-forecaster/pkg/models"
)

// ScoreFunc scores article text, returning polarity in [-1, 1]
type ScoreFunc func(text string) float64

// Aligner joins a daily price series and a news series onto a common
// calendar. News items without a precomputed score are scored through
// the injected analyzer; a nil analyzer treats them as neutral.
type Aligner struct {
	score ScoreFunc
}

// New creates an aligner with the given text-sentiment analyzer
func New(score ScoreFunc) *Aligner {
	return &Aligner{score: score}
}

// Score returns the item's sentiment, computing it from title and
// content when no precomputed score is present
func (a *Aligner) Score(item models.NewsItem) float64 {
	if item.SentimentScore != nil {
		return clamp(*item.SentimentScore)
	}
	if a.score == nil {
		return 0
	}
	return clamp(a.score(item.Title + " " + item.Content))
}

// DailySentiment groups news by calendar day of publication and
// averages the per-item scores. Output is ordered ascending by date
// and only contains days that had news.
func (a *Aligner) DailySentiment(news []models.NewsItem) []models.DailySentiment {
	type acc struct {
		sum   float64
		count int
	}
	byDay := make(map[time.Time]*acc)

	for _, item := range news {
		day := dateOnly(item.PublishedAt)
		entry, ok := byDay[day]
		if !ok {
			entry = &acc{}
			byDay[day] = entry
		}
		entry.sum += a.Score(item)
		entry.count++
	}

	result := make([]models.DailySentiment, 0, len(byDay))
	for day, entry := range byDay {
		result = append(result, models.DailySentiment{
			Date:          day,
			MeanSentiment: entry.sum / float64(entry.count),
			NewsCount:     entry.count,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result
}

// Align left-joins daily sentiment onto the price series: one merged
// record per priced day, ascending by date. Days without news get
// sentiment 0 and news count 0. Missing price days are not
// interpolated; they simply produce no record.
func (a *Aligner) Align(prices []models.PricePoint, news []models.NewsItem) ([]models.MergedRecord, error) {
	if len(prices) == 0 {
		return nil, models.ErrDataUnavailable
	}

	daily := a.DailySentiment(news)
	sentimentByDay := make(map[time.Time]models.DailySentiment, len(daily))
	for _, d := range daily {
		sentimentByDay[d.Date] = d
	}

	records := make([]models.MergedRecord, 0, len(prices))
	for _, p := range prices {
		day := dateOnly(p.Date)
		rec := models.MergedRecord{
			Date:   day,
			Open:   decToFloat(p.Open),
			High:   decToFloat(p.High),
			Low:    decToFloat(p.Low),
			Close:  decToFloat(p.Close),
			Volume: decToFloat(p.Volume),
		}
		if d, ok := sentimentByDay[day]; ok {
			rec.Sentiment = d.MeanSentiment
			rec.NewsCount = d.NewsCount
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	logger.Debug("aligned price and news series",
		zap.Int("price_days", len(records)),
		zap.Int("news_days", len(daily)),
	)

	return records, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func decToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
