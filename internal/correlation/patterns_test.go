package correlation

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

func TestAnalyzer_ImpactPatterns(t *testing.T) {
	analyzer := NewAnalyzer(0.2, 0.01, 5)
	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	// Positive news days rise, negative news days fall, quiet days drift
	records := []models.MergedRecord{
		{Date: start, Close: 100},
		{Date: start.AddDate(0, 0, 1), Sentiment: 0.5, NewsCount: 2, DailyReturn: models.Float64Ptr(0.02)},
		{Date: start.AddDate(0, 0, 2), Sentiment: -0.6, NewsCount: 1, DailyReturn: models.Float64Ptr(-0.015)},
		{Date: start.AddDate(0, 0, 3), Sentiment: 0.4, NewsCount: 3, DailyReturn: models.Float64Ptr(0.01)},
		{Date: start.AddDate(0, 0, 4), Sentiment: -0.3, NewsCount: 1, DailyReturn: models.Float64Ptr(-0.02)},
		{Date: start.AddDate(0, 0, 5), Sentiment: 0, NewsCount: 0, DailyReturn: models.Float64Ptr(0.001)},
		{Date: start.AddDate(0, 0, 6), Sentiment: 0.6, NewsCount: 2, DailyReturn: models.Float64Ptr(0.018)},
	}

	patterns := analyzer.ImpactPatterns(records)
	if patterns == nil {
		t.Fatal("Expected patterns for a series with news days")
	}

	// Every news day moved with its sentiment
	if patterns.AlignmentRatio != 1.0 {
		t.Errorf("Expected alignment ratio 1.0, got %.2f", patterns.AlignmentRatio)
	}

	pos := patterns.ReturnsBySentiment["positive"]
	if pos.Count != 3 {
		t.Errorf("Expected 3 positive days, got %d", pos.Count)
	}
	if math.Abs(pos.MeanReturn-1.6) > 1e-9 {
		t.Errorf("Expected positive mean return 1.6%%, got %.3f", pos.MeanReturn)
	}

	neg := patterns.ReturnsBySentiment["negative"]
	if neg.Count != 2 {
		t.Errorf("Expected 2 negative days, got %d", neg.Count)
	}
	if neg.MeanReturn >= 0 {
		t.Errorf("Expected negative mean return, got %.3f", neg.MeanReturn)
	}

	for _, key := range []string{"lag_1", "lag_2", "lag_3"} {
		if _, ok := patterns.LaggedEffects[key]; !ok {
			t.Errorf("Expected lagged effects entry %s", key)
		}
	}

	if patterns.BestPredictiveLag.Lag < 1 || patterns.BestPredictiveLag.Lag > 3 {
		t.Errorf("Best predictive lag out of range: %d", patterns.BestPredictiveLag.Lag)
	}

	if len(patterns.Findings) == 0 {
		t.Error("Expected at least one finding")
	}
}

func TestAnalyzer_ImpactPatterns_NoNewsDays(t *testing.T) {
	analyzer := NewAnalyzer(0.2, 0.01, 5)
	start := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	records := []models.MergedRecord{
		{Date: start, Close: 100},
		{Date: start.AddDate(0, 0, 1), Close: 101, DailyReturn: models.Float64Ptr(0.01)},
	}

	if patterns := analyzer.ImpactPatterns(records); patterns != nil {
		t.Error("Expected nil patterns without any news days")
	}
}

func TestBuildFindings_AlignmentBuckets(t *testing.T) {
	cases := []struct {
		ratio    float64
		contains string
	}{
		{0.8, "strongly aligned"},
		{0.6, "moderate alignment"},
		{0.3, "often diverge"},
	}

	for _, tc := range cases {
		p := &models.ImpactPatterns{
			AlignmentRatio:     tc.ratio,
			ReturnsBySentiment: map[string]models.SentimentReturns{},
		}
		findings := buildFindings(p)
		if len(findings) == 0 {
			t.Fatalf("Expected findings at ratio %.1f", tc.ratio)
		}
		if !strings.Contains(findings[0], tc.contains) {
			t.Errorf("Expected %q in finding at ratio %.1f, got %q", tc.contains, tc.ratio, findings[0])
		}
	}
}
