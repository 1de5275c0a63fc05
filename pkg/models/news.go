package models

import "time"

// NewsItem represents single news article about a symbol
type NewsItem struct {
	PublishedAt time.Time `json:"published_at"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	// SentimentScore is the precomputed polarity in [-1, 1].
	// Nil means not yet scored; the aligner scores it on demand.
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
}

// SentimentDistribution holds positive/neutral/negative shares in percent
type SentimentDistribution struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// SentimentCategory buckets a score at the +/-0.2 thresholds
func SentimentCategory(score float64) string {
	if score > 0.2 {
		return "positive"
	}
	if score < -0.2 {
		return "negative"
	}
	return "neutral"
}
