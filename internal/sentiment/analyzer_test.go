package sentiment

import "testing"

func TestAnalyzer_AnalyzeSentiment(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name     string
		text     string
		expected string // positive, negative, or neutral
	}{
		{
			name:     "earnings beat",
			text:     "Company beats earnings estimates, shares surge on strong guidance and record profit",
			expected: "positive",
		},
		{
			name:     "analyst upgrade",
			text:     "Analysts upgrade the stock to overweight after bullish buyback announcement",
			expected: "positive",
		},
		{
			name:     "earnings miss",
			text:     "Shares plunge after company misses estimates, analysts downgrade on weak outlook",
			expected: "negative",
		},
		{
			name:     "legal trouble",
			text:     "Stock tumbles on fraud investigation and lawsuit fears, bankruptcy risk looms",
			expected: "negative",
		},
		{
			name:     "plain reporting",
			text:     "The company held its annual shareholder meeting on Tuesday",
			expected: "neutral",
		},
		{
			name:     "empty text",
			text:     "",
			expected: "neutral",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := analyzer.AnalyzeSentiment(tt.text)

			var got string
			if score > 0 {
				got = "positive"
			} else if score < 0 {
				got = "negative"
			} else {
				got = "neutral"
			}

			if got != tt.expected {
				t.Errorf("Expected %s sentiment, got %s (score: %.3f)",
					tt.expected, got, score)
			}
		})
	}
}

func TestAnalyzer_AnalyzeSentiment_Bounds(t *testing.T) {
	analyzer := NewAnalyzer()

	// Keyword-dense text must still stay within the polarity range
	score := analyzer.AnalyzeSentiment("bullish rally surge soar record profit beat upgrade breakout")
	if score < -1 || score > 1 {
		t.Errorf("Score out of range: %.3f", score)
	}
	if score <= 0 {
		t.Errorf("Expected positive score, got %.3f", score)
	}
}

func TestAnalyzer_AnalyzeSentiment_Punctuation(t *testing.T) {
	analyzer := NewAnalyzer()

	plain := analyzer.AnalyzeSentiment("shares surge")
	punctuated := analyzer.AnalyzeSentiment("shares surge!")

	if plain != punctuated {
		t.Errorf("Punctuation should not change the score: %.3f vs %.3f", plain, punctuated)
	}
}
