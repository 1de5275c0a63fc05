package sentiment

import (
	"strings"
)

// Analyzer performs simple keyword-based sentiment analysis over
// news headlines and article bodies
type Analyzer struct {
	positiveWords map[string]float64
	negativeWords map[string]float64
}

// NewAnalyzer creates new sentiment analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		positiveWords: buildPositiveWords(),
		negativeWords: buildNegativeWords(),
	}
}

// AnalyzeSentiment analyzes text and returns sentiment score (-1.0 to 1.0)
func (a *Analyzer) AnalyzeSentiment(text string) float64 {
	if text == "" {
		return 0.0
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0.0
	}

	var score float64
	matchCount := 0

	for _, word := range words {
		// Clean punctuation
		word = strings.Trim(word, ".,!?;:'\"()")

		if weight, ok := a.positiveWords[word]; ok {
			score += weight
			matchCount++
		}

		if weight, ok := a.negativeWords[word]; ok {
			score -= weight
			matchCount++
		}
	}

	if matchCount == 0 {
		return 0.0
	}

	// Normalize score
	normalizedScore := score / float64(len(words))

	// Clamp to -1.0 to 1.0
	if normalizedScore > 1.0 {
		normalizedScore = 1.0
	} else if normalizedScore < -1.0 {
		normalizedScore = -1.0
	}

	return normalizedScore
}

// buildPositiveWords returns positive keywords for equity news
func buildPositiveWords() map[string]float64 {
	return map[string]float64{
		// General positive
		"bullish":      1.0,
		"rally":        0.9,
		"surge":        0.8,
		"soar":         0.8,
		"jump":         0.7,
		"gain":         0.6,
		"profit":       0.6,
		"record":       0.6,
		"strong":       0.6,
		"up":           0.5,
		"rise":         0.5,
		"grow":         0.5,
		"growth":       0.5,
		"increase":     0.5,
		"positive":     0.5,
		"optimistic":   0.5,
		"breakthrough": 0.6,
		"innovation":   0.5,
		"expansion":    0.5,
		"partnership":  0.5,

		// Equity specific
		"beat":        0.8, // earnings beat
		"beats":       0.8,
		"outperform":  0.8,
		"upgrade":     0.7,
		"upgraded":    0.7,
		"overweight":  0.6,
		"buyback":     0.6,
		"dividend":    0.5,
		"guidance":    0.4,
		"acquisition": 0.5,
		"approval":    0.6,
		"approved":    0.6,
		"breakout":    0.7,
	}
}

// buildNegativeWords returns negative keywords for equity news
func buildNegativeWords() map[string]float64 {
	return map[string]float64{
		// General negative
		"bearish":     1.0,
		"crash":       1.0,
		"plunge":      0.9,
		"tumble":      0.8,
		"slump":       0.8,
		"fall":        0.6,
		"drop":        0.6,
		"decline":     0.6,
		"loss":        0.7,
		"losses":      0.7,
		"weak":        0.6,
		"down":        0.5,
		"negative":    0.5,
		"pessimistic": 0.5,
		"fear":        0.6,
		"panic":       0.8,
		"selloff":     0.7,
		"correction":  0.6,

		// Equity specific
		"miss":          0.8, // earnings miss
		"misses":        0.8,
		"downgrade":     0.7,
		"downgraded":    0.7,
		"underweight":   0.6,
		"underperform":  0.7,
		"lawsuit":       0.7,
		"investigation": 0.7,
		"recall":        0.8,
		"bankruptcy":    1.0,
		"default":       0.9,
		"fraud":         1.0,
		"layoffs":       0.7,
		"warning":       0.6,
		"cut":           0.5,
		"delisted":      0.9,
		"dilution":      0.6,
		"overvalued":    0.6,
	}
}
