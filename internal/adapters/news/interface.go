package news

import (
	"context"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

// Provider supplies recent news articles about a symbol. Real
// acquisition lives outside this service; implementations here only
// hand the core already-fetched article records.
type Provider interface {
	// RecentNews returns articles published within the trailing window.
	// Items may or may not carry a precomputed sentiment score.
	RecentNews(ctx context.Context, symbol string, daysBack int) ([]models.NewsItem, error)

	// GetName returns provider name
	GetName() string
}
