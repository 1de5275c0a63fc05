package news

import (
	"context"
	"time"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

// StaticProvider serves preloaded articles, keyed by symbol. Used in
// development and tests where no upstream news feed is wired.
type StaticProvider struct {
	items map[string][]models.NewsItem
}

// NewStaticProvider creates a provider over a fixed article set
func NewStaticProvider(items map[string][]models.NewsItem) *StaticProvider {
	if items == nil {
		items = make(map[string][]models.NewsItem)
	}
	return &StaticProvider{items: items}
}

func (s *StaticProvider) GetName() string {
	return "Static"
}

// RecentNews filters the preloaded articles by the trailing window
func (s *StaticProvider) RecentNews(_ context.Context, symbol string, daysBack int) ([]models.NewsItem, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -daysBack)

	var result []models.NewsItem
	for _, item := range s.items[symbol] {
		if item.PublishedAt.After(cutoff) {
			result = append(result, item)
		}
	}
	return result, nil
}
