package price

import (
	"context"

	"github.com/selivandex/stock-forecaster/pkg/models"
)

// Provider supplies historical daily price bars
type Provider interface {
	// DailyHistory returns daily OHLCV bars for the trailing lookback
	// window, ordered ascending by date
	DailyHistory(ctx context.Context, symbol string, lookbackDays int) ([]models.PricePoint, error)

	// GetName returns provider name
	GetName() string
}
