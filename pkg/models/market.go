package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewDecimal creates decimal from float64
func NewDecimal(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// PricePoint represents one daily OHLCV bar for a symbol.
// Immutable once ingested; Close is the source of truth for pricing.
type PricePoint struct {
	Symbol string          `json:"symbol"`
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}

// DailySentiment aggregates same-day news scores.
// Days with no news carry (0, 0); zero is the neutral default, not missing data.
type DailySentiment struct {
	Date          time.Time `json:"date"`
	MeanSentiment float64   `json:"mean_sentiment"`
	NewsCount     int       `json:"news_count"`
}

// MergedRecord is one calendar day of the joined price/sentiment series,
// plus the derived technical fields. Nil pointers mean the window had
// insufficient history for that field.
type MergedRecord struct {
	Date      time.Time `json:"date"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Sentiment float64   `json:"sentiment"`
	NewsCount int       `json:"news_count"`

	DailyReturn   *float64 `json:"daily_return,omitempty"`
	MA5           *float64 `json:"ma5,omitempty"`
	MA10          *float64 `json:"ma10,omitempty"`
	MA20          *float64 `json:"ma20,omitempty"`
	UpperBand     *float64 `json:"upper_band,omitempty"`
	LowerBand     *float64 `json:"lower_band,omitempty"`
	RSI           *float64 `json:"rsi,omitempty"`
	MACD          *float64 `json:"macd,omitempty"`
	MACDSignal    *float64 `json:"macd_signal,omitempty"`
	MACDHistogram *float64 `json:"macd_histogram,omitempty"`
	Volatility    *float64 `json:"volatility,omitempty"`
	VolumeChange  *float64 `json:"volume_change,omitempty"`
}

// Float64Ptr returns a pointer to v. Convenience for nullable fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
